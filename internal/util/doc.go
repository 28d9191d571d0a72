// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for redraft: atomic file
// writes and unicode-safe string truncation.
package util
