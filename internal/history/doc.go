// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists conversations to a local SQLite database.
//
// Each conversation is one row plus its ordered messages; saving the
// same conversation again rewrites the messages wholesale, so a chat
// session updates a single row as it grows. The store prunes the oldest
// conversations beyond a configured cap.
//
// The database lives at ~/.redraft/history.db by default and is created
// on first open.
package history
