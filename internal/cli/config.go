// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - "redraft config" command handler.
//
// Subcommands:
//   show    Print the effective configuration (default)
//   set     Set a key, e.g. chat.model or apply.root
//   path    Print the config file path
//   init    Write a default config file
package cli

import (
	"fmt"
	"strconv"

	"github.com/kestrelworks/redraft/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "set":
		return configSet(args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "init":
		return configInit()
	default:
		return fmt.Errorf("unknown config subcommand %q (try show, set, path, init)", args.Subcommand)
	}
}

func configShow() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Printf("chat.base_url            %s\n", cfg.Chat.BaseURL)
	fmt.Printf("chat.model               %s\n", cfg.Chat.Model)
	fmt.Printf("chat.timeout_secs        %d\n", cfg.Chat.TimeoutSecs)
	fmt.Printf("chat.requests_per_minute %d\n", cfg.Chat.RequestsPerMinute)
	fmt.Printf("apply.root               %s\n", cfg.Apply.Root)
	fmt.Printf("apply.watch              %t\n", cfg.Apply.Watch)
	fmt.Printf("apply.auto_save          %t\n", cfg.Apply.AutoSave)
	fmt.Printf("apply.backup             %t\n", cfg.Apply.Backup)
	fmt.Printf("history.enabled          %t\n", cfg.History.Enabled)
	if histPath, err := cfg.HistoryPath(); err == nil {
		fmt.Printf("history.path             %s\n", histPath)
	}
	fmt.Printf("history.max_conversations %d\n", cfg.History.MaxConversations)
	fmt.Printf("ui.theme                 %s\n", cfg.UI.Theme)
	fmt.Printf("ui.markdown              %t\n", cfg.UI.Markdown)
	fmt.Printf("ui.syntax_theme          %s\n", cfg.UI.SyntaxTheme)
	return nil
}

func configSet(key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("usage: redraft config set <key> <value>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "chat.base_url":
		cfg.Chat.BaseURL = value
	case "chat.model":
		cfg.Chat.Model = value
	case "chat.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		cfg.Chat.TimeoutSecs = n
	case "chat.requests_per_minute":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		cfg.Chat.RequestsPerMinute = n
	case "apply.root":
		cfg.Apply.Root = value
	case "apply.watch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		cfg.Apply.Watch = b
	case "apply.auto_save":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		cfg.Apply.AutoSave = b
	case "apply.backup":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		cfg.Apply.Backup = b
	case "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		cfg.History.Enabled = b
	case "history.max_conversations":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		cfg.History.MaxConversations = n
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.markdown":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		cfg.UI.Markdown = b
	case "ui.syntax_theme":
		cfg.UI.SyntaxTheme = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}

func configInit() error {
	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return err
	}
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
