// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for redraft.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdApply
	CmdConfig
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Model   string
	Root    string

	// Command-specific
	Query      string
	File       string
	Apply      bool
	Resume     string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `redraft %s - terminal pair editor backed by a local LLM

Redraft chats with a local model and applies the edit directives in its
responses directly to files in your working tree.

Usage:
  redraft                    Start TUI (default)
  redraft ask "request"      One-shot request, print the response
  redraft chat [--resume ID] Interactive chat in the terminal
  redraft apply [file]       Apply directive text from a file or stdin
  redraft config [show|set|path|init]
                             Configuration management
  redraft history [list|show|delete] [id]
                             Saved conversations
  redraft version            Show version information
  redraft help               Show this help

Flags:
  -m, --model NAME    Use a specific model (overrides config)
  --root DIR          Resolve relative file paths against DIR
  -f, --file FILE     Include file content with an ask request
  --apply             Apply directives from an ask response
  -q, --quiet         Minimal output
  -v, --verbose       Verbose output

Examples:
  redraft ask "add error handling to loadConfig in config.go"
  redraft ask --apply "rename the helper in util.go"
  cat response.txt | redraft apply
  redraft config set chat.model qwen2.5-coder:32b
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsed := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parseAskArgs(&parsed, remaining)
		return CmdAsk, parsed

	case "chat":
		parseChatArgs(&parsed, remaining)
		return CmdChat, parsed

	case "apply":
		if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
			parsed.File = remaining[0]
		}
		return CmdApply, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "history", "conversations":
		if len(remaining) > 0 {
			parsed.Subcommand = remaining[0]
			parsed.Raw = remaining[1:]
		}
		return CmdHistory, parsed

	case "version", "--version", "-V":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		// Unknown word: treat it as an ask query for convenience.
		parsed.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, parsed
	}
}

// parseGlobalFlags extracts flags valid for every command.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "-m", "--model":
			if i+1 < len(args) {
				i++
				parsed.Model = args[i]
			}
		case "--root":
			if i+1 < len(args) {
				i++
				parsed.Root = args[i]
			}
		default:
			remaining = append(remaining, args[i])
		}
	}
	return remaining, parsed
}

// parseAskArgs parses ask-specific flags; everything else joins the query.
func parseAskArgs(parsed *Args, args []string) {
	var query []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f", "--file":
			if i+1 < len(args) {
				i++
				parsed.File = args[i]
			}
		case "--apply":
			parsed.Apply = true
		default:
			query = append(query, args[i])
		}
	}
	parsed.Query = strings.Join(query, " ")
}

// parseChatArgs parses chat-specific flags.
func parseChatArgs(parsed *Args, args []string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-r", "--resume":
			if i+1 < len(args) {
				i++
				parsed.Resume = args[i]
			}
		}
	}
}

// parseConfigArgs parses the config subcommand and key/value pair.
func parseConfigArgs(parsed *Args, args []string) {
	if len(args) == 0 {
		parsed.Subcommand = "show"
		return
	}
	parsed.Subcommand = args[0]
	if len(args) > 1 {
		parsed.ConfigKey = args[1]
	}
	if len(args) > 2 {
		parsed.ConfigVal = strings.Join(args[2:], " ")
	}
}

// PrintUsage prints the top-level usage text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("redraft %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// HandleHelp prints the usage text.
func HandleHelp() {
	PrintUsage()
}
