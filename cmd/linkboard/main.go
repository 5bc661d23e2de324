package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/db"
	"github.com/hpungsan/linkboard/internal/mcp"
	"github.com/hpungsan/linkboard/internal/wikijs"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add-container": true, "add-category": true, "save": true,
	"clear-links": true, "list": true, "refresh": true,
	"export": true, "import": true,
	"history": true, "show": true, "restore": true,
	"config": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _ _      _   _                       _
  | (_)_ _ | |_| |__  ___  __ _ _ _ __| |
  | | | ' \| / / '_ \/ _ \/ _' | '_/ _' |
  |_|_|_||_|_\_\_.__/\___/\__,_|_| \__,_|

  Save webpages as link cards on a wiki.js page

  Usage: linkboard <command> [options]
         linkboard --help

  MCP server mode requires piped input.`)
}

// newGateway builds the wiki client from config, honoring the configured
// request timeout.
func newGateway(cfg *config.Config) *wikijs.Client {
	if cfg.HTTPTimeoutSecs > 0 {
		return wikijs.NewClientWithTimeout(cfg.Endpoint, cfg.Token,
			time.Duration(cfg.HTTPTimeoutSecs)*time.Second)
	}
	return wikijs.NewClient(cfg.Endpoint, cfg.Token)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, "")
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".linkboard")

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	gw := newGateway(cfg)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(gw, database, cfg, baseDir)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'linkboard --help' for usage.\n")
		os.Exit(1)
	}

	// Warn about config typos before the server starts serving tools.
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		fmt.Fprintf(os.Stderr, "warning: unknown disabled_tools entries: %v\n", unknown)
	}

	// MCP server mode (default)
	if err := mcp.Run(gw, database, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
