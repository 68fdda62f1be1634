// Package cmd implements the CLI commands for offlimits.
package cmd

import (
	"github.com/dgerlanc/offlimits/internal/audit"
	"github.com/dgerlanc/offlimits/internal/config"
	"github.com/dgerlanc/offlimits/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	dryRun     bool
	rootDir    string
	noAuditLog bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "offlimits",
	Short: "Claude Code sensitive-file protection hook",
	Long: `offlimits is a PreToolUse hook for Claude Code that denies tool calls
touching sensitive files (credentials, keys, cloud config, production
databases), including indirect access through Bash commands.

When called without arguments, it reads a JSON tool invocation from stdin
and writes a permission decision JSON to stdout.

Usage in ~/.claude/settings.json:
  "hooks": {
    "PreToolUse": [{
      "matcher": "Read|Write|Edit|MultiEdit|Bash",
      "hooks": [{"type": "command", "command": "offlimits"}]
    }]
  }`,
	// Run the hook by default when no subcommand is given
	Run: runHook,
	// Silence usage on errors
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize before running any command
	cobra.OnInitialize(initApp)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the decision to stderr instead of JSON output")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root override (default: cwd from the hook input)")
	rootCmd.PersistentFlags().BoolVar(&noAuditLog, "no-audit-log", false, "Disable audit logging")
}

// initApp initializes the application (logger, config, audit)
func initApp() {
	logger.Init(logger.Options{Verbose: verbose})

	config.Init()

	cfg := config.Get()
	audit.Init(cfg.Settings.AuditLog, cfg.Settings.AuditMaxBytes, noAuditLog)
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// IsDryRun returns whether dry-run mode is enabled
func IsDryRun() bool {
	return dryRun
}
