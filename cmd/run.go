package cmd

import (
	"fmt"
	"os"

	"github.com/dgerlanc/offlimits/internal/hook"
	"github.com/spf13/cobra"
)

// runHook is the default command that processes stdin for an access decision
func runHook(cmd *cobra.Command, args []string) {
	result := hook.ProcessWithResult(os.Stdin, rootDir)

	if dryRun {
		switch result.Decision.Verdict {
		case hook.Allow:
			fmt.Fprintf(os.Stderr, "ALLOW: %s\n", result.Tool)
		case hook.Deny:
			fmt.Fprintf(os.Stderr, "DENY: %s (reason: %s)\n", result.Tool, result.Decision.Reason)
		default:
			fmt.Fprintf(os.Stderr, "PASS: %s (%s)\n", result.Tool, result.Decision.Reason)
		}
		return
	}

	// Normal mode: single JSON decision to stdout, always exit 0
	fmt.Print(result.Output)
}
