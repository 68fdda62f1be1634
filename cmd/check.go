package cmd

import (
	"fmt"
	"os"

	"github.com/dgerlanc/offlimits/internal/hook"
	"github.com/spf13/cobra"
)

var (
	checkPath    string
	checkCommand string
	checkTool    string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a path or command without going through stdin",
	Long: `Check runs the same evaluation the hook performs, from the command line.

Examples:
  offlimits check --path .env
  offlimits check --command "cat .env | grep KEY"
  offlimits check --tool Write --path config/secrets.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkPath, "path", "", "File path to evaluate (Read tool semantics)")
	checkCmd.Flags().StringVar(&checkCommand, "command", "", "Bash command to evaluate")
	checkCmd.Flags().StringVar(&checkTool, "tool", "", "Tool name to evaluate as (default Read or Bash)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if (checkPath == "") == (checkCommand == "") {
		return fmt.Errorf("exactly one of --path or --command is required")
	}

	root := rootDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine project root: %w", err)
		}
		root = wd
	}

	tool := checkTool
	input := hook.ToolInputData{}
	if checkPath != "" {
		if tool == "" {
			tool = hook.ToolNameRead
		}
		input.FilePath = checkPath
	} else {
		if tool == "" {
			tool = hook.ToolNameBash
		}
		input.Command = checkCommand
	}

	engine := hook.NewEngine(root)
	decision := engine.Evaluate(tool, input)

	switch decision.Verdict {
	case hook.Allow:
		fmt.Println("ALLOW")
	case hook.Deny:
		fmt.Printf("DENY: %s\n", decision.Reason)
	default:
		fmt.Printf("PASS: %s\n", decision.Reason)
	}
	return nil
}
