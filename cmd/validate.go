package cmd

import (
	"fmt"
	"os"

	"github.com/dgerlanc/offlimits/internal/hook"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and show compiled patterns",
	Long: `Validate compiles the pattern store for the project root and displays
every pattern with its source.

This is useful for:
- Checking which ignore files the project contributes
- Seeing the exact pattern order (later patterns override earlier ones)
- Debugging why a path is or is not protected`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	root := rootDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine project root: %w", err)
		}
		root = wd
	}

	engine := hook.NewEngine(root)
	store := engine.Store()

	fmt.Printf("Project root: %s\n", root)
	if store.FromDefaults() {
		fmt.Println("No ignore files found; using built-in defaults.")
	}
	fmt.Printf("Patterns: %d\n\n", store.Len())

	for _, p := range store.Patterns() {
		mark := "protect"
		if p.Negated {
			mark = "allow  "
		}
		fmt.Printf("  %s  %-30s  (%s)\n", mark, p.Raw, p.Source)
	}

	return nil
}
