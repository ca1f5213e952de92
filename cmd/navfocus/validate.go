package main

import (
	"fmt"

	"github.com/aretw0/navfocus/internal/validator"
	"github.com/aretw0/navfocus/pkg/scenario"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the scenarios of --dir for consistency",
	Long: `Parses every scenario document and reports malformed states and
expectations naming navigators or routes that never exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		lib, err := scenario.OpenLibrary(dir)
		if err != nil {
			return err
		}
		if err := validator.ValidateSource(cmd.Context(), lib); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("Scenarios are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
