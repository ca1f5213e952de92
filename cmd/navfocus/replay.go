package main

import (
	"errors"
	"os"

	"github.com/aretw0/navfocus/internal/cli"
	"github.com/spf13/cobra"
)

var errExpectations = errors.New("scenario expectations not met")

var replayCmd = &cobra.Command{
	Use:   "replay <scenario>",
	Short: "Replay a scenario and print its lifecycle events",
	Long: `Replays a scenario by ID (from --dir) or by path to a YAML file, printing
the events emitted for the initial mount and for every step.
Exits with a non-zero status when an expectation is not met.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		format, _ := cmd.Flags().GetString("format")

		logger, err := cli.NewLogger(opts.LogLevel)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		ws, closeWs, err := cli.OpenWorkspace(ctx, opts, logger)
		if err != nil {
			return err
		}
		defer closeWs()

		res, err := ws.Replay(ctx, args[0])
		if err != nil {
			return err
		}
		if err := cli.PrintResult(os.Stdout, res, format); err != nil {
			return err
		}
		if !res.Passed() {
			return errExpectations
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, markdown or json")
}
