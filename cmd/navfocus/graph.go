package main

import (
	"fmt"

	"github.com/aretw0/navfocus/internal/cli"
	"github.com/aretw0/navfocus/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <scenario>",
	Short: "Export the navigator tree of a scenario as a Mermaid diagram",
	Long: `Replays a scenario up to --step (the last one by default) and outputs a
Mermaid diagram of the navigation state, highlighting the focused path.
Step 0 is the initial state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		step, _ := cmd.Flags().GetInt("step")

		logger, err := cli.NewLogger(opts.LogLevel)
		if err != nil {
			return err
		}
		ws, closeWs, err := cli.OpenWorkspace(cmd.Context(), opts, logger)
		if err != nil {
			return err
		}
		defer closeWs()

		sc, err := ws.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if step < 0 || step > len(sc.Steps) {
			step = len(sc.Steps)
		}
		res, err := ws.Run(cmd.Context(), sc)
		if err != nil {
			return err
		}

		state := sc.Initial
		if step > 0 {
			state = sc.Steps[step-1].State
		}
		fmt.Print(graph.GenerateMermaid(state, &graph.FocusOverlay{FocusPath: res.Steps[step].Focus}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("step", -1, "Step whose state is drawn (default: last)")
}
