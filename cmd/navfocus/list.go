package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aretw0/navfocus/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scenarios found in --dir",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		logger, err := cli.NewLogger(opts.LogLevel)
		if err != nil {
			return err
		}

		opts.RedisAddr = ""
		ws, closeWs, err := cli.OpenWorkspace(cmd.Context(), opts, logger)
		if err != nil {
			return err
		}
		defer closeWs()

		list, err := ws.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			cli.PrintSystemMessage(os.Stdout, "no scenarios in "+opts.Dir)
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")
		for _, m := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Title, m.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
