package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/navfocus"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of navfocus",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("navfocus version %s\n", strings.TrimSpace(navfocus.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
