package main

import (
	"fmt"
	"os"

	"github.com/aretw0/navfocus/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "navfocus",
	Short: "navfocus replays focus propagation across nested navigators",
	Long: `navfocus mounts a tree of navigators over a navigation state and reports
the willFocus, didFocus, willBlur and didBlur events each screen receives as
actions are dispatched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing scenario documents")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("redis-addr", "", "Publish lifecycle events to this Redis server")
}

func globalOptions(cmd *cobra.Command) cli.Options {
	dir, _ := cmd.Flags().GetString("dir")
	level, _ := cmd.Flags().GetString("log-level")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	return cli.Options{Dir: dir, LogLevel: level, RedisAddr: redisAddr}
}
