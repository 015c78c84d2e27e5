package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(
		initCmd,
		startCmd,
	)
	rootCmd.SetHelpCommand(&cobra.Command{})
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	return rootCmd.ExecuteContext(context.Background())
}

var rootCmd = &cobra.Command{
	Use:   "avail-crawler [subcommand]",
	Short: "Crawls finalized blocks and samples their availability over the p2p network",
	Args:  cobra.NoArgs,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}
