package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/availproject/avail-crawler/nodebuilder"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a default config file. Refuses to overwrite an existing one.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := ParseFlags(cmd.Flags())
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}

		if err := nodebuilder.SaveConfig(path, nodebuilder.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().AddFlagSet(Flags())
}
