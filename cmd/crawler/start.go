package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/availproject/avail-crawler/nodebuilder"
)

var startCmd = &cobra.Command{
	Use: "start",
	Short: `Starts the crawler daemon. First stopping signal gracefully stops it
and second terminates it.`,
	Aliases:      []string{"run", "daemon"},
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := ParseFlags(cmd.Flags())
		if err != nil {
			return err
		}

		cfg, err := nodebuilder.LoadConfig(path)
		if err != nil {
			return err
		}

		nd, err := nodebuilder.New(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if err := nd.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		cancel() // ensure we stop reading more signals for start context

		ctx, cancel = signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return nd.Stop(ctx)
	},
}

func init() {
	startCmd.Flags().AddFlagSet(Flags())
}
