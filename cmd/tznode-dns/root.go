package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trufnetwork/tznode-dns/config"
	"github.com/trufnetwork/tznode-dns/lib/provision/awsengine"
)

type options struct {
	targetsFile string
	stack       string
	region      string
	profile     string
	edgeRegion  string
	debug       bool
}

// clientsFactory returns the clients of region (empty for the shared config
// default) and the region they resolved to.
type clientsFactory func(region, profile string) (awsengine.Clients, string, error)

type app struct {
	opts       options
	out        io.Writer
	logger     *zap.Logger
	newClients clientsFactory
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tznode-dns",
		Short: "Publish load balancer aliases and certificate validation records",
		Long: "tznode-dns creates the Route53 alias records of the deployment targets " +
			"and the DNS records that validate their ACM certificates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.targetsFile, "targets", config.DefaultTargetsFile, "Targets file (.yaml or .toml)")
	flags.StringVar(&a.opts.stack, "stack", "", "Stack suffix whose targets are published (e.g. ghostnet)")
	flags.StringVar(&a.opts.region, "region", "", "AWS region (defaults to the shared config)")
	flags.StringVar(&a.opts.profile, "profile", "", "AWS shared config profile")
	flags.StringVar(&a.opts.edgeRegion, "edge-region", "us-east-1", "Additional region certificates may live in; empty to disable")
	flags.BoolVar(&a.opts.debug, "debug", false, "Log at debug level")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		if a.logger != nil {
			return nil
		}
		cfg := zap.NewProductionConfig()
		if a.opts.debug {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return err
		}
		a.logger = l
		return nil
	}

	cmd.AddCommand(newCmdPreview(a))
	cmd.AddCommand(newCmdApply(a))
	return cmd
}
