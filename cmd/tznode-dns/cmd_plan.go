package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trufnetwork/tznode-dns/config"
	"github.com/trufnetwork/tznode-dns/config/targets"
	"github.com/trufnetwork/tznode-dns/lib/dnsrecords"
	"github.com/trufnetwork/tznode-dns/lib/provision"
	"github.com/trufnetwork/tznode-dns/lib/provision/awsengine"
	"github.com/trufnetwork/tznode-dns/lib/report"
)

func newCmdPreview(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the records that apply would write, without writing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), true)
		},
	}
}

func newCmdApply(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Upsert the records and wait for certificate validation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), false)
		},
	}
}

// engine builds an awsengine with the default region's clients plus, when set
// and different, the edge region's clients registered under the region name.
func (a *app) engine(ctx context.Context, dryRun bool) (*awsengine.Engine, string, error) {
	defaults, region, err := a.newClients(a.opts.region, a.opts.profile)
	if err != nil {
		return nil, "", fmt.Errorf("aws session: %w", err)
	}

	opts := []awsengine.Option{awsengine.WithLogger(a.logger)}
	if dryRun {
		opts = append(opts, awsengine.WithDryRun())
	}
	if a.opts.edgeRegion != "" && a.opts.edgeRegion != region {
		edge, _, err := a.newClients(a.opts.edgeRegion, a.opts.profile)
		if err != nil {
			return nil, "", fmt.Errorf("aws session for %s: %w", a.opts.edgeRegion, err)
		}
		opts = append(opts, awsengine.WithProvider(a.opts.edgeRegion, edge))
	}
	return awsengine.New(ctx, defaults, opts...), region, nil
}

// certificateProvider selects the clients of the certificate's region.
func certificateProvider(certificateArn, region string) (provision.ResourceOption, error) {
	parsed, err := arn.Parse(certificateArn)
	if err != nil {
		return nil, fmt.Errorf("certificate %s: %w", certificateArn, err)
	}
	if parsed.Region == region {
		return nil, nil
	}
	return provision.Provider(parsed.Region), nil
}

func (a *app) run(ctx context.Context, dryRun bool) error {
	if a.opts.stack == "" {
		return errors.New("--stack is required")
	}
	settings, err := config.LoadDNSSettings()
	if err != nil {
		return err
	}
	cfg, err := targets.LoadConfig(a.opts.targetsFile)
	if err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("targets file %s not found", a.opts.targetsFile)
	}
	tgts := targets.ForSuffix(cfg, a.opts.stack)
	if len(tgts) == 0 {
		return fmt.Errorf("no targets for stack %q in %s", a.opts.stack, a.opts.targetsFile)
	}

	eng, region, err := a.engine(ctx, dryRun)
	if err != nil {
		return err
	}
	a.logger.Info("publishing targets",
		zap.String("stack", a.opts.stack), zap.Int("targets", len(tgts)),
		zap.String("region", region), zap.Bool("dryRun", dryRun))

	for _, t := range tgts {
		if _, err := dnsrecords.CreateAliasRecord(eng, dnsrecords.CreateAliasRecordInput{
			TargetDomain: t.TargetDomain,
			AlbURL:       t.AlbURL,
			Settings:     settings,
			Logger:       a.logger,
		}); err != nil {
			return fmt.Errorf("target %s: %w", t.TargetDomain, err)
		}

		if t.CertificateArn == "" {
			continue
		}
		provider, err := certificateProvider(t.CertificateArn, region)
		if err != nil {
			return err
		}
		dnsrecords.CreateCertValidation(eng, dnsrecords.CreateCertValidationInput{
			Cert:         eng.Certificate(t.CertificateArn, provider),
			TargetDomain: t.TargetDomain,
			HostedZone:   t.HostedZoneOr(settings.ParentDomain),
			Options:      []provision.ResourceOption{provider},
		})
	}

	waitErr := eng.Wait()

	title := "apply " + a.opts.stack
	if dryRun {
		title = "preview " + a.opts.stack
	}
	if err := report.Render(a.out, title, eng.Declarations()); err != nil {
		return errors.Join(waitErr, err)
	}
	return waitErr
}
