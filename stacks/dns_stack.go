package stacks

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/trufnetwork/tznode-dns/config"
	"github.com/trufnetwork/tznode-dns/config/domain"
	"github.com/trufnetwork/tznode-dns/config/targets"
	"github.com/trufnetwork/tznode-dns/lib/cdklogger"
	"github.com/trufnetwork/tznode-dns/lib/dnsrecords"
	"github.com/trufnetwork/tznode-dns/lib/provision"
	"github.com/trufnetwork/tznode-dns/lib/provision/cdkengine"
)

type DnsStackProps struct {
	awscdk.StackProps
	Settings config.DNSSettings
	Targets  []targets.Target
	// EdgeCertificate issues every certificate in us-east-1.
	EdgeCertificate bool
	Logger          *zap.Logger
}

// DnsStack declares, for every target, the alias record to its load balancer
// and, unless the target opts out, a DNS-validated certificate.
func DnsStack(scope constructs.Construct, id string, props *DnsStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)

	if len(props.Targets) == 0 {
		cdklogger.LogWarning(stack, "", "no targets configured for stack suffix %q", config.StackSuffix(stack))
		return stack
	}

	eng := cdkengine.New(stack)
	for _, t := range props.Targets {
		rec, err := dnsrecords.CreateAliasRecord(eng, dnsrecords.CreateAliasRecordInput{
			TargetDomain: t.TargetDomain,
			AlbURL:       t.AlbURL,
			Settings:     props.Settings,
			Logger:       props.Logger,
		})
		if err != nil {
			panic(fmt.Errorf("target %s: %w", t.TargetDomain, err))
		}
		if _, _, err := rec.FQDN.Peek(); err != nil {
			panic(fmt.Errorf("target %s: %w", t.TargetDomain, err))
		}

		if !t.RequiresCertificateOrDefault() {
			continue
		}
		spec := domain.SpecFor(t, props.Settings.ParentDomain)
		domain.NewHostedDomain(stack, "Domain-"+t.TargetDomain, &domain.HostedDomainProps{
			Spec:            spec,
			Zone:            eng.HostedZone(provision.ZoneQuery{Name: spec.ZoneName}),
			EdgeCertificate: props.EdgeCertificate,
		})
	}

	return stack
}
