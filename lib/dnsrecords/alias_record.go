package dnsrecords

import (
	"go.uber.org/zap"

	"github.com/trufnetwork/tznode-dns/config"
	domain_utils "github.com/trufnetwork/tznode-dns/lib/domain_utils"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

type CreateAliasRecordInput struct {
	// TargetDomain is the public name, e.g. "rpc.ghostnet.tznode.net".
	TargetDomain string
	// AlbURL is the DNS name of the load balancer.
	AlbURL   string
	Settings config.DNSSettings
	// Logger defaults to zap.L().
	Logger *zap.Logger
}

// CreateAliasRecord declares an A alias record named after the target's subdomain,
// inside the Settings.ParentDomain zone, pointing at the load balancer.
//
// The alias zone is Settings.LoadBalancerZoneID, not the load balancer's own
// hosted zone: that one cannot be read from the API that creates the load
// balancer. See config.DefaultLoadBalancerZoneID.
func CreateAliasRecord(eng provision.Engine, input CreateAliasRecordInput) (*provision.Record, error) {
	logger := input.Logger
	if logger == nil {
		logger = zap.L()
	}

	target, err := domain_utils.ParseDomain(input.TargetDomain)
	if err != nil {
		return nil, err
	}
	alb, err := domain_utils.ParseDomain(input.AlbURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("albUrlObj",
		zap.String("fullUrl", alb.FullURL),
		zap.String("subdomain", alb.Subdomain),
		zap.String("parentDomain", alb.ParentDomain),
	)

	zone := eng.LookupZone(provision.ZoneQuery{Name: input.Settings.ParentDomain})

	return eng.RegisterRecord(input.TargetDomain, provision.RecordArgs{
		Name: target.Subdomain,
		Zone: zone,
		Type: "A",
		Aliases: []provision.Alias{
			{
				Name:                 alb.FullURL,
				ZoneID:               input.Settings.LoadBalancerZoneID,
				EvaluateTargetHealth: false,
			},
		},
	}), nil
}
