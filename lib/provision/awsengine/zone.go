package awsengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
	"go.uber.org/zap"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

const hostedZonePrefix = "/hostedzone/"

// LookupZone finds the hosted zone named q.Name with the requested visibility,
// using the default provider. Lookups also run in dry-run mode.
func (e *Engine) LookupZone(q provision.ZoneQuery) *deferred.Output[provision.Zone] {
	api := e.providers[""].Route53
	return spawn(e, func(ctx context.Context) (provision.Zone, error) {
		z, err := lookupZone(ctx, api, q)
		if err != nil {
			return provision.Zone{}, err
		}
		e.logger.Debug("resolved hosted zone", zap.String("name", z.Name), zap.String("id", z.ID), zap.Bool("private", z.Private))
		return z, nil
	})
}

func lookupZone(ctx context.Context, api route53iface.Route53API, q provision.ZoneQuery) (provision.Zone, error) {
	name := strings.ToLower(strings.TrimSuffix(q.Name, ".")) + "."
	notFound := fmt.Errorf("%w: %s (private=%t)", provision.ErrZoneNotFound, q.Name, q.Private)

	input := &route53.ListHostedZonesByNameInput{DNSName: aws.String(name)}
	for {
		out, err := api.ListHostedZonesByNameWithContext(ctx, input)
		if err != nil {
			return provision.Zone{}, err
		}

		// zones come back sorted by name, starting at DNSName
		for _, hz := range out.HostedZones {
			if strings.ToLower(aws.StringValue(hz.Name)) != name {
				return provision.Zone{}, notFound
			}
			private := hz.Config != nil && aws.BoolValue(hz.Config.PrivateZone)
			if private == q.Private {
				return provision.Zone{
					ID:      strings.TrimPrefix(aws.StringValue(hz.Id), hostedZonePrefix),
					Name:    strings.TrimSuffix(name, "."),
					Private: private,
				}, nil
			}
		}

		if !aws.BoolValue(out.IsTruncated) {
			return provision.Zone{}, notFound
		}
		input = &route53.ListHostedZonesByNameInput{
			DNSName:      out.NextDNSName,
			HostedZoneId: out.NextHostedZoneId,
		}
	}
}
