package awsengine

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
	domain_utils "github.com/trufnetwork/tznode-dns/lib/domain_utils"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

// RegisterRecord upserts the record once its zone and dependencies are ready.
// FQDN resolves after Route53 reports the change as INSYNC.
func (e *Engine) RegisterRecord(name string, args provision.RecordArgs, opts ...provision.ResourceOption) *provision.Record {
	options := provision.NewResourceOptions(opts...)
	rec := &provision.Record{
		Name:   name,
		Args:   args,
		ZoneID: deferred.Apply(args.Zone, func(z provision.Zone) (string, error) { return z.ID, nil }),
	}

	if err := e.Add(provision.Declaration{Kind: provision.KindRecord, Name: name, Options: options, Record: rec}); err != nil {
		rec.FQDN = fail[string](e, err)
		return rec
	}
	c, err := e.clients(options.Provider)
	if err != nil {
		rec.FQDN = fail[string](e, err)
		return rec
	}

	if e.dryRun {
		deferred.Apply(args.Zone, func(z provision.Zone) (struct{}, error) {
			e.logger.Info("would upsert record", recordFields(name, args, z)...)
			return struct{}{}, nil
		})
		rec.FQDN, _ = deferred.New[string]()
		return rec
	}

	rec.FQDN = deferred.Bind(e.dependencies(options.DependsOn), func(struct{}) *deferred.Output[string] {
		return deferred.Bind(args.Zone, func(z provision.Zone) *deferred.Output[string] {
			return spawn(e, func(ctx context.Context) (string, error) {
				e.logger.Info("upserting record", recordFields(name, args, z)...)
				return upsertRecord(ctx, c.Route53, z, args)
			})
		})
	})
	return rec
}

func recordFields(name string, args provision.RecordArgs, z provision.Zone) []zap.Field {
	return []zap.Field{
		zap.String("resource", name),
		zap.String("fqdn", domain_utils.QualifyName(args.Name, z.Name)),
		zap.String("type", args.Type),
		zap.String("zoneId", z.ID),
		zap.Strings("records", args.Records),
		zap.Int("aliases", len(args.Aliases)),
	}
}

func resourceRecordSet(fqdn string, args provision.RecordArgs) (*route53.ResourceRecordSet, error) {
	rrs := &route53.ResourceRecordSet{
		Name: aws.String(fqdn),
		Type: aws.String(args.Type),
	}
	if args.TTL > 0 {
		rrs.TTL = aws.Int64(int64(args.TTL))
	}
	if len(args.Records) > 0 {
		rrs.ResourceRecords = lo.Map(args.Records, func(v string, _ int) *route53.ResourceRecord {
			return &route53.ResourceRecord{Value: aws.String(v)}
		})
	}

	switch len(args.Aliases) {
	case 0:
	case 1:
		a := args.Aliases[0]
		rrs.AliasTarget = &route53.AliasTarget{
			DNSName:              aws.String(a.Name),
			HostedZoneId:         aws.String(a.ZoneID),
			EvaluateTargetHealth: aws.Bool(a.EvaluateTargetHealth),
		}
	default:
		return nil, fmt.Errorf("record %s: route53 accepts a single alias target, got %d", fqdn, len(args.Aliases))
	}
	return rrs, nil
}

func upsertRecord(ctx context.Context, api route53iface.Route53API, z provision.Zone, args provision.RecordArgs) (string, error) {
	fqdn := domain_utils.QualifyName(args.Name, z.Name)
	rrs, err := resourceRecordSet(fqdn, args)
	if err != nil {
		return "", err
	}

	out, err := api.ChangeResourceRecordSetsWithContext(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(z.ID),
		ChangeBatch: &route53.ChangeBatch{
			Comment: aws.String("tznode-dns"),
			Changes: []*route53.Change{{
				Action:            aws.String(route53.ChangeActionUpsert),
				ResourceRecordSet: rrs,
			}},
		},
	})
	if err != nil {
		return "", err
	}

	if err := api.WaitUntilResourceRecordSetsChangedWithContext(ctx, &route53.GetChangeInput{Id: out.ChangeInfo.Id}); err != nil {
		return "", err
	}
	return fqdn, nil
}
