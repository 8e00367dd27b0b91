// Package cdkengine synthesizes DNS declarations into a CDK construct tree.
//
// Zones are resolved with HostedZone_FromLookup, so the stack needs an explicit
// account and region. Records become AWS::Route53::RecordSet resources; their FQDN
// output is the record set's Ref token. Certificates are validated by CDK
// itself (see config/domain), so this engine is not a ValidatingEngine.
package cdkengine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/trufnetwork/tznode-dns/lib/cdklogger"
	"github.com/trufnetwork/tznode-dns/lib/deferred"
	domain_utils "github.com/trufnetwork/tznode-dns/lib/domain_utils"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

type Engine struct {
	provision.Ledger

	scope      constructs.Construct
	zones      map[provision.ZoneQuery]awsroute53.IHostedZone
	constructs map[string]constructs.Construct
}

var _ provision.Engine = (*Engine)(nil)

// New declares every resource under scope, usually a stack.
func New(scope constructs.Construct) *Engine {
	return &Engine{
		scope:      scope,
		zones:      map[provision.ZoneQuery]awsroute53.IHostedZone{},
		constructs: map[string]constructs.Construct{},
	}
}

func canonical(q provision.ZoneQuery) provision.ZoneQuery {
	return provision.ZoneQuery{Name: strings.ToLower(strings.TrimSuffix(q.Name, ".")), Private: q.Private}
}

// HostedZone returns the looked-up zone for q. Repeated queries share one lookup.
func (e *Engine) HostedZone(q provision.ZoneQuery) awsroute53.IHostedZone {
	key := canonical(q)
	if hz, ok := e.zones[key]; ok {
		return hz
	}

	id := "Zone-" + key.Name
	if key.Private {
		id += "-private"
	}
	hz := awsroute53.HostedZone_FromLookup(e.scope, jsii.String(id), &awsroute53.HostedZoneProviderProps{
		DomainName:  jsii.String(key.Name),
		PrivateZone: jsii.Bool(key.Private),
	})
	e.zones[key] = hz
	return hz
}

func (e *Engine) LookupZone(q provision.ZoneQuery) *deferred.Output[provision.Zone] {
	hz := e.HostedZone(q)
	return deferred.Known(provision.Zone{
		ID:      *hz.HostedZoneId(),
		Name:    strings.TrimSuffix(*hz.ZoneName(), "."),
		Private: q.Private,
	})
}

// RegisterRecord adds a CfnRecordSet once the zone is known. With CDK lookups the
// zone always is, so the record is part of the tree when RegisterRecord returns.
func (e *Engine) RegisterRecord(name string, args provision.RecordArgs, opts ...provision.ResourceOption) *provision.Record {
	options := provision.NewResourceOptions(opts...)
	rec := &provision.Record{
		Name:   name,
		Args:   args,
		ZoneID: deferred.Apply(args.Zone, func(z provision.Zone) (string, error) { return z.ID, nil }),
	}

	if err := e.Add(provision.Declaration{Kind: provision.KindRecord, Name: name, Options: options, Record: rec}); err != nil {
		rec.FQDN = deferred.Failed[string](err)
		return rec
	}

	rec.FQDN = deferred.Bind(args.Zone, func(z provision.Zone) *deferred.Output[string] {
		rs, err := e.recordSet(name, args, z, options)
		if err != nil {
			return deferred.Failed[string](err)
		}
		return deferred.Known(*rs.Ref())
	})
	return rec
}

func (e *Engine) recordSet(name string, args provision.RecordArgs, z provision.Zone, options provision.ResourceOptions) (awsroute53.CfnRecordSet, error) {
	scope := e.scope
	if options.Parent != "" {
		parent, ok := e.constructs[options.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: parent %q", provision.ErrUnknownDependency, options.Parent)
		}
		scope = parent
	}

	deps := make([]constructs.Construct, 0, len(options.DependsOn))
	for _, dep := range options.DependsOn {
		c, ok := e.constructs[dep]
		if !ok {
			return nil, fmt.Errorf("%w: %q", provision.ErrUnknownDependency, dep)
		}
		deps = append(deps, c)
	}

	if len(args.Aliases) > 1 {
		return nil, fmt.Errorf("record %s: route53 accepts a single alias target, got %d", name, len(args.Aliases))
	}

	fqdn := domain_utils.QualifyName(args.Name, z.Name)
	props := &awsroute53.CfnRecordSetProps{
		Name:         jsii.String(fqdn),
		Type:         jsii.String(args.Type),
		HostedZoneId: jsii.String(z.ID),
	}
	if args.TTL > 0 {
		props.Ttl = jsii.String(strconv.Itoa(args.TTL))
	}
	if len(args.Records) > 0 {
		props.ResourceRecords = jsii.Strings(args.Records...)
	}
	if len(args.Aliases) == 1 {
		a := args.Aliases[0]
		props.AliasTarget = &awsroute53.CfnRecordSet_AliasTargetProperty{
			DnsName:              jsii.String(a.Name),
			HostedZoneId:         jsii.String(a.ZoneID),
			EvaluateTargetHealth: jsii.Bool(a.EvaluateTargetHealth),
		}
	}

	rs := awsroute53.NewCfnRecordSet(scope, jsii.String(name), props)
	for _, dep := range deps {
		rs.Node().AddDependency(dep)
	}
	e.constructs[name] = rs

	if options.Provider != "" {
		cdklogger.LogWarning(rs, name, "provider %q ignored, the record is created in the stack's account", options.Provider)
	}
	targets := args.Records
	if len(args.Aliases) == 1 {
		targets = lo.Map(args.Aliases, func(a provision.Alias, _ int) string { return "alias " + a.Name })
	}
	cdklogger.LogInfo(rs, name, "%s record %s in zone %s -> %s", args.Type, fqdn, z.Name, strings.Join(targets, ", "))
	return rs, nil
}
