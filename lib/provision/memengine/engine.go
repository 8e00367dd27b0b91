// Package memengine is an in-memory provisioning engine.
//
// Zones and certificates are seeded by the caller. In apply mode every
// declaration resolves as soon as its inputs do. In preview mode computed
// outputs (certificate validation options, record FQDNs, validation results)
// stay unknown, the way a dry run of a declarative engine reports them.
package memengine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
	domain_utils "github.com/trufnetwork/tznode-dns/lib/domain_utils"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

type Engine struct {
	provision.Ledger

	preview bool

	mu    sync.Mutex
	zones map[provision.ZoneQuery]provision.Zone
	certs map[string][]provision.DomainValidationOption
}

var _ provision.ValidatingEngine = (*Engine)(nil)

type Option func(*Engine)

// WithPreview leaves computed outputs unknown.
func WithPreview() Option {
	return func(e *Engine) { e.preview = true }
}

// WithZone seeds a hosted zone.
func WithZone(z provision.Zone) Option {
	return func(e *Engine) {
		e.zones[provision.ZoneQuery{Name: canonical(z.Name), Private: z.Private}] = z
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		zones: map[provision.ZoneQuery]provision.Zone{},
		certs: map[string][]provision.DomainValidationOption{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func canonical(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

// Preview reports whether the engine runs in preview mode.
func (e *Engine) Preview() bool {
	return e.preview
}

func (e *Engine) LookupZone(q provision.ZoneQuery) *deferred.Output[provision.Zone] {
	e.mu.Lock()
	z, ok := e.zones[provision.ZoneQuery{Name: canonical(q.Name), Private: q.Private}]
	e.mu.Unlock()

	if !ok {
		return deferred.Failed[provision.Zone](fmt.Errorf("%w: %s (private=%t)", provision.ErrZoneNotFound, q.Name, q.Private))
	}
	return deferred.Known(z)
}

type certificate struct {
	arn  *deferred.Output[string]
	dvos *deferred.Output[[]provision.DomainValidationOption]
}

func (c certificate) Arn() *deferred.Output[string] { return c.arn }

func (c certificate) DomainValidationOptions() *deferred.Output[[]provision.DomainValidationOption] {
	return c.dvos
}

// NewCertificate seeds a certificate. In preview mode its validation options never resolve.
func (e *Engine) NewCertificate(arn string, dvos []provision.DomainValidationOption) provision.Certificate {
	e.mu.Lock()
	e.certs[arn] = dvos
	e.mu.Unlock()

	if e.preview {
		pending, _ := deferred.New[[]provision.DomainValidationOption]()
		return certificate{arn: deferred.Known(arn), dvos: pending}
	}
	return certificate{arn: deferred.Known(arn), dvos: deferred.Known(dvos)}
}

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

	if e.preview {
		rec.FQDN, _ = deferred.New[string]()
		return rec
	}

	ready := e.Dependencies(options.DependsOn)
	rec.FQDN = deferred.Bind(ready, func(struct{}) *deferred.Output[string] {
		return deferred.Apply(args.Zone, func(z provision.Zone) (string, error) {
			return domain_utils.QualifyName(args.Name, z.Name), nil
		})
	})
	return rec
}

func (e *Engine) RegisterCertificateValidation(name string, args provision.CertificateValidationArgs, opts ...provision.ResourceOption) *provision.CertificateValidation {
	options := provision.NewResourceOptions(opts...)

	v := &provision.CertificateValidation{Name: name, Args: args}
	if err := e.Add(provision.Declaration{Kind: provision.KindCertificateValidation, Name: name, Options: options, Validation: v}); err != nil {
		v.CertificateArn = deferred.Failed[string](err)
		return v
	}

	if e.preview {
		v.CertificateArn, _ = deferred.New[string]()
		return v
	}

	inputs := deferred.Bind(e.Dependencies(options.DependsOn), func(struct{}) *deferred.Output[[]string] {
		return args.ValidationRecordFqdns
	})
	v.CertificateArn = deferred.Bind(inputs, func(fqdns []string) *deferred.Output[string] {
		return deferred.Apply(args.CertificateArn, func(arn string) (string, error) {
			return arn, e.checkCoverage(arn, fqdns)
		})
	})
	return v
}

// checkCoverage fails when a validation option of arn has no record among fqdns.
func (e *Engine) checkCoverage(arn string, fqdns []string) error {
	e.mu.Lock()
	dvos, ok := e.certs[arn]
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("certificate %s is not known to this engine", arn)
	}

	published := lo.SliceToMap(fqdns, func(f string) (string, struct{}) { return canonical(f), struct{}{} })
	for _, dvo := range dvos {
		if _, ok := published[canonical(dvo.ResourceRecordName)]; !ok {
			return fmt.Errorf("%w %s (%s)", provision.ErrValidationRecordMissing, dvo.DomainName, dvo.ResourceRecordName)
		}
	}
	return nil
}
