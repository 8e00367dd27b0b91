// Package provision is the contract between the DNS builders and the
// provisioning engine that owns the declared resources.
//
// Builders only declare: they look zones up, register records and register
// certificate validations. Engines decide when (and whether) the deferred
// outputs of those declarations become known.
package provision

import (
	"github.com/trufnetwork/tznode-dns/lib/deferred"
)

// Zone is a resolved hosted zone.
type Zone struct {
	ID      string
	Name    string
	Private bool
}

// ZoneQuery selects a hosted zone by name.
type ZoneQuery struct {
	Name    string
	Private bool
}

// Alias points a record at another DNS name inside another hosted zone.
type Alias struct {
	Name                 string
	ZoneID               string
	EvaluateTargetHealth bool
}

// RecordArgs are the inputs of a DNS record declaration.
type RecordArgs struct {
	// Name is the record name, relative to the zone or fully qualified.
	Name string
	Zone *deferred.Output[Zone]
	Type string
	// TTL in seconds; zero leaves it unset (alias records).
	TTL     int
	Records []string
	Aliases []Alias
}

// Record is the handle of a declared DNS record.
type Record struct {
	Name   string
	Args   RecordArgs
	ZoneID *deferred.Output[string]
	FQDN   *deferred.Output[string]
}

// DomainValidationOption is what the certificate authority needs published in DNS for one domain.
type DomainValidationOption struct {
	DomainName          string
	ResourceRecordName  string
	ResourceRecordValue string
	ResourceRecordType  string
}

// Certificate is a certificate resource whose validation options are resolved lazily.
type Certificate interface {
	Arn() *deferred.Output[string]
	DomainValidationOptions() *deferred.Output[[]DomainValidationOption]
}

// CertificateValidationArgs are the inputs of a certificate validation declaration.
type CertificateValidationArgs struct {
	CertificateArn        *deferred.Output[string]
	ValidationRecordFqdns *deferred.Output[[]string]
}

// CertificateValidation is the handle of a declared certificate validation.
// CertificateArn resolves once the certificate is validated.
type CertificateValidation struct {
	Name           string
	Args           CertificateValidationArgs
	CertificateArn *deferred.Output[string]
}

type ZoneLookup interface {
	LookupZone(q ZoneQuery) *deferred.Output[Zone]
}

type RecordRegistrar interface {
	RegisterRecord(name string, args RecordArgs, opts ...ResourceOption) *Record
}

type CertificateValidator interface {
	RegisterCertificateValidation(name string, args CertificateValidationArgs, opts ...ResourceOption) *CertificateValidation
}

// Engine can look zones up and declare records.
type Engine interface {
	ZoneLookup
	RecordRegistrar
}

// ValidatingEngine can also declare certificate validations.
type ValidatingEngine interface {
	Engine
	CertificateValidator
}
