package dnsrecords

import (
	"github.com/samber/lo"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

// ValidationRecordTTL is the TTL, in seconds, of certificate validation records.
const ValidationRecordTTL = 300

type CreateCertValidationInput struct {
	Cert         provision.Certificate
	TargetDomain string
	// HostedZone is the public zone the validation records are published in.
	HostedZone string
	// Options are forwarded to every declaration.
	Options []provision.ResourceOption
}

type CreateCertValidationOutput struct {
	CertRecords    *deferred.Output[[]*provision.Record]
	CertValidation *provision.CertificateValidation
}

// CreateCertValidation declares one DNS record per domain validation option of
// Cert and a certificate validation that waits on all of them.
//
// The records are declared only once the certificate's validation options are
// known, so a preview shows neither them nor the final validation inputs.
func CreateCertValidation(eng provision.ValidatingEngine, input CreateCertValidationInput) CreateCertValidationOutput {
	zone := eng.LookupZone(provision.ZoneQuery{Name: input.HostedZone, Private: false})

	certRecords := deferred.Apply(input.Cert.DomainValidationOptions(),
		func(options []provision.DomainValidationOption) ([]*provision.Record, error) {
			return lo.Map(options, func(o provision.DomainValidationOption, _ int) *provision.Record {
				return eng.RegisterRecord(o.DomainName+"-certValidationRecord", provision.RecordArgs{
					Name:    o.ResourceRecordName,
					Zone:    zone,
					Type:    o.ResourceRecordType,
					TTL:     ValidationRecordTTL,
					Records: []string{o.ResourceRecordValue},
				}, input.Options...)
			}), nil
		})

	fqdns := deferred.Bind(certRecords, func(records []*provision.Record) *deferred.Output[[]string] {
		return deferred.All(lo.Map(records, func(r *provision.Record, _ int) *deferred.Output[string] {
			return r.FQDN
		})...)
	})

	certValidation := eng.RegisterCertificateValidation(input.TargetDomain+"-certValidation", provision.CertificateValidationArgs{
		CertificateArn:        input.Cert.Arn(),
		ValidationRecordFqdns: fqdns,
	}, input.Options...)

	return CreateCertValidationOutput{
		CertRecords:    certRecords,
		CertValidation: certValidation,
	}
}
