package dnsrecords_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufnetwork/tznode-dns/lib/dnsrecords"
	"github.com/trufnetwork/tznode-dns/lib/provision"
	"github.com/trufnetwork/tznode-dns/lib/provision/memengine"
)

const certArn = "arn:aws:acm:us-east-1:123456789012:certificate/0f6c0b5e"

var validationOptions = []provision.DomainValidationOption{
	{
		DomainName:          "rpc.ghostnet.tznode.net",
		ResourceRecordName:  "_a1.rpc.ghostnet.tznode.net.",
		ResourceRecordValue: "_b1.acm-validations.aws.",
		ResourceRecordType:  "CNAME",
	},
	{
		DomainName:          "ghostnet.tznode.net",
		ResourceRecordName:  "_a2.ghostnet.tznode.net.",
		ResourceRecordValue: "_b2.acm-validations.aws.",
		ResourceRecordType:  "CNAME",
	},
	{
		DomainName:          "faucet.ghostnet.tznode.net",
		ResourceRecordName:  "_a3.faucet.ghostnet.tznode.net.",
		ResourceRecordValue: "_b3.acm-validations.aws.",
		ResourceRecordType:  "CNAME",
	},
}

func TestCreateCertValidation_OneRecordPerOption(t *testing.T) {
	eng := memengine.New(memengine.WithZone(tznodeZone))
	cert := eng.NewCertificate(certArn, validationOptions)

	out := dnsrecords.CreateCertValidation(eng, dnsrecords.CreateCertValidationInput{
		Cert:         cert,
		TargetDomain: "rpc.ghostnet.tznode.net",
		HostedZone:   "tznode.net",
	})

	records, err := out.CertRecords.Await(context.Background())
	require.NoError(t, err)
	require.Len(t, records, len(validationOptions))

	for i, rec := range records {
		dvo := validationOptions[i]
		assert.Equal(t, dvo.DomainName+"-certValidationRecord", rec.Name)
		assert.Equal(t, dvo.ResourceRecordName, rec.Args.Name)
		assert.Equal(t, []string{dvo.ResourceRecordValue}, rec.Args.Records)
		assert.Equal(t, dvo.ResourceRecordType, rec.Args.Type)
		assert.Equal(t, 300, rec.Args.TTL)

		zoneID, err := rec.ZoneID.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Z0TZNODE", zoneID)
	}

	assert.Equal(t, "rpc.ghostnet.tznode.net-certValidation", out.CertValidation.Name)
	fqdns, err := out.CertValidation.Args.ValidationRecordFqdns.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"_a1.rpc.ghostnet.tznode.net",
		"_a2.ghostnet.tznode.net",
		"_a3.faucet.ghostnet.tznode.net",
	}, fqdns)
	assert.Len(t, fqdns, len(records))

	arn, err := out.CertValidation.CertificateArn.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, certArn, arn)

	// records are declared before the validation that depends on them
	decls := eng.Declarations()
	require.Len(t, decls, len(validationOptions)+1)
	assert.Equal(t, provision.KindCertificateValidation, decls[len(decls)-1].Kind)
}

func TestCreateCertValidation_NoOptions(t *testing.T) {
	eng := memengine.New(memengine.WithZone(tznodeZone))

	out := dnsrecords.CreateCertValidation(eng, dnsrecords.CreateCertValidationInput{
		Cert:         eng.NewCertificate(certArn, nil),
		TargetDomain: "rpc.ghostnet.tznode.net",
		HostedZone:   "tznode.net",
	})

	records, err := out.CertRecords.Await(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	fqdns, err := out.CertValidation.Args.ValidationRecordFqdns.Await(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fqdns)
}

func TestCreateCertValidation_Preview(t *testing.T) {
	eng := memengine.New(memengine.WithPreview(), memengine.WithZone(tznodeZone))

	out := dnsrecords.CreateCertValidation(eng, dnsrecords.CreateCertValidationInput{
		Cert:         eng.NewCertificate(certArn, validationOptions),
		TargetDomain: "rpc.ghostnet.tznode.net",
		HostedZone:   "tznode.net",
	})

	_, known, _ := out.CertRecords.Peek()
	assert.False(t, known, "records must stay unknown in preview")
	_, known, _ = out.CertValidation.Args.ValidationRecordFqdns.Peek()
	assert.False(t, known)
	_, known, _ = out.CertValidation.CertificateArn.Peek()
	assert.False(t, known)

	// only the validation itself is declared
	decls := eng.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, provision.KindCertificateValidation, decls[0].Kind)
}

func TestCreateCertValidation_ZoneLookupErrorPropagates(t *testing.T) {
	eng := memengine.New()

	out := dnsrecords.CreateCertValidation(eng, dnsrecords.CreateCertValidationInput{
		Cert:         eng.NewCertificate(certArn, validationOptions),
		TargetDomain: "rpc.ghostnet.tznode.net",
		HostedZone:   "tznode.net",
	})

	_, err := out.CertValidation.CertificateArn.Await(context.Background())
	assert.ErrorIs(t, err, provision.ErrZoneNotFound)
}

func TestCreateCertValidation_PrivateZoneIgnored(t *testing.T) {
	eng := memengine.New(memengine.WithZone(provision.Zone{ID: "ZPRIV", Name: "tznode.net", Private: true}))

	out := dnsrecords.CreateCertValidation(eng, dnsrecords.CreateCertValidationInput{
		Cert:         eng.NewCertificate(certArn, validationOptions),
		TargetDomain: "rpc.ghostnet.tznode.net",
		HostedZone:   "tznode.net",
	})

	_, err := out.CertValidation.CertificateArn.Await(context.Background())
	assert.ErrorIs(t, err, provision.ErrZoneNotFound)
}

func TestCreateCertValidation_ForwardsOptions(t *testing.T) {
	eng := memengine.New(memengine.WithZone(tznodeZone))

	dnsrecords.CreateCertValidation(eng, dnsrecords.CreateCertValidationInput{
		Cert:         eng.NewCertificate(certArn, validationOptions[:1]),
		TargetDomain: "rpc.ghostnet.tznode.net",
		HostedZone:   "tznode.net",
		Options:      []provision.ResourceOption{provision.Provider("edge"), provision.Parent("ghostnet")},
	})

	for _, d := range eng.Declarations() {
		assert.Equal(t, "edge", d.Options.Provider, d.Name)
		assert.Equal(t, "ghostnet", d.Options.Parent, d.Name)
	}
}
