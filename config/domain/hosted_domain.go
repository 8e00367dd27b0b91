package domain

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	jsii "github.com/aws/jsii-runtime-go"

	"github.com/trufnetwork/tznode-dns/lib/cdklogger"
)

// HostedDomainProps holds inputs for creating a HostedDomain construct.
type HostedDomainProps struct {
	Spec Spec
	// Zone is the validation zone. When nil it is looked up by Spec.ZoneName.
	Zone            awsroute53.IHostedZone
	EdgeCertificate bool // if true, issues the certificate in us-east-1
}

// HostedDomain provisions an ACM certificate for a target domain, validated
// through DNS records CloudFormation adds to the hosted zone.
type HostedDomain struct {
	constructs.Construct
	Zone       awsroute53.IHostedZone
	Cert       awscertificatemanager.Certificate
	FQDN       string
	DomainName *string
}

// NewHostedDomain panics when the spec names a domain outside its zone.
func NewHostedDomain(scope constructs.Construct, id string, props *HostedDomainProps) *HostedDomain {
	if err := props.Spec.Validate(); err != nil {
		panic(err)
	}

	hdConstruct := constructs.NewConstruct(scope, jsii.String(id))
	hd := &HostedDomain{Construct: hdConstruct}

	hd.FQDN = *props.Spec.FQDN()
	hd.DomainName = jsii.String(hd.FQDN)

	hd.Zone = props.Zone
	if hd.Zone == nil {
		hd.Zone = awsroute53.HostedZone_FromLookup(hdConstruct, jsii.String("Zone"), &awsroute53.HostedZoneProviderProps{
			DomainName: jsii.String(props.Spec.ZoneName),
		})
	}

	cdklogger.LogInfo(hdConstruct, "", "Setting up hosted domain. FQDN: %s, Zone: %s, EdgeCertificate: %t", hd.FQDN, *hd.Zone.ZoneName(), props.EdgeCertificate)

	// CloudFront only accepts certificates from us-east-1
	certScope := hdConstruct
	if props.EdgeCertificate {
		edgeStack := awscdk.NewStack(scope, jsii.String(id+"-EdgeCert"), &awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: awscdk.Stack_Of(scope).Account(),
				Region:  jsii.String("us-east-1"),
			},
			CrossRegionReferences: jsii.Bool(true),
		})
		certScope = edgeStack
	}

	hd.Cert = awscertificatemanager.NewCertificate(certScope, jsii.String("Cert"), &awscertificatemanager.CertificateProps{
		DomainName:              hd.DomainName,
		SubjectAlternativeNames: props.Spec.SubjectAlternativeNames(),
		Validation:              awscertificatemanager.CertificateValidation_FromDns(hd.Zone),
	})

	awscdk.NewCfnOutput(hd.Construct, jsii.String("Domain"), &awscdk.CfnOutputProps{Value: hd.DomainName})
	awscdk.NewCfnOutput(hd.Construct, jsii.String("HostedZoneId"), &awscdk.CfnOutputProps{Value: hd.Zone.HostedZoneId()})
	awscdk.NewCfnOutput(hd.Construct, jsii.String("CertificateArn"), &awscdk.CfnOutputProps{Value: hd.Cert.CertificateArn()})

	return hd
}
