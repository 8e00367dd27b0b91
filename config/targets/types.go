package targets

// Target is one deployment target: a public name aliased to a load balancer,
// optionally with a certificate validated in HostedZone.
type Target struct {
	// TargetDomain is the public FQDN, e.g. "rpc.ghostnet.tznode.net".
	TargetDomain string `yaml:"targetDomain" toml:"target_domain" validate:"required,fqdn"`
	// AlbURL is the DNS name of the load balancer serving TargetDomain.
	AlbURL string `yaml:"albUrl" toml:"alb_url" validate:"required,fqdn"`
	// HostedZone is the zone validation records go to. Defaults to the parent domain setting.
	HostedZone string `yaml:"hostedZone,omitempty" toml:"hosted_zone" validate:"omitempty,fqdn"`
	// CertificateArn names an existing ACM certificate to validate (CLI only).
	CertificateArn string `yaml:"certificateArn,omitempty" toml:"certificate_arn" validate:"omitempty,startswith=arn:"`
	// AdditionalNames are extra SANs for the certificate issued by the CDK stack.
	AdditionalNames []string `yaml:"additionalNames,omitempty" toml:"additional_names" validate:"dive,fqdn"`
	// RequiresCertificate controls whether the CDK stack issues a certificate. Defaults to true.
	// Use pointer to distinguish between explicitly false and not set.
	RequiresCertificate *bool `yaml:"requiresCertificate,omitempty" toml:"requires_certificate"`
}

// RequiresCertificateOrDefault returns RequiresCertificate, defaulting to true if not set.
func (t *Target) RequiresCertificateOrDefault() bool {
	if t.RequiresCertificate == nil {
		return true
	}
	return *t.RequiresCertificate
}

// HostedZoneOr returns HostedZone, or fallback when it is empty.
func (t *Target) HostedZoneOr(fallback string) string {
	if t.HostedZone == "" {
		return fallback
	}
	return t.HostedZone
}

// StackTargets holds the targets of one stack suffix.
type StackTargets struct {
	Targets []Target `yaml:"targets" toml:"targets" validate:"dive"`
}

// TargetsConfig is the root structure for the targets file.
// It maps stack suffixes (e.g., "ghostnet", "mainnet") to their targets.
type TargetsConfig map[string]StackTargets
