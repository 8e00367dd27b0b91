package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultLoadBalancerZoneID is the hosted zone of the ghostnet/teztnets NLB.
	//
	// The hosted zone of an NLB can't be read from the k8s API that creates it
	// (see https://github.com/pulumi/pulumi-aws/issues/1353), so alias records use
	// this configured value instead of the real one. A general fix is to let
	// external-dns own these records; until then every load balancer behind these
	// aliases has to live in this zone.
	DefaultLoadBalancerZoneID = "ZLMOA37VPKANP"
	// DefaultParentDomain is the zone alias records are created in.
	DefaultParentDomain = "tznode.net"
)

// DNSEnvironmentVariables are the settings read from the environment.
type DNSEnvironmentVariables struct {
	LoadBalancerZoneID string `env:"TZNODE_LB_HOSTED_ZONE_ID" envDefault:"ZLMOA37VPKANP" validate:"required,alphanum"`
	ParentDomain       string `env:"TZNODE_PARENT_DOMAIN" envDefault:"tznode.net" validate:"required,fqdn"`
}

// DNSSettings are the values the DNS builders need besides their direct inputs.
type DNSSettings struct {
	LoadBalancerZoneID string
	ParentDomain       string
}

// DefaultDNSSettings returns the documented defaults.
func DefaultDNSSettings() DNSSettings {
	return DNSSettings{
		LoadBalancerZoneID: DefaultLoadBalancerZoneID,
		ParentDomain:       DefaultParentDomain,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validator returns the shared validator used for configuration structs.
func Validator() *validator.Validate {
	return validate
}

// LoadDNSSettings reads DNSEnvironmentVariables, falling back to the defaults.
func LoadDNSSettings() (DNSSettings, error) {
	vars, err := env.ParseAs[DNSEnvironmentVariables]()
	if err != nil {
		return DNSSettings{}, fmt.Errorf("parsing DNS environment variables: %w", err)
	}
	if err := validate.Struct(vars); err != nil {
		return DNSSettings{}, fmt.Errorf("invalid DNS environment variables: %w", err)
	}

	return DNSSettings{
		LoadBalancerZoneID: vars.LoadBalancerZoneID,
		ParentDomain:       vars.ParentDomain,
	}, nil
}
