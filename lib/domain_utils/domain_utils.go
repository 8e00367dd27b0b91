package domain_utils

import (
	"fmt"
	"strings"
)

// DomainParts is the decomposition of a fully-qualified domain name.
type DomainParts struct {
	FullURL      string
	Subdomain    string
	ParentDomain string
}

// InvalidDomainError is returned when a domain has no top-level domain label.
type InvalidDomainError struct {
	Domain string
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("No TLD found on %s", e.Domain)
}

// ParseDomain splits domain into its first label and the parent domain.
//
// For a two-label domain (e.g. "awesome-website.com") the subdomain is empty
// and the parent is the domain itself. Otherwise the parent is returned in
// canonical zone form, with a trailing ".".
func ParseDomain(domain string) (DomainParts, error) {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return DomainParts{}, &InvalidDomainError{Domain: domain}
	}

	// No subdomain, e.g. awesome-website.com.
	if len(parts) == 2 {
		return DomainParts{FullURL: domain, Subdomain: "", ParentDomain: domain}, nil
	}

	return DomainParts{
		FullURL:      domain,
		Subdomain:    parts[0],
		ParentDomain: strings.Join(parts[1:], ".") + ".",
	}, nil
}

// QualifyName returns the fully-qualified name of a record called name inside zone.
// An empty name refers to the zone apex. Names that already end with the zone are kept.
// The result never carries a trailing dot.
func QualifyName(name, zone string) string {
	name = strings.TrimSuffix(name, ".")
	zone = strings.TrimSuffix(zone, ".")

	if name == "" {
		return zone
	}
	if zone == "" || name == zone || strings.HasSuffix(name, "."+zone) {
		return name
	}
	return name + "." + zone
}
