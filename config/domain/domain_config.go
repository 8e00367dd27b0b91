package domain

import (
	"fmt"
	"strings"

	jsii "github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/trufnetwork/tznode-dns/config/targets"
)

// Spec names the certificate of one target and the zone it is validated in.
type Spec struct {
	TargetDomain    string
	ZoneName        string
	AdditionalNames []string
}

// SpecFor builds the certificate spec of t. Targets without a hosted zone are
// validated in parentDomain.
func SpecFor(t targets.Target, parentDomain string) Spec {
	return Spec{
		TargetDomain:    t.TargetDomain,
		ZoneName:        t.HostedZoneOr(parentDomain),
		AdditionalNames: t.AdditionalNames,
	}
}

func trimDot(s string) string {
	return strings.ToLower(strings.TrimSuffix(s, "."))
}

// FQDN returns the certificate's primary domain name.
func (s Spec) FQDN() *string {
	return jsii.String(trimDot(s.TargetDomain))
}

// SubjectAlternativeNames returns the additional names without duplicates or the
// primary name itself; nil when there are none.
func (s Spec) SubjectAlternativeNames() *[]*string {
	fqdn := *s.FQDN()
	names := lo.Uniq(lo.FilterMap(s.AdditionalNames, func(n string, _ int) (string, bool) {
		n = trimDot(n)
		return n, n != "" && n != fqdn
	}))
	if len(names) == 0 {
		return nil
	}
	return jsii.Strings(names...)
}

// Validate checks that every certificate name lives in ZoneName, which DNS
// validation against that zone requires.
func (s Spec) Validate() error {
	zone := trimDot(s.ZoneName)
	if zone == "" {
		return fmt.Errorf("certificate for %s has no hosted zone", s.TargetDomain)
	}
	names := append([]string{s.TargetDomain}, s.AdditionalNames...)
	for _, n := range names {
		n = trimDot(n)
		if n != zone && !strings.HasSuffix(n, "."+zone) {
			return fmt.Errorf("certificate name %s is outside hosted zone %s", n, zone)
		}
	}
	return nil
}
