package domain_utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomain_TwoLabels(t *testing.T) {
	got, err := ParseDomain("awesome-website.com")
	require.NoError(t, err)
	assert.Equal(t, DomainParts{
		FullURL:      "awesome-website.com",
		Subdomain:    "",
		ParentDomain: "awesome-website.com",
	}, got)
}

func TestParseDomain_Subdomain(t *testing.T) {
	got, err := ParseDomain("api.awesome-website.com")
	require.NoError(t, err)
	assert.Equal(t, DomainParts{
		FullURL:      "api.awesome-website.com",
		Subdomain:    "api",
		ParentDomain: "awesome-website.com.",
	}, got)
}

func TestParseDomain_DeepSubdomain(t *testing.T) {
	got, err := ParseDomain("a.b.c.example.org")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Subdomain)
	assert.Equal(t, "b.c.example.org.", got.ParentDomain)
	assert.Equal(t, "a.b.c.example.org", got.FullURL)
}

func TestParseDomain_NoTLD(t *testing.T) {
	for _, input := range []string{"localhost", "", "tznode"} {
		_, err := ParseDomain(input)
		require.Error(t, err, "input %q", input)

		var invalid *InvalidDomainError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, input, invalid.Domain)
		assert.ErrorContains(t, err, "No TLD found on")
	}
}

// The parent carries a trailing dot exactly when the input has more than two labels.
func TestParseDomain_TrailingDotProperty(t *testing.T) {
	for _, input := range []string{
		"example.com",
		"www.example.com",
		"a.b.example.com",
		"x.y.z.w.example.net",
		"tznode.net",
	} {
		got, err := ParseDomain(input)
		require.NoError(t, err)

		moreThanTwo := len(strings.Split(input, ".")) > 2
		assert.Equal(t, moreThanTwo, strings.HasSuffix(got.ParentDomain, "."), "input %q", input)
	}
}

func TestParseDomain_Idempotent(t *testing.T) {
	first, err := ParseDomain("rpc.ghostnet.tznode.net")
	require.NoError(t, err)
	second, err := ParseDomain("rpc.ghostnet.tznode.net")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQualifyName(t *testing.T) {
	for _, tc := range []struct {
		name, zone, want string
	}{
		{"api", "tznode.net", "api.tznode.net"},
		{"", "tznode.net.", "tznode.net"},
		{"api.tznode.net", "tznode.net", "api.tznode.net"},
		{"_abc.api.tznode.net.", "tznode.net", "_abc.api.tznode.net"},
		{"tznode.net", "tznode.net", "tznode.net"},
		{"api", "", "api"},
	} {
		assert.Equal(t, tc.want, QualifyName(tc.name, tc.zone), "name=%q zone=%q", tc.name, tc.zone)
	}
}
