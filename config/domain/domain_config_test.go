package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trufnetwork/tznode-dns/config/targets"
)

func TestSpecFor_ZoneFallback(t *testing.T) {
	got := SpecFor(targets.Target{TargetDomain: "rpc.ghostnet.tznode.net"}, "tznode.net")
	assert.Equal(t, "tznode.net", got.ZoneName)

	got = SpecFor(targets.Target{TargetDomain: "rpc.teztnets.com", HostedZone: "teztnets.com"}, "tznode.net")
	assert.Equal(t, "teztnets.com", got.ZoneName)
}

func TestSubjectAlternativeNames(t *testing.T) {
	s := Spec{
		TargetDomain:    "rpc.ghostnet.tznode.net.",
		AdditionalNames: []string{"RPC.ghostnet.tznode.net", "faucet.ghostnet.tznode.net", "faucet.ghostnet.tznode.net."},
	}
	assert.Equal(t, "rpc.ghostnet.tznode.net", *s.FQDN())

	sans := s.SubjectAlternativeNames()
	if assert.NotNil(t, sans) {
		assert.Len(t, *sans, 1)
		assert.Equal(t, "faucet.ghostnet.tznode.net", *(*sans)[0])
	}

	assert.Nil(t, Spec{TargetDomain: "rpc.tznode.net"}.SubjectAlternativeNames())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Spec{TargetDomain: "rpc.ghostnet.tznode.net", ZoneName: "tznode.net."}.Validate())
	assert.NoError(t, Spec{TargetDomain: "tznode.net", ZoneName: "tznode.net"}.Validate())

	assert.ErrorContains(t, Spec{TargetDomain: "rpc.tznode.net"}.Validate(), "no hosted zone")
	assert.ErrorContains(t, Spec{
		TargetDomain:    "rpc.tznode.net",
		ZoneName:        "tznode.net",
		AdditionalNames: []string{"rpc.teztnets.com"},
	}.Validate(), "outside hosted zone")
	// a shared suffix is not enough
	assert.Error(t, Spec{TargetDomain: "rpc.nottznode.net", ZoneName: "tznode.net"}.Validate())
}
