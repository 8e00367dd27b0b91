package provision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
)

func record(name string, fqdn *deferred.Output[string]) Declaration {
	return Declaration{
		Kind:   KindRecord,
		Name:   name,
		Record: &Record{Name: name, FQDN: fqdn, ZoneID: deferred.Known("Z1")},
	}
}

func TestLedger_OrderAndLookup(t *testing.T) {
	var l Ledger
	require.NoError(t, l.Add(record("b", deferred.Known("b.example.com"))))
	require.NoError(t, l.Add(record("a", deferred.Known("a.example.com"))))

	decls := l.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, "b", decls[0].Name)
	assert.Equal(t, "a", decls[1].Name)

	d, ok := l.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, KindRecord, d.Kind)

	_, ok = l.Lookup("missing")
	assert.False(t, ok)
}

func TestLedger_Duplicate(t *testing.T) {
	var l Ledger
	require.NoError(t, l.Add(record("a", deferred.Known("a.example.com"))))
	err := l.Add(record("a", deferred.Known("a.example.com")))
	assert.ErrorContains(t, err, "duplicate")
}

func TestLedger_Dependencies(t *testing.T) {
	var l Ledger
	fqdn, r := deferred.New[string]()
	require.NoError(t, l.Add(record("a", fqdn)))

	deps := l.Dependencies([]string{"a"})
	_, known, _ := deps.Peek()
	assert.False(t, known)

	r.Resolve("a.example.com")
	_, err := deps.Await(context.Background())
	assert.NoError(t, err)

	_, err = l.Dependencies([]string{"nope"}).Await(context.Background())
	assert.ErrorIs(t, err, ErrUnknownDependency)
}

func TestNewResourceOptions(t *testing.T) {
	o := NewResourceOptions(Parent("root"), DependsOn("a"), DependsOn("b", "c"), Provider("edge"), nil)
	assert.Equal(t, ResourceOptions{Parent: "root", DependsOn: []string{"a", "b", "c"}, Provider: "edge"}, o)
}
