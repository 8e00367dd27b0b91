package provision

import (
	"fmt"
	"sync"

	"github.com/samber/lo"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
)

type Kind string

const (
	KindRecord                Kind = "aws:route53:Record"
	KindCertificateValidation Kind = "aws:acm:CertificateValidation"
)

// Declaration is one entry of an engine's resource graph.
type Declaration struct {
	Kind       Kind
	Name       string
	Options    ResourceOptions
	Record     *Record
	Validation *CertificateValidation
}

// Ready resolves once the declared resource exists.
func (d Declaration) Ready() *deferred.Output[struct{}] {
	done := func(string) (struct{}, error) { return struct{}{}, nil }
	switch d.Kind {
	case KindRecord:
		return deferred.Apply(d.Record.FQDN, done)
	case KindCertificateValidation:
		return deferred.Apply(d.Validation.CertificateArn, done)
	default:
		return deferred.Failed[struct{}](fmt.Errorf("unknown declaration kind %q", d.Kind))
	}
}

// Ledger records declarations in registration order. The zero value is ready to use.
type Ledger struct {
	mu     sync.Mutex
	decls  []Declaration
	byName map[string]int
}

// Add appends d. It returns an error when a declaration with the same kind and name exists.
func (l *Ledger) Add(d Declaration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.byName == nil {
		l.byName = map[string]int{}
	}
	key := string(d.Kind) + "::" + d.Name
	if _, ok := l.byName[key]; ok {
		return fmt.Errorf("duplicate %s declaration %q", d.Kind, d.Name)
	}
	l.byName[key] = len(l.decls)
	l.decls = append(l.decls, d)
	return nil
}

// Lookup finds a declaration by name, whatever its kind.
func (l *Ledger) Lookup(name string) (Declaration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return lo.Find(l.decls, func(d Declaration) bool { return d.Name == name })
}

// Declarations returns a snapshot of every declaration, in registration order.
func (l *Ledger) Declarations() []Declaration {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Declaration, len(l.decls))
	copy(out, l.decls)
	return out
}

// Dependencies resolves once every named declaration is ready.
func (l *Ledger) Dependencies(names []string) *deferred.Output[struct{}] {
	readies := make([]*deferred.Output[struct{}], 0, len(names))
	for _, name := range names {
		d, ok := l.Lookup(name)
		if !ok {
			return deferred.Failed[struct{}](fmt.Errorf("%w: %s", ErrUnknownDependency, name))
		}
		readies = append(readies, d.Ready())
	}
	return deferred.Apply(deferred.All(readies...), func([]struct{}) (struct{}, error) {
		return struct{}{}, nil
	})
}
