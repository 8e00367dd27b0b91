// Package awsengine applies DNS declarations through the Route53 and ACM APIs.
//
// Every declaration becomes a task on an errgroup once its inputs resolve; Wait
// returns the first task error. Waiting for Route53 changes and for certificate
// issuance is left to the SDK waiters. In dry-run mode only reads (zone lookups)
// reach AWS; writes are logged and their outputs stay unknown.
package awsengine

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/acm"
	"github.com/aws/aws-sdk-go/service/acm/acmiface"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

// Clients is one provider configuration.
type Clients struct {
	Route53 route53iface.Route53API
	ACM     acmiface.ACMAPI
}

// NewClients builds the Route53 and ACM clients of sess.
func NewClients(sess *session.Session) Clients {
	return Clients{
		Route53: route53.New(sess),
		ACM:     acm.New(sess),
	}
}

type Engine struct {
	provision.Ledger

	ctx       context.Context
	group     *errgroup.Group
	logger    *zap.Logger
	dryRun    bool
	providers map[string]Clients
}

var _ provision.ValidatingEngine = (*Engine)(nil)

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDryRun performs reads only.
func WithDryRun() Option {
	return func(e *Engine) { e.dryRun = true }
}

// WithProvider registers clients selectable with provision.Provider(name).
func WithProvider(name string, c Clients) Option {
	return func(e *Engine) { e.providers[name] = c }
}

// New returns an engine bound to ctx; cancelling ctx stops pending tasks.
func New(ctx context.Context, defaults Clients, opts ...Option) *Engine {
	group, gctx := errgroup.WithContext(ctx)
	e := &Engine{
		ctx:       gctx,
		group:     group,
		logger:    zap.NewNop(),
		providers: map[string]Clients{"": defaults},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("awsengine")
	return e
}

// DryRun reports whether writes are skipped.
func (e *Engine) DryRun() bool {
	return e.dryRun
}

// Wait blocks until every started task finished and returns the first error.
// Declarations whose inputs never resolve do not hold it up.
func (e *Engine) Wait() error {
	return e.group.Wait()
}

func (e *Engine) clients(name string) (Clients, error) {
	c, ok := e.providers[name]
	if !ok {
		return Clients{}, fmt.Errorf("%w: %q", provision.ErrUnknownProvider, name)
	}
	return c, nil
}

// spawn runs fn on the task group and settles the returned output with its result.
func spawn[T any](e *Engine, fn func(ctx context.Context) (T, error)) *deferred.Output[T] {
	out, r := deferred.New[T]()
	e.group.Go(func() error {
		v, err := fn(e.ctx)
		if err != nil {
			r.Reject(err)
			return err
		}
		r.Resolve(v)
		return nil
	})
	return out
}

// fail rejects an output with err and reports err through Wait.
func fail[T any](e *Engine, err error) *deferred.Output[T] {
	e.group.Go(func() error { return err })
	return deferred.Failed[T](err)
}

// dependencies is Ledger.Dependencies, reporting unknown names through Wait.
func (e *Engine) dependencies(names []string) *deferred.Output[struct{}] {
	deps := e.Dependencies(names)
	if _, known, err := deps.Peek(); known && err != nil {
		return fail[struct{}](e, err)
	}
	return deps
}
