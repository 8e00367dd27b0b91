// Package deferred holds values that become known later, if ever.
//
// An Output settles at most once, either with a value or with an error.
// Derived outputs are built with Apply, Bind and All; their continuations run
// in the goroutine that settles the source, in the order they were registered.
// An output that never settles (e.g. a certificate that is not requested during
// a preview) never runs the continuations attached to it.
package deferred

import (
	"context"
	"sync"
)

type Output[T any] struct {
	mu       sync.Mutex
	settled  bool
	value    T
	err      error
	done     chan struct{}
	handlers []func(T, error)
}

// Resolver settles the Output it was created with. Only the first call has an effect.
type Resolver[T any] struct {
	o *Output[T]
}

// New returns a pending output and the resolver that settles it.
func New[T any]() (*Output[T], Resolver[T]) {
	o := &Output[T]{done: make(chan struct{})}
	return o, Resolver[T]{o: o}
}

// Known returns an output already resolved with v.
func Known[T any](v T) *Output[T] {
	o, r := New[T]()
	r.Resolve(v)
	return o
}

// Failed returns an output already rejected with err.
func Failed[T any](err error) *Output[T] {
	o, r := New[T]()
	r.Reject(err)
	return o
}

func (r Resolver[T]) Resolve(v T) {
	r.o.settle(v, nil)
}

func (r Resolver[T]) Reject(err error) {
	var zero T
	r.o.settle(zero, err)
}

func (o *Output[T]) settle(v T, err error) {
	o.mu.Lock()
	if o.settled {
		o.mu.Unlock()
		return
	}
	o.settled = true
	o.value = v
	o.err = err
	handlers := o.handlers
	o.handlers = nil
	close(o.done)
	o.mu.Unlock()

	for _, h := range handlers {
		h(v, err)
	}
}

// onSettle runs fn once o settles, immediately if it already has.
func (o *Output[T]) onSettle(fn func(T, error)) {
	o.mu.Lock()
	if !o.settled {
		o.handlers = append(o.handlers, fn)
		o.mu.Unlock()
		return
	}
	v, err := o.value, o.err
	o.mu.Unlock()
	fn(v, err)
}

// Done is closed once the output settles.
func (o *Output[T]) Done() <-chan struct{} {
	return o.done
}

// Peek reports the settled value and error without blocking.
// known is false while the output is pending.
func (o *Output[T]) Peek() (value T, known bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value, o.settled, o.err
}

// Await blocks until the output settles or ctx is done.
func (o *Output[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-o.done:
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Apply derives an output from o by running fn on its value.
// A rejected o rejects the result with the same error and fn is not called.
func Apply[T, U any](o *Output[T], fn func(T) (U, error)) *Output[U] {
	out, r := New[U]()
	o.onSettle(func(v T, err error) {
		if err != nil {
			r.Reject(err)
			return
		}
		u, err := fn(v)
		if err != nil {
			r.Reject(err)
			return
		}
		r.Resolve(u)
	})
	return out
}

// Bind is Apply for functions that themselves return an output; the result follows it.
func Bind[T, U any](o *Output[T], fn func(T) *Output[U]) *Output[U] {
	out, r := New[U]()
	o.onSettle(func(v T, err error) {
		if err != nil {
			r.Reject(err)
			return
		}
		fn(v).onSettle(func(u U, err error) {
			if err != nil {
				r.Reject(err)
				return
			}
			r.Resolve(u)
		})
	})
	return out
}

// All resolves with the values of outs, in order, once every one of them resolves.
// The first rejection rejects the result. With no inputs it resolves to an empty slice.
func All[T any](outs ...*Output[T]) *Output[[]T] {
	if len(outs) == 0 {
		return Known([]T{})
	}

	out, r := New[[]T]()
	var (
		mu        sync.Mutex
		values    = make([]T, len(outs))
		remaining = len(outs)
	)
	for i, o := range outs {
		o.onSettle(func(v T, err error) {
			if err != nil {
				r.Reject(err)
				return
			}
			mu.Lock()
			values[i] = v
			remaining--
			last := remaining == 0
			mu.Unlock()
			if last {
				r.Resolve(values)
			}
		})
	}
	return out
}
