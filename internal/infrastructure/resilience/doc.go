/*
Package resilience provides the circuit breaker that guards remote storage.

# Overview

When a PostgreSQL or etcd server stops answering, every desktop request
would otherwise wait for its own timeout. The breaker counts consecutive
failures and, past a threshold, rejects calls immediately with ErrOpen until
a cooldown has elapsed. It then lets a single trial through: success closes
the circuit, failure opens it again.

Cancelled contexts are the caller giving up and never count as failures.

# Usage

	breaker := resilience.New("postgres", resilience.Settings{
		Failures: 5,
		Cooldown: 30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Storage circuit changed", zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})

	err := breaker.Do(func() error {
		return backend.Put(ctx, key, value)
	})

# States

	Closed --[Failures consecutive errors]-> Open --[Cooldown]-> Half-Open
	Half-Open --[trial succeeds]-> Closed
	Half-Open --[trial fails]-> Open
*/
package resilience
