package cache

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// FlagStore is the raw flag cache the resilient wrapper protects.
type FlagStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, ttl time.Duration) error
}

// ResilientFlags wraps a FlagStore with a circuit breaker and encodes the
// cache-unavailability policy: the flag cache is advisory. When Redis errors
// or the breaker is open, Exists reports a miss so rules fall back to
// querying the historical store, and SetFlag becomes best-effort. The
// historical store itself is not covered by this policy and fails closed.
type ResilientFlags struct {
	store FlagStore
	cb    *gobreaker.CircuitBreaker
}

func NewResilientFlags(store FlagStore) *ResilientFlags {
	settings := gobreaker.Settings{
		Name:    "flag-cache",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &ResilientFlags{
		store: store,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

func (r *ResilientFlags) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.cb.Execute(func() (interface{}, error) {
		return r.store.Exists(ctx, key)
	})
	if err != nil {
		if err != gobreaker.ErrOpenState {
			log.Printf("flag cache read degraded for %s: %v", key, err)
		}
		return false, nil
	}
	return result.(bool), nil
}

func (r *ResilientFlags) SetFlag(ctx context.Context, key string, ttl time.Duration) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.store.SetFlag(ctx, key, ttl)
	})
	if err != nil && err != gobreaker.ErrOpenState {
		log.Printf("flag cache write dropped for %s: %v", key, err)
	}
	return nil
}
