package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubStore struct {
	existsVal bool
	err       error
	setCalls  int
}

func (s *stubStore) Exists(_ context.Context, _ string) (bool, error) {
	return s.existsVal, s.err
}

func (s *stubStore) SetFlag(_ context.Context, _ string, _ time.Duration) error {
	s.setCalls++
	return s.err
}

func TestResilientFlags_Passthrough(t *testing.T) {
	store := &stubStore{existsVal: true}
	flags := NewResilientFlags(store)

	hit, err := flags.Exists(context.Background(), "small_transactions:u1")
	assert.NoError(t, err)
	assert.True(t, hit)

	assert.NoError(t, flags.SetFlag(context.Background(), "small_transactions:u1", time.Hour))
	assert.Equal(t, 1, store.setCalls)
}

func TestResilientFlags_DegradesToMissOnError(t *testing.T) {
	store := &stubStore{err: errors.New("redis down")}
	flags := NewResilientFlags(store)

	hit, err := flags.Exists(context.Background(), "rapid_transfers:u1")
	assert.NoError(t, err, "a broken cache must look like a miss, not an error")
	assert.False(t, hit)

	assert.NoError(t, flags.SetFlag(context.Background(), "rapid_transfers:u1", time.Minute))
}

func TestResilientFlags_OpenBreakerStopsCalls(t *testing.T) {
	store := &stubStore{err: errors.New("redis down")}
	flags := NewResilientFlags(store)

	// Five consecutive failures trip the breaker.
	for i := 0; i < 5; i++ {
		hit, err := flags.Exists(context.Background(), "k")
		assert.NoError(t, err)
		assert.False(t, hit)
	}

	before := store.setCalls
	assert.NoError(t, flags.SetFlag(context.Background(), "k", time.Minute))
	assert.Equal(t, before, store.setCalls, "open breaker should short-circuit the store")
}
