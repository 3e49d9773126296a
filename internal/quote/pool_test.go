package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolFirstUnusedDrainsInOrder(t *testing.T) {
	pool := NewPool()
	ledger := newMemLedger()
	ctx := context.Background()

	for i := 0; i < pool.Len(); i++ {
		q, ok := pool.FirstUnused(ctx, ledger)
		require.True(t, ok, "pool drained early at %d", i)
		assert.Equal(t, classicQuotes[i], q)
	}

	_, ok := pool.FirstUnused(ctx, ledger)
	assert.False(t, ok)
	assert.Len(t, ledger.markCalls, pool.Len())
}

func TestPoolFirstUnusedMarkFailureStillServes(t *testing.T) {
	pool := NewPool()
	ledger := newMemLedger()
	ledger.markErr = errors.New("insert failed")

	q, ok := pool.FirstUnused(context.Background(), ledger)
	require.True(t, ok)
	assert.Equal(t, classicQuotes[0], q)
	assert.Empty(t, ledger.markCalls)
}

func TestPoolRandomIgnoresLedger(t *testing.T) {
	pool := NewPool()
	pool.randFn = func(n int) int { return 2 }

	q := pool.Random()
	assert.Equal(t, classicQuotes[2], q)
}
