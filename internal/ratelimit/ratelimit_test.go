package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLimiter(t *testing.T) {
	t.Run("burst is served without blocking", func(t *testing.T) {
		l := NewInMemoryLimiter(1, time.Hour, 3)

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, l.Wait(context.Background(), "acct-1"))
		}
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("accounts are throttled independently", func(t *testing.T) {
		l := NewInMemoryLimiter(1, time.Hour, 1)

		require.NoError(t, l.Wait(context.Background(), "acct-1"))
		require.NoError(t, l.Wait(context.Background(), "acct-2"))
	})

	t.Run("cancelled context unblocks the wait", func(t *testing.T) {
		l := NewInMemoryLimiter(1, time.Hour, 1)
		require.NoError(t, l.Wait(context.Background(), "acct-1"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := l.Wait(ctx, "acct-1")
		assert.Error(t, err)
	})
}
