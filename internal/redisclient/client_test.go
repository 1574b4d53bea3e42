package redisclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests - require a running Redis instance.

func TestSessionRoundTrip(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	c, err := NewClient("localhost:6379", "", 1)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	require.NoError(t, c.PutSession(ctx, "tok-abc", 42, "ADMIN", time.Minute))

	sess, err := c.GetSession(ctx, "tok-abc")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, "ADMIN", sess.Role)

	require.NoError(t, c.DeleteSession(ctx, "tok-abc"))

	sess, err = c.GetSession(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestUnknownTokenIsAnonymous(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	c, err := NewClient("localhost:6379", "", 1)
	require.NoError(t, err)
	defer c.Close()

	sess, err := c.GetSession(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestDrainProductViews(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	c, err := NewClient("localhost:6379", "", 1)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	require.NoError(t, c.IncrementProductViews(ctx, 7))
	require.NoError(t, c.IncrementProductViews(ctx, 7))
	require.NoError(t, c.IncrementProductViews(ctx, 9))

	views, err := c.DrainProductViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views[7])
	assert.Equal(t, int64(1), views[9])

	// drained counters are gone
	views, err = c.DrainProductViews(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}
