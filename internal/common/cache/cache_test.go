package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.Set("a", 42)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestGetMissing(t *testing.T) {
	c := NewTTLCache(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestEntryExpires(t *testing.T) {
	c := NewTTLCache(10 * time.Millisecond)

	c.Set("a", "value")
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Invalidate("a")

	_, ok := c.Get("a")
	assert.False(t, ok)

	v, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestSweepRemovesExpired(t *testing.T) {
	c := NewTTLCache(10 * time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Len())

	time.Sleep(25 * time.Millisecond)
	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestSetOverwrites(t *testing.T) {
	c := NewTTLCache(time.Minute)

	c.Set("a", 1)
	c.Set("a", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}
