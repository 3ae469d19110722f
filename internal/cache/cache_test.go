package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitwire.dev/gitwire/internal/cache"
)

func TestCache(t *testing.T) {
	t.Run("stores and returns values per invocation", func(t *testing.T) {
		c := cache.New(time.Minute)
		c.Put("/repo", []string{"status", "--porcelain=v2"}, "clean")

		got, ok := c.Get("/repo", []string{"status", "--porcelain=v2"})
		require.True(t, ok)
		require.Equal(t, "clean", got)
	})

	t.Run("distinguishes argument lists", func(t *testing.T) {
		c := cache.New(time.Minute)
		c.Put("/repo", []string{"log", "-n", "5"}, "five")

		_, ok := c.Get("/repo", []string{"log", "-n", "50"})
		require.False(t, ok)
	})

	t.Run("distinguishes working directories", func(t *testing.T) {
		c := cache.New(time.Minute)
		c.Put("/repo-a", []string{"status"}, "a")

		_, ok := c.Get("/repo-b", []string{"status"})
		require.False(t, ok)
	})

	t.Run("expired entries are not returned", func(t *testing.T) {
		c := cache.New(time.Nanosecond)
		c.Put("/repo", []string{"status"}, "stale")

		time.Sleep(time.Millisecond)
		_, ok := c.Get("/repo", []string{"status"})
		require.False(t, ok)
	})

	t.Run("invalidate drops only the working directory's entries", func(t *testing.T) {
		c := cache.New(time.Minute)
		c.Put("/repo-a", []string{"status"}, "a")
		c.Put("/repo-a", []string{"log"}, "log")
		c.Put("/repo-b", []string{"status"}, "b")

		c.Invalidate("/repo-a")

		_, ok := c.Get("/repo-a", []string{"status"})
		require.False(t, ok)
		_, ok = c.Get("/repo-a", []string{"log"})
		require.False(t, ok)

		got, ok := c.Get("/repo-b", []string{"status"})
		require.True(t, ok)
		require.Equal(t, "b", got)
	})
}
