package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	_, ok := s.Get(ctx, "missing")
	require.False(t, ok)

	s.Set(ctx, "clubs:info:ps5:9", "payload")
	got, ok := s.Get(ctx, "clubs:info:ps5:9")
	require.True(t, ok)
	require.Equal(t, "payload", got)

	s.Delete(ctx, "clubs:info:ps5:9")
	_, ok = s.Get(ctx, "clubs:info:ps5:9")
	require.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewStore(10 * time.Millisecond)

	s.Set(ctx, "key", 1)
	_, ok := s.Get(ctx, "key")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)
	_, ok = s.Get(ctx, "key")
	require.False(t, ok)
}

func TestStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	s.Set(ctx, "clubs:info:ps5:9", 1)
	s.Set(ctx, "clubs:info:ps5:11", 2)
	s.Set(ctx, "players:search:ps5:x", 3)

	s.DeletePrefix(ctx, "clubs:info:")

	_, ok := s.Get(ctx, "clubs:info:ps5:9")
	require.False(t, ok)
	_, ok = s.Get(ctx, "players:search:ps5:x")
	require.True(t, ok)
}

func TestStoreGetOrLoad_SingleFlight(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	var calls atomic.Int64
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return "loaded", nil
	}

	results := make(chan error, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.GetOrLoad(ctx, "key", loader)
			if err == nil && got != "loaded" {
				err = fmt.Errorf("unexpected value %v", got)
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)
	for err := range results {
		require.NoError(t, err)
	}

	require.Equal(t, int64(1), calls.Load())

	// Served from cache afterwards.
	_, err := s.GetOrLoad(ctx, "key", loader)
	require.NoError(t, err)
	require.Equal(t, int64(1), calls.Load())
}

func TestStoreGetOrLoad_LoaderError(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	wantErr := fmt.Errorf("upstream down")
	_, err := s.GetOrLoad(ctx, "key", func(context.Context) (any, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// Errors are not cached.
	got, err := s.GetOrLoad(ctx, "key", func(context.Context) (any, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	require.Equal(t, "recovered", got)
}
