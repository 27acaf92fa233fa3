package loader_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcunliffe1/tolgee-go/pkg/async"
	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
	"github.com/jcunliffe1/tolgee-go/pkg/loader"
)

// gatedFetcher blocks every fetch until the language is released.
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	bundles map[string]dictionary.Bundle
	errs    map[string]error
	calls   atomic.Int32
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{
		gates:   make(map[string]chan struct{}),
		bundles: make(map[string]dictionary.Bundle),
		errs:    make(map[string]error),
	}
}

func (f *gatedFetcher) gate(lang string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gates[lang]
	if !ok {
		g = make(chan struct{})
		f.gates[lang] = g
	}
	return g
}

func (f *gatedFetcher) release(lang string) {
	close(f.gate(lang))
}

func (f *gatedFetcher) Fetch(ctx context.Context, lang string) (dictionary.Bundle, error) {
	f.calls.Add(1)
	select {
	case <-f.gate(lang):
	case <-ctx.Done():
		return dictionary.Bundle{}, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[lang]; err != nil {
		return dictionary.Bundle{}, err
	}
	return f.bundles[lang], nil
}

type memoryCache struct {
	mu      sync.Mutex
	bundles map[string]dictionary.Bundle
	getErr  error
}

func (m *memoryCache) Get(_ context.Context, lang string) (dictionary.Bundle, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return dictionary.Bundle{}, false, m.getErr
	}
	b, ok := m.bundles[lang]
	return b, ok, nil
}

func (m *memoryCache) Put(_ context.Context, lang string, b dictionary.Bundle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bundles[lang] = b
	return nil
}

func TestEnsureLoaded_DeduplicatesInFlight(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	fetcher := newGatedFetcher()
	fetcher.bundles["cs"] = dictionary.NewBundle(map[string]string{"hello_world": "Ahoj světe!"})
	c := loader.New(store, fetcher)

	assert.Equal(t, dictionary.Unrequested, store.State("cs").Status)

	first := c.EnsureLoaded(context.Background(), "cs")
	second := c.EnsureLoaded(context.Background(), "cs")

	assert.Same(t, first, second)
	assert.Equal(t, dictionary.Pending, store.State("cs").Status)
	assert.Same(t, first, store.State("cs").Future)

	fetcher.release("cs")
	b, err := first.Await()
	require.NoError(t, err)
	assert.True(t, b.Has("hello_world"))

	assert.Equal(t, dictionary.Loaded, store.State("cs").Status)
	assert.Equal(t, int32(1), fetcher.calls.Load())
	assert.Equal(t, 1, c.Fetches("cs"))

	third := c.EnsureLoaded(context.Background(), "cs")
	assert.True(t, third.IsComplete())
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestEnsureLoaded_ConcurrentCallersShareFuture(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	fetcher := newGatedFetcher()
	c := loader.New(store, fetcher)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[*async.Future[dictionary.Bundle]]struct{})
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := c.EnsureLoaded(context.Background(), "en")
			mu.Lock()
			seen[f] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	fetcher.release("en")
	assert.Len(t, seen, 1)
	for f := range seen {
		_, err := f.Await()
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestEnsureLoaded_LanguagesIndependent(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	fetcher := newGatedFetcher()
	c := loader.New(store, fetcher)

	cs := c.EnsureLoaded(context.Background(), "cs")
	en := c.EnsureLoaded(context.Background(), "en")
	assert.NotSame(t, cs, en)

	fetcher.release("en")
	_, err := en.Await()
	require.NoError(t, err)

	assert.Equal(t, dictionary.Loaded, store.State("en").Status)
	assert.Equal(t, dictionary.Pending, store.State("cs").Status)

	fetcher.release("cs")
	_, err = cs.Await()
	require.NoError(t, err)
}

func TestEnsureLoaded_FailureAndRetryOnRequest(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	boom := errors.New("connection refused")
	var calls atomic.Int32
	fetcher := loader.FetcherFunc(func(ctx context.Context, lang string) (dictionary.Bundle, error) {
		if calls.Add(1) == 1 {
			return dictionary.Bundle{}, boom
		}
		return dictionary.NewBundle(map[string]string{"k": "v"}), nil
	})
	c := loader.New(store, fetcher)

	_, err := c.EnsureLoaded(context.Background(), "cs").Await()
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrFetchFailed)
	assert.ErrorIs(t, err, boom)

	st := store.State("cs")
	assert.Equal(t, dictionary.Failed, st.Status)
	assert.ErrorIs(t, st.Err, boom)

	// Nothing retries in the background.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	b, err := c.EnsureLoaded(context.Background(), "cs").Await()
	require.NoError(t, err)
	assert.True(t, b.Has("k"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestEnsureLoaded_CallerCancellationDoesNotCancelFetch(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	fetcher := newGatedFetcher()
	fetcher.bundles["cs"] = dictionary.NewBundle(map[string]string{"k": "v"})
	c := loader.New(store, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	f := c.EnsureLoaded(ctx, "cs")
	cancel()

	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	fetcher.release("cs")
	b, err := f.Await()
	require.NoError(t, err)
	assert.True(t, b.Has("k"))
	assert.Equal(t, dictionary.Loaded, store.State("cs").Status)
}

func TestEnsureLoaded_FetchTimeout(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	fetcher := newGatedFetcher()
	c := loader.New(store, fetcher, loader.WithFetchTimeout(10*time.Millisecond))

	_, err := c.EnsureLoaded(context.Background(), "cs").Await()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, dictionary.Failed, store.State("cs").Status)
}

func TestEnsureLoaded_NoFetcher(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	c := loader.New(store, nil)

	_, err := c.EnsureLoaded(context.Background(), "cs").Await()
	assert.ErrorIs(t, err, loader.ErrNoFetcher)
	assert.Equal(t, dictionary.Failed, store.State("cs").Status)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	var version atomic.Int32
	fetcher := loader.FetcherFunc(func(ctx context.Context, lang string) (dictionary.Bundle, error) {
		if version.Add(1) == 1 {
			return dictionary.NewBundle(map[string]string{"k": "old"}), nil
		}
		return dictionary.NewBundle(map[string]string{"k": "new"}), nil
	})

	var settled []loader.Settled
	var mu sync.Mutex
	c := loader.New(store, fetcher, loader.WithOnSettled(func(s loader.Settled) {
		mu.Lock()
		settled = append(settled, s)
		mu.Unlock()
	}))

	_, err := c.EnsureLoaded(context.Background(), "cs").Await()
	require.NoError(t, err)

	b, err := c.Refresh(context.Background(), "cs").Await()
	require.NoError(t, err)
	v, _ := b.Get("k")
	assert.Equal(t, "new", v)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, settled, 2)
	assert.False(t, settled[0].HadPrevious)
	assert.True(t, settled[1].HadPrevious)
	prev, _ := settled[1].Previous.Get("k")
	assert.Equal(t, "old", prev)
	assert.Equal(t, 2, c.Fetches("cs"))
}

func TestOnSettled_RunsAfterStoreWrite(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	fetcher := loader.FetcherFunc(func(ctx context.Context, lang string) (dictionary.Bundle, error) {
		return dictionary.NewBundle(map[string]string{"k": "v"}), nil
	})

	statusInHook := make(chan dictionary.Status, 1)
	c := loader.New(store, fetcher, loader.WithOnSettled(func(s loader.Settled) {
		statusInHook <- store.State(s.Language).Status
	}))

	_, err := c.EnsureLoaded(context.Background(), "cs").Await()
	require.NoError(t, err)
	assert.Equal(t, dictionary.Loaded, <-statusInHook)
}

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("hit avoids fetch", func(t *testing.T) {
		t.Parallel()

		store := dictionary.NewStore()
		cache := &memoryCache{bundles: map[string]dictionary.Bundle{
			"cs": dictionary.NewBundle(map[string]string{"k": "cached"}),
		}}
		var calls atomic.Int32
		fetcher := loader.FetcherFunc(func(ctx context.Context, lang string) (dictionary.Bundle, error) {
			calls.Add(1)
			return dictionary.NewBundle(map[string]string{"k": "remote"}), nil
		})

		var fromCache atomic.Bool
		c := loader.New(store, fetcher, loader.WithCache(cache), loader.WithOnSettled(func(s loader.Settled) {
			fromCache.Store(s.FromCache)
		}))

		b, err := c.EnsureLoaded(context.Background(), "cs").Await()
		require.NoError(t, err)
		v, _ := b.Get("k")
		assert.Equal(t, "cached", v)
		assert.True(t, fromCache.Load())
		assert.Equal(t, int32(0), calls.Load())
		assert.Equal(t, 0, c.Fetches("cs"))

		b, err = c.Refresh(context.Background(), "cs").Await()
		require.NoError(t, err)
		v, _ = b.Get("k")
		assert.Equal(t, "remote", v, "refresh bypasses the cache")

		stored, ok, _ := cache.Get(context.Background(), "cs")
		require.True(t, ok)
		v, _ = stored.Get("k")
		assert.Equal(t, "remote", v, "fetched bundles are written through")
	})

	t.Run("read error falls back to fetch", func(t *testing.T) {
		t.Parallel()

		store := dictionary.NewStore()
		cache := &memoryCache{bundles: map[string]dictionary.Bundle{}, getErr: errors.New("redis down")}
		fetcher := loader.FetcherFunc(func(ctx context.Context, lang string) (dictionary.Bundle, error) {
			return dictionary.NewBundle(map[string]string{"k": "remote"}), nil
		})
		c := loader.New(store, fetcher, loader.WithCache(cache))

		b, err := c.EnsureLoaded(context.Background(), "cs").Await()
		require.NoError(t, err)
		assert.True(t, b.Has("k"))
		assert.Equal(t, 1, c.Fetches("cs"))
	})
}

func TestRefresh_FailureKeepsPreviousBundle(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	var calls atomic.Int32
	fetcher := loader.FetcherFunc(func(ctx context.Context, lang string) (dictionary.Bundle, error) {
		if calls.Add(1) == 1 {
			return dictionary.NewBundle(map[string]string{"k": "old"}), nil
		}
		return dictionary.Bundle{}, errors.New("network down")
	})

	var last loader.Settled
	c := loader.New(store, fetcher, loader.WithOnSettled(func(s loader.Settled) { last = s }))

	_, err := c.EnsureLoaded(context.Background(), "cs").Await()
	require.NoError(t, err)

	_, err = c.Refresh(context.Background(), "cs").Await()
	require.ErrorIs(t, err, loader.ErrFetchFailed)

	st := store.State("cs")
	assert.Equal(t, dictionary.Loaded, st.Status)
	v, _ := st.Bundle.Get("k")
	assert.Equal(t, "old", v)

	assert.Error(t, last.Err)
	cur, _ := last.Current.Get("k")
	assert.Equal(t, "old", cur)
}

func TestRefresh_FailureKeepsPatchedBundle(t *testing.T) {
	t.Parallel()

	store := dictionary.NewStore()
	var calls atomic.Int32
	fetcher := loader.FetcherFunc(func(ctx context.Context, lang string) (dictionary.Bundle, error) {
		if calls.Add(1) == 1 {
			return dictionary.NewBundle(map[string]string{"k": "old"}), nil
		}
		return dictionary.Bundle{}, errors.New("network down")
	})
	c := loader.New(store, fetcher)

	_, err := c.EnsureLoaded(context.Background(), "cs").Await()
	require.NoError(t, err)

	_, ok := store.Update("cs", func(b dictionary.Bundle) dictionary.Bundle { return b.With("k", "patched") })
	require.True(t, ok)

	_, err = c.Refresh(context.Background(), "cs").Await()
	require.ErrorIs(t, err, loader.ErrFetchFailed)

	b, ok := store.Bundle("cs")
	require.True(t, ok)
	v, _ := b.Get("k")
	assert.Equal(t, "patched", v)
}
