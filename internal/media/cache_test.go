package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type countingResolver struct {
	platform Platform
	calls    int
	metadata Metadata
	err      error
}

func (r *countingResolver) ResolveMetadata(_ context.Context, ref VideoReference) (*Metadata, error) {
	if ref.Platform != r.platform {
		return nil, ErrUnsupportedPlatform
	}

	r.calls++
	if r.err != nil {
		return nil, r.err
	}

	metadata := r.metadata
	return &metadata, nil
}

func TestResolverChain(t *testing.T) {
	yt := &countingResolver{platform: PlatformYoutube, metadata: Metadata{Title: "yt"}}
	vimeo := &countingResolver{platform: PlatformVimeo, metadata: Metadata{Title: "vimeo"}}
	chain := ResolverChain{yt, vimeo}

	m, err := chain.ResolveMetadata(context.Background(), VideoReference{PlatformVimeo, "1"})
	if err != nil {
		t.Fatalf("Unable to resolve vimeo metadata: %v", err)
	}
	if m.Title != "vimeo" || yt.calls != 0 || vimeo.calls != 1 {
		t.Errorf("Unexpected chain result %+v (yt calls %d, vimeo calls %d)", m, yt.calls, vimeo.calls)
	}

	if _, err := chain.ResolveMetadata(context.Background(), VideoReference{PlatformEmbed, "x.mp4"}); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("Expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestResolverChainStopsAtFirstSupportingResolver(t *testing.T) {
	failing := &countingResolver{platform: PlatformYoutube, err: ErrMediaNotFound}
	fallback := &countingResolver{platform: PlatformYoutube, metadata: Metadata{Title: "fallback"}}

	_, err := ResolverChain{failing, fallback}.ResolveMetadata(context.Background(), VideoReference{PlatformYoutube, "ABC123"})
	if !errors.Is(err, ErrMediaNotFound) {
		t.Errorf("Expected ErrMediaNotFound, got %v", err)
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback resolver called %d times", fallback.calls)
	}
}

func TestCachedResolver(t *testing.T) {
	inner := &countingResolver{platform: PlatformYoutube, metadata: Metadata{Title: "Title", Channel: "Channel", Duration: 3 * time.Minute}}
	cache := NewCachedResolver(inner, "", time.Hour)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ref := VideoReference{PlatformYoutube, "ABC123"}
	for i := 0; i < 3; i++ {
		m, err := cache.ResolveMetadata(context.Background(), ref)
		if err != nil {
			t.Fatalf("Unable to resolve metadata: %v", err)
		}
		if diff := cmp.Diff(inner.metadata, *m); diff != "" {
			t.Errorf("Metadata mismatch (-want +got):\n%s", diff)
		}
	}
	if inner.calls != 1 {
		t.Errorf("Inner resolver called %d times, want 1", inner.calls)
	}

	// cached values must not be shared with callers
	m, _ := cache.ResolveMetadata(context.Background(), ref)
	m.Title = "changed"
	if m, _ := cache.ResolveMetadata(context.Background(), ref); m.Title != "Title" {
		t.Errorf("Cached metadata was mutated through a returned pointer: %q", m.Title)
	}

	now = now.Add(2 * time.Hour)
	if _, err := cache.ResolveMetadata(context.Background(), ref); err != nil {
		t.Fatalf("Unable to resolve metadata: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("Expired entry not refreshed, inner calls = %d", inner.calls)
	}

	cache.Forget(context.Background(), ref)
	if _, err := cache.ResolveMetadata(context.Background(), ref); err != nil {
		t.Fatalf("Unable to resolve metadata: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("Forgotten entry not refreshed, inner calls = %d", inner.calls)
	}
}

func TestCachedResolverDoesNotCacheErrors(t *testing.T) {
	inner := &countingResolver{platform: PlatformYoutube, err: ErrMediaNotFound}
	cache := NewCachedResolver(inner, "", time.Hour)

	ref := VideoReference{PlatformYoutube, "ABC123"}
	for i := 0; i < 2; i++ {
		if _, err := cache.ResolveMetadata(context.Background(), ref); !errors.Is(err, ErrMediaNotFound) {
			t.Fatalf("Expected ErrMediaNotFound, got %v", err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("Inner resolver called %d times, want 2", inner.calls)
	}
}

func TestMetadataCacheKey(t *testing.T) {
	a := metadataCacheKey(VideoReference{PlatformYoutube, "ABC123"})
	b := metadataCacheKey(VideoReference{PlatformVimeo, "ABC123"})
	if a == b {
		t.Errorf("Cache keys of different platforms collide: %s", a)
	}
	if a != metadataCacheKey(VideoReference{PlatformYoutube, "ABC123"}) {
		t.Errorf("Cache key is not deterministic")
	}
}

func TestCachedResolverSweep(t *testing.T) {
	inner := &countingResolver{platform: PlatformYoutube, metadata: Metadata{Title: "Title"}}
	cache := NewCachedResolver(inner, "", time.Hour)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	for _, id := range []string{"AAA", "BBB", "CCC"} {
		if _, err := cache.ResolveMetadata(context.Background(), VideoReference{PlatformYoutube, id}); err != nil {
			t.Fatalf("Unable to resolve metadata: %v", err)
		}
	}

	if removed := cache.Sweep(); removed != 0 {
		t.Errorf("Sweep() removed %d fresh entries", removed)
	}

	now = now.Add(30 * time.Minute)
	if _, err := cache.ResolveMetadata(context.Background(), VideoReference{PlatformYoutube, "DDD"}); err != nil {
		t.Fatalf("Unable to resolve metadata: %v", err)
	}

	now = now.Add(45 * time.Minute)
	if removed := cache.Sweep(); removed != 3 {
		t.Errorf("Sweep() removed %d entries, want 3", removed)
	}
	if got := cache.l1Len(); got != 1 {
		t.Errorf("%d entries left after sweep, want 1", got)
	}
}

func TestCachedResolverBound(t *testing.T) {
	inner := &countingResolver{platform: PlatformYoutube, metadata: Metadata{Title: "Title"}}
	cache := NewCachedResolver(inner, "", time.Hour)
	cache.maxEntries = 2
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	for _, id := range []string{"AAA", "BBB", "CCC"} {
		if _, err := cache.ResolveMetadata(context.Background(), VideoReference{PlatformYoutube, id}); err != nil {
			t.Fatalf("Unable to resolve metadata: %v", err)
		}
		now = now.Add(time.Minute)
	}

	if got := cache.l1Len(); got != 2 {
		t.Errorf("L1 holds %d entries, want 2", got)
	}

	// the oldest entry was evicted, the newer ones are still cached
	calls := inner.calls
	for _, id := range []string{"BBB", "CCC"} {
		if _, err := cache.ResolveMetadata(context.Background(), VideoReference{PlatformYoutube, id}); err != nil {
			t.Fatalf("Unable to resolve metadata: %v", err)
		}
	}
	if inner.calls != calls {
		t.Errorf("Recent entries were evicted, inner calls went from %d to %d", calls, inner.calls)
	}
	if _, err := cache.ResolveMetadata(context.Background(), VideoReference{PlatformYoutube, "AAA"}); err != nil {
		t.Fatalf("Unable to resolve metadata: %v", err)
	}
	if inner.calls != calls+1 {
		t.Errorf("Oldest entry was not evicted, inner calls = %d", inner.calls)
	}
}

func TestCachedResolverSweepEveryStops(t *testing.T) {
	cache := NewCachedResolver(ResolverChain{}, "", time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cache.SweepEvery(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SweepEvery did not return after cancellation")
	}
}
