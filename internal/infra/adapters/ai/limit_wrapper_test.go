package ai

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/adapter"
)

// blockingGenMedia counts in-flight calls and blocks until released.
type blockingGenMedia struct {
	NoopGenMedia
	inflight atomic.Int32
	peak     atomic.Int32
	release  chan struct{}
}

func (b *blockingGenMedia) EditImage(ctx context.Context, req model.EditRequest) (adapter.EditOutcome, error) {
	n := b.inflight.Add(1)
	defer b.inflight.Add(-1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	<-b.release
	return b.NoopGenMedia.EditImage(ctx, req)
}

func TestLimitCapsConcurrentCalls(t *testing.T) {
	inner := &blockingGenMedia{release: make(chan struct{})}
	limited := NewLimitedGenMedia(inner, 3)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = limited.EditImage(context.Background(), model.EditRequest{})
		}()
	}

	close(inner.release)
	wg.Wait()

	if peak := inner.peak.Load(); peak > 3 {
		t.Fatalf("peak concurrency %d exceeded limit 3", peak)
	}
}

func TestZeroLimitReturnsInnerUnwrapped(t *testing.T) {
	inner := NewNoopGenMedia()
	if NewLimitedGenMedia(inner, 0) != adapter.GenMediaAdapter(inner) {
		t.Fatal("expected the inner adapter back when limit is disabled")
	}
}
