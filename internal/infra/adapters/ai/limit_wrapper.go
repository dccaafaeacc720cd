package ai

import (
	"context"

	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.GenMediaAdapter = (*limitedGenMedia)(nil)

// limitedGenMedia caps concurrent provider calls with a semaphore. Status
// polls and downloads are deliberately not limited: blocking a poll
// behind a queue of fresh submissions would stall jobs that are already
// paid for and running.
type limitedGenMedia struct {
	inner adapter.GenMediaAdapter
	sem   chan struct{}
}

func NewLimitedGenMedia(inner adapter.GenMediaAdapter, maxConcurrent int) adapter.GenMediaAdapter {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedGenMedia{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedGenMedia) EditImage(ctx context.Context, req model.EditRequest) (adapter.EditOutcome, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.EditImage(ctx, req)
}

func (l *limitedGenMedia) GenerateImage(ctx context.Context, req model.GenerationRequest) (model.MediaBlob, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.GenerateImage(ctx, req)
}

func (l *limitedGenMedia) SubmitVideoJob(ctx context.Context, req model.VideoJobRequest) (model.VideoOperation, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.SubmitVideoJob(ctx, req)
}

func (l *limitedGenMedia) PollVideoJob(ctx context.Context, op model.VideoOperation) (model.VideoOperation, error) {
	return l.inner.PollVideoJob(ctx, op)
}

func (l *limitedGenMedia) DownloadResult(ctx context.Context, uri string) ([]byte, error) {
	return l.inner.DownloadResult(ctx, uri)
}
