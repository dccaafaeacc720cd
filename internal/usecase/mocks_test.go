package usecase

import (
	"context"
	"sync"

	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/adapter"
)

// ---- Fakes ----

type editStep struct {
	out adapter.EditOutcome
	err error
}

type pollStep struct {
	op  model.VideoOperation
	err error
}

// fakeGenMedia scripts provider behavior per call. When the script runs
// out, the last step repeats.
type fakeGenMedia struct {
	mu sync.Mutex

	editSteps []editStep
	editReqs  []model.EditRequest

	genBlob model.MediaBlob
	genErr  error

	submitOp  model.VideoOperation
	submitErr error
	submits   int

	pollSteps []pollStep
	polls     []model.VideoOperation // handle passed to each poll

	downloadData []byte
	downloadErr  error
	downloaded   []string

	// onEdit, when set, runs before each edit attempt (used to cancel
	// the context after a bounded number of attempts).
	onEdit func(n int)
}

var _ adapter.GenMediaAdapter = (*fakeGenMedia)(nil)

func (f *fakeGenMedia) EditImage(ctx context.Context, req model.EditRequest) (adapter.EditOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.editReqs)
	f.editReqs = append(f.editReqs, req)
	if f.onEdit != nil {
		f.onEdit(n + 1)
	}
	step := f.editSteps[min(n, len(f.editSteps)-1)]
	return step.out, step.err
}

func (f *fakeGenMedia) GenerateImage(ctx context.Context, req model.GenerationRequest) (model.MediaBlob, error) {
	return f.genBlob, f.genErr
}

func (f *fakeGenMedia) SubmitVideoJob(ctx context.Context, req model.VideoJobRequest) (model.VideoOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	return f.submitOp, f.submitErr
}

func (f *fakeGenMedia) PollVideoJob(ctx context.Context, op model.VideoOperation) (model.VideoOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.polls)
	f.polls = append(f.polls, op)
	step := f.pollSteps[min(n, len(f.pollSteps)-1)]
	return step.op, step.err
}

func (f *fakeGenMedia) DownloadResult(ctx context.Context, uri string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloaded = append(f.downloaded, uri)
	return f.downloadData, f.downloadErr
}

func (f *fakeGenMedia) editCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.editReqs)
}

// progressRecorder collects narration in call order.
type progressRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (p *progressRecorder) record(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
}
