package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"media-studio/internal/domain/model"
	"media-studio/internal/infra/store"
	"media-studio/internal/usecase"
)

var _ usecase.MediaUseCase = (*fakeMedia)(nil)

type fakeMedia struct {
	result model.MediaBlob
	err    error
}

func (f *fakeMedia) EditImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error) {
	return f.result, f.err
}
func (f *fakeMedia) OutpaintImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error) {
	return f.result, f.err
}
func (f *fakeMedia) UpscaleImage(ctx context.Context, image model.MediaBlob) (model.MediaBlob, error) {
	return f.result, f.err
}
func (f *fakeMedia) GenerateImage(ctx context.Context, prompt string) (model.MediaBlob, error) {
	return f.result, f.err
}

func (f *fakeMedia) GenerateVideo(ctx context.Context, req model.VideoJobRequest, progress usecase.ProgressFunc) (model.MediaBlob, error) {
	progress("initializing")
	progress("fetching result")
	return f.result, f.err
}

func waitTerminal(t *testing.T, jobs *store.MemoryJobStore, id string) *model.RenderJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := jobs.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if job.Terminal() {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job never reached a terminal state")
	return nil
}

func newRunner(t *testing.T, media *fakeMedia) (*RenderRunner, *store.MemoryJobStore) {
	t.Helper()
	l := zerolog.Nop()
	jobs := store.NewMemoryJobStore()
	pool := NewPool(2, &l)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	t.Cleanup(func() {
		cancel()
		pool.Stop()
	})
	return NewRenderRunner(jobs, media, pool, &l), jobs
}

func TestStartVideoCompletes(t *testing.T) {
	media := &fakeMedia{result: model.MediaBlob{Data: []byte("clip"), MIMEType: "video/mp4"}}
	runner, jobs := newRunner(t, media)

	id, err := runner.StartVideo(context.Background(), model.VideoJobRequest{Prompt: "a cat running"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	job := waitTerminal(t, jobs, id)
	if job.Status != model.RenderJobStatusCompleted {
		t.Fatalf("status = %s, err = %s", job.Status, job.LastError)
	}
	if job.Result == nil || string(job.Result.Data) != "clip" {
		t.Fatalf("result = %+v", job.Result)
	}
	if len(job.Progress) != 2 || job.Progress[0] != "initializing" {
		t.Fatalf("progress = %v", job.Progress)
	}
}

func TestStartVideoFailure(t *testing.T) {
	media := &fakeMedia{err: errors.New("video generation failed: boom")}
	runner, jobs := newRunner(t, media)

	id, err := runner.StartVideo(context.Background(), model.VideoJobRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	job := waitTerminal(t, jobs, id)
	if job.Status != model.RenderJobStatusFailed {
		t.Fatalf("status = %s", job.Status)
	}
	if job.LastError != "video generation failed: boom" {
		t.Fatalf("error = %q", job.LastError)
	}
	if job.Result != nil {
		t.Fatal("failed job must not carry a partial result")
	}
}
