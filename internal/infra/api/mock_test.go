package api

import (
	"context"

	"media-studio/internal/domain/model"
	"media-studio/internal/usecase"
)

// fakeMedia scripts one outcome for every operation and records the
// prompts it was handed. editHook, when set, runs before the scripted
// edit outcome (used to simulate a stuck provider).
type fakeMedia struct {
	blob     model.MediaBlob
	err      error
	prompts  []string
	editHook func(ctx context.Context) error
}

var _ usecase.MediaUseCase = (*fakeMedia)(nil)

func (f *fakeMedia) EditImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error) {
	f.prompts = append(f.prompts, prompt)
	if f.editHook != nil {
		if err := f.editHook(ctx); err != nil {
			return model.MediaBlob{}, err
		}
	}
	return f.blob, f.err
}

func (f *fakeMedia) OutpaintImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error) {
	f.prompts = append(f.prompts, prompt)
	return f.blob, f.err
}

func (f *fakeMedia) UpscaleImage(ctx context.Context, image model.MediaBlob) (model.MediaBlob, error) {
	return f.blob, f.err
}

func (f *fakeMedia) GenerateImage(ctx context.Context, prompt string) (model.MediaBlob, error) {
	f.prompts = append(f.prompts, prompt)
	return f.blob, f.err
}

func (f *fakeMedia) GenerateVideo(ctx context.Context, req model.VideoJobRequest, progress usecase.ProgressFunc) (model.MediaBlob, error) {
	f.prompts = append(f.prompts, req.Prompt)
	if progress != nil {
		progress("initializing")
		progress("fetching result")
	}
	return f.blob, f.err
}
