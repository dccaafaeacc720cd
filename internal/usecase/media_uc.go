package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"media-studio/internal/domain"
	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/adapter"
	"media-studio/internal/infra/logging"
	"media-studio/internal/infra/metrics"
)

// Compile-time check
var _ MediaUseCase = (*mediaUC)(nil)

// ProgressFunc receives human-readable narration while a long job runs.
// It is purely observational and never influences the outcome.
type ProgressFunc func(message string)

type MediaUseCase interface {
	EditImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error)
	OutpaintImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error)
	UpscaleImage(ctx context.Context, image model.MediaBlob) (model.MediaBlob, error)
	GenerateImage(ctx context.Context, prompt string) (model.MediaBlob, error)
	GenerateVideo(ctx context.Context, req model.VideoJobRequest, progress ProgressFunc) (model.MediaBlob, error)
}

const (
	// Used when outpainting is requested without a prompt of its own.
	defaultOutpaintPrompt = "Extend the image beyond its current borders, continuing the scene seamlessly in every direction. Match the existing lighting, colors, and style exactly."

	// Upscaling never takes a caller prompt.
	upscalePrompt = "Upscale this image to a higher resolution. Sharpen fine detail and textures without changing the composition, style, or content in any way."
)

type mediaUC struct {
	ai  adapter.GenMediaAdapter
	log *zerolog.Logger

	// maxAttempts caps the edit retry loop; 0 means retry until the
	// remote call either yields an image or faults.
	maxAttempts  int
	retryDelay   time.Duration
	pollInterval time.Duration
}

func NewMediaUseCase(ai adapter.GenMediaAdapter, maxAttempts int, retryDelay, pollInterval time.Duration, logger *zerolog.Logger) *mediaUC {
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &mediaUC{
		ai:           ai,
		log:          logger,
		maxAttempts:  maxAttempts,
		retryDelay:   retryDelay,
		pollInterval: pollInterval,
	}
}

func (u *mediaUC) EditImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error) {
	defer logging.TraceDuration(u.log, "MediaUC.EditImage")()
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return model.MediaBlob{}, domain.ErrEmptyPrompt
	}
	if len(image.Data) == 0 {
		return model.MediaBlob{}, domain.ErrMissingImage
	}
	return u.editWithRetry(ctx, "image editing", model.EditRequest{Image: image, Prompt: prompt})
}

func (u *mediaUC) OutpaintImage(ctx context.Context, image model.MediaBlob, prompt string) (model.MediaBlob, error) {
	defer logging.TraceDuration(u.log, "MediaUC.OutpaintImage")()
	if len(image.Data) == 0 {
		return model.MediaBlob{}, domain.ErrMissingImage
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = defaultOutpaintPrompt
	}
	return u.editWithRetry(ctx, "outpainting", model.EditRequest{Image: image, Prompt: prompt})
}

func (u *mediaUC) UpscaleImage(ctx context.Context, image model.MediaBlob) (model.MediaBlob, error) {
	defer logging.TraceDuration(u.log, "MediaUC.UpscaleImage")()
	if len(image.Data) == 0 {
		return model.MediaBlob{}, domain.ErrMissingImage
	}
	return u.editWithRetry(ctx, "upscaling", model.EditRequest{Image: image, Prompt: upscalePrompt})
}

func (u *mediaUC) GenerateImage(ctx context.Context, prompt string) (model.MediaBlob, error) {
	defer logging.TraceDuration(u.log, "MediaUC.GenerateImage")()
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return model.MediaBlob{}, domain.ErrEmptyPrompt
	}

	// A single call: this endpoint has not been observed to drop the
	// image the way edits do, so an empty response fails fast.
	start := time.Now()
	blob, err := u.ai.GenerateImage(ctx, model.GenerationRequest{Prompt: prompt})
	metrics.ObserveOperation("image generation", time.Since(start), err == nil)
	if err != nil {
		return model.MediaBlob{}, opError("image generation", err)
	}
	return blob, nil
}

func (u *mediaUC) GenerateVideo(ctx context.Context, req model.VideoJobRequest, progress ProgressFunc) (model.MediaBlob, error) {
	defer logging.TraceDuration(u.log, "MediaUC.GenerateVideo")()
	if strings.TrimSpace(req.Prompt) == "" {
		return model.MediaBlob{}, domain.ErrEmptyPrompt
	}
	return u.runVideoJob(ctx, req, progress)
}
