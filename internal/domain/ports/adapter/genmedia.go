package adapter

import (
	"context"

	"media-studio/internal/domain/model"
)

// EditOutcome is the result of a single edit attempt. The remote model
// sometimes answers with prose instead of the requested image; in that
// case Image is nil and Text carries whatever explanation it gave.
type EditOutcome struct {
	Image *model.MediaBlob
	Text  string
}

// GenMediaAdapter is the port for the remote generative-media provider.
type GenMediaAdapter interface {
	// EditImage performs exactly one edit attempt. A response without an
	// image part is not an error; it is reported via EditOutcome.
	EditImage(ctx context.Context, req model.EditRequest) (EditOutcome, error)

	// GenerateImage produces a new image from a prompt. Returns
	// domain.ErrEmptyResponse when the provider returns zero images.
	GenerateImage(ctx context.Context, req model.GenerationRequest) (model.MediaBlob, error)

	// SubmitVideoJob starts a long-running video generation and returns
	// its operation handle.
	SubmitVideoJob(ctx context.Context, req model.VideoJobRequest) (model.VideoOperation, error)

	// PollVideoJob queries job status. The returned operation supersedes
	// the one passed in.
	PollVideoJob(ctx context.Context, op model.VideoOperation) (model.VideoOperation, error)

	// DownloadResult retrieves the finished artifact behind a result
	// locator, handling provider authorization.
	DownloadResult(ctx context.Context, uri string) ([]byte, error)
}
