package ai

import (
	"context"

	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.GenMediaAdapter = (*NoopGenMedia)(nil)

// NoopGenMedia is a stand-in for dev mode: every call succeeds instantly
// with a tiny canned artifact and no network traffic.
type NoopGenMedia struct{}

// A valid 1x1 transparent PNG.
var noopPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func NewNoopGenMedia() *NoopGenMedia { return &NoopGenMedia{} }

func (n *NoopGenMedia) EditImage(ctx context.Context, req model.EditRequest) (adapter.EditOutcome, error) {
	return adapter.EditOutcome{Image: &model.MediaBlob{Data: noopPNG, MIMEType: "image/png"}}, nil
}

func (n *NoopGenMedia) GenerateImage(ctx context.Context, req model.GenerationRequest) (model.MediaBlob, error) {
	return model.MediaBlob{Data: noopPNG, MIMEType: "image/png"}, nil
}

func (n *NoopGenMedia) SubmitVideoJob(ctx context.Context, req model.VideoJobRequest) (model.VideoOperation, error) {
	return model.VideoOperation{Name: "noop-job", Done: false}, nil
}

func (n *NoopGenMedia) PollVideoJob(ctx context.Context, op model.VideoOperation) (model.VideoOperation, error) {
	return model.VideoOperation{Name: op.Name, Done: true, ResultURI: "noop://video", ResultMIME: "video/mp4"}, nil
}

func (n *NoopGenMedia) DownloadResult(ctx context.Context, uri string) ([]byte, error) {
	return []byte("noop video payload"), nil
}
