package repository

import (
	"context"

	"media-studio/internal/domain/model"
)

// RenderJobRepository stores in-flight and finished video jobs for the
// lifetime of the process.
type RenderJobRepository interface {
	Save(ctx context.Context, job *model.RenderJob) error
	FindByID(ctx context.Context, id string) (*model.RenderJob, error)
	AppendProgress(ctx context.Context, id, message string) error
	List(ctx context.Context) ([]*model.RenderJob, error)
}
