package worker

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/repository"
	"media-studio/internal/infra/metrics"
	"media-studio/internal/usecase"
)

// RenderRunner executes video generations off the request path. The HTTP
// layer gets a job id back immediately; the job record in the store is
// the only window into the run after that.
type RenderRunner struct {
	jobs  repository.RenderJobRepository
	media usecase.MediaUseCase
	pool  *Pool
	log   *zerolog.Logger
}

func NewRenderRunner(jobs repository.RenderJobRepository, media usecase.MediaUseCase, pool *Pool, logger *zerolog.Logger) *RenderRunner {
	return &RenderRunner{jobs: jobs, media: media, pool: pool, log: logger}
}

// StartVideo registers a new render job and schedules it. The returned id
// can be polled via the job store.
func (r *RenderRunner) StartVideo(ctx context.Context, req model.VideoJobRequest) (string, error) {
	id := ulid.Make().String()
	job := model.NewRenderJob(id, req.Prompt)
	if err := r.jobs.Save(ctx, job); err != nil {
		return "", err
	}

	if err := r.pool.Submit(func(ctx context.Context) error {
		r.run(ctx, id, req)
		return nil
	}); err != nil {
		job.Status = model.RenderJobStatusFailed
		job.LastError = err.Error()
		_ = r.jobs.Save(ctx, job)
		return "", err
	}
	return id, nil
}

func (r *RenderRunner) run(ctx context.Context, id string, req model.VideoJobRequest) {
	log := r.log.With().Str("job_id", id).Logger()
	log.Info().Msg("render job started")
	start := time.Now()

	job, err := r.jobs.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("render job vanished before start")
		return
	}
	job.Status = model.RenderJobStatusProcessing
	_ = r.jobs.Save(ctx, job)

	progress := func(msg string) {
		_ = r.jobs.AppendProgress(ctx, id, msg)
	}
	result, err := r.media.GenerateVideo(ctx, req, progress)

	job, ferr := r.jobs.FindByID(ctx, id)
	if ferr != nil {
		log.Error().Err(ferr).Msg("render job vanished before finish")
		return
	}
	if err != nil {
		job.Status = model.RenderJobStatusFailed
		job.LastError = err.Error()
		log.Error().Err(err).Msg("render job failed")
	} else {
		job.Status = model.RenderJobStatusCompleted
		job.Result = &result
	}
	metrics.IncRenderJob(string(job.Status))
	_ = r.jobs.Save(ctx, job)
	log.Info().Str("status", string(job.Status)).Dur("duration", time.Since(start)).Msg("render job finished")
}
