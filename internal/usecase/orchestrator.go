package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"media-studio/internal/domain"
	"media-studio/internal/domain/model"
	"media-studio/internal/infra/metrics"
)

// Flavor narration for the video polling loop, consumed round-robin so
// the progress stream is deterministic for a given number of polls.
var pollMessages = []string{
	"blocking out the key frames",
	"synthesizing motion between frames",
	"compositing light and shadow",
	"refining textures and detail",
	"encoding the final cut",
}

// editWithRetry drives a single edit call until the response carries an
// image part. The model sometimes answers with prose instead of the
// requested image; that is treated as transient and retried at a fixed
// interval, not surfaced. Only a fault from the call itself (or context
// cancellation, or the optional attempt ceiling) ends the loop early.
func (u *mediaUC) editWithRetry(ctx context.Context, op string, req model.EditRequest) (model.MediaBlob, error) {
	start := time.Now()
	for attempt := 1; ; attempt++ {
		out, err := u.ai.EditImage(ctx, req)
		if err != nil {
			metrics.ObserveOperation(op, time.Since(start), false)
			return model.MediaBlob{}, opError(op, err)
		}
		if out.Image != nil {
			metrics.ObserveOperation(op, time.Since(start), true)
			return *out.Image, nil
		}

		ev := u.log.Debug().Str("op", op).Int("attempt", attempt)
		if out.Text != "" {
			ev = ev.Str("model_said", out.Text)
		}
		ev.Msg("response had no image part, retrying")
		metrics.IncEditRetry(op)

		if u.maxAttempts > 0 && attempt >= u.maxAttempts {
			metrics.ObserveOperation(op, time.Since(start), false)
			return model.MediaBlob{}, opError(op, domain.ErrAttemptsExhausted)
		}
		if err := sleep(ctx, u.retryDelay); err != nil {
			metrics.ObserveOperation(op, time.Since(start), false)
			return model.MediaBlob{}, opError(op, err)
		}
	}
}

// runVideoJob submits a video generation job and polls it to completion,
// then downloads the finished artifact. Unlike the edit loop, any fault
// here is fatal: the job runs for minutes, so silently restarting it
// behind the caller's back would be worse than failing.
func (u *mediaUC) runVideoJob(ctx context.Context, req model.VideoJobRequest, progress ProgressFunc) (model.MediaBlob, error) {
	const op = "video generation"
	start := time.Now()
	fail := func(err error) (model.MediaBlob, error) {
		metrics.ObserveOperation(op, time.Since(start), false)
		return model.MediaBlob{}, opError(op, err)
	}

	emit(progress, "initializing")
	job, err := u.ai.SubmitVideoJob(ctx, req)
	if err != nil {
		return fail(err)
	}
	u.log.Info().Str("job", job.Name).Msg("video job submitted")

	for i := 0; !job.Done; i++ {
		emit(progress, pollMessages[i%len(pollMessages)])
		if err := sleep(ctx, u.pollInterval); err != nil {
			return fail(err)
		}
		// Poll with the freshest handle; the service may replace it.
		job, err = u.ai.PollVideoJob(ctx, job)
		if err != nil {
			return fail(err)
		}
		metrics.IncVideoPoll()
	}

	if job.FailureReason != "" {
		return fail(errors.New(job.FailureReason))
	}
	if job.ResultURI == "" {
		return fail(domain.ErrNoResultLocator)
	}

	emit(progress, "fetching result")
	data, err := u.ai.DownloadResult(ctx, job.ResultURI)
	if err != nil {
		return fail(err)
	}
	mime := job.ResultMIME
	if mime == "" {
		mime = "video/mp4"
	}
	metrics.ObserveOperation(op, time.Since(start), true)
	return model.MediaBlob{Data: data, MIMEType: mime}, nil
}

func emit(progress ProgressFunc, msg string) {
	if progress != nil {
		progress(msg)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// opError translates a fault into the single user-facing message for an
// operation, keeping the cause in the chain.
func opError(op string, err error) error {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		err = domain.ErrUnknown
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
