package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"media-studio/internal/domain"
	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/repository"
	"media-studio/internal/infra/logging"
	red "media-studio/internal/infra/redis"
	"media-studio/internal/infra/worker"
	"media-studio/internal/usecase"
)

// Server exposes the media operations over HTTP. Image operations run
// synchronously on the request (the retry loop stops when the client
// goes away, via the request context); video generation runs as an
// async job polled through /videos/jobs/{id}.
type Server struct {
	media        usecase.MediaUseCase
	runner       *worker.RenderRunner
	jobs         repository.RenderJobRepository
	apiKey       string
	imageTimeout time.Duration
	limiter      *red.RateLimiter
	perMinute    int
	log          *zerolog.Logger
}

func NewServer(
	media usecase.MediaUseCase,
	runner *worker.RenderRunner,
	jobs repository.RenderJobRepository,
	apiKey string,
	imageTimeout time.Duration,
	limiter *red.RateLimiter,
	perMinute int,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		media:        media,
		runner:       runner,
		jobs:         jobs,
		apiKey:       apiKey,
		imageTimeout: imageTimeout,
		limiter:      limiter,
		perMinute:    perMinute,
		log:          logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), Recover(s.log), RequestLog(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuth(s.apiKey), RateLimit(s.limiter, s.perMinute, s.log))

		// Image operations run on the request, so they alone get a
		// deadline; video jobs detach immediately.
		r.Group(func(r chi.Router) {
			r.Use(Timeout(s.imageTimeout))
			r.Post("/images/edits", s.handleEdit)
			r.Post("/images/outpaints", s.handleOutpaint)
			r.Post("/images/upscales", s.handleUpscale)
			r.Post("/images/generations", s.handleGenerateImage)
		})

		r.Post("/videos/generations", s.handleGenerateVideo)
		r.Get("/videos/jobs/{id}", s.handleJobStatus)
		r.Get("/videos/jobs/{id}/content", s.handleJobContent)
	})
	return r
}

type mediaRequest struct {
	Prompt   string `json:"prompt"`
	Image    string `json:"image"` // base64-encoded payload
	MIMEType string `json:"mime_type"`
}

func (req *mediaRequest) blob() (model.MediaBlob, error) {
	if req.Image == "" {
		return model.MediaBlob{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return model.MediaBlob{}, domain.ErrInvalidArgument
	}
	mime := req.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return model.MediaBlob{Data: data, MIMEType: mime}, nil
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	req, img, ok := s.decode(w, r)
	if !ok {
		return
	}
	blob, err := s.media.EditImage(r.Context(), img, req.Prompt)
	s.respondImage(w, r, blob, err)
}

func (s *Server) handleOutpaint(w http.ResponseWriter, r *http.Request) {
	req, img, ok := s.decode(w, r)
	if !ok {
		return
	}
	blob, err := s.media.OutpaintImage(r.Context(), img, req.Prompt)
	s.respondImage(w, r, blob, err)
}

func (s *Server) handleUpscale(w http.ResponseWriter, r *http.Request) {
	_, img, ok := s.decode(w, r)
	if !ok {
		return
	}
	blob, err := s.media.UpscaleImage(r.Context(), img)
	s.respondImage(w, r, blob, err)
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	req, _, ok := s.decode(w, r)
	if !ok {
		return
	}
	blob, err := s.media.GenerateImage(r.Context(), req.Prompt)
	s.respondImage(w, r, blob, err)
}

func (s *Server) handleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	req, img, ok := s.decode(w, r)
	if !ok {
		return
	}
	vreq := model.VideoJobRequest{Prompt: req.Prompt}
	if len(img.Data) > 0 {
		vreq.SeedImage = &img
	}
	id, err := s.runner.StartVideo(r.Context(), vreq)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusAccepted, map[string]string{"job_id": id})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"id":       job.ID,
		"status":   job.Status,
		"progress": job.Progress,
		"error":    job.LastError,
	})
}

func (s *Server) handleJobContent(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if job.Result == nil {
		s.respondError(w, r, domain.ErrResultNotReady)
		return
	}
	w.Header().Set("Content-Type", job.Result.MIMEType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(job.Result.Data)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (mediaRequest, model.MediaBlob, bool) {
	var req mediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, model.MediaBlob{}, false
	}
	img, err := req.blob()
	if err != nil {
		http.Error(w, "image is not valid base64", http.StatusBadRequest)
		return req, model.MediaBlob{}, false
	}
	return req, img, true
}

func (s *Server) respondImage(w http.ResponseWriter, r *http.Request, blob model.MediaBlob, err error) {
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", blob.MIMEType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob.Data)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway // upstream fault unless we know better
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrMissingImage),
		errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrJobNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrResultNotReady):
		status = http.StatusConflict
	}
	if status >= 500 {
		logging.With(r.Context(), s.log).Error().Err(err).Msg("operation failed")
	}
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
