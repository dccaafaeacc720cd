package store

import (
	"context"
	"sync"
	"time"

	"media-studio/internal/domain"
	"media-studio/internal/domain/model"
	"media-studio/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.RenderJobRepository = (*MemoryJobStore)(nil)

// MemoryJobStore keeps render jobs for the lifetime of the process.
// Results are session-scoped on purpose; there is no durable storage.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*model.RenderJob
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: make(map[string]*model.RenderJob)}
}

func (s *MemoryJobStore) Save(ctx context.Context, job *model.RenderJob) error {
	if job == nil || job.ID == "" {
		return domain.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job.UpdatedAt = time.Now()
	cp := *job
	cp.Progress = append([]string(nil), job.Progress...)
	s.jobs[job.ID] = &cp
	return nil
}

func (s *MemoryJobStore) FindByID(ctx context.Context, id string) (*model.RenderJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := *job
	cp.Progress = append([]string(nil), job.Progress...)
	return &cp, nil
}

func (s *MemoryJobStore) AppendProgress(ctx context.Context, id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	job.Progress = append(job.Progress, message)
	job.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryJobStore) List(ctx context.Context) ([]*model.RenderJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.RenderJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		cp := *job
		cp.Progress = append([]string(nil), job.Progress...)
		out = append(out, &cp)
	}
	return out, nil
}
