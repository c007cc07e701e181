package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gogotex/entertext/internal/record"
	"github.com/gogotex/entertext/internal/record/repository"
	"github.com/gogotex/entertext/pkg/apperror"
	"github.com/gogotex/entertext/pkg/logger"
	"github.com/gogotex/entertext/pkg/metrics"
	"github.com/google/uuid"
)

// Service is the set of record operations exposed to the RPC handler and the page.
type Service interface {
	// GetContent returns the stored text, or record.EmptySentinel when nothing is stored.
	GetContent(ctx context.Context) (string, error)
	// SaveContent overwrites the record and returns the written content.
	SaveContent(ctx context.Context, content string) (string, error)
	// DeleteContent removes the record; it succeeds when nothing is stored.
	DeleteContent(ctx context.Context) error
}

// New returns a Service operating on the single record id in repo.
func New(repo repository.Repository, id uuid.UUID) Service {
	return &recordService{repo: repo, id: id}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(id uuid.UUID) Service {
	return New(repository.NewMemoryRepo(), id)
}

type recordService struct {
	repo repository.Repository
	id   uuid.UUID
}

func (s *recordService) GetContent(ctx context.Context) (content string, err error) {
	defer observe("get", time.Now(), &err)
	rec, err := s.repo.Get(ctx, s.id)
	if errors.Is(err, record.ErrNotFound) {
		return record.EmptySentinel, nil
	}
	if err != nil {
		return "", apperror.Internal("read error", err)
	}
	return rec.Content, nil
}

func (s *recordService) SaveContent(ctx context.Context, content string) (_ string, err error) {
	defer observe("save", time.Now(), &err)
	if strings.TrimSpace(content) == "" {
		return "", apperror.Invalid("Empty", record.ErrEmptyContent)
	}
	if err := s.repo.Upsert(ctx, s.id, content); err != nil {
		return "", apperror.Internal("write error", err)
	}
	return content, nil
}

func (s *recordService) DeleteContent(ctx context.Context) (err error) {
	defer observe("delete", time.Now(), &err)
	if err := s.repo.Delete(ctx, s.id); err != nil {
		return apperror.Internal("delete error", err)
	}
	return nil
}

func observe(op string, start time.Time, errp *error) {
	metrics.RecordOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	switch err := *errp; {
	case err == nil:
	case errors.Is(err, record.ErrEmptyContent):
		result = "invalid"
	default:
		result = "error"
		logger.Errorf("record %s failed: %v", op, err)
	}
	metrics.RecordOperations.WithLabelValues(op, result).Inc()
	logger.Debugf("record %s: %s in %s", op, result, time.Since(start))
}
