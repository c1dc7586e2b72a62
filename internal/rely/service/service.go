// Package service orchestrates one scoring request: validate the identifier,
// fetch a repository snapshot, reduce the metrics and assemble the result.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/build-flow-labs/rely/internal/rely/metric"
	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/build-flow-labs/rely/internal/rely/score"
	"github.com/google/uuid"
)

// Result is the outcome of scoring one repository.
type Result struct {
	RequestID    string              `json:"request_id" yaml:"request_id"`
	RepoURL      string              `json:"repo_url" yaml:"repo_url"`
	Owner        string              `json:"owner" yaml:"owner"`
	Name         string              `json:"name" yaml:"name"`
	OverallScore float64             `json:"overall_score" yaml:"overall_score"`
	Percent      int                 `json:"overall_score_percent" yaml:"overall_score_percent"`
	Grade        string              `json:"grade" yaml:"grade"`
	License      string              `json:"license,omitempty" yaml:"license,omitempty"`
	ScoredAt     time.Time           `json:"scored_at" yaml:"scored_at"`
	Metrics      []metric.Serialized `json:"metrics" yaml:"metrics"`

	// Summary holds the exact decimal score OverallScore was converted from.
	Summary *score.Summary `json:"-" yaml:"-"`
}

// Service scores repositories. It is safe for concurrent use.
type Service struct {
	forge    repo.Fetcher
	registry *metric.Registry
	now      func() time.Time
	logger   *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock used as each snapshot's evaluation instant.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service scoring with every metric in registry.
func New(forge repo.Fetcher, registry *metric.Registry, opts ...Option) (*Service, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, fmt.Errorf("creating scoring service: %w", metric.ErrEmptyRegistry)
	}
	s := &Service{
		forge:    forge,
		registry: registry,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// ScoreRepository scores the repository at rawURL. A malformed URL fails with
// a *repo.ValidationError before any network access.
func (s *Service) ScoreRepository(ctx context.Context, rawURL string) (*Result, error) {
	id, err := repo.ParseIdentifier(rawURL)
	if err != nil {
		return nil, err
	}
	return s.ScoreIdentifier(ctx, id)
}

// ScoreIdentifier scores the repository id names. id is checked again so
// that hand-built identifiers cannot reach the API with unsafe segments.
func (s *Service) ScoreIdentifier(ctx context.Context, id repo.Identifier) (*Result, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "repo", id.FullName())
	start := time.Now()
	logger.Debug("scoring repository")

	snap, err := repo.Fetch(ctx, s.forge, id, s.now())
	if err != nil {
		logger.Warn("fetching repository failed", "error", err)
		return nil, err
	}

	summary, err := score.Evaluate(s.registry.All(), snap)
	if err != nil {
		logger.Error("reducing metrics failed", "error", err)
		return nil, err
	}

	logger.Info("repository scored",
		"overall", summary.Overall.String(),
		"grade", summary.Grade,
		"duration", time.Since(start),
	)

	return &Result{
		RequestID:    requestID,
		RepoURL:      id.URL(),
		Owner:        id.Owner,
		Name:         id.Name,
		OverallScore: summary.Overall.InexactFloat64(),
		Percent:      summary.Percent,
		Grade:        summary.Grade,
		License:      snap.Metadata().License,
		ScoredAt:     snap.EvaluatedAt(),
		Metrics:      summary.Metrics,
		Summary:      summary,
	}, nil
}
