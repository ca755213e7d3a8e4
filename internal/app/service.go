// Package service wires fetching and rendering into a single run: fetch
// every requested user, then print the report.
package service

import (
	"context"
	"io"
	"os"

	"github.com/okian/territoriali/internal/domain/model"
	"github.com/okian/territoriali/pkg/logger"
	"github.com/okian/territoriali/pkg/metrics"
)

// Fetcher loads the scores of several users, in order, failing on the first error.
type Fetcher interface {
	FetchAll(ctx context.Context, usernames []string) ([]model.Person, error)
}

// Renderer prints a report for a complete set of users.
type Renderer interface {
	Render(w io.Writer, people []model.Person) error
}

// Service runs one report.
type Service struct {
	fetcher  Fetcher
	renderer Renderer
	out      io.Writer
	logger   logger.Logger
	metrics  *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOutput sets where the report is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a Service from a fetcher and a renderer.
func New(fetcher Fetcher, renderer Renderer, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		renderer: renderer,
		out:      os.Stdout,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run fetches every username and renders the report. Nothing is written
// unless every fetch succeeds.
func (s *Service) Run(ctx context.Context, usernames []string) error {
	if len(usernames) == 0 {
		return ErrNoUsernames
	}

	s.logger.Debug(ctx, "fetching users", logger.Int("count", len(usernames)))
	people, err := s.fetcher.FetchAll(ctx, usernames)
	if err != nil {
		return err
	}

	if err := s.renderer.Render(s.out, people); err != nil {
		return err
	}
	s.metrics.SetUsersReported(len(people))
	s.logger.Debug(ctx, "report rendered", logger.Int("users", len(people)))
	return nil
}
