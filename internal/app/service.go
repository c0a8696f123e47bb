// Package service orchestrates one page load: choose the identifier, resolve
// it, present the outcome and fall back to the default identifier once.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okian/shares/internal/domain/cik"
	"github.com/okian/shares/internal/domain/shares"
	"github.com/okian/shares/internal/presenter"
	"github.com/okian/shares/internal/resolver"
	"github.com/okian/shares/pkg/logger"
	"github.com/okian/shares/pkg/metrics"
)

// Resolver is the capability the orchestrator needs from the resolver package.
type Resolver interface {
	Resolve(ctx context.Context, id string) (shares.Result, error)
}

// Attempt records one resolver call.
type Attempt struct {
	CIK    string         `json:"cik"`
	Result *shares.Result `json:"result,omitempty"`
	Kind   resolver.Kind  `json:"failure,omitempty"`
	Err    error          `json:"-"`
}

// OK reports whether the attempt produced a result.
func (a *Attempt) OK() bool { return a != nil && a.Result != nil }

// Report describes how a page load unfolded.
type Report struct {
	RequestID string        `json:"request_id"`
	Requested string        `json:"requested"`
	Primary   Attempt       `json:"primary"`
	Fallback  *Attempt      `json:"fallback,omitempty"`
	Duration  time.Duration `json:"-"`
}

// Final returns the result that ended up rendered, or nil.
func (r Report) Final() *shares.Result {
	if r.Fallback != nil {
		return r.Fallback.Result
	}
	return r.Primary.Result
}

// Service runs page loads against a resolver and presenter.
type Service struct {
	resolver   Resolver
	presenter  *presenter.Presenter
	defaultCIK string
	logger     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDefaultCIK sets the identifier used for invalid input and for the fallback.
func WithDefaultCIK(id string) Option {
	return func(s *Service) {
		if cik.Valid(id) {
			s.defaultCIK = id
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

// New constructs a Service.
func New(r Resolver, p *presenter.Presenter, opts ...Option) *Service {
	s := &Service{
		resolver:   r,
		presenter:  p,
		defaultCIK: cik.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// DefaultCIK returns the configured default identifier.
func (s *Service) DefaultCIK() string { return s.defaultCIK }

// Run performs one page load for raw and presents the outcome into sink.
// The resolver is called at most twice, one call after the other.
func (s *Service) Run(ctx context.Context, raw string, sink presenter.Sink) Report {
	start := time.Now()
	rep := Report{RequestID: uuid.NewString(), Requested: raw}

	// Init
	id, custom := cik.Choose(raw, s.defaultCIK)
	if raw != "" && raw != id {
		s.logger.Debug(ctx, "identifier rejected; using default",
			logger.String("request_id", rep.RequestID),
			logger.String("requested", raw),
			logger.String("cik", id),
		)
	}

	// Primary
	rep.Primary = s.attempt(ctx, id)
	s.presenter.Present(sink, rep.Primary.Result)

	// Fallback
	if !rep.Primary.OK() && custom {
		s.logger.Info(ctx, "primary resolution failed; falling back to default",
			logger.String("request_id", rep.RequestID),
			logger.String("cik", id),
			logger.String("kind", string(rep.Primary.Kind)),
			logger.String("fallback_cik", s.defaultCIK),
		)
		metrics.RecordFallback()
		fb := s.attempt(ctx, s.defaultCIK)
		rep.Fallback = &fb
		s.presenter.Present(sink, fb.Result)
	}

	// Done
	rep.Duration = time.Since(start)
	s.logger.Info(ctx, "page load finished",
		logger.String("request_id", rep.RequestID),
		logger.String("cik", id),
		logger.Bool("fallback", rep.Fallback != nil),
		logger.Bool("rendered", rep.Final() != nil),
		logger.Duration("duration", rep.Duration),
	)
	return rep
}

func (s *Service) attempt(ctx context.Context, id string) Attempt {
	res, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return Attempt{CIK: id, Kind: resolver.KindOf(err), Err: err}
	}
	return Attempt{CIK: id, Result: &res}
}
