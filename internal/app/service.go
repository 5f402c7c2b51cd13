// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/pkg/logger"
	"github.com/okian/habitat/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTracerName = "github.com/okian/habitat/internal/app"

	outcomeScored        = "scored"
	outcomeFlareOverride = "flare_override"

	nanosecondsPerMillisecond = 1e6
)

// Service evaluates planet records and keeps running totals for /stats.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	logger logger.Logger
	tracer trace.Tracer

	startedAt time.Time

	evaluations    atomic.Int64
	flareOverrides atomic.Int64
	failures       atomic.Int64
	penalties      map[habitability.PenaltyKind]*atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer sets the tracer used for evaluation spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New constructs a new Service. Without WithLogger the global logger is
// used, so logger.Init must have been called.
func New(opts ...Option) *Service {
	s := &Service{
		tracer:    otel.Tracer(defaultTracerName),
		startedAt: time.Now(),
		penalties: make(map[habitability.PenaltyKind]*atomic.Int64),
	}
	for _, k := range habitability.PenaltyKinds() {
		s.penalties[k] = &atomic.Int64{}
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Evaluate scores a single record. The only error is a done context, checked
// before any work is done.
func (s *Service) Evaluate(ctx context.Context, r habitability.Record) (habitability.Assessment, error) {
	ctx, span := s.tracer.Start(ctx, "habitability.Evaluate",
		trace.WithAttributes(
			attribute.String("planet.stellar_type", string(r.StellarType)),
			attribute.Float64("planet.equilibrium_temperature", r.EquilibriumTemperature),
			attribute.Float64("planet.radius", r.Radius),
			attribute.Float64("planet.mass", r.Mass),
			attribute.Float64("planet.stellar_luminosity", r.StellarLuminosity),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		s.failures.Add(1)
		metrics.RecordEvaluationError("context")
		span.SetStatus(codes.Error, err.Error())
		return habitability.Assessment{}, fmt.Errorf("%w: %w", ErrEvaluationAborted, err)
	}

	start := time.Now()
	a := habitability.Assess(r)
	metrics.RecordEvaluationLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)

	s.record(a)

	span.SetAttributes(
		attribute.Float64("habitability.score", a.Score),
		attribute.Bool("habitability.flare_override", a.FlareOverride),
		attribute.Int("habitability.penalties", len(a.Penalties)),
	)
	s.logger.Debug(ctx, "planet evaluated",
		logger.Float64("score", a.Score),
		logger.Bool("flareOverride", a.FlareOverride),
		logger.Int("penalties", len(a.Penalties)),
		logger.String("stellarType", string(r.StellarType)),
	)
	return a, nil
}

func (s *Service) record(a habitability.Assessment) {
	s.evaluations.Add(1)
	outcome := outcomeScored
	if a.FlareOverride {
		s.flareOverrides.Add(1)
		outcome = outcomeFlareOverride
	}
	for _, p := range a.Penalties {
		if c, ok := s.penalties[p.Kind]; ok {
			c.Add(1)
		}
		metrics.RecordPenalty(string(p.Kind))
	}
	metrics.RecordEvaluation(outcome, a.Score)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	penalties := make(map[string]int64, len(s.penalties))
	for k, c := range s.penalties {
		penalties[string(k)] = c.Load()
	}
	return map[string]interface{}{
		"evaluations":    s.evaluations.Load(),
		"flareOverrides": s.flareOverrides.Load(),
		"failures":       s.failures.Load(),
		"penalties":      penalties,
		"uptimeSeconds":  int64(time.Since(s.startedAt).Seconds()),
	}
}
