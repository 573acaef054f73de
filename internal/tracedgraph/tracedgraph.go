// Package tracedgraph wraps the SUF and e-graph cores with optional
// OpenTelemetry spans. The wrapping lives outside internal/suf and
// internal/egraph so the core operations carry no span or tracer
// overhead when tracing is off; this package is the one place that pays
// for span creation, and only when an operator has opted in.
package tracedgraph

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sufgraph/suf/internal/egraph"
	"github.com/sufgraph/suf/internal/slot"
	"github.com/sufgraph/suf/internal/suf"
	"github.com/sufgraph/suf/pkg/telemetry"
)

const tracerName = "github.com/sufgraph/suf/internal/tracedgraph"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// SUF wraps suf.SUF, adding a span around each public operation when
// telemetry.Enabled() is true. With tracing disabled it forwards
// directly, matching the untraced core's performance.
type SUF struct {
	inner *suf.SUF
}

// NewSUF wraps an existing slotted union-find instance.
func NewSUF(inner *suf.SUF) *SUF {
	return &SUF{inner: inner}
}

// Inner returns the wrapped instance for callers that need direct
// access (e.g. the e-graph collaborator).
func (s *SUF) Inner() *suf.SUF {
	return s.inner
}

func (s *SUF) Alloc(ctx context.Context, arity int) slot.Id {
	if !telemetry.Enabled() {
		return s.inner.Alloc(arity)
	}
	_, span := tracer().Start(ctx, "suf.alloc", trace.WithAttributes(
		attribute.Int("suf.arity", arity),
	))
	defer span.End()
	return s.inner.Alloc(arity)
}

func (s *SUF) Find(ctx context.Context, x slot.AppliedId) slot.AppliedId {
	if !telemetry.Enabled() {
		return s.inner.Find(x)
	}
	_, span := tracer().Start(ctx, "suf.find", trace.WithAttributes(
		attribute.String("suf.input", x.String()),
	))
	defer span.End()
	result := s.inner.Find(x)
	span.SetAttributes(attribute.String("suf.result", result.String()))
	return result
}

func (s *SUF) Union(ctx context.Context, x, y slot.AppliedId) {
	if !telemetry.Enabled() {
		s.inner.Union(x, y)
		return
	}
	_, span := tracer().Start(ctx, "suf.union", trace.WithAttributes(
		attribute.String("suf.lhs", x.String()),
		attribute.String("suf.rhs", y.String()),
	))
	defer span.End()
	s.inner.Union(x, y)
}

func (s *SUF) IsEqual(ctx context.Context, x, y slot.AppliedId) bool {
	if !telemetry.Enabled() {
		return s.inner.IsEqual(x, y)
	}
	_, span := tracer().Start(ctx, "suf.is_equal", trace.WithAttributes(
		attribute.String("suf.lhs", x.String()),
		attribute.String("suf.rhs", y.String()),
	))
	defer span.End()
	result := s.inner.IsEqual(x, y)
	span.SetAttributes(attribute.Bool("suf.result", result))
	return result
}

// EGraph wraps egraph.EGraph the same way SUF wraps suf.SUF.
type EGraph struct {
	inner *egraph.EGraph
}

// NewEGraph wraps an existing e-graph instance.
func NewEGraph(inner *egraph.EGraph) *EGraph {
	return &EGraph{inner: inner}
}

// Inner returns the wrapped e-graph.
func (e *EGraph) Inner() *egraph.EGraph {
	return e.inner
}

func (e *EGraph) Add(ctx context.Context, n egraph.FnNode) slot.AppliedId {
	if !telemetry.Enabled() {
		return e.inner.Add(n)
	}
	_, span := tracer().Start(ctx, "egraph.add", trace.WithAttributes(
		attribute.String("egraph.symbol", n.Symbol),
		attribute.Int("egraph.arity", len(n.Args)),
	))
	defer span.End()
	return e.inner.Add(n)
}

func (e *EGraph) Union(ctx context.Context, x, y slot.AppliedId) {
	if !telemetry.Enabled() {
		e.inner.Union(x, y)
		return
	}
	_, span := tracer().Start(ctx, "egraph.union", trace.WithAttributes(
		attribute.String("egraph.lhs", x.String()),
		attribute.String("egraph.rhs", y.String()),
	))
	defer span.End()
	e.inner.Union(x, y)
}

func (e *EGraph) Find(ctx context.Context, x slot.AppliedId) slot.AppliedId {
	if !telemetry.Enabled() {
		return e.inner.Find(x)
	}
	_, span := tracer().Start(ctx, "egraph.find")
	defer span.End()
	return e.inner.Find(x)
}
