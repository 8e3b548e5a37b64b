package runner

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/selimozcann/doicheck/internal/model"
	"github.com/selimozcann/doicheck/internal/output"
	"github.com/selimozcann/doicheck/internal/trace"
)

// Tracer follows the redirect chain of a single URL.
type Tracer interface {
	Trace(ctx context.Context, target string) model.Result
}

// Config holds settings for the runner.
type Config struct {
	Policy trace.Policy
}

// Runner checks records one after another, in input order.
type Runner struct {
	cfg     Config
	tracer  Tracer
	printer *output.Printer
	log     zerolog.Logger
}

// New creates a new Runner.
func New(cfg Config, tracer Tracer, printer *output.Printer, log zerolog.Logger) *Runner {
	if cfg.Policy == "" {
		cfg.Policy = trace.PolicyHistory
	}
	return &Runner{cfg: cfg, tracer: tracer, printer: printer, log: log}
}

// Run checks every record exactly once and returns the tally. Per-record
// failures are printed and counted, never returned. Run stops early only
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, records []model.Record) model.Summary {
	var sum model.Summary
	for _, rec := range records {
		if ctx.Err() != nil {
			r.log.Warn().Int("remaining", len(records)-sum.Total).Msg("run interrupted")
			break
		}
		sum = sum.Add(r.Check(ctx, rec))
	}
	r.log.Info().Int("total", sum.Total).Int("resolved", sum.Resolved).Int("failed", sum.Failed).Msg("run finished")
	return sum
}

// Check resolves one record and prints its progress and result lines.
func (r *Runner) Check(ctx context.Context, rec model.Record) model.Outcome {
	r.printer.PrintChecking(rec)

	res := r.tracer.Trace(ctx, rec.DOI)
	out := model.Outcome{Record: rec, Kind: res.Kind, Err: res.Err}
	if !res.Failed() {
		out.Resolved = trace.Resolve(res.Chain, r.cfg.Policy)
		if out.Resolved != rec.Standard {
			out.Kind = model.FailureMismatch
		}
	}

	r.printer.PrintOutcome(out)
	r.log.Debug().
		Int("line", rec.Line).
		Str("doi", rec.DOI).
		Str("resolved", out.Resolved).
		Str("kind", string(out.Kind)).
		Int("hops", len(res.Chain)).
		Int64("duration_ms", res.DurationMs).
		Msg("checked")
	return out
}
