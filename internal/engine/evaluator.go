package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nkatyal/resume-relevance/infrastructure/scorers"
	"github.com/nkatyal/resume-relevance/internal/domain"
	"github.com/nkatyal/resume-relevance/internal/ports"
)

// Engine scores candidate documents against role specifications. It
// owns the four scorers, the capability resolver, and the role corpus,
// and is safe for concurrent use.
type Engine struct {
	config     Config
	resolver   *Resolver
	corpus     *scorers.RoleCorpus
	lexical    *scorers.LexicalScorer
	semantic   *scorers.SemanticScorer
	structural *scorers.StructuralScorer
	reasoning  *scorers.ReasoningScorer
	metrics    ports.MetricsCollector
	logger     *zap.Logger
	tracer     trace.Tracer
}

// Options carries the optional dependencies of the engine. Zero value
// means fully degraded but functional: no backing services, no metrics,
// no logging.
type Options struct {
	// Embedder backs the semantic scorer's primary path. Nil resolves
	// the embedding capability to fallback.
	Embedder ports.Embedder

	// Reasoner backs the reasoning scorer's primary path. Nil resolves
	// the reasoning capability to fallback.
	Reasoner ports.ReasoningClient

	// Metrics receives evaluation metrics. Nil disables recording.
	Metrics ports.MetricsCollector

	// Logger receives engine logs. Nil disables logging.
	Logger *zap.Logger
}

// New creates an engine from a validated configuration. Configuration
// errors are returned immediately; the engine never starts half-valid.
func New(config Config, opts Options) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	corpus := scorers.NewRoleCorpus()
	resolver := NewResolver(opts.Embedder, opts.Reasoner, config.ServiceTimeout.Std(), logger)

	lexical, err := scorers.NewLexicalScorer(config.Lexical, corpus)
	if err != nil {
		return nil, err
	}
	semantic, err := scorers.NewSemanticScorer(opts.Embedder, resolver, corpus)
	if err != nil {
		return nil, err
	}
	reasoning, err := scorers.NewReasoningScorer(opts.Reasoner, resolver)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:     config,
		resolver:   resolver,
		corpus:     corpus,
		lexical:    lexical,
		semantic:   semantic,
		structural: scorers.NewStructuralScorer(),
		reasoning:  reasoning,
		metrics:    opts.Metrics,
		logger:     logger,
		tracer:     otel.Tracer("relevance-engine"),
	}, nil
}

// Resolver exposes the capability resolver for status reporting and
// explicit reset.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// Evaluate scores one candidate document against one role
// specification. Malformed input is the only fatal error class once the
// engine is constructed; backing-service trouble degrades signals
// instead of failing the evaluation.
func (e *Engine) Evaluate(ctx context.Context, role *domain.RoleSpec, candidate *domain.CandidateDoc) (*domain.EvaluationResult, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	e.corpus.Observe(role.RawText)
	return e.evaluate(ctx, role, candidate)
}

// evaluate runs the pipeline for one already-validated role. Batch
// evaluation calls it directly so the role is validated and observed
// once per batch, not once per candidate.
func (e *Engine) evaluate(ctx context.Context, role *domain.RoleSpec, candidate *domain.CandidateDoc) (*domain.EvaluationResult, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.Evaluate",
		trace.WithAttributes(attribute.String("role.title", role.Title)),
	)
	defer span.End()
	start := time.Now()

	if err := candidate.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	e.resolver.Resolve(ctx)

	// The lexical, semantic, and structural signals are independent;
	// reasoning waits for them because its grounding does not.
	var (
		match            *scorers.MatchReport
		semanticScore    domain.SignalScore
		structuralReport *scorers.StructuralReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		match, err = e.lexical.Match(gctx, role, candidate)
		return err
	})
	g.Go(func() error {
		callCtx, cancel := e.serviceContext(gctx)
		defer cancel()
		var err error
		semanticScore, err = e.semantic.Score(callCtx, role, candidate)
		return err
	})
	g.Go(func() error {
		var err error
		structuralReport, err = e.structural.Check(gctx, candidate)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		e.recordCounter("evaluation_errors_total")
		return nil, err
	}

	grounding := scorers.Grounding{
		Matched:        match.MatchedTokens(),
		Missing:        match.MissingMustHave,
		LexicalScore:   match.Score,
		StructuralTips: structuralReport.Tips(),
	}
	callCtx, cancel := e.serviceContext(ctx)
	reasoningScore, narrative, err := e.reasoning.Assess(callCtx, role, candidate, grounding)
	cancel()
	if err != nil {
		span.RecordError(err)
		e.recordCounter("evaluation_errors_total")
		return nil, err
	}

	lexicalScore := domain.SignalScore{
		Dimension:  domain.DimensionLexical,
		Value:      match.Score,
		Capability: domain.CapabilityPrimary,
		Detail:     fmt.Sprintf("%d of %d required skills matched", len(match.MatchedMustHave), len(match.MatchedMustHave)+len(match.MissingMustHave)),
	}
	structuralScore := domain.SignalScore{
		Dimension:  domain.DimensionStructural,
		Value:      structuralReport.Score,
		Capability: domain.CapabilityPrimary,
		Detail:     fmt.Sprintf("%d structural defects", len(structuralReport.Defects)),
	}

	final := e.aggregate(lexicalScore, semanticScore, structuralScore, reasoningScore)
	result := &domain.EvaluationResult{
		ID:             uuid.NewString(),
		Lexical:        lexicalScore,
		Semantic:       semanticScore,
		Structural:     structuralScore,
		Reasoning:      reasoningScore,
		FinalScore:     final,
		Verdict:        domain.VerdictFor(final, e.config.Verdict),
		Gaps:           analyzeGaps(role, candidate, match),
		Feedback:       narrative.Feedback,
		Strengths:      narrative.Strengths,
		Weaknesses:     narrative.Weaknesses,
		StructuralTips: structuralReport.Tips(),
		EvaluatedAt:    time.Now().UTC(),
	}

	span.SetAttributes(
		attribute.Float64("evaluation.final_score", result.FinalScore),
		attribute.String("evaluation.verdict", string(result.Verdict)),
	)
	e.logger.Debug("evaluation complete",
		zap.String("id", result.ID),
		zap.Float64("final_score", result.FinalScore),
		zap.String("verdict", string(result.Verdict)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if e.metrics != nil {
		e.metrics.RecordLatency("evaluation", time.Since(start), nil)
		e.metrics.RecordCounter("evaluations_total", 1, map[string]string{"verdict": string(result.Verdict)})
		e.metrics.RecordHistogram("evaluation_final_score", result.FinalScore, nil)
	}
	return result, nil
}

// BatchItem is one slot of a batch result. Exactly one of Result and
// Err is set; slots align with the input candidate order.
type BatchItem struct {
	// Result is the evaluation outcome, nil when Err is set.
	Result *domain.EvaluationResult

	// Err is the per-candidate failure, nil when Result is set.
	Err error
}

// EvaluateBatch scores many candidates against one role. Evaluations
// run concurrently up to the configured limit, but the returned slice
// always aligns with the input order and one candidate's failure never
// affects another's slot. The returned error is non-nil only for
// whole-batch failures such as an invalid role.
func (e *Engine) EvaluateBatch(ctx context.Context, role *domain.RoleSpec, candidates []*domain.CandidateDoc) ([]BatchItem, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	e.corpus.Observe(role.RawText)

	ctx, span := e.tracer.Start(ctx, "Engine.EvaluateBatch",
		trace.WithAttributes(
			attribute.String("role.title", role.Title),
			attribute.Int("batch.size", len(candidates)),
		),
	)
	defer span.End()

	items := make([]BatchItem, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(e.config.BatchConcurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			if candidate == nil {
				items[i].Err = fmt.Errorf("%w: candidate is nil", domain.ErrMalformedInput)
				return nil
			}
			result, err := e.evaluate(ctx, role, candidate)
			items[i] = BatchItem{Result: result, Err: err}
			return nil
		})
	}
	// Per-candidate errors live in their slots; Wait only propagates
	// panics, so the error is always nil here.
	_ = g.Wait()

	return items, nil
}

// aggregate computes the weighted final score, rounded to the nearest
// integer and clamped to [0,100].
func (e *Engine) aggregate(lexical, semantic, structural, reasoning domain.SignalScore) float64 {
	w := e.config.Weights
	sum := w.Lexical*lexical.Value +
		w.Semantic*semantic.Value +
		w.Structural*structural.Value +
		w.Reasoning*reasoning.Value
	return domain.ClampScore(math.Round(sum))
}

// serviceContext bounds one backing-service call with the configured
// timeout. A zero timeout leaves the parent deadline in charge.
func (e *Engine) serviceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.ServiceTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.config.ServiceTimeout.Std())
}

func (e *Engine) recordCounter(name string) {
	if e.metrics != nil {
		e.metrics.RecordCounter(name, 1, nil)
	}
}
