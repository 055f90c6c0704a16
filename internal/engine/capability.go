package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nkatyal/resume-relevance/internal/domain"
	"github.com/nkatyal/resume-relevance/internal/ports"
)

// probeText is the short document used to probe optional services.
const probeText = "capability probe"

// DefaultProbeTimeout bounds one capability probe call.
const DefaultProbeTimeout = 10 * time.Second

// Resolver decides, once per process, which optional services are
// usable. The first evaluation triggers a probe of each configured
// service; the resulting mode is cached for the process lifetime and
// re-resolved only on explicit Reset. Per-call failures after the probe
// degrade individual calls, never the cached mode, so one slow request
// cannot flip the process into fallback permanently.
//
// Resolver implements ports.CapabilitySource. Concurrent callers during
// the initial probe block until the single probe completes.
type Resolver struct {
	embedder     ports.Embedder
	reasoner     ports.ReasoningClient
	probeTimeout time.Duration
	logger       *zap.Logger

	mu       sync.Mutex
	resolved bool
	mode     domain.CapabilityMode
}

var _ ports.CapabilitySource = (*Resolver)(nil)

// NewResolver creates a resolver over the configured service clients.
// Either client may be nil; a nil client resolves straight to fallback
// without probing. A nil logger disables resolver logging.
func NewResolver(embedder ports.Embedder, reasoner ports.ReasoningClient, probeTimeout time.Duration, logger *zap.Logger) *Resolver {
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		embedder:     embedder,
		reasoner:     reasoner,
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

// Tag returns the cached capability tag for the named service,
// resolving first if no probe has run yet.
func (r *Resolver) Tag(svc domain.OptionalService) domain.CapabilityTag {
	return r.Resolve(context.Background()).Tag(svc)
}

// Resolve returns the process capability mode, probing the configured
// services on the first call. The probe runs at most once; concurrent
// callers share its outcome.
func (r *Resolver) Resolve(ctx context.Context) domain.CapabilityMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return r.mode
	}

	r.mode = r.probe(ctx)
	r.resolved = true
	r.logger.Info("capability mode resolved",
		zap.String("embedding", string(r.mode.Embedding)),
		zap.String("reasoning", string(r.mode.Reasoning)),
		zap.Bool("degraded", r.mode.Degraded()),
	)
	return r.mode
}

// Status returns the current mode and whether a probe has run, without
// triggering one.
func (r *Resolver) Status() (domain.CapabilityMode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.resolved {
		return domain.AllFallback(), false
	}
	return r.mode, true
}

// Reset clears the cached mode. The next evaluation probes again. Use
// it after restoring a backing service to let a degraded process
// recover without restarting.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = false
	r.mode = domain.CapabilityMode{}
	r.logger.Info("capability mode reset, next evaluation will probe")
}

// probe exercises each configured service once with a minimal request.
// Callers hold r.mu.
func (r *Resolver) probe(ctx context.Context) domain.CapabilityMode {
	mode := domain.AllFallback()

	if r.embedder != nil {
		probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
		if _, err := r.embedder.Embed(probeCtx, probeText); err != nil {
			r.logger.Warn("embedding probe failed, semantic scoring will use tf-idf fallback",
				zap.Error(err))
		} else {
			mode.Embedding = domain.CapabilityPrimary
		}
		cancel()
	}

	if r.reasoner != nil {
		probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
		_, err := r.reasoner.Assess(probeCtx, ports.AssessmentRequest{
			RoleTitle:     "probe",
			RoleText:      probeText,
			CandidateText: probeText,
		})
		if err != nil {
			r.logger.Warn("reasoning probe failed, fit assessment will use rule-based fallback",
				zap.Error(err))
		} else {
			mode.Reasoning = domain.CapabilityPrimary
		}
		cancel()
	}

	return mode
}
