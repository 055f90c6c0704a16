package domain

// CapabilityTag records which implementation path produced a value:
// the primary service-backed path or the deterministic local fallback.
type CapabilityTag string

const (
	// CapabilityPrimary marks output produced by the service-backed
	// implementation.
	CapabilityPrimary CapabilityTag = "primary"

	// CapabilityFallback marks output produced by the deterministic
	// local fallback.
	CapabilityFallback CapabilityTag = "fallback"
)

// OptionalService names an optional backing service the engine can
// degrade without.
type OptionalService string

const (
	// ServiceEmbedding is the vector-embedding service behind the
	// semantic scorer's primary path.
	ServiceEmbedding OptionalService = "embedding"

	// ServiceReasoning is the generative-reasoning service behind the
	// reasoning scorer's primary path.
	ServiceReasoning OptionalService = "reasoning"
)

// CapabilityMode is the process-wide snapshot of which optional services
// are usable. It is resolved lazily on the first evaluation, cached for
// the process lifetime, and re-resolved only on explicit reset.
type CapabilityMode struct {
	// Embedding is the selected path for the embedding service.
	Embedding CapabilityTag `json:"embedding"`

	// Reasoning is the selected path for the reasoning service.
	Reasoning CapabilityTag `json:"reasoning"`
}

// AllFallback returns the mode in which every optional service is
// degraded. It is the mode used when no service clients are configured
// at all.
func AllFallback() CapabilityMode {
	return CapabilityMode{
		Embedding: CapabilityFallback,
		Reasoning: CapabilityFallback,
	}
}

// Tag returns the selected path for the named service. Unknown services
// report fallback, which is the safe degraded answer.
func (m CapabilityMode) Tag(svc OptionalService) CapabilityTag {
	switch svc {
	case ServiceEmbedding:
		return m.Embedding
	case ServiceReasoning:
		return m.Reasoning
	default:
		return CapabilityFallback
	}
}

// Degraded reports whether any optional service is running on its
// fallback path.
func (m CapabilityMode) Degraded() bool {
	return m.Embedding == CapabilityFallback || m.Reasoning == CapabilityFallback
}
