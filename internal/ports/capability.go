// Package ports defines the core interfaces that form the contract
// between the domain/engine layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system
// testable.
package ports

import "github.com/nkatyal/resume-relevance/internal/domain"

// CapabilitySource exposes the process-wide capability mode to the
// scorers. The engine's capability resolver implements it; tests supply
// fixed modes to force primary or fallback paths deterministically.
type CapabilitySource interface {
	// Tag returns the selected implementation path for the named
	// optional service.
	Tag(svc domain.OptionalService) domain.CapabilityTag
}

// FixedCapabilities is a CapabilitySource that always reports the same
// mode. It is the zero-dependency answer for tests and for embedding
// the engine without any backing services.
type FixedCapabilities domain.CapabilityMode

// Tag returns the fixed tag for the named service.
func (f FixedCapabilities) Tag(svc domain.OptionalService) domain.CapabilityTag {
	return domain.CapabilityMode(f).Tag(svc)
}
