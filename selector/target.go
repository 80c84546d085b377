package selector

import "github.com/google/uuid"

// Target is the part of an annotation that points into a document: the
// document it was made on and the selectors describing the location.
type Target struct {
	ID          string `json:"id"`
	Source      string `json:"source,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Selectors   Set    `json:"selector"`
}

// NewTarget returns a Target with a fresh random ID.
func NewTarget(source, fingerprint string, selectors Set) Target {
	return Target{
		ID:          uuid.New().String(),
		Source:      source,
		Fingerprint: fingerprint,
		Selectors:   selectors,
	}
}
