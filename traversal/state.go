// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package traversal

// State is the lifecycle position of a survey or form session.
type State int

const (
	StateLoadingID State = iota
	StateLoadingSchema
	StateInProgress
	StateNotFound
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateLoadingID:
		return "loading-id"
	case StateLoadingSchema:
		return "loading-schema"
	case StateInProgress:
		return "in-progress"
	case StateNotFound:
		return "not-found"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Outcome is the effect of a successful Next.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAdvanced
	OutcomeSubmitted
)
