package domain

import "errors"

// Sentinel errors for the planner. All failures are local and
// non-retryable; nothing in this subsystem touches the network.
var (
	// ErrUnknownChannel is returned when a cost is requested for a channel
	// the catalog does not price. Only that calculation fails.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrUnknownScenario is returned when a scenario switch names a scenario
	// that does not exist. The current scenario is left unchanged.
	ErrUnknownScenario = errors.New("unknown cost scenario")

	// ErrInvalidInput is returned when a customer profile or letter
	// classification is missing required fields. Rejected before the
	// pipeline starts; no partial repair is attempted.
	ErrInvalidInput = errors.New("invalid input")
)
