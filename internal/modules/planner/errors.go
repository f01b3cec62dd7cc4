package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for an empty or oversize prompt/instruction.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProvider is matched by every *ProviderError.
	ErrProvider = errors.New("itinerary provider failed")
)

// Stage tells where a provider call broke down.
type Stage string

const (
	// StageTransport covers network failures, non-2xx replies, remote errors
	// and empty replies.
	StageTransport Stage = "transport"

	// StageSchema means the reply arrived but was not a valid itinerary.
	StageSchema Stage = "schema"
)

type ProviderError struct {
	Stage Stage
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("itinerary provider %s error: %v", e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProvider, e.Err}
}
