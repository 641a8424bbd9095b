package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/lifesim/internal/agents"
)

var (
	ErrAgentNotFound        = errors.New("agent not found")
	ErrActionNotFound       = errors.New("action not found")
	ErrRequirementsNotMet   = errors.New("action requirements not met")
	ErrDataStoreUnavailable = errors.New("data store unavailable")
	ErrInvalidInput         = errors.New("invalid input")
)

// storeErr classifies a Store failure. Missing rows map to notFound; every
// other failure is treated as the store being unavailable.
func storeErr(err, notFound error) error {
	if err == nil {
		return nil
	}
	if isEngineErr(err) {
		return err
	}
	if errors.Is(err, agents.ErrNotFound) {
		return fmt.Errorf("%w: %w", notFound, err)
	}
	return fmt.Errorf("%w: %w", ErrDataStoreUnavailable, err)
}

// isEngineErr reports whether err already carries one of the engine sentinels,
// as happens when an InTx callback returns a classified error.
func isEngineErr(err error) bool {
	for _, target := range []error{ErrAgentNotFound, ErrActionNotFound, ErrRequirementsNotMet, ErrDataStoreUnavailable, ErrInvalidInput} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
