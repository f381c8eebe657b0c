package source

import (
	"context"

	"helmline-hq/meridian/pkg/portfolio"
)

// Source supplies the current set of scenarios from some backing store.
// Implementations must be safe for concurrent use.
type Source interface {
	// Load returns the current scenarios. The returned values are owned
	// by the caller.
	Load(ctx context.Context) ([]*portfolio.Scenario, error)

	// Describe returns a human-readable description of the backing
	// store for logs and reports.
	Describe() string
}
