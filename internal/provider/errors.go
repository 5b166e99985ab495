// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable marks an adapter that cannot serve requests at all:
// missing credential, missing local tool. The router skips such adapters
// without counting a failure. Adapters wrap it with context:
//
//	fmt.Errorf("no bearer token configured: %w", ErrUnavailable)
var ErrUnavailable = errors.New("provider unavailable")

// ExhaustedError is returned when every adapter was either skipped as
// unavailable or failed with a transient error. It keeps the two classes
// separate so callers can tell a configuration problem from upstream
// trouble without parsing log output.
type ExhaustedError struct {
	// Op is the logical operation that exhausted the adapters.
	Op string

	// Skipped lists "<adapter>: <reason>" for adapters that reported
	// themselves unavailable.
	Skipped []string

	// Failed lists "<adapter>: <error>" for adapters that attempted the
	// request and failed.
	Failed []string
}

func (e *ExhaustedError) Error() string {
	var parts []string
	if len(e.Failed) > 0 {
		parts = append(parts, "failed: "+strings.Join(e.Failed, "; "))
	}
	if len(e.Skipped) > 0 {
		parts = append(parts, "unavailable: "+strings.Join(e.Skipped, "; "))
	}
	return fmt.Sprintf("no provider available for %s (%s)", e.Op, strings.Join(parts, " / "))
}

// ConfigurationMissing reports whether no adapter even attempted the
// request, meaning no usable credential or tool exists for any of them.
func (e *ExhaustedError) ConfigurationMissing() bool {
	return len(e.Failed) == 0
}
