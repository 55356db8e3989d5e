package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds store and HTTP calls in unit tests.
const DefaultTimeout = 5 * time.Second

// Context returns a context derived from t.Context that also expires after
// timeout, or one second before the test binary's own deadline when that
// comes first.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, set := d.Deadline(); set {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)
	return ctx
}
