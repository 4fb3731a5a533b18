package testutil

import (
	"context"

	"github.com/skillsenselab/fixturekit/component"
)

// TestComponent extends component.Component with a reset hook for test
// isolation. Test components can be used both in the component registry and
// directly in tests.
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state, typically between
	// test cases.
	Reset(ctx context.Context) error
}
