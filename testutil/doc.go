// Package testutil provides lifecycle helpers for component-based tests.
//
//	func TestLoad(t *testing.T) {
//	    tc := dbtestutil.NewComponent("default")
//	    testutil.T(t).Setup(tc)
//	    // tc is stopped automatically when the test ends
//	}
package testutil
