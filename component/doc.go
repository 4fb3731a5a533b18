// Package component defines the lifecycle interface implemented by
// fixturekit's infrastructure pieces (data sources, the fixture manager)
// and a registry that starts and stops them in order.
package component
