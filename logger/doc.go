// Package logger provides structured logging for fixturekit
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
//	log := logger.NewDefault("myapp").WithComponent("fixtures")
//	log.Info("Fixtures loaded", logger.Fields("count", 3))
package logger
