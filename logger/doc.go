// Package logger provides structured logging for lego using zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and run-scoped fields carried through a context.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("query")
//	log.Debug("plan resolved", logger.Fields("kinds", kinds))
package logger
