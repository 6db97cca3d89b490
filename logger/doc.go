// Package logger provides structured logging for dikit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. The container logs
// under the "di" component.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("di")
//	log.Debug("service registered", logger.Fields("type", "app.Store"))
package logger
