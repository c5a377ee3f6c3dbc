// Package logger provides structured logging for httpseq components,
// backed by zerolog.
//
// Loggers are component-scoped and immutable; With returns a derived
// logger carrying extra fields:
//
//	log := logger.NewDefault("client")
//	log = log.With(logger.Fields("request_id", id))
//	log.Debug("sending request", logger.Fields("method", "GET"))
package logger
