// Package logging provides structured logging for Atlas.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging carrying run IDs, dataset paths and columns
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	logger.SetDefault()
//
//	ctx = logging.WithRunID(ctx, run.ID)
//	logger.WithContext(ctx).Info("run stored", "cells", len(run.Cells))
//
// Library packages log through slog.Default().With("component", ...), so
// SetDefault routes them through the configured handler.
package logging
