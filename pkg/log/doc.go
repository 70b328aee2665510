// Package log provides structured event capture for hzsync.
//
// This package defines the Logger interface and Event types for recording
// what the resolver, applier, cadence driver and session state did. It is
// separate from operational logging (slog): event capture is a complete
// machine-readable trace for debugging timing problems after the fact.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	events := log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	events, _ := log.NewFileLogger("/tmp/hzsync.hlog")
//
//	// Both: use MultiLogger
//	events := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured per layer:
//   - Resolver: rate resolution outcome (ResolveEvent)
//   - Applier: each escalation step (ApplyEvent)
//   - Cadence: session state changes and tick summaries
//   - Session: persisted state changes
//
// Errors have a dedicated payload.
//
// # File Format
//
// Log files use CBOR encoding with the .hlog extension. The hzsync-log tool
// views, summarizes and exports them.
package log
