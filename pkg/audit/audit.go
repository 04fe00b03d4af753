// Package audit records best-effort audit trail entries for identity
// operations. Emission must never fail the calling flow: use BestEffort
// from request paths.
package audit

import (
	"context"

	"golang.org/x/exp/slog"
)

// Operation result labels used across services.
const (
	ResultSuccess  = "Success"
	ResultNotFound = "Not Found"
	ResultFailure  = "Failure"
)

// Entry is a single audit record.
type Entry struct {
	Entity      string
	Description string
	Operation   string
	Request     map[string]interface{}
	Response    map[string]interface{}
	Result      string
}

// Sink receives audit entries.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
}

// BestEffort records an entry and swallows any failure after logging it.
func BestEffort(ctx context.Context, sink Sink, entry Entry) {
	if sink == nil {
		return
	}
	if err := sink.Record(ctx, entry); err != nil {
		slog.Error("Failed to record audit entry", "entity", entry.Entity, "operation", entry.Operation, "err", err)
	}
}

// SlogSink writes audit entries to the process log.
type SlogSink struct{}

// NewSlogSink creates a log-backed audit sink
func NewSlogSink() *SlogSink {
	return &SlogSink{}
}

// Record implements Sink
func (s *SlogSink) Record(ctx context.Context, entry Entry) error {
	slog.Info("audit",
		"entity", entry.Entity,
		"operation", entry.Operation,
		"description", entry.Description,
		"result", entry.Result,
	)
	return nil
}

// NoopSink discards all entries, used in tests.
type NoopSink struct{}

// NewNoopSink creates a sink that drops everything
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

// Record implements Sink
func (s *NoopSink) Record(ctx context.Context, entry Entry) error {
	return nil
}
