package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink persists audit entries to the audit_log table.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink creates a PostgreSQL-backed audit sink
func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool}
}

// Record implements Sink
func (s *PostgresSink) Record(ctx context.Context, entry Entry) error {
	request, err := marshalPayload(entry.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal audit request payload: %w", err)
	}
	response, err := marshalPayload(entry.Response)
	if err != nil {
		return fmt.Errorf("failed to marshal audit response payload: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO audit_log (entity, description, operation, request, response, result, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.Entity, entry.Description, entry.Operation, request, response, entry.Result, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func marshalPayload(payload map[string]interface{}) ([]byte, error) {
	if payload == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(payload)
}
