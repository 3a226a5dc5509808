// Package audit records every handled command so operators can review what
// was asked and what the dispatcher answered.
package audit

import (
	"context"
	"time"
)

// Record captures one handled utterance and its outcome.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Utterance string    `json:"utterance"`
	Intent    string    `json:"intent"`
	Kind      string    `json:"kind"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Message   string    `json:"message"`
	LatencyMS int64     `json:"latency_ms"`
}

// Query defines filters for retrieving records. Zero values match all.
type Query struct {
	Start  time.Time
	End    time.Time
	Intent string
	Kind   string
	// Limit keeps only the most recent records when positive.
	Limit int
}

// Matches reports whether r passes every filter of q except Limit.
func (q Query) Matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Intent != "" && r.Intent != q.Intent {
		return false
	}
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	return true
}

func (q Query) limit(res []Record) []Record {
	if q.Limit > 0 && len(res) > q.Limit {
		return res[len(res)-q.Limit:]
	}
	return res
}

// LogStore persists Records and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards every record.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error          { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                   { return nil }
