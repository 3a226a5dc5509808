// Package store defines the tabular data store the dispatcher reads its
// roster, fleet and missions from. Backends live under infra/ and register
// themselves with RegisterBackend.
package store

import (
	"context"
	"errors"
	"strings"
)

// Table names a record table.
type Table string

const (
	PilotRoster Table = "Pilot_Roster"
	DroneFleet  Table = "Drone_Fleet"
	Missions    Table = "Missions"
)

// Tables lists every table the dispatcher uses.
var Tables = []Table{PilotRoster, DroneFleet, Missions}

// ErrUnknownTable is returned by backends asked for a table they do not hold.
var ErrUnknownTable = errors.New("store: unknown table")

// Record is one row keyed by column header. Absent columns read as "".
type Record map[string]string

// Get returns the value of field, or "" when the column is absent.
func (r Record) Get(field string) string { return r[field] }

// Clone returns a copy that can be mutated independently.
func (r Record) Clone() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// DataStore reads whole tables in row order and overwrites single fields.
type DataStore interface {
	Read(ctx context.Context, table Table) ([]Record, error)
	// UpdateField sets targetField on the first record whose matchField equals
	// matchValue case-insensitively. It reports false when no record matched.
	UpdateField(ctx context.Context, table Table, matchField, matchValue, targetField, newValue string) (bool, error)
}

// IndexOf returns the position of the first record whose field equals value
// case-insensitively, or -1.
func IndexOf(records []Record, field, value string) int {
	for i, r := range records {
		if strings.EqualFold(r.Get(field), value) {
			return i
		}
	}
	return -1
}

// Loader is implemented by backends that can be bulk seeded.
type Loader interface {
	Load(ctx context.Context, table Table, records []Record) error
}
