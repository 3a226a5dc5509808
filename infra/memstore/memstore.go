// Package memstore is an in-process DataStore. It backs local runs, the
// CLI and most tests. Tables can be seeded from a YAML file.
package memstore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/skylark/core/factory"
	"github.com/kilianp07/skylark/core/store"
)

// Config configures the memory backend.
type Config struct {
	// Seed is an optional YAML file keyed by table name.
	Seed string `json:"seed"`
}

// Store keeps every table in memory. UpdateField is serialised by a mutex
// so concurrent status updates never interleave.
type Store struct {
	mu     sync.RWMutex
	tables map[store.Table][]store.Record
}

// New returns a store holding a copy of seed.
func New(seed map[store.Table][]store.Record) *Store {
	s := &Store{tables: make(map[store.Table][]store.Record, len(store.Tables))}
	for _, t := range store.Tables {
		s.tables[t] = cloneAll(seed[t])
	}
	return s
}

// LoadFile seeds a store from a YAML document such as:
//
//	Pilot_Roster:
//	  - {pilot_id: P001, name: Sneha, status: Available}
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse seeds a store from YAML bytes.
func Parse(data []byte) (*Store, error) {
	var raw map[string][]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("memstore: decode seed: %w", err)
	}
	seed := make(map[store.Table][]store.Record, len(raw))
	for name, rows := range raw {
		t := store.Table(name)
		if !known(t) {
			return nil, fmt.Errorf("%w: %s", store.ErrUnknownTable, name)
		}
		for _, row := range rows {
			seed[t] = append(seed[t], store.Record(row))
		}
	}
	return New(seed), nil
}

func known(t store.Table) bool {
	for _, k := range store.Tables {
		if k == t {
			return true
		}
	}
	return false
}

func cloneAll(rows []store.Record) []store.Record {
	out := make([]store.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// Read returns a copy of table.
func (s *Store) Read(ctx context.Context, table store.Table) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	return cloneAll(rows), nil
}

// UpdateField implements store.DataStore.
func (s *Store) UpdateField(ctx context.Context, table store.Table, matchField, matchValue, targetField, newValue string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return false, fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	i := store.IndexOf(rows, matchField, matchValue)
	if i < 0 {
		return false, nil
	}
	rows[i][targetField] = newValue
	return true, nil
}

// Load replaces table with a copy of records.
func (s *Store) Load(ctx context.Context, table store.Table, records []store.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !known(table) {
		return fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = cloneAll(records)
	return nil
}

func init() {
	_ = store.RegisterBackend("memory", func(m map[string]any) (store.DataStore, error) {
		var cfg Config
		if err := factory.Decode(m, &cfg); err != nil {
			return nil, err
		}
		if cfg.Seed == "" {
			return New(nil), nil
		}
		return LoadFile(cfg.Seed)
	})
}
