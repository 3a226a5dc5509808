// Package redisstore keeps each table as a Redis list of JSON encoded
// records. Field updates run inside WATCH/MULTI so two writers never lose
// each other's changes.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/kilianp07/skylark/core/factory"
	"github.com/kilianp07/skylark/core/store"
)

// Config configures the redis backend. URL wins over Addr when both are set.
type Config struct {
	URL        string `json:"url"`
	Addr       string `json:"addr"`
	Password   string `json:"password"`
	DB         int    `json:"db"`
	Prefix     string `json:"prefix"`
	MaxRetries int    `json:"max_retries"`
}

// ErrConflict is returned when an update keeps losing the optimistic lock.
var ErrConflict = errors.New("redisstore: too many concurrent writers")

// Store implements store.DataStore on Redis.
type Store struct {
	client     *redis.Client
	prefix     string
	maxRetries int
}

// New wraps an existing client.
func New(client *redis.Client, prefix string, maxRetries int) *Store {
	if prefix == "" {
		prefix = "skylark"
	}
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &Store{client: client, prefix: prefix, maxRetries: maxRetries}
}

// Open dials the server described by cfg and checks it answers.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var opts *redis.Options
	if cfg.URL != "" {
		var err error
		if opts, err = redis.ParseURL(cfg.URL); err != nil {
			return nil, fmt.Errorf("redisstore: parse url: %w", err)
		}
	} else {
		if cfg.Addr == "" {
			return nil, fmt.Errorf("redisstore: addr or url is required")
		}
		opts = &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: ping: %w", err)
	}
	return New(client, cfg.Prefix, cfg.MaxRetries), nil
}

func (s *Store) key(t store.Table) string {
	return strings.Join([]string{s.prefix, "table", string(t)}, ":")
}

func decode(items []string) ([]store.Record, error) {
	out := make([]store.Record, 0, len(items))
	for i, it := range items {
		var r store.Record
		if err := json.Unmarshal([]byte(it), &r); err != nil {
			return nil, fmt.Errorf("redisstore: row %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Read returns every record of table in list order.
func (s *Store) Read(ctx context.Context, table store.Table) ([]store.Record, error) {
	items, err := s.client.LRange(ctx, s.key(table), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decode(items)
}

// UpdateField implements store.DataStore.
func (s *Store) UpdateField(ctx context.Context, table store.Table, matchField, matchValue, targetField, newValue string) (bool, error) {
	key := s.key(table)
	var found bool
	txf := func(tx *redis.Tx) error {
		items, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		rows, err := decode(items)
		if err != nil {
			return err
		}
		i := store.IndexOf(rows, matchField, matchValue)
		if i < 0 {
			found = false
			return nil
		}
		rows[i][targetField] = newValue
		b, err := json.Marshal(rows[i])
		if err != nil {
			return err
		}
		found = true
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LSet(ctx, key, int64(i), string(b))
			return nil
		})
		return err
	}
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return false, err
		}
	}
	return false, ErrConflict
}

// Load replaces the content of table with records.
func (s *Store) Load(ctx context.Context, table store.Table, records []store.Record) error {
	key := s.key(table)
	values := make([]any, 0, len(records))
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		values = append(values, string(b))
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.RPush(ctx, key, values...)
		}
		return nil
	})
	return err
}

// Close closes the client.
func (s *Store) Close() error { return s.client.Close() }

func init() {
	_ = store.RegisterBackend("redis", func(m map[string]any) (store.DataStore, error) {
		var cfg Config
		if err := factory.Decode(m, &cfg); err != nil {
			return nil, err
		}
		return Open(context.Background(), cfg)
	})
}
