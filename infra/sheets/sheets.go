// Package sheets reads and writes the fleet tables kept in Google Sheets.
//
// Each table lives either in its own spreadsheet (first tab) or as a named
// tab of a shared spreadsheet. Row 1 holds the column headers.
//
// UpdateField reads the table then writes a single cell. The Sheets API has
// no conditional write, so two concurrent updates of the same table may
// target a row that moved in between.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/kilianp07/skylark/core/factory"
	"github.com/kilianp07/skylark/core/store"
)

const (
	defaultCredentialsEnv = "GOOGLE_CREDENTIALS"
	columns               = "A:ZZ"
)

// Config configures the sheets backend.
type Config struct {
	// SpreadsheetID holds every table as a tab named after the table.
	SpreadsheetID string `json:"spreadsheet_id"`
	// Spreadsheets maps a table name to a dedicated spreadsheet id whose
	// first tab holds the table. Entries here win over SpreadsheetID.
	Spreadsheets map[string]string `json:"spreadsheets"`
	// CredentialsFile is a service account JSON key. When empty the JSON is
	// read from the CredentialsEnv variable.
	CredentialsFile string `json:"credentials_file"`
	CredentialsEnv  string `json:"credentials_env"`
	// Endpoint overrides the API root URL and disables authentication.
	Endpoint string `json:"endpoint"`
}

// Validate checks that every table can be located.
func (c Config) Validate() error {
	if c.SpreadsheetID != "" {
		return nil
	}
	for _, t := range store.Tables {
		if c.Spreadsheets[string(t)] == "" {
			return fmt.Errorf("sheets: no spreadsheet for table %s", t)
		}
	}
	return nil
}

func (c Config) credentials() ([]byte, error) {
	if c.CredentialsFile != "" {
		return os.ReadFile(c.CredentialsFile)
	}
	env := c.CredentialsEnv
	if env == "" {
		env = defaultCredentialsEnv
	}
	raw := os.Getenv(env)
	if raw == "" {
		return nil, fmt.Errorf("sheets: %s is not set", env)
	}
	return []byte(raw), nil
}

// Store implements store.DataStore on the Sheets values API.
type Store struct {
	svc *sheetsapi.Service
	cfg Config
}

// New builds a store from cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	} else {
		raw, err := cfg.credentials()
		if err != nil {
			return nil, err
		}
		creds, err := google.CredentialsFromJSON(ctx, raw, sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &Store{svc: svc, cfg: cfg}, nil
}

// locate returns the spreadsheet id and the A1 prefix of table.
func (s *Store) locate(t store.Table) (id, prefix string, err error) {
	if id := s.cfg.Spreadsheets[string(t)]; id != "" {
		return id, "", nil
	}
	if s.cfg.SpreadsheetID == "" {
		return "", "", fmt.Errorf("%w: %s", store.ErrUnknownTable, t)
	}
	return s.cfg.SpreadsheetID, "'" + string(t) + "'!", nil
}

func (s *Store) values(ctx context.Context, t store.Table) (id, prefix string, rows [][]any, err error) {
	id, prefix, err = s.locate(t)
	if err != nil {
		return "", "", nil, err
	}
	resp, err := s.svc.Spreadsheets.Values.Get(id, prefix+columns).Context(ctx).Do()
	if err != nil {
		return "", "", nil, fmt.Errorf("sheets: get %s: %w", t, err)
	}
	return id, prefix, resp.Values, nil
}

func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

func header(rows [][]any) []string {
	if len(rows) == 0 {
		return nil
	}
	h := make([]string, len(rows[0]))
	for i := range rows[0] {
		h[i] = strings.TrimSpace(cell(rows[0], i))
	}
	return h
}

// Read returns the rows below the header, keyed by header text.
func (s *Store) Read(ctx context.Context, table store.Table) ([]store.Record, error) {
	_, _, rows, err := s.values(ctx, table)
	if err != nil {
		return nil, err
	}
	h := header(rows)
	if len(rows) < 2 {
		return []store.Record{}, nil
	}
	out := make([]store.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := make(store.Record, len(h))
		for i, col := range h {
			if col == "" {
				continue
			}
			r[col] = cell(row, i)
		}
		out = append(out, r)
	}
	return out, nil
}

// ErrNoColumn is returned when the header lacks the requested column.
var ErrNoColumn = errors.New("sheets: column not found")

// UpdateField implements store.DataStore.
func (s *Store) UpdateField(ctx context.Context, table store.Table, matchField, matchValue, targetField, newValue string) (bool, error) {
	id, prefix, rows, err := s.values(ctx, table)
	if err != nil {
		return false, err
	}
	h := header(rows)
	mi, ti := indexOf(h, matchField), indexOf(h, targetField)
	if mi < 0 {
		return false, fmt.Errorf("%w: %s", ErrNoColumn, matchField)
	}
	if ti < 0 {
		return false, fmt.Errorf("%w: %s", ErrNoColumn, targetField)
	}
	for i := 1; i < len(rows); i++ {
		if !strings.EqualFold(cell(rows[i], mi), matchValue) {
			continue
		}
		rng := fmt.Sprintf("%s%s%d", prefix, ColumnName(ti), i+1)
		vr := &sheetsapi.ValueRange{Values: [][]any{{newValue}}}
		if _, err := s.svc.Spreadsheets.Values.Update(id, rng, vr).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return false, fmt.Errorf("sheets: update %s: %w", rng, err)
		}
		return true, nil
	}
	return false, nil
}

func indexOf(h []string, col string) int {
	for i, c := range h {
		if strings.EqualFold(c, col) {
			return i
		}
	}
	return -1
}

// ColumnName converts a zero based column index to its A1 letters.
func ColumnName(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}

func init() {
	_ = store.RegisterBackend("sheets", func(m map[string]any) (store.DataStore, error) {
		var cfg Config
		if err := factory.Decode(m, &cfg); err != nil {
			return nil, err
		}
		return New(context.Background(), cfg)
	})
}
