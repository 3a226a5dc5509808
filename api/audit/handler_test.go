package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/skylark/core/audit"
)

type memStore struct{ recs []audit.Record }

func (m *memStore) Append(_ context.Context, r audit.Record) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(_ context.Context, q audit.Query) ([]audit.Record, error) {
	var res []audit.Record
	for _, r := range m.recs {
		if q.Matches(r) {
			res = append(res, r)
		}
	}
	if q.Limit > 0 && len(res) > q.Limit {
		res = res[len(res)-q.Limit:]
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func seeded() *memStore {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &memStore{recs: []audit.Record{
		{ID: "1", Timestamp: base, Intent: "assign", Kind: "success"},
		{ID: "2", Timestamp: base.Add(time.Hour), Intent: "update_status", Kind: "error"},
		{ID: "3", Timestamp: base.Add(2 * time.Hour), Intent: "assign", Kind: "success"},
	}}
}

func get(t *testing.T, h http.Handler, url, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) []audit.Record {
	t.Helper()
	var out []audit.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestHandlerAuth(t *testing.T) {
	h := NewHandler(seeded(), "tok")
	assert.Equal(t, http.StatusUnauthorized, get(t, h, "/api/audit", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, h, "/api/audit", "wrong").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/audit", "tok").Code)
}

func TestHandlerFilters(t *testing.T) {
	h := NewHandler(seeded(), "")

	out := decode(t, get(t, h, "/api/audit?intent=assign", ""))
	require.Len(t, out, 2)

	out = decode(t, get(t, h, "/api/audit?kind=error", ""))
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)

	out = decode(t, get(t, h, "/api/audit?since=2026-03-01T09:30:00Z&until=2026-03-01T10:30:00Z", ""))
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)

	out = decode(t, get(t, h, "/api/audit?limit=1", ""))
	require.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)
}

func TestHandlerEmptyAndBadInput(t *testing.T) {
	h := NewHandler(&memStore{}, "")
	rr := get(t, h, "/api/audit", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/audit?since=yesterday", "").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/audit?limit=many", "").Code)
}
