package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	Addr string
	DB   int
}

type backendConf struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

func newBackendRegistry(t *testing.T) *Registry[*backend] {
	t.Helper()
	reg := NewRegistry[*backend]()
	require.NoError(t, reg.Register("redis", func(conf map[string]any) (*backend, error) {
		var c backendConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &backend{Addr: c.Addr, DB: c.DB}, nil
	}))
	return reg
}

func TestRegistry_Create(t *testing.T) {
	reg := newBackendRegistry(t)
	inst, err := reg.Create(ModuleConfig{Type: "redis", Conf: map[string]any{"addr": "localhost:6379", "db": 2}})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", inst.Addr)
	assert.Equal(t, 2, inst.DB)
}

func TestRegistry_WeakDecode(t *testing.T) {
	reg := newBackendRegistry(t)
	inst, err := reg.Create(ModuleConfig{Type: "redis", Conf: map[string]any{"db": "3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.DB)
}

func TestRegistry_Errors(t *testing.T) {
	reg := newBackendRegistry(t)
	assert.Error(t, reg.Register("redis", func(map[string]any) (*backend, error) { return nil, nil }))
	assert.Error(t, reg.Register("nil", nil))
	_, err := reg.Create(ModuleConfig{Type: "sheets"})
	assert.ErrorContains(t, err, "unknown module type")
	assert.True(t, reg.Has("redis"))
	assert.Equal(t, []string{"redis"}, reg.Names())
}
