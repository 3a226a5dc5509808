package store

import (
	"io"

	"github.com/kilianp07/skylark/core/factory"
)

var backendRegistry = factory.NewRegistry[DataStore]()

// RegisterBackend adds a data store factory identified by name.
func RegisterBackend(name string, f factory.Factory[DataStore]) error {
	return backendRegistry.Register(name, f)
}

// Backends lists the registered backend names.
func Backends() []string { return backendRegistry.Names() }

// New builds the data store described by cfg.
func New(cfg factory.ModuleConfig) (DataStore, error) {
	return backendRegistry.Create(cfg)
}

// Close releases the store if the backend holds resources.
func Close(ds DataStore) error {
	if c, ok := ds.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
