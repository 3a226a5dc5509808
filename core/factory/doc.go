// Package factory is a small generic registry used to build pluggable modules
// (data store backends, metrics sinks) from configuration. A module is named by
// a type string and configured by a raw map that each factory decodes into its
// own settings struct.
//
//	reg := factory.NewRegistry[store.DataStore]()
//	_ = reg.Register("memory", func(conf map[string]any) (store.DataStore, error) {
//	    var c struct{ Seed string `json:"seed"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return memstore.LoadFile(c.Seed)
//	})
//	ds, err := reg.Create(factory.ModuleConfig{Type: "memory", Conf: map[string]any{"seed": "fleet.yaml"}})
package factory
