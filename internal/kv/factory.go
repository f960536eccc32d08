package kv

import "fmt"

// Open builds a Store for the configured backend name.
func Open(backend, sqlitePath string) (Store, error) {
	switch backend {
	case "sqlite":
		return NewSQLite(sqlitePath)
	case "memory", "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", backend)
	}
}
