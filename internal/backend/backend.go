// Package backend wires the configured persistence and event components
// into a ready-to-use set for the binaries.
package backend

import (
	"fmt"

	"costmanager/internal/events"
	"costmanager/internal/settings"
	"costmanager/internal/store"
)

type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

// Config holds configuration for backend creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Optional event pipeline
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the wired components and their cleanup function. The
// publisher is nil when no AMQP URL is configured.
type Result struct {
	Costs     store.CostStore
	Settings  settings.Store
	Publisher *events.Publisher
	Cleanup   CleanupFunc
}

func noopCleanup() error { return nil }

func combineCleanup(fns ...CleanupFunc) CleanupFunc {
	return func() error {
		var first error
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			if err := fn(); err != nil && first == nil {
				first = fmt.Errorf("backend cleanup: %w", err)
			}
		}
		return first
	}
}
