// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"log/slog"
	"sync"

	"nickandperla.net/goryl/internal/store"
	"nickandperla.net/goryl/internal/value"
)

// Environment maps variable names to values. Define never fails; a missing
// name is reported by Get and turned into a runtime error by the evaluator.
type Environment interface {
	Define(name string, v value.Value)
	Get(name string) (value.Value, bool)
}

// Namespace is the flat global environment: one table, last write wins.
type Namespace struct {
	mu     sync.RWMutex
	values map[string]value.Value
}

// NewNamespace creates a new empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		values: make(map[string]value.Value),
	}
}

// Define binds name to v, overwriting any previous binding.
func (n *Namespace) Define(name string, v value.Value) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.values[name] = v
}

// Get retrieves the value bound to name.
func (n *Namespace) Get(name string) (value.Value, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.values[name]
	return v, ok
}

// Len returns the number of bindings.
func (n *Namespace) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.values)
}

// StoredNamespace is a Namespace that writes every binding through to a
// store and falls back to it for names not yet seen in this run.
type StoredNamespace struct {
	*Namespace
	store  store.Store
	logger *slog.Logger
	err    error
}

// NewStoredNamespace creates a namespace backed by s.
func NewStoredNamespace(s store.Store, logger *slog.Logger) *StoredNamespace {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StoredNamespace{Namespace: NewNamespace(), store: s, logger: logger}
}

// Define binds name locally and persists it. A store failure is kept for
// Err and does not undo the local binding.
func (n *StoredNamespace) Define(name string, v value.Value) {
	n.Namespace.Define(name, v)
	if err := n.store.Put(name, v); err != nil {
		n.logger.Warn("persist binding failed", slog.String("name", name), slog.Any("error", err))
		n.setErr(err)
		return
	}
	n.logger.Debug("persisted binding", slog.String("name", name), slog.String("kind", v.Kind().String()))
}

// Get looks name up locally, then in the store.
func (n *StoredNamespace) Get(name string) (value.Value, bool) {
	if v, ok := n.Namespace.Get(name); ok {
		return v, true
	}
	v, ok, err := n.store.Get(name)
	if err != nil {
		n.logger.Warn("load binding failed", slog.String("name", name), slog.Any("error", err))
		n.setErr(err)
		return value.None, false
	}
	if ok {
		n.Namespace.Define(name, v)
	}
	return v, ok
}

// Err returns the first store error seen, if any.
func (n *StoredNamespace) Err() error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.err
}

func (n *StoredNamespace) setErr(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err == nil {
		n.err = err
	}
}
