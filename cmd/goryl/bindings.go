package main

import (
	"fmt"
	"io"
	"strings"

	"nickandperla.net/goryl/internal/store"
)

// manageBindings removes the comma-separated names in forget from the
// database at path, then, if list is set, prints every remaining binding
// as "name = value" in name order.
func manageBindings(path, forget string, list bool, w io.Writer) error {
	s, err := store.NewSQLite(path)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, name := range strings.Split(forget, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		if err := s.Delete(name); err != nil {
			return fmt.Errorf("forget %s: %w", name, err)
		}
	}
	if !list {
		return nil
	}

	names, err := s.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		v, ok, err := s.Get(name)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if ok {
			fmt.Fprintf(w, "%s = %s\n", name, v)
		}
	}
	return nil
}
