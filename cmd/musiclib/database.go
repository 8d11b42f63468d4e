package main

import (
	"context"

	"musiclib/internal/store"
)

// openStore initializes storage and resolves gate with the outcome, so requests
// already waiting on the gate are released either way.
func openStore(ctx context.Context, opts store.Options, gate *store.Gate) (*store.DB, error) {
	db, err := store.Open(ctx, opts)
	if err != nil {
		gate.Resolve(nil, err)
		return nil, err
	}
	gate.Resolve(db, nil)
	return db, nil
}
