// Package store provides the store directory used to resolve store kinds.
package store

import (
	"storeops/internal/core/id"
)

// Kind classifies the legal entity behind a store.
type Kind string

const (
	KindOwn       Kind = "own"
	KindFranchise Kind = "franchise"
)

// Store is a retail location known to the backend.
type Store struct {
	ID   id.Ref `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Kind Kind   `json:"type"`
}
