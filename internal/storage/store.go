// Package storage provides abstractions for persistent record storage.
package storage

import (
	"context"
	"errors"

	"github.com/tripstack/travelrec/internal/models"
)

// ErrDuplicateID reports an add with an explicit ID already taken by a record
// of the same kind.
var ErrDuplicateID = errors.New("duplicate record id")

// ErrParse reports a backing file whose content is not a valid JSON document.
// The in-memory collection is left untouched when a load fails with it.
var ErrParse = errors.New("parse data file")

// Store defines the interface for record storage operations.
// This abstraction keeps the service layer independent of the backing format.
//
// A Store holds one flat collection of records addressed by (id, kind).
// Mutations follow the source-of-truth rules of the data file:
//
//   - Add appends in memory only; the caller persists with Save.
//   - Update replaces the whole record and persists immediately.
//   - Delete removes in memory only; the caller persists with Save.
//
// Delete performs no cross-kind checks: refusing to delete a client or
// airline that flights still reference is the caller's responsibility.
type Store interface {
	// Load reads the backing file into memory, replacing the collection.
	// A missing or empty file is created as an empty document and is not
	// an error. Malformed JSON fails with ErrParse and leaves the current
	// collection untouched.
	Load(ctx context.Context) error

	// Save writes the full collection back to the backing file.
	Save(ctx context.Context) error

	// Add inserts a record and returns its ID. A zero or negative ID is
	// replaced with the next free ID of the record's kind; an explicit
	// positive ID is kept, or fails with ErrDuplicateID when taken.
	Add(ctx context.Context, rec models.Record) (int, error)

	// Update replaces the record matching rec's (id, kind) and persists
	// the collection. Reports whether a record was replaced; when none
	// was, nothing is written.
	Update(ctx context.Context, rec models.Record) (bool, error)

	// Delete removes the record with the given id and kind, reporting
	// whether one was removed.
	Delete(ctx context.Context, id int, kind models.Kind) bool

	// Get returns the record with the given id and kind.
	Get(ctx context.Context, id int, kind models.Kind) (models.Record, bool)

	// GetAll returns records of one kind, or every record when kind is
	// zero, in collection order.
	GetAll(ctx context.Context, kind models.Kind) []models.Record

	// Search returns records of the kind whose fields all equal the given
	// values. Field names are wire names; a field a kind lacks never
	// matches. A zero kind searches every kind.
	Search(ctx context.Context, kind models.Kind, fields map[string]any) []models.Record
}
