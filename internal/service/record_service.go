// Package service owns the rules the record store deliberately leaves to
// its caller: required-field validation, the referential check before
// deletes, and the persist-after-mutation flows.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tripstack/travelrec/internal/filter"
	"github.com/tripstack/travelrec/internal/models"
	"github.com/tripstack/travelrec/internal/storage"
)

// ErrNotFound reports an operation aimed at an (id, kind) with no record.
var ErrNotFound = errors.New("record not found")

// ErrRecordInUse reports a delete blocked because flights still reference
// the client or airline.
var ErrRecordInUse = errors.New("record in use")

// ErrValidation reports a record missing required fields.
var ErrValidation = errors.New("invalid record")

// RecordService wraps a storage.Store with the caller-side rules every
// front end must apply.
type RecordService struct {
	store    storage.Store
	validate *validator.Validate
}

// NewRecordService creates a RecordService with the given storage backend.
func NewRecordService(store storage.Store) *RecordService {
	return &RecordService{
		store:    store,
		validate: validator.New(),
	}
}

// Add validates the record, inserts it and persists the collection.
// The assigned id is returned.
func (s *RecordService) Add(ctx context.Context, rec models.Record) (int, error) {
	slog.Info("Add record request", "kind", rec.Kind())

	if err := s.validateRecord(rec); err != nil {
		return 0, err
	}
	s.warnDanglingRefs(ctx, rec)

	id, err := s.store.Add(ctx, rec)
	if err != nil {
		slog.Error("Add failed", "kind", rec.Kind(), "error", err)
		return 0, err
	}
	if err := s.store.Save(ctx); err != nil {
		slog.Error("Save after add failed", "kind", rec.Kind(), "id", id, "error", err)
		return 0, fmt.Errorf("failed to persist added record: %w", err)
	}

	slog.Info("Record added", "kind", rec.Kind(), "id", id)
	return id, nil
}

// Update validates the record and replaces the stored one with the same
// (id, kind) wholesale. The store persists the change itself.
func (s *RecordService) Update(ctx context.Context, rec models.Record) error {
	slog.Info("Update record request", "kind", rec.Kind(), "id", rec.RecordID())

	if err := s.validateRecord(rec); err != nil {
		return err
	}
	s.warnDanglingRefs(ctx, rec)

	found, err := s.store.Update(ctx, rec)
	if err != nil {
		slog.Error("Update failed", "kind", rec.Kind(), "id", rec.RecordID(), "error", err)
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s %d", ErrNotFound, rec.Kind(), rec.RecordID())
	}

	slog.Info("Record updated", "kind", rec.Kind(), "id", rec.RecordID())
	return nil
}

// Delete removes a record and persists the collection. Deleting a client
// or airline that flights still reference is refused with ErrRecordInUse;
// the flights must go first.
func (s *RecordService) Delete(ctx context.Context, id int, kind models.Kind) error {
	slog.Info("Delete record request", "kind", kind, "id", id)

	// Existence first: an absent record is ErrNotFound even when stray
	// flights reference its id.
	if _, ok := s.store.Get(ctx, id, kind); !ok {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}

	if field, ok := referenceField(kind); ok {
		refs := s.store.Search(ctx, models.KindFlight, map[string]any{field: id})
		if len(refs) > 0 {
			slog.Warn("Delete blocked by flight references", "kind", kind, "id", id, "flights", len(refs))
			return fmt.Errorf("%w: %s %d is still referenced by flights", ErrRecordInUse, kind, id)
		}
	}

	if !s.store.Delete(ctx, id, kind) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	if err := s.store.Save(ctx); err != nil {
		slog.Error("Save after delete failed", "kind", kind, "id", id, "error", err)
		return fmt.Errorf("failed to persist delete: %w", err)
	}

	slog.Info("Record deleted", "kind", kind, "id", id)
	return nil
}

// Get returns the record with the given id and kind.
func (s *RecordService) Get(ctx context.Context, id int, kind models.Kind) (models.Record, error) {
	slog.Debug("Get record", "kind", kind, "id", id)
	rec, ok := s.store.Get(ctx, id, kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	return rec, nil
}

// List returns records of one kind, or all records when kind is zero.
func (s *RecordService) List(ctx context.Context, kind models.Kind) []models.Record {
	slog.Debug("List records", "kind", kind)
	return s.store.GetAll(ctx, kind)
}

// Search returns records whose fields all equal the given values.
func (s *RecordService) Search(ctx context.Context, kind models.Kind, fields map[string]any) []models.Record {
	slog.Debug("Search records", "kind", kind, "fields", len(fields))
	return s.store.Search(ctx, kind, fields)
}

// Filter returns records whose listing rows contain the query as a
// case-insensitive substring. Flight rows match on resolved client and
// airline names.
func (s *RecordService) Filter(ctx context.Context, kind models.Kind, query string) []models.Record {
	slog.Debug("Filter records", "kind", kind, "query", query)
	records := s.store.GetAll(ctx, kind)
	if query == "" {
		return records
	}
	return filter.Apply(records, query, s.ClientNames(ctx), s.AirlineNames(ctx))
}

// ClientNames returns an id-to-name index of every client, used to render
// and filter flight listings.
func (s *RecordService) ClientNames(ctx context.Context) map[int]string {
	names := make(map[int]string)
	for _, rec := range s.store.GetAll(ctx, models.KindClient) {
		if c, ok := rec.(*models.Client); ok {
			names[c.ID] = c.Name
		}
	}
	return names
}

// AirlineNames returns an id-to-company-name index of every airline.
func (s *RecordService) AirlineNames(ctx context.Context) map[int]string {
	names := make(map[int]string)
	for _, rec := range s.store.GetAll(ctx, models.KindAirline) {
		if a, ok := rec.(*models.Airline); ok {
			names[a.ID] = a.CompanyName
		}
	}
	return names
}

// validateRecord applies the required-field rules declared on the models.
func (s *RecordService) validateRecord(rec models.Record) error {
	err := s.validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field()
		}
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// warnDanglingRefs flags flights pointing at clients or airlines that do
// not exist. Dangling references are allowed so data can be re-entered in
// any order; listings render them as unknown.
func (s *RecordService) warnDanglingRefs(ctx context.Context, rec models.Record) {
	f, ok := rec.(*models.Flight)
	if !ok {
		return
	}
	if _, ok := s.store.Get(ctx, f.ClientID, models.KindClient); !ok {
		slog.Warn("Flight references missing client", "client_id", f.ClientID)
	}
	if _, ok := s.store.Get(ctx, f.AirlineID, models.KindAirline); !ok {
		slog.Warn("Flight references missing airline", "airline_id", f.AirlineID)
	}
}

// referenceField returns the flight field referencing records of the kind,
// if flights reference that kind at all.
func referenceField(kind models.Kind) (string, bool) {
	switch kind {
	case models.KindClient:
		return "client_id", true
	case models.KindAirline:
		return "airline_id", true
	}
	return "", false
}
