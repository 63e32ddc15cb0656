// Package jsonfile provides a JSON-file-backed implementation of the
// storage.Store interface.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tripstack/travelrec/internal/models"
	"github.com/tripstack/travelrec/internal/storage"
)

// Ensure FileStore implements storage.Store
var _ storage.Store = (*FileStore)(nil)

// document is the on-disk shape of a data file. next_id is kept for readers
// of the original single-counter layout and holds the largest counter;
// next_ids carries the real per-kind counters.
type document struct {
	Records []json.RawMessage   `json:"records"`
	NextID  int                 `json:"next_id"`
	NextIDs map[models.Kind]int `json:"next_ids,omitempty"`
}

// FileStore implements storage.Store on a single JSON document.
// It is not safe for concurrent use: the tool applies one mutation at a time.
type FileStore struct {
	path    string
	records []models.Record
	nextID  map[models.Kind]int
	loaded  bool
}

// New creates a FileStore backed by the JSON document at path.
// The file is not touched until Load or Save.
func New(path string) *FileStore {
	return &FileStore{
		path:   path,
		nextID: freshCounters(),
	}
}

func freshCounters() map[models.Kind]int {
	return map[models.Kind]int{
		models.KindClient:  1,
		models.KindAirline: 1,
		models.KindFlight:  1,
	}
}

// Load reads the data file into memory, replacing the collection. A missing
// or empty file is initialized to the empty document. Malformed JSON fails
// with storage.ErrParse and leaves the in-memory collection untouched;
// individual entries that are unreadable are skipped with a warning.
func (s *FileStore) Load(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		slog.Info("data file missing, creating empty document", "path", s.path)
		return s.initEmpty()
	}
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		slog.Info("data file empty, rewriting empty document", "path", s.path)
		return s.initEmpty()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w %s: %v", storage.ErrParse, s.path, err)
	}

	records := make([]models.Record, 0, len(doc.Records))
	for i, raw := range doc.Records {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			slog.Warn("skipping unreadable record entry", "index", i, "error", err)
			continue
		}
		kind, err := models.ParseKind(tag.Type)
		if err != nil {
			slog.Warn("skipping record of unknown type", "index", i, "type", tag.Type)
			continue
		}
		rec, err := models.Decode(kind, raw)
		if err != nil {
			slog.Warn("skipping malformed record", "index", i, "type", tag.Type, "error", err)
			continue
		}
		records = append(records, rec)
	}

	counters := freshCounters()
	for kind, next := range doc.NextIDs {
		if _, ok := counters[kind]; ok && next > 0 {
			counters[kind] = next
		}
	}

	s.records = records
	s.nextID = counters
	s.loaded = true
	slog.Info("data file loaded", "path", s.path, "records", len(records))
	return nil
}

// Save writes the full collection back to the data file, creating the parent
// directory as needed. The document is written to a temporary file first and
// renamed into place so a failed write cannot truncate existing data.
func (s *FileStore) Save(ctx context.Context) error {
	return s.writeDocument(s.records, s.nextID)
}

// writeDocument marshals a collection and its counters into the document
// shape and writes it to the data file.
func (s *FileStore) writeDocument(records []models.Record, counters map[models.Kind]int) error {
	doc := document{
		Records: make([]json.RawMessage, 0, len(records)),
		NextIDs: counters,
	}
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode %s record %d: %w", rec.Kind(), rec.RecordID(), err)
		}
		doc.Records = append(doc.Records, data)
	}
	for _, next := range counters {
		if next > doc.NextID {
			doc.NextID = next
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// Add inserts a record in memory and returns its ID; call Save to persist.
// A zero or negative ID is replaced by probing upward from the kind's
// counter to the first free ID. An explicit positive ID is kept as-is, or
// rejected with storage.ErrDuplicateID when a record of the same kind
// already holds it.
func (s *FileStore) Add(ctx context.Context, rec models.Record) (int, error) {
	s.warnIfUnloaded("add")
	kind := rec.Kind()
	if id := rec.RecordID(); id > 0 {
		if _, ok := s.find(id, kind); ok {
			return 0, fmt.Errorf("%w: %s %d", storage.ErrDuplicateID, kind, id)
		}
		s.records = append(s.records, rec)
		return id, nil
	}

	id := s.nextID[kind]
	for {
		if _, ok := s.find(id, kind); !ok {
			break
		}
		id++
	}
	rec.SetID(id)
	s.records = append(s.records, rec)
	if id+1 > s.nextID[kind] {
		s.nextID[kind] = id + 1
	}
	return id, nil
}

// Update replaces the record matching rec's (id, kind) wholesale and saves
// the collection. When no record matches, nothing is written.
func (s *FileStore) Update(ctx context.Context, rec models.Record) (bool, error) {
	s.warnIfUnloaded("update")
	i, ok := s.find(rec.RecordID(), rec.Kind())
	if !ok {
		return false, nil
	}
	s.records[i] = rec
	if err := s.Save(ctx); err != nil {
		return true, fmt.Errorf("failed to persist update: %w", err)
	}
	return true, nil
}

// Delete removes the record with the given id and kind from memory; call
// Save to persist. It never looks at other kinds: a client or airline is
// removed even while flights reference it, so callers wanting referential
// safety must check first.
func (s *FileStore) Delete(ctx context.Context, id int, kind models.Kind) bool {
	s.warnIfUnloaded("delete")
	i, ok := s.find(id, kind)
	if !ok {
		return false
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return true
}

// Get returns the record with the given id and kind.
func (s *FileStore) Get(ctx context.Context, id int, kind models.Kind) (models.Record, bool) {
	s.warnIfUnloaded("get")
	if i, ok := s.find(id, kind); ok {
		return s.records[i], true
	}
	return nil, false
}

// GetAll returns records of one kind, or every record when kind is zero,
// in collection order.
func (s *FileStore) GetAll(ctx context.Context, kind models.Kind) []models.Record {
	s.warnIfUnloaded("list")
	out := make([]models.Record, 0, len(s.records))
	for _, rec := range s.records {
		if kind == "" || rec.Kind() == kind {
			out = append(out, rec)
		}
	}
	return out
}

// Search returns records of the kind whose fields all equal the given
// values. A field the record's kind lacks never matches.
func (s *FileStore) Search(ctx context.Context, kind models.Kind, fields map[string]any) []models.Record {
	s.warnIfUnloaded("search")
	var out []models.Record
	for _, rec := range s.records {
		if kind != "" && rec.Kind() != kind {
			continue
		}
		if matchesFields(rec, fields) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesFields(rec models.Record, fields map[string]any) bool {
	for name, want := range fields {
		got, ok := rec.Field(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (s *FileStore) find(id int, kind models.Kind) (int, bool) {
	for i, rec := range s.records {
		if rec.RecordID() == id && rec.Kind() == kind {
			return i, true
		}
	}
	return -1, false
}

// initEmpty writes the empty document and adopts it in memory. The
// collection is replaced only once the write succeeds, so a failed write
// cannot discard previously loaded records.
func (s *FileStore) initEmpty() error {
	counters := freshCounters()
	if err := s.writeDocument(nil, counters); err != nil {
		return err
	}
	s.records = nil
	s.nextID = counters
	s.loaded = true
	return nil
}

func (s *FileStore) warnIfUnloaded(op string) {
	if !s.loaded {
		slog.Warn("data file not loaded, operating on empty collection", "op", op, "path", s.path)
	}
}
