package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tripstack/travelrec/internal/models"
	"github.com/tripstack/travelrec/internal/storage"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "travelrec-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	path := filepath.Join(tempDir, "data", "records.json")
	return New(path), path
}

func testDate() time.Time {
	return time.Date(2025, 3, 15, 19, 4, 0, 0, time.UTC)
}

func TestLoadInitializesMissingFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(store.GetAll(ctx, "")); got != 0 {
		t.Errorf("Expected empty collection, got %d records", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read created file: %v", err)
	}
	var doc struct {
		Records []json.RawMessage `json:"records"`
		NextID  int               `json:"next_id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Created file is not valid JSON: %v", err)
	}
	if doc.Records == nil || len(doc.Records) != 0 {
		t.Errorf("Expected empty records array, got %v", doc.Records)
	}
	if doc.NextID != 1 {
		t.Errorf("next_id = %d, want 1", doc.NextID)
	}
}

func TestLoadRewritesEmptyFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero bytes", content: ""},
		{name: "whitespace only", content: "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := newTestStore(t)
			ctx := context.Background()

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				t.Fatalf("Failed to create dir: %v", err)
			}
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write file: %v", err)
			}

			if err := store.Load(ctx); err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read file: %v", err)
			}
			var doc map[string]any
			if err := json.Unmarshal(data, &doc); err != nil {
				t.Fatalf("Rewritten file is not valid JSON: %v", err)
			}
			if _, ok := doc["records"]; !ok {
				t.Error("Rewritten file has no records key")
			}
		})
	}
}

func TestLoadMalformedFileKeepsState(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe", Country: "United Kingdom"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"records": [oops`), 0644); err != nil {
		t.Fatalf("Failed to clobber file: %v", err)
	}

	err := store.Load(ctx)
	if !errors.Is(err, storage.ErrParse) {
		t.Fatalf("Load error = %v, want ErrParse", err)
	}
	if got := len(store.GetAll(ctx, models.KindClient)); got != 1 {
		t.Errorf("Collection changed after failed load: got %d clients, want 1", got)
	}
}

func TestLoadRewriteFailureKeepsState(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe", Country: "United Kingdom"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Truncate the file externally and block the rewrite by squatting on
	// the temp path with a directory.
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to truncate file: %v", err)
	}
	if err := os.Mkdir(path+".tmp", 0755); err != nil {
		t.Fatalf("Failed to create blocking dir: %v", err)
	}

	if err := store.Load(ctx); err == nil {
		t.Fatal("Load succeeded although the empty document could not be written")
	}
	if got := len(store.GetAll(ctx, models.KindClient)); got != 1 {
		t.Errorf("Collection changed after failed load: got %d clients, want 1", got)
	}
}

func TestOperationsBeforeLoadWarn(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	if got := len(store.GetAll(ctx, "")); got != 0 {
		t.Errorf("GetAll before Load = %d records, want 0", got)
	}
	id, err := store.Add(ctx, &models.Client{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Add before Load assigned id %d, want 1", id)
	}
	if !strings.Contains(buf.String(), "not loaded") {
		t.Errorf("Expected a degraded-mode warning before Load, log output:\n%s", buf.String())
	}

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	buf.Reset()
	store.GetAll(ctx, "")
	if strings.Contains(buf.String(), "not loaded") {
		t.Errorf("Degraded-mode warning still logged after successful Load:\n%s", buf.String())
	}
}

func TestLoadSkipsBadEntries(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	content := `{
  "records": [
    {"id": 1, "type": "client", "name": "Jane Doe", "country": "United Kingdom"},
    {"id": 2, "type": "hotel", "name": "Grand Plaza"},
    {"id": 3, "type": "flight", "airline_id": 2, "date": "2025-03-15T19:04:00", "start_city": "London", "end_city": "Oslo"},
    42,
    {"id": 1, "type": "airline", "company_name": "Nordic Air"}
  ],
  "next_id": 1
}`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(store.GetAll(ctx, "")); got != 2 {
		t.Fatalf("Expected 2 surviving records, got %d", got)
	}
	if _, ok := store.Get(ctx, 1, models.KindClient); !ok {
		t.Error("Valid client was dropped")
	}
	if _, ok := store.Get(ctx, 1, models.KindAirline); !ok {
		t.Error("Valid airline was dropped")
	}
}

func TestAddAssignsIDsPerKind(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		rec  models.Record
		want int
	}{
		{name: "first client", rec: &models.Client{Name: "Jane Doe"}, want: 1},
		{name: "second client", rec: &models.Client{Name: "Sam Smith"}, want: 2},
		{name: "first airline", rec: &models.Airline{CompanyName: "Nordic Air"}, want: 1},
		{name: "first flight", rec: &models.Flight{ClientID: 1, AirlineID: 1, Date: testDate(), StartCity: "London", EndCity: "Oslo"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := store.Add(ctx, tt.rec)
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if id != tt.want {
				t.Errorf("Add assigned id %d, want %d", id, tt.want)
			}
			if tt.rec.RecordID() != tt.want {
				t.Errorf("Record id = %d, want %d", tt.rec.RecordID(), tt.want)
			}
		})
	}
}

func TestAddExplicitID(t *testing.T) {
	ctx := context.Background()

	t.Run("free id is kept and counter untouched", func(t *testing.T) {
		store, _ := newTestStore(t)
		id, err := store.Add(ctx, &models.Client{ID: 5, Name: "Jane Doe"})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if id != 5 {
			t.Errorf("Add returned id %d, want 5", id)
		}
		// Counter still points at 1, so the next auto-assign fills the gap.
		next, err := store.Add(ctx, &models.Client{Name: "Sam Smith"})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if next != 1 {
			t.Errorf("Auto-assigned id %d, want 1", next)
		}
	})

	t.Run("taken id is rejected", func(t *testing.T) {
		store, _ := newTestStore(t)
		if _, err := store.Add(ctx, &models.Client{ID: 2, Name: "Jane Doe"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		_, err := store.Add(ctx, &models.Client{ID: 2, Name: "Sam Smith"})
		if !errors.Is(err, storage.ErrDuplicateID) {
			t.Fatalf("Add error = %v, want ErrDuplicateID", err)
		}
		if got := len(store.GetAll(ctx, models.KindClient)); got != 1 {
			t.Errorf("Collection changed by rejected add: %d records", got)
		}
	})

	t.Run("same id on another kind is fine", func(t *testing.T) {
		store, _ := newTestStore(t)
		if _, err := store.Add(ctx, &models.Client{ID: 2, Name: "Jane Doe"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := store.Add(ctx, &models.Airline{ID: 2, CompanyName: "Nordic Air"}); err != nil {
			t.Errorf("Add failed for same id on different kind: %v", err)
		}
	})

	t.Run("auto-assign probes past explicit ids", func(t *testing.T) {
		store, _ := newTestStore(t)
		for _, id := range []int{1, 2} {
			if _, err := store.Add(ctx, &models.Airline{ID: id, CompanyName: "Nordic Air"}); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}
		id, err := store.Add(ctx, &models.Airline{CompanyName: "Baltic Wings"})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if id != 3 {
			t.Errorf("Auto-assigned id %d, want 3", id)
		}
	})
}

func TestAddDoesNotWriteFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	fresh := New(path)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(fresh.GetAll(ctx, "")); got != 0 {
		t.Errorf("Add persisted without Save: %d records on disk", got)
	}
}

func TestDeletedIDsAreNotReassigned(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Jane Doe", "Sam Smith", "Ann Ray"} {
		if _, err := store.Add(ctx, &models.Client{Name: name}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if !store.Delete(ctx, 2, models.KindClient) {
		t.Fatal("Delete returned false for existing record")
	}

	id, err := store.Add(ctx, &models.Client{Name: "Lee Chen"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != 4 {
		t.Errorf("Assigned id %d after delete, want 4", id)
	}
}

func TestCountersPersistAcrossReload(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !store.Delete(ctx, 1, models.KindClient) {
		t.Fatal("Delete returned false")
	}
	if err := store.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fresh := New(path)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	id, err := fresh.Add(ctx, &models.Client{Name: "Sam Smith"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != 2 {
		t.Errorf("Assigned id %d after reload, want 2 (counter persisted)", id)
	}
}

func TestLoadLegacyDocumentWithoutCounters(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	content := `{
  "records": [
    {"id": 1, "type": "client", "name": "Jane Doe"},
    {"id": 2, "type": "client", "name": "Sam Smith"}
  ],
  "next_id": 1
}`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	id, err := store.Add(ctx, &models.Client{Name: "Ann Ray"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != 3 {
		t.Errorf("Assigned id %d, want 3 (probe past existing ids)", id)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces record and persists", func(t *testing.T) {
		store, path := newTestStore(t)
		if err := store.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe", City: "Liverpool"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := store.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		found, err := store.Update(ctx, &models.Client{ID: 1, Name: "Jane Doe", City: "Manchester"})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !found {
			t.Fatal("Update reported record not found")
		}

		fresh := New(path)
		if err := fresh.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		rec, ok := fresh.Get(ctx, 1, models.KindClient)
		if !ok {
			t.Fatal("Record missing after reload")
		}
		if got := rec.(*models.Client).City; got != "Manchester" {
			t.Errorf("City = %q after reload, want Manchester", got)
		}
	})

	t.Run("unknown record writes nothing", func(t *testing.T) {
		store, path := newTestStore(t)
		if err := store.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		before, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}

		found, err := store.Update(ctx, &models.Client{ID: 9, Name: "Nobody"})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if found {
			t.Error("Update reported success for unknown record")
		}

		after, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(before) != string(after) {
			t.Error("File changed by update of unknown record")
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only the (id, kind) match", func(t *testing.T) {
		store, _ := newTestStore(t)
		if _, err := store.Add(ctx, &models.Client{ID: 1, Name: "Jane Doe"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := store.Add(ctx, &models.Airline{ID: 1, CompanyName: "Nordic Air"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		if !store.Delete(ctx, 1, models.KindClient) {
			t.Fatal("Delete returned false for existing record")
		}
		if _, ok := store.Get(ctx, 1, models.KindAirline); !ok {
			t.Error("Airline with same id was deleted too")
		}
	})

	t.Run("ignores references from flights", func(t *testing.T) {
		store, _ := newTestStore(t)
		if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		flight := &models.Flight{ClientID: 1, AirlineID: 1, Date: testDate(), StartCity: "London", EndCity: "Oslo"}
		if _, err := store.Add(ctx, flight); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		// Referential safety lives with the caller, not here.
		if !store.Delete(ctx, 1, models.KindClient) {
			t.Error("Delete refused a referenced client")
		}
		if _, ok := store.Get(ctx, 1, models.KindFlight); !ok {
			t.Error("Flight disappeared with its client")
		}
	})

	t.Run("absent record", func(t *testing.T) {
		store, _ := newTestStore(t)
		if store.Delete(ctx, 7, models.KindClient) {
			t.Error("Delete returned true for absent record")
		}
	})

	t.Run("does not write the file", func(t *testing.T) {
		store, path := newTestStore(t)
		if err := store.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := store.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if !store.Delete(ctx, 1, models.KindClient) {
			t.Fatal("Delete returned false")
		}

		fresh := New(path)
		if err := fresh.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if _, ok := fresh.Get(ctx, 1, models.KindClient); !ok {
			t.Error("Delete persisted without Save")
		}
	})
}

func TestGetAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	records := []models.Record{
		&models.Client{Name: "Jane Doe"},
		&models.Airline{CompanyName: "Nordic Air"},
		&models.Client{Name: "Sam Smith"},
		&models.Flight{ClientID: 1, AirlineID: 1, Date: testDate(), StartCity: "London", EndCity: "Oslo"},
	}
	for _, rec := range records {
		if _, err := store.Add(ctx, rec); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if got := len(store.GetAll(ctx, "")); got != 4 {
		t.Errorf("GetAll(all) = %d records, want 4", got)
	}
	clients := store.GetAll(ctx, models.KindClient)
	if len(clients) != 2 {
		t.Fatalf("GetAll(client) = %d records, want 2", len(clients))
	}
	if clients[0].(*models.Client).Name != "Jane Doe" {
		t.Error("GetAll did not preserve collection order")
	}
}

func TestSearch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seed := []models.Record{
		&models.Client{Name: "Jane Doe", City: "Liverpool", Country: "United Kingdom"},
		&models.Client{Name: "Sam Smith", City: "Liverpool", Country: "Ireland"},
		&models.Airline{CompanyName: "Nordic Air"},
		&models.Flight{ClientID: 1, AirlineID: 1, Date: testDate(), StartCity: "London", EndCity: "Oslo"},
		&models.Flight{ClientID: 2, AirlineID: 1, Date: testDate(), StartCity: "Oslo", EndCity: "London"},
	}
	for _, rec := range seed {
		if _, err := store.Add(ctx, rec); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		kind   models.Kind
		fields map[string]any
		want   int
	}{
		{name: "by name", kind: models.KindClient, fields: map[string]any{"name": "Jane Doe"}, want: 1},
		{name: "two fields must both match", kind: models.KindClient, fields: map[string]any{"city": "Liverpool", "country": "Ireland"}, want: 1},
		{name: "no match", kind: models.KindClient, fields: map[string]any{"name": "Nobody"}, want: 0},
		{name: "flights by client id", kind: models.KindFlight, fields: map[string]any{"client_id": 1}, want: 1},
		{name: "flights by date", kind: models.KindFlight, fields: map[string]any{"date": testDate()}, want: 2},
		{name: "field foreign to kind never matches", kind: models.KindAirline, fields: map[string]any{"name": "Jane Doe"}, want: 0},
		{name: "any kind by id", kind: "", fields: map[string]any{"id": 1}, want: 3},
		{name: "empty fields match everything of kind", kind: models.KindFlight, fields: map[string]any{}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Search(ctx, tt.kind, tt.fields)
			if len(got) != tt.want {
				t.Errorf("Search returned %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSaveDocumentShape(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, &models.Client{Name: "Jane Doe"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, &models.Flight{ClientID: 1, AirlineID: 1, Date: testDate(), StartCity: "London", EndCity: "Oslo"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	var doc struct {
		Records []map[string]any `json:"records"`
		NextID  int              `json:"next_id"`
		NextIDs map[string]int   `json:"next_ids"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Saved file is not valid JSON: %v", err)
	}
	if len(doc.Records) != 2 {
		t.Fatalf("Saved %d records, want 2", len(doc.Records))
	}
	if doc.Records[0]["type"] != "client" || doc.Records[1]["type"] != "flight" {
		t.Errorf("Record type tags = %v, %v", doc.Records[0]["type"], doc.Records[1]["type"])
	}
	if doc.Records[1]["date"] != "2025-03-15T19:04:00" {
		t.Errorf("Flight date on disk = %v, want 2025-03-15T19:04:00", doc.Records[1]["date"])
	}
	if doc.NextID != 2 {
		t.Errorf("next_id = %d, want 2", doc.NextID)
	}
	if doc.NextIDs["client"] != 2 || doc.NextIDs["flight"] != 2 || doc.NextIDs["airline"] != 1 {
		t.Errorf("next_ids = %v", doc.NextIDs)
	}
}
