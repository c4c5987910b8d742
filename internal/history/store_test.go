package history

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"idverify/internal/config"
	"idverify/internal/consistency"
	"idverify/internal/document"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecords() []document.Record {
	return []document.Record{
		{Kind: document.KindPAN, Name: document.Optional("JOHN SMITH"), DateOfBirth: document.Optional("1990-06-15"), IDNumber: document.Optional("ABCDE1234F"), Source: "pan.pdf"},
		{Kind: document.KindAadhaar, Name: document.Optional("JOHN SMITH"), DateOfBirth: nil, IDNumber: document.Optional("123456789012"), Source: "aadhaar.png"},
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	records := sampleRecords()
	summary := consistency.Compare(records)

	run, err := store.Save(ctx, records, summary)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected run id")
	}

	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.Records) != 2 || got.Records[1].DateOfBirth != nil || document.Value(got.Records[0].IDNumber) != "ABCDE1234F" {
		t.Fatalf("unexpected records: %+v", got.Records)
	}
	if got.Records[1].Source != "aadhaar.png" {
		t.Fatalf("expected source to persist, got %q", got.Records[1].Source)
	}
	if got.Summary.TotalRecords != 2 || len(got.Summary.Mismatches) != 1 {
		t.Fatalf("unexpected summary: %+v", got.Summary)
	}
	mm := got.Summary.Mismatches[0]
	if mm.Index != 1 || !mm.NameOK || mm.DOBOK || mm.IDOK {
		t.Fatalf("unexpected mismatch: %+v", mm)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestGetByPrefix(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	run, err := store.Save(ctx, sampleRecords(), consistency.Summary{TotalRecords: 2})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := store.Get(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("Get by prefix returned error: %v", err)
	}
	if got.ID != run.ID {
		t.Fatalf("expected %s, got %s", run.ID, got.ID)
	}
	if got.Summary.Mismatches == nil {
		t.Fatal("expected empty mismatches slice, got nil")
	}
}

func TestGetMissingRun(t *testing.T) {
	store := openTestStore(t)
	for _, id := range []string{"", "does-not-exist", "%"} {
		if _, err := store.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var ids []string
	for i := range 3 {
		store.now = func() time.Time { return base.Add(time.Duration(i) * time.Second) }
		run, err := store.Save(ctx, sampleRecords(), consistency.Compare(sampleRecords()))
		if err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
		ids = append(ids, run.ID)
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != ids[2] || entries[1].ID != ids[1] {
		t.Fatalf("unexpected order: %s, %s", entries[0].ID, entries[1].ID)
	}
	if entries[0].TotalRecords != 2 || entries[0].MismatchCount != 1 {
		t.Fatalf("unexpected entry counts: %+v", entries[0])
	}
	if len(entries[0].Sources) != 2 || entries[0].Sources[0] != "pan.pdf" {
		t.Fatalf("unexpected sources: %v", entries[0].Sources)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
}

func TestListSubSecondOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return base }
	first, err := store.Save(ctx, nil, consistency.Summary{})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	store.now = func() time.Time { return base.Add(500 * time.Millisecond) }
	second, err := store.Save(ctx, nil, consistency.Summary{})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", entries[0].ID, entries[1].ID)
	}
	if len(entries[0].Sources) != 0 {
		t.Fatalf("expected no sources, got %v", entries[0].Sources)
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	run, err := store.Save(ctx, sampleRecords(), consistency.Summary{TotalRecords: 2})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Delete(ctx, run.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReopenKeepsRunsAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	run, err := store.Save(context.Background(), sampleRecords(), consistency.Summary{TotalRecords: 2})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	_ = store.Close()

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Get(context.Background(), run.ID); err != nil {
		t.Fatalf("expected run after reopen: %v", err)
	}
	version, err := reopened.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion returned error: %v", err)
	}
	if version != "0001_init" {
		t.Fatalf("unexpected schema version %q", version)
	}
}

func TestConcurrentOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store, err := OpenPath(path)
			if err != nil {
				errs <- err
				return
			}
			errs <- store.Close()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent open failed: %v", err)
		}
	}
}
