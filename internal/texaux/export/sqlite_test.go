package export

import (
	"context"
	"path/filepath"
	"testing"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	"github.com/msto63/texrefs/internal/texaux/record"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "refs.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := NewRun("paper.aux", true)
	if err := store.Save(ctx, run, sampleRecords()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	latest, records, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.ID != run.ID {
		t.Errorf("Latest().ID = %q, want %q", latest.ID, run.ID)
	}
	if latest.Records != 3 || !latest.IncludeBib || latest.Source != "paper.aux" {
		t.Errorf("Latest() run = %+v", latest)
	}

	want := sampleRecords()
	if len(records) != len(want) {
		t.Fatalf("len(records) = %d, want %d", len(records), len(want))
	}
	if string(EncodeJSON(records)) != string(EncodeJSON(want)) {
		t.Errorf("records differ after round trip:\n%s\n%s", EncodeJSON(records), EncodeJSON(want))
	}
	if records[1].OutputID != nil || records[1].Page != nil {
		t.Error("citation gained an output id or page")
	}
}

func TestStoreKeepsEmptyType(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	in := []record.Record{
		record.NewLabel("a", "1", "3", "", ".x", ""),
		record.NewLabel("b", "2", "4", "", "nodot", ""),
	}
	if err := store.Save(ctx, NewRun("paper.aux", false), in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, records, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if !records[0].HasType() || records[0].TypeValue() != "" {
		t.Errorf("records[0].HasType() = %v, TypeValue() = %q, want an empty type", records[0].HasType(), records[0].TypeValue())
	}
	if records[1].HasType() {
		t.Errorf("records[1].Type = %q, want unset", records[1].TypeValue())
	}
}

func TestStoreKeepsHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := NewRun("paper.aux", false)
	if err := store.Save(ctx, first, sampleRecords()[:1]); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second := NewRun("paper.aux", false)
	if err := store.Save(ctx, second, sampleRecords()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	runs, err := store.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(Runs()) = %d, want 2", len(runs))
	}
	if runs[0].ID != second.ID {
		t.Errorf("Runs()[0].ID = %q, want newest run %q", runs[0].ID, second.ID)
	}

	old, err := store.Records(ctx, first.ID)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(old) != 1 {
		t.Errorf("len(Records(first)) = %d, want 1", len(old))
	}
}

func TestStoreDuplicateRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := NewRun("paper.aux", false)
	if err := store.Save(ctx, run, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	err := store.Save(ctx, run, nil)
	if !mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
		t.Errorf("Save() duplicate error = %v, want DATABASE_ERROR", err)
	}
}

func TestStoreLatestEmpty(t *testing.T) {
	store := openTestStore(t)
	_, _, err := store.Latest(context.Background())
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Latest() error = %v, want NOT_FOUND", err)
	}
}
