package handles

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "handles.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsertAndGet(t *testing.T) {
	store := openTestStore(t)

	err := store.Insert(Record{
		Name:   "resnet50-20260830-120000-ab12cd34",
		Kind:   KindRecommendation,
		Status: "PENDING",
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	got, err := store.Get("resnet50-20260830-120000-ab12cd34")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Kind != KindRecommendation || got.Status != "PENDING" {
		t.Errorf("record = %+v", got)
	}
	if got.SubmittedAt.IsZero() {
		t.Error("SubmittedAt is zero")
	}
}

func TestInsertDuplicateNameFails(t *testing.T) {
	store := openTestStore(t)

	rec := Record{Name: "job-1", Kind: KindTraining}
	if err := store.Insert(rec); err != nil {
		t.Fatal(err)
	}
	if err := store.Insert(rec); err == nil {
		t.Error("Insert accepted a duplicate name")
	}
}

func TestUpdateStatus(t *testing.T) {
	store := openTestStore(t)
	if err := store.Insert(Record{Name: "job-2", Kind: KindTuning, Status: "PENDING"}); err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateStatus("job-2", "FAILED", "quota exceeded"); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	got, err := store.Get("job-2")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "FAILED" || got.Detail != "quota exceeded" {
		t.Errorf("record = %+v", got)
	}

	if err := store.UpdateStatus("missing", "X", ""); err == nil {
		t.Error("UpdateStatus accepted an unknown name")
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	store := openTestStore(t)
	names := []struct{ name, kind string }{
		{"train-1", KindTraining},
		{"rec-1", KindRecommendation},
		{"train-2", KindTraining},
	}
	for _, n := range names {
		if err := store.Insert(Record{Name: n.name, Kind: n.kind}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.List("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d records, want 3", len(all))
	}
	if all[0].Name != "train-2" {
		t.Errorf("newest first: got %s", all[0].Name)
	}

	trainOnly, err := store.List(KindTraining, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(trainOnly) != 2 {
		t.Errorf("training records = %d, want 2", len(trainOnly))
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	if err := store.Insert(Record{Name: "gone", Kind: KindEndpoint}); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get("gone"); err == nil {
		t.Error("Get found a deleted handle")
	}
}
