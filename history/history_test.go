package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/etnz/horizon"
)

func snapshot(name string, day int) horizon.Snapshot {
	in := horizon.Inputs{
		Catalog:      []horizon.CatalogEntry{{Category: "Staff", UnitSalePrice: 10, SuggestedGrossSalary: 4}},
		Baseline:     horizon.NewConcepts(horizon.ConceptAmount{Name: "Ingreso", Amount: 100}),
		Coefficients: horizon.DefaultCoefficients(),
		Lines:        []horizon.ScenarioLine{{ID: "l1", ClientRef: "ACME", Quantity: 2, UnitSalePriceOverride: 10, GrossSalaryOverride: 4}},
		Tracks:       horizon.DefaultGoalTracks(),
	}
	return horizon.NewSnapshot(name, in, time.Date(2026, time.January, day, 9, 0, 0, 0, time.UTC))
}

// testStore runs the behaviour every store shares.
func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	a, b := snapshot("A", 1), snapshot("B", 2)
	for _, s := range []horizon.Snapshot{a, b} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("Save(%s) error: %v", s.Name, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 || list[0].ID != b.ID || list[1].ID != a.ID {
		t.Fatalf("List() = %v, want B then A", names(list))
	}
	if !reflect.DeepEqual(list[1], a) {
		t.Errorf("List()[1] =\n%+v\nwant\n%+v", list[1], a)
	}

	got, err := store.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "A" || got.PL != a.PL {
		t.Errorf("Get() = %+v", got)
	}

	a.Name = "A renamed"
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save(again) error: %v", err)
	}
	if got, _ := store.Get(ctx, a.ID); got.Name != "A renamed" {
		t.Errorf("Save() did not replace the snapshot: %+v", got)
	}
	if list, _ := store.List(ctx); len(list) != 2 {
		t.Errorf("Save() of a known id added a snapshot: %v", names(list))
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
}

func names(list []horizon.Snapshot) []string {
	var n []string
	for _, s := range list {
		n = append(n, s.Name)
	}
	return n
}

func TestFileStore(t *testing.T) {
	testStore(t, &FileStore{Path: filepath.Join(t.TempDir(), "history.jsonl")})
}

func TestFileStore_Missing(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "history.jsonl")}
	list, err := store.List(context.Background())
	if err != nil || len(list) != 0 {
		t.Errorf("List() on a missing file = %v, %v", list, err)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	if err := os.WriteFile(path, []byte("{\"id\":\"x\"}\n\nnot json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&FileStore{Path: path}).List(context.Background()); err == nil {
		t.Errorf("List() on a corrupt file expected an error")
	}
}

func TestImport(t *testing.T) {
	legacy := `[{"ID": 1, "Nombre": "Viejo"}, {"ID": 2}]`
	snapshots, err := horizon.DecodeSharedHistory([]byte(legacy))
	if err != nil {
		t.Fatal(err)
	}
	store := &FileStore{Path: filepath.Join(t.TempDir(), "history.jsonl")}
	n, err := Import(context.Background(), store, snapshots)
	if err != nil || n != 2 {
		t.Fatalf("Import() = %d, %v", n, err)
	}
	list, _ := store.List(context.Background())
	if want := []string{horizon.DefaultSnapshotName, "Viejo"}; !reflect.DeepEqual(names(list), want) {
		t.Errorf("List() = %v, want %v", names(list), want)
	}
}

func TestOpen(t *testing.T) {
	store, err := Open(context.Background(), "h.jsonl", "")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if fs, ok := store.(*FileStore); !ok || fs.Path != "h.jsonl" {
		t.Errorf("Open() = %#v, want a file store", store)
	}
	if _, err := Open(context.Background(), "", ""); err == nil {
		t.Errorf("Open() with nothing configured expected an error")
	}
	Close(store)
}

func TestPGStore(t *testing.T) {
	url := os.Getenv("HORIZON_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("HORIZON_TEST_DATABASE_URL not set")
	}
	store, err := NewPGStore(context.Background(), url)
	if err != nil {
		t.Fatalf("NewPGStore() error: %v", err)
	}
	defer store.Close()
	testStore(t, store)
}
