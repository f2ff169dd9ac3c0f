package horizon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

var testSheets = TextSource{
	SheetCatalog: "Categoría,Tipo,Valor (ARS),Sueldo Sugerido (ARS),Costo Fijo (ARS)\n" +
		"Staff Senior,Dev,\"$ 250.000\",\"100.000\",0\n" +
		"Servicio Software,Licencia,9.000,,\"5.000\"\n",
	SheetClients: "Cliente\nACME\n\"\"\nGlobex\n",
	SheetConfig: "Parámetro;Valor\n" +
		"% Indirectos ;40\n" +
		"Costo Laboral;50\n" +
		";99\n" +
		"Margen Objetivo (%);\"30\"\n",
	SheetBaseline: "Concepto,Monto (ARS)\n" +
		"Ingreso,\"1.000.000\"\n" +
		"Costo de ingresos,\"400.000,50\"\n" +
		"Menos gasto de operación,\"100.000\"\n",
}

func TestLoadDataset(t *testing.T) {
	ds, err := LoadDataset(context.Background(), testSheets)
	if err != nil {
		t.Fatalf("LoadDataset() error: %v", err)
	}

	wantCatalog := []CatalogEntry{
		{Category: "Staff Senior", Subtype: "Dev", UnitSalePrice: 250000, SuggestedGrossSalary: 100000},
		{Category: "Servicio Software", Subtype: "Licencia", UnitSalePrice: 9000, FixedCost: 5000},
	}
	if !reflect.DeepEqual(ds.Catalog, wantCatalog) {
		t.Errorf("Catalog = %+v, want %+v", ds.Catalog, wantCatalog)
	}
	if want := []string{"ACME", "Globex"}; !reflect.DeepEqual(ds.Clients, want) {
		t.Errorf("Clients = %v, want %v", ds.Clients, want)
	}
	if got := ds.Baseline.Get(ConceptCost); got != 400000.5 {
		t.Errorf("Baseline cost = %v, want 400000.5", got)
	}
	if got := ds.Parameters.Names(); !reflect.DeepEqual(got, []string{"% Indirectos", "Costo Laboral", "Margen Objetivo (%)"}) {
		t.Errorf("Parameters = %v", got)
	}

	coef := ds.Coefficients()
	want := Coefficients{IndirectOverheadPct: 40, LaborBurdenPct: 50, OperatingExpenseOverride: DefaultOperatingExpenseOverride, TargetMarginPct: 30}
	if coef != want {
		t.Errorf("Coefficients() = %+v, want %+v", coef, want)
	}
}

func TestLoadDataset_MissingSheet(t *testing.T) {
	src := TextSource{SheetCatalog: "a\n1"}
	if _, err := LoadDataset(context.Background(), src); err == nil {
		t.Errorf("LoadDataset() expected an error for missing sheets")
	}
}

func TestCatalogFromRecords_Fallbacks(t *testing.T) {
	// no known header: columns are taken by position.
	records := DecodeRecords("c1,c2,c3,c4,c5\nStaff,Tipo X,\"1.500\",\"800\",\"10\"\n")
	got := CatalogFromRecords(records)
	want := []CatalogEntry{{Category: "Staff", Subtype: "Tipo X", UnitSalePrice: 1500, SuggestedGrossSalary: 800, FixedCost: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CatalogFromRecords() = %+v, want %+v", got, want)
	}

	// a sheet with a single column gets the defaults for the rest.
	got = CatalogFromRecords(DecodeRecords("only\nx\n"))
	want = []CatalogEntry{{Category: "x", Subtype: "Default"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CatalogFromRecords() = %+v, want %+v", got, want)
	}
}

func TestCoefficientsFrom(t *testing.T) {
	if got := CoefficientsFrom(nil); got != DefaultCoefficients() {
		t.Errorf("CoefficientsFrom(nil) = %+v, want defaults", got)
	}
	// a present zero is kept, not replaced by the default.
	params := NewConcepts(ConceptAmount{"Gastos Operativos", 0}, ConceptAmount{"Indirectos", 12})
	got := CoefficientsFrom(params)
	if got.OperatingExpenseOverride != 0 || got.IndirectOverheadPct != 12 || got.LaborBurdenPct != DefaultLaborBurdenPct {
		t.Errorf("CoefficientsFrom() = %+v", got)
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	for sheet, text := range testSheets {
		if err := os.WriteFile(filepath.Join(dir, sheet+".csv"), []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}
	ds, err := LoadDataset(context.Background(), DirSource(dir))
	if err != nil {
		t.Fatalf("LoadDataset(dir) error: %v", err)
	}
	if len(ds.Catalog) != 2 || len(ds.Clients) != 2 {
		t.Errorf("LoadDataset(dir) = %+v", ds)
	}

	if _, err := DirSource(t.TempDir()).Records(context.Background(), SheetCatalog); !os.IsNotExist(err) {
		t.Errorf("Records() on a missing file = %v, want a not-exist error", err)
	}
}

func TestWorkbookSource(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet(SheetBaseline); err != nil {
		t.Fatal(err)
	}
	rows := [][]any{
		{"Concepto", "Monto (ARS)"},
		{"Ingreso", 1234.5},
		{"Costo de ingresos", "1.000,25"},
		{" Ganancia neta ", 10},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetBaseline, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "horizon.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	records, err := WorkbookSource{Path: path}.Records(context.Background(), SheetBaseline)
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}
	baseline := BaselineFromRecords(records)
	want := []ConceptAmount{{"Ingreso", 1234.5}, {"Costo de ingresos", 1000.25}, {"Ganancia neta", 10}}
	if got := baseline.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("baseline = %v, want %v", got, want)
	}

	if _, err := (WorkbookSource{Path: path}).Records(context.Background(), "Nope"); err == nil {
		t.Errorf("Records(Nope) expected an error")
	}
}

func TestSheetSource(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/spreadsheets/d/sheet-id/gviz/tq" {
			http.NotFound(w, r)
			return
		}
		text, ok := testSheets[r.URL.Query().Get("sheet")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(text))
	}))
	defer srv.Close()

	client := new(http.Client)
	client.Transport = &diskCache{base: http.DefaultTransport, dir: t.TempDir(), now: func() time.Time {
		return time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	}}
	src := SheetSource{SpreadsheetID: "sheet-id", Client: client, BaseURL: srv.URL}

	ds, err := LoadDataset(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadDataset(sheets) error: %v", err)
	}
	if len(ds.Catalog) != 2 {
		t.Errorf("Catalog = %+v", ds.Catalog)
	}
	if n := atomic.LoadInt32(&hits); n != 4 {
		t.Errorf("server hits = %d, want 4", n)
	}

	// the same day, everything comes from the disk cache.
	if _, err := LoadDataset(context.Background(), src); err != nil {
		t.Fatalf("LoadDataset(sheets) second time error: %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 4 {
		t.Errorf("server hits after cached load = %d, want 4", n)
	}

	if _, err := src.Records(context.Background(), "Nope"); err == nil {
		t.Errorf("Records(Nope) expected an error")
	}
}

func TestSheetSource_URL(t *testing.T) {
	got := SheetSource{SpreadsheetID: "abc"}.URL("EERR Base")
	want := "https://docs.google.com/spreadsheets/d/abc/gviz/tq?tqx=out:csv&sheet=EERR+Base"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
