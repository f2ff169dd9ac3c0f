package horizon

import (
	"reflect"
	"testing"
)

func TestConsolidate(t *testing.T) {
	baseline := NewConcepts(
		ConceptAmount{"Ingreso", 100},
		ConceptAmount{"costo de ingresos", 40},
		ConceptAmount{"Ganancia bruta", 60},
		ConceptAmount{"Menos gasto de operacion", 20},
		ConceptAmount{"Ingreso de operación", 40},
		ConceptAmount{"Más otros ingresos", 5},
		ConceptAmount{"Menos gastos de otro tipo", 3},
		ConceptAmount{"Ganancia neta", 42},
	)
	results := []ScenarioResult{
		{Revenue: 30, Cost: 4},
		{Revenue: 20, Cost: 6},
	}

	t.Run("without opex override", func(t *testing.T) {
		pl := Consolidate(baseline, results, 0)

		want := ConsolidatedPL{
			Revenue:          PLLine{Baseline: 100, Simulated: 50, Total: 150},
			Cost:             PLLine{Baseline: 40, Simulated: 10, Total: 50},
			GrossProfit:      PLLine{Baseline: 60, Simulated: 40, Total: 100},
			OperatingExpense: PLLine{Baseline: 20, Simulated: 0, Total: 20},
			OperatingIncome:  PLLine{Baseline: 40, Simulated: 40, Total: 80},
			OtherIncome:      PLLine{Baseline: 5, Simulated: 0, Total: 5},
			OtherExpense:     PLLine{Baseline: 3, Simulated: 0, Total: 3},
			NetIncome:        PLLine{Baseline: 42, Simulated: 40, Total: 82},
		}
		got := pl
		got.GrossMarginPct, got.OperatingMarginPct, got.NetMarginPct = 0, 0, 0
		if got != want {
			t.Errorf("Consolidate() =\n%+v\nwant\n%+v", got, want)
		}
		if !closeTo(pl.GrossMarginPct, 66.6667) {
			t.Errorf("GrossMarginPct = %v, want 66.67", pl.GrossMarginPct)
		}
		if !closeTo(pl.OperatingMarginPct, 80.0/150*100) {
			t.Errorf("OperatingMarginPct = %v, want %v", pl.OperatingMarginPct, 80.0/150*100)
		}
		if !closeTo(pl.NetMarginPct, 82.0/150*100) {
			t.Errorf("NetMarginPct = %v, want %v", pl.NetMarginPct, 82.0/150*100)
		}
	})

	t.Run("opex override replaces the baseline", func(t *testing.T) {
		pl := Consolidate(baseline, results, 70)
		if pl.OperatingExpense.Total != 70 || pl.OperatingExpense.Baseline != 20 {
			t.Errorf("OperatingExpense = %+v, want total 70 baseline 20", pl.OperatingExpense)
		}
		if pl.OperatingIncome.Total != 30 {
			t.Errorf("OperatingIncome.Total = %v, want 30", pl.OperatingIncome.Total)
		}
		// 30 + 5 - 3
		if pl.NetIncome.Total != 32 {
			t.Errorf("NetIncome.Total = %v, want 32", pl.NetIncome.Total)
		}
	})

	t.Run("negative opex override keeps the baseline", func(t *testing.T) {
		pl := Consolidate(baseline, results, -50)
		if pl.OperatingExpense.Total != 20 {
			t.Errorf("OperatingExpense.Total = %v, want the baseline 20", pl.OperatingExpense.Total)
		}
		if pl.OperatingIncome.Total != 80 {
			t.Errorf("OperatingIncome.Total = %v, want 80", pl.OperatingIncome.Total)
		}
	})
}

func TestConsolidate_MissingBaseline(t *testing.T) {
	pl := Consolidate(nil, []ScenarioResult{{Revenue: 50, Cost: 10}}, 0)
	if pl.Revenue.Total != 50 || pl.Cost.Total != 10 || pl.GrossProfit.Total != 40 {
		t.Errorf("Consolidate(nil) = %+v", pl)
	}
	if pl.NetIncome.Total != 40 {
		t.Errorf("NetIncome.Total = %v, want 40", pl.NetIncome.Total)
	}
	if !closeTo(pl.GrossMarginPct, 80) {
		t.Errorf("GrossMarginPct = %v, want 80", pl.GrossMarginPct)
	}
}

func TestConsolidate_NoRevenue(t *testing.T) {
	baseline := NewConcepts(ConceptAmount{"Ingreso", -10}, ConceptAmount{"Costo de ingresos", 5})
	pl := Consolidate(baseline, nil, 0)
	if pl.GrossMarginPct != 0 || pl.OperatingMarginPct != 0 || pl.NetMarginPct != 0 {
		t.Errorf("margins with non positive revenue = %v %v %v, want 0", pl.GrossMarginPct, pl.OperatingMarginPct, pl.NetMarginPct)
	}
	if pl.GrossProfit.Total != -15 {
		t.Errorf("GrossProfit.Total = %v, want -15", pl.GrossProfit.Total)
	}
}

func TestConsolidate_Idempotent(t *testing.T) {
	baseline := NewConcepts(ConceptAmount{"Ingreso", 1234.56}, ConceptAmount{"Costo de ingresos", 0.1})
	lines := []ScenarioLine{
		{ClientRef: "a", CatalogIndex: 0, Quantity: 3, UnitSalePriceOverride: 0.1},
		{ClientRef: "b", CatalogIndex: 1, Quantity: 0.3, GrossSalaryOverride: 0.7, UnitSalePriceOverride: 0.2},
		{ClientRef: "c", CatalogIndex: 9, Quantity: 1},
	}
	coef := DefaultCoefficients()

	first := Consolidate(baseline, ComputeScenarios(lines, testCatalog, coef), coef.OperatingExpenseOverride)
	second := Consolidate(baseline, ComputeScenarios(lines, testCatalog, coef), coef.OperatingExpenseOverride)
	if first != second {
		t.Errorf("Consolidate() is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestNewProposal(t *testing.T) {
	lines := []ScenarioLine{{ClientRef: "ACME"}, {ClientRef: "Globex"}, {ClientRef: "ACME"}}
	results := []ScenarioResult{{Revenue: 100, Cost: 60}, {Revenue: 50, Cost: 50}, {Revenue: 10, Cost: 0}}

	p := NewProposal(lines, results)
	if p.Revenue != 160 || p.Cost != 110 || p.GrossMargin != 50 {
		t.Errorf("NewProposal() totals = %+v", p)
	}
	if !closeTo(p.GrossMarginPct, 31.25) {
		t.Errorf("GrossMarginPct = %v, want 31.25", p.GrossMarginPct)
	}
	want := []ClientTotals{{Client: "ACME", Revenue: 110, Cost: 60}, {Client: "Globex", Revenue: 50, Cost: 50}}
	if !reflect.DeepEqual(p.ByClient, want) {
		t.Errorf("ByClient = %+v, want %+v", p.ByClient, want)
	}
	if p.ByClient[0].Net() != 50 {
		t.Errorf("Net() = %v, want 50", p.ByClient[0].Net())
	}

	empty := NewProposal(nil, nil)
	if empty.GrossMarginPct != 0 || len(empty.ByClient) != 0 {
		t.Errorf("NewProposal(nil) = %+v", empty)
	}
}
