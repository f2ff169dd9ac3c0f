package horizon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogEntry is a priced service or staffing profile that scenario lines
// refer to by index.
type CatalogEntry struct {
	Category             string  `json:"category"`
	Subtype              string  `json:"subtype"`
	UnitSalePrice        float64 `json:"unitSalePrice"`
	SuggestedGrossSalary float64 `json:"suggestedGrossSalary"`
	FixedCost            float64 `json:"fixedCost"`
}

// IsStaffing reports whether the entry sells people rather than a service:
// its category mentions "staff", in any case.
func (e CatalogEntry) IsStaffing() bool {
	return strings.Contains(strings.ToLower(e.Category), "staff")
}

// Label is "category / subtype".
func (e CatalogEntry) Label() string {
	if e.Subtype == "" {
		return e.Category
	}
	return e.Category + " / " + e.Subtype
}

// Coefficients are the operator-tuned percentages and overrides applied to
// every calculation.
type Coefficients struct {
	IndirectOverheadPct      float64 `json:"indirectOverheadPct"`
	LaborBurdenPct           float64 `json:"laborBurdenPct"`
	OperatingExpenseOverride float64 `json:"operatingExpenseOverride"`
	TargetMarginPct          float64 `json:"targetMarginPct"`
}

// Default coefficient values, used when the configuration sheet is silent.
const (
	DefaultIndirectOverheadPct      = 37
	DefaultLaborBurdenPct           = 45
	DefaultOperatingExpenseOverride = 46539684.59
	DefaultTargetMarginPct          = 25
)

// DefaultCoefficients returns the built-in coefficients.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		IndirectOverheadPct:      DefaultIndirectOverheadPct,
		LaborBurdenPct:           DefaultLaborBurdenPct,
		OperatingExpenseOverride: DefaultOperatingExpenseOverride,
		TargetMarginPct:          DefaultTargetMarginPct,
	}
}

// clamped returns the coefficients with invalid or negative values set to 0.
func (c Coefficients) clamped() Coefficients {
	return Coefficients{
		IndirectOverheadPct:      nonNegative(c.IndirectOverheadPct),
		LaborBurdenPct:           nonNegative(c.LaborBurdenPct),
		OperatingExpenseOverride: nonNegative(c.OperatingExpenseOverride),
		TargetMarginPct:          nonNegative(c.TargetMarginPct),
	}
}

// ScenarioLine is one simulated sale: a quantity of a catalog entry sold to a
// client, with the unit price and salary the operator settled on.
//
// The overrides are copied from the catalog when the line is created or its
// entry changes; afterwards the line owns them.
type ScenarioLine struct {
	ID                    string `json:"id,omitempty"`
	ClientRef             string `json:"clientRef"`
	CatalogIndex          int    `json:"catalogIndex"`
	Quantity              Amount `json:"quantity"`
	UnitSalePriceOverride Amount `json:"unitSalePriceOverride"`
	GrossSalaryOverride   Amount `json:"grossSalaryOverride"`
}

// NewScenarioLine returns the line the operator starts from: one unit of the
// first catalog entry for the first client.
func NewScenarioLine(catalog []CatalogEntry, clients []string) ScenarioLine {
	l := ScenarioLine{
		ClientRef: DefaultClient,
		Quantity:  1,
	}
	if len(clients) > 0 {
		l.ClientRef = clients[0]
	}
	return l.WithCatalogIndex(catalog, 0)
}

// DefaultClient names the client of a new line when no client is known.
const DefaultClient = "Nuevo Cliente"

// WithCatalogIndex returns a copy of the line pointing at catalog entry i. When
// the entry exists, the overrides are reset to its price and suggested salary.
func (l ScenarioLine) WithCatalogIndex(catalog []CatalogEntry, i int) ScenarioLine {
	l.CatalogIndex = i
	if e, ok := entryAt(catalog, i); ok {
		l.UnitSalePriceOverride = Amount(e.UnitSalePrice)
		l.GrossSalaryOverride = Amount(e.SuggestedGrossSalary)
	}
	return l
}

func entryAt(catalog []CatalogEntry, i int) (CatalogEntry, bool) {
	if i < 0 || i >= len(catalog) {
		return CatalogEntry{}, false
	}
	return catalog[i], true
}

// ScenarioResult is what a scenario line brings to the statement.
type ScenarioResult struct {
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Net       float64 `json:"net"`
	MarginPct float64 `json:"marginPct"`
}

// ComputeScenario derives revenue, cost, net and margin for a line.
//
// Staffing entries cost the gross salary loaded with labor burden and
// indirect overhead; other entries cost their fixed cost loaded with indirect
// overhead only. A line whose catalog index is out of range is worth nothing.
func ComputeScenario(l ScenarioLine, catalog []CatalogEntry, coef Coefficients) ScenarioResult {
	e, ok := entryAt(catalog, l.CatalogIndex)
	if !ok {
		return ScenarioResult{}
	}
	coef = coef.clamped()
	q := dec(nonNegative(l.Quantity.Float64()))
	indirect := pct(coef.IndirectOverheadPct)

	var cost decimal.Decimal
	if e.IsStaffing() {
		salary := q.Mul(dec(l.GrossSalaryOverride.Float64()))
		cost = salary.Mul(one.Add(pct(coef.LaborBurdenPct)).Add(indirect))
	} else {
		base := q.Mul(dec(e.FixedCost))
		cost = base.Mul(one.Add(indirect))
	}
	revenue := q.Mul(dec(l.UnitSalePriceOverride.Float64()))
	net := revenue.Sub(cost)

	return ScenarioResult{
		Revenue:   revenue.InexactFloat64(),
		Cost:      cost.InexactFloat64(),
		Net:       net.InexactFloat64(),
		MarginPct: ratio(net, revenue),
	}
}

// BelowTarget reports whether the result misses the target margin. Lines with
// no revenue are never below target.
func BelowTarget(r ScenarioResult, coef Coefficients) bool {
	return r.Revenue > 0 && r.MarginPct < nonNegative(coef.TargetMarginPct)
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// dec is a finite decimal for f.
func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(finite(f)) }

// pct turns a percentage into a fraction.
func pct(p float64) decimal.Decimal { return dec(p).Div(hundred) }

// ratio returns num/den in percent, 0 when den is not positive.
func ratio(num, den decimal.Decimal) float64 {
	if !den.IsPositive() {
		return 0
	}
	return num.Div(den).Mul(hundred).InexactFloat64()
}
