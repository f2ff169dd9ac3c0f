package horizon

import "github.com/shopspring/decimal"

// Baseline concept names, matched tolerantly against the baseline sheet.
const (
	ConceptRevenue          = "Ingreso"
	ConceptCost             = "Costo de ingresos"
	ConceptGrossProfit      = "Ganancia bruta"
	ConceptOperatingExpense = "Menos gasto de operación"
	ConceptOperatingIncome  = "Ingreso de operación"
	ConceptOtherIncome      = "Más otros ingresos"
	ConceptOtherExpense     = "Menos gastos de otro tipo"
	ConceptNetIncome        = "Ganancia neta"
)

// PLLine is one row of the consolidated statement.
type PLLine struct {
	Baseline  float64 `json:"baseline"`
	Simulated float64 `json:"simulated"`
	Total     float64 `json:"total"`
}

// ConsolidatedPL is the baseline income statement merged with the simulated
// scenario lines.
type ConsolidatedPL struct {
	Revenue          PLLine `json:"revenue"`
	Cost             PLLine `json:"cost"`
	GrossProfit      PLLine `json:"grossProfit"`
	OperatingExpense PLLine `json:"operatingExpense"`
	OperatingIncome  PLLine `json:"operatingIncome"`
	OtherIncome      PLLine `json:"otherIncome"`
	OtherExpense     PLLine `json:"otherExpense"`
	NetIncome        PLLine `json:"netIncome"`

	GrossMarginPct     float64 `json:"grossMarginPct"`
	OperatingMarginPct float64 `json:"operatingMarginPct"`
	NetMarginPct       float64 `json:"netMarginPct"`
}

// Consolidate merges the baseline statement with the sum of the scenario
// results.
//
// Revenue and cost add the simulated sums to the baseline. Operating expense
// is not simulated: its total is opexOverride when positive, the baseline
// otherwise. Other income and expense come from the baseline only. Margins are
// relative to total revenue and are 0 when there is no revenue.
func Consolidate(baseline *Concepts, results []ScenarioResult, opexOverride float64) ConsolidatedPL {
	var simRevenue, simCost decimal.Decimal
	for _, r := range results {
		simRevenue = simRevenue.Add(dec(r.Revenue))
		simCost = simCost.Add(dec(r.Cost))
	}
	simGross := simRevenue.Sub(simCost)

	base := func(concept string) decimal.Decimal { return dec(TolerantGet(baseline, concept)) }

	revenue := base(ConceptRevenue).Add(simRevenue)
	cost := base(ConceptCost).Add(simCost)
	gross := revenue.Sub(cost)

	opex := base(ConceptOperatingExpense)
	if o := nonNegative(opexOverride); o != 0 {
		opex = dec(o)
	}
	operating := gross.Sub(opex)
	otherIncome := base(ConceptOtherIncome)
	otherExpense := base(ConceptOtherExpense)
	net := operating.Add(otherIncome).Sub(otherExpense)

	zero := decimal.Zero
	return ConsolidatedPL{
		Revenue:          plLine(base(ConceptRevenue), simRevenue, revenue),
		Cost:             plLine(base(ConceptCost), simCost, cost),
		GrossProfit:      plLine(base(ConceptGrossProfit), simGross, gross),
		OperatingExpense: plLine(base(ConceptOperatingExpense), zero, opex),
		OperatingIncome:  plLine(base(ConceptOperatingIncome), simGross, operating),
		OtherIncome:      plLine(otherIncome, zero, otherIncome),
		OtherExpense:     plLine(otherExpense, zero, otherExpense),
		NetIncome:        plLine(base(ConceptNetIncome), simGross, net),

		GrossMarginPct:     ratio(gross, revenue),
		OperatingMarginPct: ratio(operating, revenue),
		NetMarginPct:       ratio(net, revenue),
	}
}

func plLine(baseline, simulated, total decimal.Decimal) PLLine {
	return PLLine{
		Baseline:  baseline.InexactFloat64(),
		Simulated: simulated.InexactFloat64(),
		Total:     total.InexactFloat64(),
	}
}

// ComputeScenarios computes every line against the catalog.
func ComputeScenarios(lines []ScenarioLine, catalog []CatalogEntry, coef Coefficients) []ScenarioResult {
	results := make([]ScenarioResult, len(lines))
	for i, l := range lines {
		results[i] = ComputeScenario(l, catalog, coef)
	}
	return results
}

// ClientTotals sums the simulated lines sold to one client.
type ClientTotals struct {
	Client  string  `json:"client"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
}

// Net is revenue minus cost.
func (c ClientTotals) Net() float64 { return c.Revenue - c.Cost }

// Proposal summarizes the simulated lines alone, without the baseline.
type Proposal struct {
	Revenue        float64        `json:"revenue"`
	Cost           float64        `json:"cost"`
	GrossMargin    float64        `json:"grossMargin"`
	GrossMarginPct float64        `json:"grossMarginPct"`
	ByClient       []ClientTotals `json:"byClient"`
}

// NewProposal sums lines and their results (same length and order) overall and
// per client. Clients are listed in the order they first appear.
func NewProposal(lines []ScenarioLine, results []ScenarioResult) Proposal {
	type acc struct{ revenue, cost decimal.Decimal }
	var order []string
	byClient := make(map[string]*acc)
	var revenue, cost decimal.Decimal

	for i, r := range results {
		client := ""
		if i < len(lines) {
			client = lines[i].ClientRef
		}
		a, ok := byClient[client]
		if !ok {
			a = new(acc)
			byClient[client] = a
			order = append(order, client)
		}
		a.revenue = a.revenue.Add(dec(r.Revenue))
		a.cost = a.cost.Add(dec(r.Cost))
		revenue = revenue.Add(dec(r.Revenue))
		cost = cost.Add(dec(r.Cost))
	}

	p := Proposal{
		Revenue:        revenue.InexactFloat64(),
		Cost:           cost.InexactFloat64(),
		GrossMargin:    revenue.Sub(cost).InexactFloat64(),
		GrossMarginPct: ratio(revenue.Sub(cost), revenue),
		ByClient:       make([]ClientTotals, 0, len(order)),
	}
	for _, c := range order {
		a := byClient[c]
		p.ByClient = append(p.ByClient, ClientTotals{
			Client:  c,
			Revenue: a.revenue.InexactFloat64(),
			Cost:    a.cost.InexactFloat64(),
		})
	}
	return p
}
