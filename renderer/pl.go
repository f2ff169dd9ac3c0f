package renderer

import (
	"bytes"

	"github.com/etnz/horizon"
	md "github.com/nao1215/markdown"
)

func money(f float64) string  { return horizon.ARS(f).String() }
func signed(f float64) string { return horizon.ARS(f).SignedString() }
func pct(f float64) string    { return horizon.Percent(f).String() }

// share is part over whole in percent, "-" when whole is not positive.
func share(part, whole float64) string {
	if whole <= 0 {
		return "-"
	}
	return pct(part / whole * 100)
}

// PLMarkdown renders the consolidated income statement: baseline, simulated
// and total columns, each concept also as a share of the revenue.
func PLMarkdown(pl horizon.ConsolidatedPL) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Estado de Resultados Proyectado")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Concepto", "Base", "Simulado", "Total", "% Ingreso"},
		Rows:   [][]string{},
	}
	row := func(concept string, l horizon.PLLine) {
		table.Rows = append(table.Rows, []string{
			concept,
			money(l.Baseline),
			signed(l.Simulated),
			money(l.Total),
			share(l.Total, pl.Revenue.Total),
		})
	}
	row(horizon.ConceptRevenue, pl.Revenue)
	row(horizon.ConceptCost, pl.Cost)
	row(md.Bold(horizon.ConceptGrossProfit), pl.GrossProfit)
	row(horizon.ConceptOperatingExpense, pl.OperatingExpense)
	row(md.Bold(horizon.ConceptOperatingIncome), pl.OperatingIncome)
	row(horizon.ConceptOtherIncome, pl.OtherIncome)
	row(horizon.ConceptOtherExpense, pl.OtherExpense)
	row(md.Bold(horizon.ConceptNetIncome), pl.NetIncome)
	doc.Table(table)

	doc.H2("Márgenes")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Margen", "%"},
		Rows: [][]string{
			{"Bruto", pct(pl.GrossMarginPct)},
			{"Operativo", pct(pl.OperatingMarginPct)},
			{"Neto", pct(pl.NetMarginPct)},
		},
	})

	return doc.String()
}

// ProposalMarkdown renders the simulated lines alone, overall and per client.
func ProposalMarkdown(p horizon.Proposal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Propuesta")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Ventas"), md.Bold(money(p.Revenue))},
		Rows: [][]string{
			{"Costos", money(p.Cost)},
			{"Margen bruto", money(p.GrossMargin)},
			{"Margen bruto %", pct(p.GrossMarginPct)},
		},
	})

	if len(p.ByClient) > 0 {
		doc.H2("Por cliente")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Cliente", "Ventas", "Costos", "Resultado"},
			Rows:      [][]string{},
		}
		for _, c := range p.ByClient {
			table.Rows = append(table.Rows, []string{c.Client, money(c.Revenue), money(c.Cost), signed(c.Net())})
		}
		doc.Table(table)
	}
	return doc.String()
}
