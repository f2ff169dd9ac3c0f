package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/horizon"
	md "github.com/nao1215/markdown"
)

// belowTarget marks the lines whose margin misses the target.
const belowTarget = "⚠"

// ScenariosMarkdown renders the scenario lines of in with their results.
func ScenariosMarkdown(in horizon.Inputs, results []horizon.ScenarioResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Escenarios")
	if len(in.Lines) == 0 {
		doc.PlainText("No hay líneas simuladas.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"#", "Cliente", "Ítem", "Cantidad", "Precio unit.", "Sueldo bruto", "Venta", "Costo", "Resultado", "Margen"},
		Rows:   [][]string{},
	}
	for i, l := range in.Lines {
		var r horizon.ScenarioResult
		if i < len(results) {
			r = results[i]
		}
		item := "?"
		if l.CatalogIndex >= 0 && l.CatalogIndex < len(in.Catalog) {
			item = in.Catalog[l.CatalogIndex].Label()
		}
		margin := pct(r.MarginPct)
		if horizon.BelowTarget(r, in.Coefficients) {
			margin = belowTarget + " " + margin
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			l.ClientRef,
			item,
			horizon.FormatNumber(l.Quantity.Float64(), 2),
			money(l.UnitSalePriceOverride.Float64()),
			money(l.GrossSalaryOverride.Float64()),
			money(r.Revenue),
			money(r.Cost),
			signed(r.Net),
			margin,
		})
	}
	doc.Table(table)
	doc.PlainText(belowTarget + " margen por debajo del objetivo de " + pct(in.Coefficients.TargetMarginPct))

	return doc.String()
}

// CoefficientsMarkdown renders the coefficients in use.
func CoefficientsMarkdown(c horizon.Coefficients) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Coeficientes")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Coeficiente", "Valor"},
		Rows: [][]string{
			{"Indirectos", pct(c.IndirectOverheadPct)},
			{"Costo laboral", pct(c.LaborBurdenPct)},
			{"Gastos operativos", money(c.OperatingExpenseOverride)},
			{"Margen objetivo", pct(c.TargetMarginPct)},
		},
	})
	return doc.String()
}
