package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/horizon"
	md "github.com/nao1215/markdown"
)

// RecordsMarkdown renders decoded sheet records as a table, with the labels
// of the first record as header.
func RecordsMarkdown(title string, records []horizon.Record) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(records) == 0 {
		doc.PlainText("Sin registros.")
		return doc.String()
	}

	labels := records[0].Labels()
	table := md.TableSet{
		Alignment: make([]md.TableAlignment, len(labels)),
		Header:    labels,
		Rows:      [][]string{},
	}
	for i := range table.Alignment {
		table.Alignment[i] = md.AlignLeft
	}
	for _, r := range records {
		row := make([]string, len(labels))
		for i, l := range labels {
			row[i], _ = r.Get(l)
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	return doc.String()
}

// CatalogMarkdown renders the catalog with the index scenario lines refer to.
func CatalogMarkdown(catalog []horizon.CatalogEntry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Catálogo")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Índice", "Categoría", "Tipo", "Valor", "Sueldo sugerido", "Costo fijo", "Staffing"},
		Rows:   [][]string{},
	}
	for i, e := range catalog {
		staffing := ""
		if e.IsStaffing() {
			staffing = "sí"
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i),
			e.Category,
			e.Subtype,
			money(e.UnitSalePrice),
			money(e.SuggestedGrossSalary),
			money(e.FixedCost),
			staffing,
		})
	}
	doc.Table(table)
	return doc.String()
}

// ConceptsMarkdown renders named amounts, such as the baseline statement.
func ConceptsMarkdown(title string, c *horizon.Concepts) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Concepto", "Monto"},
		Rows:      [][]string{},
	}
	for _, l := range c.Lines() {
		table.Rows = append(table.Rows, []string{l.Name, horizon.FormatNumber(l.Amount, 2)})
	}
	doc.Table(table)
	return doc.String()
}
