package renderer

import (
	"bytes"

	"github.com/etnz/horizon"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown lists saved snapshots with their headline figures.
func HistoryMarkdown(snapshots []horizon.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Historial")
	if len(snapshots) == 0 {
		doc.PlainText("No hay escenarios guardados.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"ID", "Nombre", "Fecha", "Líneas", "Ventas propuesta", "Ganancia neta"},
		Rows:   [][]string{},
	}
	for _, s := range snapshots {
		date := ""
		if !s.Date.IsZero() {
			date = s.Date.Format("02/01/2006 15:04")
		}
		table.Rows = append(table.Rows, []string{
			s.ID,
			s.Name,
			date,
			horizon.FormatNumber(float64(len(s.Lines)), 0),
			money(s.Proposal.Revenue),
			money(s.PL.NetIncome.Total),
		})
	}
	doc.Table(table)
	return doc.String()
}
