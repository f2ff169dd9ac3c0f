package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/horizon"
	md "github.com/nao1215/markdown"
)

// bar draws a completion percentage as ten cells.
func bar(completion float64) string {
	full := int(completion / 10)
	full = max(0, min(full, 10))
	return strings.Repeat("█", full) + strings.Repeat("░", 10-full)
}

// GaugesMarkdown renders the completion of every goal track, followed by the
// entries of each.
func GaugesMarkdown(tracks []horizon.GoalTrack) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Objetivos")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Objetivo", "Meta", "Logrado", "Brecha", "Avance", "Estado"},
		Rows:   [][]string{},
	}
	for _, t := range tracks {
		g := t.Gauge()
		table.Rows = append(table.Rows, []string{
			t.Name,
			money(t.Target),
			money(g.Achieved),
			money(g.Gap),
			bar(g.CompletionPct) + " " + pct(g.CompletionPct),
			g.Tier.String(),
		})
	}
	doc.Table(table)

	for _, t := range tracks {
		if len(t.Entries) == 0 {
			continue
		}
		doc.H2(fmt.Sprintf("%s: aportes", t.Name))
		entries := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignRight},
			Header:    []string{"#", "Cliente", "Monto"},
			Rows:      [][]string{},
		}
		for i, e := range t.Entries {
			entries.Rows = append(entries.Rows, []string{strconv.Itoa(i + 1), e.ClientRef, money(e.Amount.Float64())})
		}
		doc.Table(entries)
	}
	return doc.String()
}
