package horizon

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
)

// Snapshot is a named, frozen copy of the scenario lines and coefficients,
// together with the statement they produced when it was taken.
type Snapshot struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Date         time.Time      `json:"date"`
	Lines        []ScenarioLine `json:"scenarioLines"`
	Coefficients Coefficients   `json:"coefficients"`
	Tracks       []GoalTrack    `json:"goalTracks,omitempty"`
	PL           ConsolidatedPL `json:"computedPL"`
	Proposal     Proposal       `json:"proposal"`
}

// NewSnapshot freezes the inputs under name, with a fresh id.
func NewSnapshot(name string, in Inputs, on time.Time) Snapshot {
	p := Project(in)
	return Snapshot{
		ID:           uuid.NewString(),
		Name:         name,
		Date:         on,
		Lines:        slices.Clone(in.Lines),
		Coefficients: in.Coefficients,
		Tracks:       cloneTracks(in.Tracks),
		PL:           p.PL,
		Proposal:     p.Proposal,
	}
}

func cloneTracks(tracks []GoalTrack) []GoalTrack {
	if tracks == nil {
		return nil
	}
	out := make([]GoalTrack, len(tracks))
	for i, t := range tracks {
		t.Entries = slices.Clone(t.Entries)
		out[i] = t
	}
	return out
}

// DefaultSnapshotName is the name of a shared snapshot that has none.
const DefaultSnapshotName = "Sin nombre"

// legacy history date layouts, day first.
var sharedDateLayouts = []string{
	"2/1/2006, 15:04:05",
	"2/1/2006 15:04:05",
	"2/1/2006, 15:04",
	"2/1/2006",
	time.RFC3339,
}

// legacy goal track fields, in the order of DefaultGoalTracks.
var sharedTrackFields = []string{"lineasVentaTotal", "lineasRenovacion", "lineasIncremental"}

// DecodeSharedHistory reads the shared history export of the spreadsheet
// application: an array of rows whose keys are matched without regard to case
// and whose scenario, configuration and statement columns may hold JSON text.
//
// Rows are read leniently. Missing or unreadable parts are left empty; only a
// document that is not a JSON array is an error.
func DecodeSharedHistory(data []byte) ([]Snapshot, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("shared history is not a JSON array of objects: %w", err)
	}

	snapshots := make([]Snapshot, 0, len(rows))
	for _, row := range rows {
		row = foldKeys(row)
		s := Snapshot{
			ID:           strings.ReplaceAll(text(row["id"]), "'", ""),
			Name:         text(row["nombre"]),
			Date:         sharedDate(text(row["fecha"])),
			Coefficients: DefaultCoefficients(),
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.Name == "" {
			s.Name = DefaultSnapshotName
		}

		if lines, ok := embedded(row["datosescenario"]).([]any); ok {
			for _, l := range lines {
				s.Lines = append(s.Lines, sharedLine(l))
			}
		}
		if config, ok := embedded(row["configuracion"]).(map[string]any); ok {
			s.Coefficients = sharedCoefficients(config)
			s.Tracks = sharedTracks(config)
		}
		if eerr, ok := embedded(row["eerr"]).(map[string]any); ok {
			s.PL, s.Proposal = sharedStatement(eerr)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

// foldKeys lower cases the keys of a row. The first of colliding keys wins.
func foldKeys(row map[string]any) map[string]any {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	folded := make(map[string]any, len(row))
	for _, k := range keys {
		lk := strings.ToLower(k)
		if _, exists := folded[lk]; !exists {
			folded[lk] = row[k]
		}
	}
	return folded
}

// embedded decodes v when it is JSON text, and returns it unchanged otherwise.
func embedded(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil
	}
	return decoded
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

func sharedDate(s string) time.Time {
	for _, layout := range sharedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// probe returns the value at path in v, or nil. Paths are plain member
// accesses, so the answer is never a list of matches.
func probe(path string, v any) any {
	val, err := jsonpath.Get(path, v)
	if err != nil {
		return nil
	}
	return val
}

// probeNumber is like probe but reads the value with storedNumber, and
// reports whether it was there at all.
func probeNumber(path string, v any) (float64, bool) {
	val := probe(path, v)
	if val == nil {
		return 0, false
	}
	return storedNumber(val), true
}

// storedNumber reads a number saved by the application itself, the way the
// application read it back: JSON numbers and numeric text are kept as they
// are, empty or unreadable text is 0.
func storedNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case json.Number:
		f, _ := n.Float64()
		return finite(f)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return finite(f)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func sharedLine(v any) ScenarioLine {
	n := func(path string) float64 { f, _ := probeNumber(path, v); return f }
	return ScenarioLine{
		ID:                    text(probe("$.id", v)),
		ClientRef:             text(probe("$.cliente", v)),
		CatalogIndex:          int(n("$.tipoIdx")),
		Quantity:              Amount(n("$.cantidad")),
		UnitSalePriceOverride: Amount(n("$.ventaUnit")),
		GrossSalaryOverride:   Amount(n("$.sueldoBruto")),
	}
}

func sharedCoefficients(config map[string]any) Coefficients {
	c := DefaultCoefficients()
	if f, ok := probeNumber("$.pctIndirectos", config); ok {
		c.IndirectOverheadPct = f
	}
	if f, ok := probeNumber("$.pctCostoLaboral", config); ok {
		c.LaborBurdenPct = f
	}
	if f, ok := probeNumber("$.gastosOperativos", config); ok {
		c.OperatingExpenseOverride = f
	}
	if f, ok := probeNumber("$.margenObjetivo", config); ok {
		c.TargetMarginPct = f
	}
	return c
}

func sharedTracks(config map[string]any) []GoalTrack {
	var tracks []GoalTrack
	for i, t := range DefaultGoalTracks() {
		list, ok := probe("$."+sharedTrackFields[i], config).([]any)
		if !ok {
			continue
		}
		for _, e := range list {
			amount, _ := probeNumber("$.monto", e)
			t.Entries = append(t.Entries, GoalTrackEntry{
				ID:        text(probe("$.id", e)),
				ClientRef: text(probe("$.cliente", e)),
				Amount:    Amount(amount),
			})
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func sharedStatement(eerr map[string]any) (ConsolidatedPL, Proposal) {
	n := func(path string) float64 { f, _ := probeNumber(path, eerr); return f }
	line := func(base, total string) PLLine {
		b, t := n(base), n(total)
		return PLLine{Baseline: b, Simulated: t - b, Total: t}
	}
	pl := ConsolidatedPL{
		Revenue:          line("$.ingresoBase", "$.ingresoTotal"),
		Cost:             line("$.costoIngresoBase", "$.costoIngresosTotal"),
		GrossProfit:      line("$.gananciaBrutaBase", "$.gananciaBrutaTotal"),
		OperatingExpense: line("$.gastoOperacionBase", "$.gastoOperacionTotal"),
		OperatingIncome:  line("$.ingresoOperacionBase", "$.ingresoOperacionTotal"),
		OtherIncome:      line("$.otrosIngresosBase", "$.otrosIngresosTotal"),
		OtherExpense:     line("$.otrosGastosBase", "$.otrosGastosTotal"),
		NetIncome:        line("$.gananciaNetaBase", "$.gananciaNetaTotal"),

		GrossMarginPct:     n("$.margenBrutoPct"),
		OperatingMarginPct: n("$.margenOperacionPct"),
		NetMarginPct:       n("$.margenNetoPct"),
	}

	proposal := Proposal{
		Revenue:        n("$.propuesta.ventasTotales"),
		Cost:           n("$.propuesta.costosTotales"),
		GrossMargin:    n("$.propuesta.margenBruto"),
		GrossMarginPct: n("$.propuesta.margenBrutoPct"),
		ByClient:       []ClientTotals{},
	}
	if byClient, ok := probe("$.propuesta.porCliente", eerr).(map[string]any); ok {
		clients := make([]string, 0, len(byClient))
		for c := range byClient {
			clients = append(clients, c)
		}
		slices.Sort(clients)
		for _, c := range clients {
			revenue, _ := probeNumber("$.ventas", byClient[c])
			cost, _ := probeNumber("$.costos", byClient[c])
			proposal.ByClient = append(proposal.ByClient, ClientTotals{Client: c, Revenue: revenue, Cost: cost})
		}
	}
	return pl, proposal
}
