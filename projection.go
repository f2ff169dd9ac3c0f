package horizon

// Inputs is everything a projection depends on, captured at one point in time.
// The caller owns and edits the pieces; the calculations only read them.
type Inputs struct {
	Catalog      []CatalogEntry `json:"catalog"`
	Clients      []string       `json:"clients,omitempty"`
	Baseline     *Concepts      `json:"baseline"`
	Coefficients Coefficients   `json:"coefficients"`
	Lines        []ScenarioLine `json:"scenarioLines"`
	Tracks       []GoalTrack    `json:"goalTracks,omitempty"`
}

// TrackGauge is the gauge of a named goal track.
type TrackGauge struct {
	Name   string      `json:"name"`
	Target float64     `json:"target"`
	Gauge  GaugeResult `json:"gauge"`
}

// Projection is the full result of a recomputation. It has no identity: two
// projections of the same inputs are equal.
type Projection struct {
	Results  []ScenarioResult `json:"results"`
	PL       ConsolidatedPL   `json:"pl"`
	Proposal Proposal         `json:"proposal"`
	Gauges   []TrackGauge     `json:"gauges"`
}

// Project computes every scenario line, the consolidated statement and the
// gauges of the inputs.
func Project(in Inputs) Projection {
	results := ComputeScenarios(in.Lines, in.Catalog, in.Coefficients)
	p := Projection{
		Results:  results,
		PL:       Consolidate(in.Baseline, results, in.Coefficients.OperatingExpenseOverride),
		Proposal: NewProposal(in.Lines, results),
		Gauges:   make([]TrackGauge, 0, len(in.Tracks)),
	}
	for _, t := range in.Tracks {
		p.Gauges = append(p.Gauges, TrackGauge{Name: t.Name, Target: t.Target, Gauge: t.Gauge()})
	}
	return p
}
