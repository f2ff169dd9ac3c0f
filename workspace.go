package horizon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// Workspace is the operator's editable state: the scenario lines being
// simulated, the goal tracks and, when the operator tuned them, the
// coefficients. Nil coefficients mean the dataset ones.
type Workspace struct {
	Lines        []ScenarioLine `json:"scenarioLines"`
	Tracks       []GoalTrack    `json:"goalTracks"`
	Coefficients *Coefficients  `json:"coefficients,omitempty"`
}

// NewWorkspace returns an empty workspace with the plan's goal tracks.
func NewWorkspace() *Workspace {
	return &Workspace{Tracks: DefaultGoalTracks()}
}

// LoadWorkspace reads the workspace file. A missing file is a new workspace.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewWorkspace(), nil
	}
	if err != nil {
		return nil, err
	}
	w := new(Workspace)
	if err := json.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("could not decode workspace %q: %w", path, err)
	}
	return w, nil
}

// Save writes the workspace file.
func (w *Workspace) Save(path string) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Inputs combines the workspace with the dataset it is simulated against.
func (w *Workspace) Inputs(ds *Dataset) Inputs {
	in := Inputs{
		Lines:  w.Lines,
		Tracks: w.Tracks,
	}
	if ds != nil {
		in.Catalog = ds.Catalog
		in.Clients = ds.Clients
		in.Baseline = ds.Baseline
	}
	in.Coefficients = ds.Coefficients()
	if w.Coefficients != nil {
		in.Coefficients = *w.Coefficients
	}
	return in
}

// AddLine appends a new line for the first client and catalog entry.
func (w *Workspace) AddLine(catalog []CatalogEntry, clients []string) ScenarioLine {
	l := NewScenarioLine(catalog, clients)
	l.ID = uuid.NewString()
	w.Lines = append(w.Lines, l)
	return l
}

// LineEdit lists the fields to change on a line; nil fields are kept.
type LineEdit struct {
	ClientRef     *string
	CatalogIndex  *int
	Quantity      *float64
	UnitSalePrice *float64
	GrossSalary   *float64
}

// UpdateLine edits the line ref designates, either by id or by its 1-based
// position. Changing the catalog entry resets the price and salary to the
// entry's, before any explicit price or salary of the edit is applied.
func (w *Workspace) UpdateLine(ref string, catalog []CatalogEntry, edit LineEdit) (ScenarioLine, error) {
	i, err := w.lineIndex(ref)
	if err != nil {
		return ScenarioLine{}, err
	}
	l := w.Lines[i]
	if edit.ClientRef != nil {
		l.ClientRef = *edit.ClientRef
	}
	if edit.CatalogIndex != nil {
		l = l.WithCatalogIndex(catalog, *edit.CatalogIndex)
	}
	if edit.Quantity != nil {
		l.Quantity = Amount(*edit.Quantity)
	}
	if edit.UnitSalePrice != nil {
		l.UnitSalePriceOverride = Amount(*edit.UnitSalePrice)
	}
	if edit.GrossSalary != nil {
		l.GrossSalaryOverride = Amount(*edit.GrossSalary)
	}
	w.Lines[i] = l
	return l, nil
}

// RemoveLine deletes the line ref designates.
func (w *Workspace) RemoveLine(ref string) error { return w.RemoveLines(ref) }

// RemoveLines deletes the lines refs designate. Positions refer to the lines
// as they are before any removal. Nothing is removed if a ref is unknown.
func (w *Workspace) RemoveLines(refs ...string) error {
	drop := make(map[int]bool, len(refs))
	for _, ref := range refs {
		i, err := w.lineIndex(ref)
		if err != nil {
			return err
		}
		drop[i] = true
	}
	kept := make([]ScenarioLine, 0, len(w.Lines))
	for i, l := range w.Lines {
		if !drop[i] {
			kept = append(kept, l)
		}
	}
	w.Lines = kept
	return nil
}

// ClearLines deletes every line.
func (w *Workspace) ClearLines() { w.Lines = nil }

func (w *Workspace) lineIndex(ref string) (int, error) {
	i := slices.IndexFunc(w.Lines, func(l ScenarioLine) bool { return l.ID == ref })
	if i < 0 {
		i = position(ref, len(w.Lines))
	}
	if i < 0 {
		return -1, fmt.Errorf("no scenario line %q", ref)
	}
	return i, nil
}

// position reads ref as a 1-based position among n, -1 if it is not one.
func position(ref string, n int) int {
	p, err := strconv.Atoi(ref)
	if err != nil || p < 1 || p > n {
		return -1
	}
	return p - 1
}

// Track returns the goal track named name, matched tolerantly, or nil.
func (w *Workspace) Track(name string) *GoalTrack {
	key := NormalizeKey(name)
	for i := range w.Tracks {
		if w.Tracks[i].Name == name || NormalizeKey(w.Tracks[i].Name) == key {
			return &w.Tracks[i]
		}
	}
	return nil
}

// SetTarget sets the target of a goal track, adding the track if needed.
func (w *Workspace) SetTarget(name string, target float64) {
	if t := w.Track(name); t != nil {
		t.Target = target
		return
	}
	w.Tracks = append(w.Tracks, GoalTrack{Name: name, Target: target})
}

// AddEntry appends a contribution to a goal track.
func (w *Workspace) AddEntry(track, client string, amount float64) (GoalTrackEntry, error) {
	t := w.Track(track)
	if t == nil {
		return GoalTrackEntry{}, fmt.Errorf("no goal track %q", track)
	}
	e := GoalTrackEntry{ID: uuid.NewString(), ClientRef: client, Amount: Amount(amount)}
	t.Entries = append(t.Entries, e)
	return e, nil
}

// RemoveEntry deletes the entry of a goal track ref designates, either by id
// or by its 1-based position.
func (w *Workspace) RemoveEntry(track, ref string) error {
	t := w.Track(track)
	if t == nil {
		return fmt.Errorf("no goal track %q", track)
	}
	i := slices.IndexFunc(t.Entries, func(e GoalTrackEntry) bool { return e.ID == ref })
	if i < 0 {
		i = position(ref, len(t.Entries))
	}
	if i < 0 {
		return fmt.Errorf("no entry %q in goal track %q", ref, t.Name)
	}
	t.Entries = slices.Delete(t.Entries, i, i+1)
	return nil
}

// Apply replaces the workspace lines and coefficients with the snapshot's.
// Goal tracks the snapshot carries replace the workspace entries of the same
// name; the others are left alone.
func (w *Workspace) Apply(s Snapshot) {
	w.Lines = slices.Clone(s.Lines)
	coef := s.Coefficients
	w.Coefficients = &coef
	for _, st := range s.Tracks {
		t := w.Track(st.Name)
		if t == nil {
			w.Tracks = append(w.Tracks, GoalTrack{Name: st.Name, Target: st.Target})
			t = &w.Tracks[len(w.Tracks)-1]
		}
		t.Entries = slices.Clone(st.Entries)
	}
}
