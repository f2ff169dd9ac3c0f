package horizon

import "encoding/json"

// Record is one data row of a decoded sheet: an ordered mapping from header
// label to the raw cell text.
//
// Records are immutable once decoded.
type Record struct {
	labels []string
	values map[string]string
}

// Len returns the number of distinct labels.
func (r Record) Len() int { return len(r.labels) }

// Labels returns the header labels in sheet order.
func (r Record) Labels() []string { return append([]string(nil), r.labels...) }

// Get returns the cell under label. The second value reports whether the
// sheet has such a column at all; a present column may still hold "".
func (r Record) Get(label string) (string, bool) {
	v, ok := r.values[label]
	return v, ok
}

// At returns the cell of the ordinal-th label.
func (r Record) At(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(r.labels) {
		return "", false
	}
	return r.values[r.labels[ordinal]], true
}

// MarshalJSON encodes the record as an object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, l := range r.labels {
		w.Append(l, r.values[l])
	}
	return w.MarshalJSON()
}

func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			// numbers and other scalars are kept as their JSON text.
			s = string(raw)
		}
		r.set(key, s)
		return nil
	})
}

func (r *Record) set(label, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[label]; !exists {
		r.labels = append(r.labels, label)
	}
	r.values[label] = value
}

// NewRecord builds a record from parallel labels and cells. Missing cells are
// "", extra cells are ignored, a repeated label keeps its first position and
// its last value.
func NewRecord(labels, cells []string) Record {
	var r Record
	for i, l := range labels {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		r.set(l, v)
	}
	return r
}

// RecordsFromRows maps a header row and data rows into records. The first row
// is the header, even when its cells are all empty.
func RecordsFromRows(rows [][]string) []Record {
	if len(rows) == 0 {
		return []Record{}
	}
	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, NewRecord(header, row))
	}
	return records
}

// Column is an explicit resolution chain for a loosely named column: each of
// Names is tried in turn, then the cell at Ordinal. A negative Ordinal disables
// the positional fallback.
type Column struct {
	Names   []string
	Ordinal int
}

// Col is a shorthand for Column{Names: names, Ordinal: ordinal}.
func Col(ordinal int, names ...string) Column {
	return Column{Names: names, Ordinal: ordinal}
}

// Resolve returns the first cell found along the chain.
func (c Column) Resolve(r Record) (string, bool) {
	for _, n := range c.Names {
		if v, ok := r.Get(n); ok {
			return v, true
		}
	}
	if c.Ordinal >= 0 {
		return r.At(c.Ordinal)
	}
	return "", false
}

// String returns the resolved cell or def when the chain finds nothing.
func (c Column) String(r Record, def string) string {
	if v, ok := c.Resolve(r); ok {
		return v
	}
	return def
}

// Number returns the resolved cell read with Number; 0 when nothing is found.
func (c Column) Number(r Record) float64 {
	v, _ := c.Resolve(r)
	return Number(v)
}
