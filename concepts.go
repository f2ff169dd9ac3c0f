package horizon

import (
	"encoding/json"
)

// Concepts is an ordered map of concept names to amounts, such as the lines of
// a baseline income statement or the parameters of the configuration sheet.
//
// Names keep the order they were first set in. Setting a name again replaces
// its amount without moving it. The zero value is an empty map ready to use.
type Concepts struct {
	names  []string
	values map[string]float64
}

// NewConcepts returns a map holding the given name/amount pairs in order.
func NewConcepts(pairs ...ConceptAmount) *Concepts {
	c := new(Concepts)
	for _, p := range pairs {
		c.Set(p.Name, p.Amount)
	}
	return c
}

// ConceptAmount is one line of a Concepts map.
type ConceptAmount struct {
	Name   string
	Amount float64
}

// Set records the amount for name.
func (c *Concepts) Set(name string, amount float64) {
	if c.values == nil {
		c.values = make(map[string]float64)
	}
	if _, exists := c.values[name]; !exists {
		c.names = append(c.names, name)
	}
	c.values[name] = amount
}

// Len returns the number of concepts.
func (c *Concepts) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns the concept names in declaration order.
func (c *Concepts) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Lines returns the concepts in declaration order.
func (c *Concepts) Lines() []ConceptAmount {
	if c == nil {
		return nil
	}
	lines := make([]ConceptAmount, 0, len(c.names))
	for _, n := range c.names {
		lines = append(lines, ConceptAmount{Name: n, Amount: c.values[n]})
	}
	return lines
}

// Lookup returns the amount stored under exactly name.
func (c *Concepts) Lookup(name string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.values[name]
	return v, ok
}

// First returns the amount of the first name present (exact match), or def.
func (c *Concepts) First(def float64, names ...string) float64 {
	for _, n := range names {
		if v, ok := c.Lookup(n); ok {
			return v
		}
	}
	return def
}

// Get is TolerantGet(c, key).
func (c *Concepts) Get(key string) float64 { return TolerantGet(c, key) }

// TolerantGet resolves key against the concept names.
//
// Names are compared by their NormalizeKey form and the first match in
// declaration order wins. Failing that, key is looked up as is. Anything else
// is 0: a missing concept cannot be told apart from one worth zero.
func TolerantGet(c *Concepts, key string) float64 {
	if c == nil {
		return 0
	}
	nk := NormalizeKey(key)
	for _, n := range c.names {
		if NormalizeKey(n) == nk {
			return c.values[n]
		}
	}
	if v, ok := c.values[key]; ok {
		return v
	}
	return 0
}

// MarshalJSON encodes the concepts as an object in declaration order.
func (c *Concepts) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	if c != nil {
		for _, n := range c.names {
			w.Append(n, c.values[n])
		}
	}
	return w.MarshalJSON()
}

// UnmarshalJSON decodes an object keeping the member order. Values go through
// Amount so textual amounts are accepted.
func (c *Concepts) UnmarshalJSON(data []byte) error {
	*c = Concepts{}
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var a Amount
		if err := a.UnmarshalJSON(raw); err != nil {
			return err
		}
		c.Set(key, a.Float64())
		return nil
	})
}
