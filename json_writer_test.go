package horizon

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("z", 1)
		w.Append("Más otros ingresos", "hello")
		w.Append("a", 2.5)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"z":1,"Más otros ingresos":"hello","a":2.5}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is actually added.
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("ch", make(chan int))
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("MarshalJSON() expected an error for a channel value")
		}
	})
}

func TestDecodeOrderedObject(t *testing.T) {
	var keys []string
	err := decodeOrderedObject([]byte(`{"b":1,"a":{"x":[1,2]},"c":"v"}`), func(key string, raw json.RawMessage) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		t.Fatalf("decodeOrderedObject() error: %v", err)
	}
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Errorf("decodeOrderedObject() keys = %v, want [b a c]", keys)
	}

	if err := decodeOrderedObject([]byte(`[1]`), func(string, json.RawMessage) error { return nil }); err == nil {
		t.Errorf("decodeOrderedObject() expected an error on an array")
	}
}
