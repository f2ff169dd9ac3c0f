package horizon

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

// fields flattens records into label=value lists for easy comparison.
func fields(records []Record) [][]string {
	var out [][]string
	for _, r := range records {
		var row []string
		for _, l := range r.Labels() {
			v, _ := r.Get(l)
			row = append(row, l+"="+v)
		}
		out = append(out, row)
	}
	return out
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]string
	}{
		{
			name: "quoted separator and trailing newline",
			in:   "a,b,c\n1,\"x,y\",3\n",
			want: [][]string{{"a=1", "b=x,y", "c=3"}},
		},
		{
			name: "semicolons",
			in:   "Concepto;Monto (ARS)\nIngreso;\"1.000,50\"\n",
			want: [][]string{{"Concepto=Ingreso", "Monto (ARS)=1.000,50"}},
		},
		{
			name: "mixed separators",
			in:   "a;b,c\n1,2;3",
			want: [][]string{{"a=1", "b=2", "c=3"}},
		},
		{
			name: "row of empty fields is kept",
			in:   "a,b,c\n1,2,3\n,,\n",
			want: [][]string{{"a=1", "b=2", "c=3"}, {"a=", "b=", "c="}},
		},
		{
			name: "row of empty fields between rows",
			in:   "a,b,c\n1,2,3\n,,\n4,5,6\n",
			want: [][]string{{"a=1", "b=2", "c=3"}, {"a=", "b=", "c="}, {"a=4", "b=5", "c=6"}},
		},
		{
			// the empty labels collapse into one, holding the last value.
			name: "header of empty fields",
			in:   ",,\n1,2,3",
			want: [][]string{{"=3"}},
		},
		{
			name: "short row is padded",
			in:   "a,b,c\n1",
			want: [][]string{{"a=1", "b=", "c="}},
		},
		{
			name: "long row is cut",
			in:   "a,b\n1,2,3,4",
			want: [][]string{{"a=1", "b=2"}},
		},
		{
			name: "blank lines and CRLF",
			in:   "\r\n  \na,b\r\n\r\n1,2\r\n \n3,4\r\n",
			want: [][]string{{"a=1", "b=2"}, {"a=3", "b=4"}},
		},
		{
			name: "header with BOM and quotes",
			in:   "\uFEFF\"Cliente\",\"Zona\"\n\"ACME\",\"Norte\"",
			want: [][]string{{"Cliente=ACME", "Zona=Norte"}},
		},
		{
			name: "duplicate labels keep first position and last value",
			in:   "a,b,a\n1,2,3",
			want: [][]string{{"a=3", "b=2"}},
		},
		{
			name: "semicolon in quotes",
			in:   "a;b\n\"x;y\";z",
			want: [][]string{{"a=x;y", "b=z"}},
		},
		{
			name: "only header",
			in:   "a,b\n\n",
			want: nil,
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(DecodeRecords(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeRecords(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`1,"x,y",3`, []string{"1", "x,y", "3"}},
		{` "a" , b `, []string{`"a"`, "b"}},
		// the quote is only stripped when it is the very first character.
		{`  "a",b`, []string{`"a`, "b"}},
		{`"`, []string{""}},
		{`,`, []string{"", ""}},
	}
	for _, tt := range tests {
		if got := splitLine(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ReadRecords() got %d records, want 1", len(records))
	}
	if v, _ := records[0].Get("b"); v != "2" {
		t.Errorf("Get(b) = %q, want %q", v, "2")
	}
}

func TestColumn_Resolve(t *testing.T) {
	r := NewRecord([]string{"Categoría", "Tipo", "Valor"}, []string{"Staff Senior", "", "1.000"})

	tests := []struct {
		name   string
		col    Column
		want   string
		wantOK bool
	}{
		{"second name", Col(0, "Categoria", "Categoría"), "Staff Senior", true},
		{"present but empty wins over ordinal", Col(0, "Tipo"), "", true},
		{"ordinal fallback", Col(2, "Valor (ARS)"), "1.000", true},
		{"ordinal out of range", Col(7, "Nope"), "", false},
		{"no ordinal", Col(-1, "Nope"), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.col.Resolve(r)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%s: Resolve() = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}

	if got := Col(2, "Valor").Number(r); got != 1000 {
		t.Errorf("Number() = %v, want 1000", got)
	}
	if got := Col(9).String(r, "Otros"); got != "Otros" {
		t.Errorf("String() = %q, want Otros", got)
	}
}

func TestRecord_JSON(t *testing.T) {
	r := NewRecord([]string{"b", "a"}, []string{"2", "1"})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if want := `{"b":"2","a":"1"}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Record
	if err := json.Unmarshal([]byte(`{"x":"1","y":2}`), &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if v, _ := back.At(1); v != "2" {
		t.Errorf("At(1) = %q, want %q", v, "2")
	}
}
