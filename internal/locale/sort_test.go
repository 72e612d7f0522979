package locale

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, data string) *Document {
	t.Helper()
	doc, err := ParseDocument("test.json", []byte(data))
	if err != nil {
		t.Fatalf("ParseDocument(%s) error = %v", data, err)
	}
	return doc
}

func TestSortDocument(t *testing.T) {
	tests := []struct {
		name   string
		order  []string
		target string
		want   []string
	}{
		{
			name:   "base order then extras",
			order:  []string{"a", "b", "c"},
			target: `{"c": 1, "a": 2, "x": 3}`,
			want:   []string{"a", "c", "x"},
		},
		{
			name:   "extras sorted ascending",
			order:  []string{"m"},
			target: `{"z": 1, "m": 1, "b": 1, "B": 1, "a": 1}`,
			want:   []string{"m", "B", "a", "b", "z"},
		},
		{
			name:   "no overlap",
			order:  []string{"x", "y"},
			target: `{"b": 1, "a": 1}`,
			want:   []string{"a", "b"},
		},
		{
			name:   "empty target",
			order:  []string{"a"},
			target: `{}`,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortDocument(tt.order, mustParse(t, tt.target)).Keys()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SortDocument() keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortDocument_CarriesValues(t *testing.T) {
	target := mustParse(t, `{"b": {"z": 1, "y": [1, 2]}, "a": "v"}`)
	sorted := SortDocument([]string{"a", "b"}, target)

	raw, _ := sorted.Get("b")
	if string(raw) != `{"z": 1, "y": [1, 2]}` {
		t.Errorf("value of b = %s, want unchanged raw value", raw)
	}
}

func TestEncode(t *testing.T) {
	doc := mustParse(t, `{"a":"<b>&amp;","n":{"z":1,"y":[1,2.50,{}],"e":[]},"t":true}`)

	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `{
  "a": "<b>&amp;",
  "n": {
    "z": 1,
    "y": [
      1,
      2.50,
      {}
    ],
    "e": []
  },
  "t": true
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_EmptyAndSpecialKeys(t *testing.T) {
	got, err := Encode(NewDocument())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(got) != "{}\n" {
		t.Errorf("Encode(empty) = %q, want %q", got, "{}\n")
	}

	doc := NewDocument()
	doc.Set(`a"<b>`, []byte(`1`))
	got, err = Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "{\n  \"a\\\"<b>\": 1\n}\n"
	if string(got) != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestSortAndEncode_Idempotent(t *testing.T) {
	order := []string{"title", "body", "footer"}
	input := `{"zz": 1, "footer": {"b": 2, "a": 1}, "aa": [3, 2], "title": "T"}`

	first, err := Encode(SortDocument(order, mustParse(t, input)))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := Encode(SortDocument(order, mustParse(t, string(first))))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("second sort changed output (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"title", "footer", "aa", "zz"}, mustParse(t, string(second)).Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeKeyList(t *testing.T) {
	got, err := EncodeKeyList([]string{"b", "a&b"})
	if err != nil {
		t.Fatalf("EncodeKeyList() error = %v", err)
	}
	want := "[\n  \"b\",\n  \"a&b\"\n]\n"
	if string(got) != want {
		t.Errorf("EncodeKeyList() = %q, want %q", got, want)
	}

	got, err = EncodeKeyList(nil)
	if err != nil {
		t.Fatalf("EncodeKeyList(nil) error = %v", err)
	}
	if string(got) != "[]\n" {
		t.Errorf("EncodeKeyList(nil) = %q, want %q", got, "[]\n")
	}
}
