package locale

import (
	"bytes"
	"encoding/json"
	"sort"
)

// SortDocument returns a copy of target whose keys follow order. Keys of
// target that order does not mention come last in ascending byte order.
// Keys of order that target lacks are skipped.
func SortDocument(order []string, target *Document) *Document {
	sorted := NewDocument()
	for _, k := range order {
		if v, ok := target.Get(k); ok {
			sorted.Set(k, v)
		}
	}

	var rest []string
	for _, k := range target.Keys() {
		if !sorted.Has(k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		v, _ := target.Get(k)
		sorted.Set(k, v)
	}

	return sorted
}

// Encode renders doc as indented JSON with two-space indentation and a
// trailing newline. Values are re-indented but otherwise written exactly as
// they were parsed, so encoding a parsed encoding is byte-identical.
func Encode(doc *Document) ([]byte, error) {
	if doc.Len() == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	keys := doc.Keys()
	for i, k := range keys {
		key, err := encodeString(k)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")

		raw, _ := doc.Get(k)
		if err := json.Indent(&buf, bytes.TrimSpace(raw), "  ", "  "); err != nil {
			return nil, err
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// EncodeKeyList renders keys as an indented JSON array, the format of
// missing-key exports.
func EncodeKeyList(keys []string) ([]byte, error) {
	if keys == nil {
		keys = []string{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(keys); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeString quotes s without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
