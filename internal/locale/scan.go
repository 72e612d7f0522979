package locale

import (
	"encoding/json"
)

// Duplicate is a top-level key that occurs more than once in the raw text.
type Duplicate struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// ScanTopLevelKeys returns every top-level key occurrence in data, in source
// order and including repeats. It works on the raw bytes because any decoder
// that builds a map would merge repeated keys before they can be counted.
//
// A key is a string literal at depth 1 of a root object that is followed,
// after optional whitespace, by a colon. Escapes are honored at every depth.
// The scan is lenient: malformed input yields whatever keys were recognized.
func ScanTopLevelKeys(data []byte) []string {
	var keys []string
	depth := 0
	rootIsObject := false

	for i := 0; i < len(data); i++ {
		switch c := data[i]; c {
		case '"':
			end := stringEnd(data, i)
			if end >= len(data) {
				return keys
			}
			if depth == 1 && rootIsObject {
				next := skipSpace(data, end+1)
				if next < len(data) && data[next] == ':' {
					keys = append(keys, decodeKey(data[i:end+1]))
				}
			}
			i = end
		case '{', '[':
			if depth == 0 {
				rootIsObject = c == '{'
			}
			depth++
		case '}', ']':
			if depth > 0 {
				depth--
			}
		}
	}

	return keys
}

// FindDuplicates counts top-level key occurrences and returns the keys seen
// more than once, ordered by first occurrence.
func FindDuplicates(data []byte) []Duplicate {
	counts := make(map[string]int)
	var order []string
	for _, k := range ScanTopLevelKeys(data) {
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	var dups []Duplicate
	for _, k := range order {
		if counts[k] > 1 {
			dups = append(dups, Duplicate{Key: k, Count: counts[k]})
		}
	}
	return dups
}

// DetectDuplicates runs the duplicate scan on a file's contents. When no
// duplicates are found the contents must also be a well-formed JSON object,
// so a broken file is never reported as clean.
func DetectDuplicates(path string, data []byte) ([]Duplicate, error) {
	if dups := FindDuplicates(data); len(dups) > 0 {
		return dups, nil
	}
	if _, err := ParseDocument(path, data); err != nil {
		return nil, err
	}
	return nil, nil
}

// stringEnd returns the index of the quote closing the string that opens at
// start, or len(data) when the string is unterminated.
func stringEnd(data []byte, start int) int {
	for i := start + 1; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(data)
}

func skipSpace(data []byte, i int) int {
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// decodeKey unquotes a JSON string literal. Literals the decoder rejects
// (bad escapes in a malformed file) fall back to their raw contents.
func decodeKey(lit []byte) string {
	var s string
	if err := json.Unmarshal(lit, &s); err != nil {
		return string(lit[1 : len(lit)-1])
	}
	return s
}
