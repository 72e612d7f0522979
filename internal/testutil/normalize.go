package testutil

import (
	"bytes"
	"regexp"
)

// RunIDPlaceholder replaces run IDs in normalized output.
const RunIDPlaceholder = "00000000-0000-0000-0000-000000000000"

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// Normalize makes command output stable for comparison: run IDs are
// replaced with RunIDPlaceholder and Windows line endings are folded.
func Normalize(data []byte) []byte {
	out := uuidPattern.ReplaceAll(data, []byte(RunIDPlaceholder))
	return bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
}
