package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// updateGolden controls whether golden files should be rewritten.
// Use: go test ./cmd/... -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate returns true if golden files should be updated.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareGolden compares got with testdata/<name>.golden in the calling
// package after normalization. With -update the golden file is rewritten.
func CompareGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	normalized := Normalize(got)
	goldenPath := filepath.Join("testdata", name+".golden")

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			t.Fatalf("Failed to create testdata directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, normalized, 0o644); err != nil {
			t.Fatalf("Failed to write golden file: %v", err)
		}
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create:\n  go test -run %s -update",
				goldenPath, normalized, t.Name())
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if diff := cmp.Diff(string(expected), string(normalized)); diff != "" {
		t.Fatalf("Golden mismatch for %s (-want +got):\n%s\n\nRun with -update to refresh:\n  go test -run %s -update",
			name, diff, t.Name())
	}
}
