package paths

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"cvri18n/internal/errors"
)

func TestResolveDirectory(t *testing.T) {
	tests := []struct {
		name     string
		dirs     []string
		explicit string
		want     string
		wantErr  bool
	}{
		{"explicit wins", []string{"locales"}, "custom", "custom", false},
		{"locales first", []string{"locales", "src/locales"}, "", "locales", false},
		{"src/locales fallback", []string{"src/locales"}, "", filepath.Join("src", "locales"), false},
		{"nothing found", nil, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, d := range tt.dirs {
				if err := fs.MkdirAll(d, 0o755); err != nil {
					t.Fatalf("MkdirAll: %v", err)
				}
			}

			got, err := ResolveDirectory(fs, tt.explicit, nil)
			if tt.wantErr {
				if !errors.Is(err, errors.DirectoryNotFound) {
					t.Fatalf("ResolveDirectory() error = %v, want DIRECTORY_NOT_FOUND", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDirectory() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveDirectory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDirectory_FileIsNotADirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "locales", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := fs.MkdirAll("i18n", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	got, err := ResolveDirectory(fs, "", []string{"locales", "i18n"})
	if err != nil {
		t.Fatalf("ResolveDirectory() error = %v", err)
	}
	if got != "i18n" {
		t.Errorf("ResolveDirectory() = %q, want %q", got, "i18n")
	}
}

func TestResolveBase(t *testing.T) {
	tests := []struct {
		dir  string
		base string
		want string
	}{
		{"locales", "", filepath.Join("locales", "en.json")},
		{"locales", "de.json", filepath.Join("locales", "de.json")},
		{"locales", "other/en.json", "other/en.json"},
		{"locales", `other\en.json`, `other\en.json`},
		{"locales", "/abs/en.json", "/abs/en.json"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := ResolveBase(tt.dir, tt.base); got != tt.want {
				t.Errorf("ResolveBase(%q, %q) = %q, want %q", tt.dir, tt.base, got, tt.want)
			}
		})
	}
}

func TestIsQualified(t *testing.T) {
	for name, want := range map[string]bool{
		"en.json":      false,
		"":             false,
		"i18n/en.json": true,
		`i18n\en.json`: true,
	} {
		if got := IsQualified(name); got != want {
			t.Errorf("IsQualified(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSamePath(t *testing.T) {
	if !SamePath("locales/en.json", "./locales/../locales/en.json") {
		t.Error("equivalent relative paths should match")
	}
	abs, err := filepath.Abs("locales/en.json")
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if !SamePath(abs, "locales/en.json") {
		t.Error("absolute and relative forms should match")
	}
	if SamePath("locales/en.json", "locales/fr.json") {
		t.Error("different files should not match")
	}
}

func TestNaming(t *testing.T) {
	if !IsLocaleFile("fr.json") || IsLocaleFile("fr.json.orig.gz") || IsLocaleFile("README.md") {
		t.Error("IsLocaleFile misclassified a name")
	}
	if got := Stem("locales/pt-BR.json"); got != "pt-BR" {
		t.Errorf("Stem() = %q, want %q", got, "pt-BR")
	}
	if got := ExportPath("out", "locales/fr.json"); got != filepath.Join("out", "fr_missing.json") {
		t.Errorf("ExportPath() = %q", got)
	}
	if got := BackupPath("locales/fr.json"); got != "locales/fr.json.orig.gz" {
		t.Errorf("BackupPath() = %q", got)
	}
}
