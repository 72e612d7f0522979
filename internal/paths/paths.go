package paths

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"cvri18n/internal/errors"
)

// DefaultBase is the base locale used when none is configured.
const DefaultBase = "en.json"

// DefaultCandidates are the directories tried, in order, when no working
// directory is given.
var DefaultCandidates = []string{"locales", filepath.Join("src", "locales")}

// LocaleExt is the extension of files processed in directory mode.
const LocaleExt = ".json"

// ResolveDirectory picks the working directory. An explicit directory is
// returned as-is (existence is checked by the caller that needs it);
// otherwise the first existing candidate wins.
func ResolveDirectory(fs afero.Fs, explicit string, candidates []string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, c := range candidates {
		if ok, _ := afero.DirExists(fs, c); ok {
			return c, nil
		}
	}
	return "", errors.Newf(errors.DirectoryNotFound, "",
		"No default directory found (checked %s). Please specify with -d", describeCandidates(candidates))
}

// ResolveBase locates the base file. A name containing a path separator
// (either slash) is used as given; a bare name is looked up in dir.
func ResolveBase(dir string, base string) string {
	if base == "" {
		base = DefaultBase
	}
	if IsQualified(base) {
		return base
	}
	return filepath.Join(dir, base)
}

// IsQualified reports whether name carries its own directory part and so
// does not need the working directory to be located.
func IsQualified(name string) bool {
	return strings.ContainsAny(name, `/\`)
}

// SamePath reports whether a and b name the same location after cleaning
// and making both absolute.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// IsLocaleFile reports whether name has the locale file extension.
func IsLocaleFile(name string) bool {
	return filepath.Ext(name) == LocaleExt
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExportPath returns where the missing keys of target are exported.
func ExportPath(exportDir string, target string) string {
	return filepath.Join(exportDir, Stem(target)+"_missing.json")
}

// BackupPath returns where the original contents of target are kept
// before a sort rewrites it.
func BackupPath(target string) string {
	return target + ".orig.gz"
}

func describeCandidates(candidates []string) string {
	quoted := make([]string, len(candidates))
	for i, c := range candidates {
		quoted[i] = "./" + filepath.ToSlash(c)
	}
	return strings.Join(quoted, " and ")
}
