// Package audit runs the locale checks over one file or a whole locale
// directory and collects the outcome per file.
package audit

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"cvri18n/internal/errors"
	"cvri18n/internal/locale"
	"cvri18n/internal/paths"
	"cvri18n/internal/slogutil"
)

// Options selects what an Auditor works on.
type Options struct {
	// Directory is the locale directory scanned in directory mode.
	Directory string
	// Base is the resolved path of the reference locale.
	Base string
	// File restricts an operation to one target. Empty means directory mode.
	File string
	// Export, when set, receives <stem>_missing.json per file with missing keys.
	Export string
	// Exclude holds doublestar patterns matched against file names.
	Exclude []string
	// Backup keeps a gzip copy of each file before sort rewrites it.
	Backup bool
}

// Auditor runs duplicate, missing-key and sort operations. Reports produced
// by the same Auditor share a run ID.
type Auditor struct {
	fs     afero.Fs
	logger *slog.Logger
	opts   Options
	runID  string
}

// New creates an Auditor. A nil logger discards output.
func New(fs afero.Fs, logger *slog.Logger, opts Options) *Auditor {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Auditor{
		fs:     fs,
		logger: logger,
		opts:   opts,
		runID:  uuid.NewString(),
	}
}

// RunID identifies this audit run.
func (a *Auditor) RunID() string {
	return a.runID
}

func (a *Auditor) newReport(op Operation) *Report {
	r := &Report{
		RunID:     a.runID,
		Operation: op,
		Files:     []FileResult{},
	}
	if a.opts.File == "" {
		r.Directory = a.opts.Directory
	}
	if op != OpDuplicates {
		r.Base = a.opts.Base
	}
	return r
}

// Duplicates reports top-level keys that occur more than once. In directory
// mode every locale file is checked, the base included.
func (a *Auditor) Duplicates(ctx context.Context) (*Report, error) {
	targets, err := a.targets(false)
	if err != nil {
		return nil, err
	}

	report := a.newReport(OpDuplicates)
	for _, path := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.add(a.checkDuplicates(path))
	}
	return report, nil
}

func (a *Auditor) checkDuplicates(path string) FileResult {
	a.logger.Debug("checking duplicates", "path", path)
	result := FileResult{Path: path}

	data, err := a.readFile(path)
	if err != nil {
		result.fail(err)
		return result
	}

	dups, err := locale.DetectDuplicates(path, data)
	if err != nil {
		a.logger.Info("duplicate check failed", "path", path, "error", err)
		result.fail(err)
		return result
	}
	if len(dups) > 0 {
		result.Status = StatusDuplicates
		result.Duplicates = dups
		return result
	}
	result.Status = StatusOK
	return result
}

// Missing reports base keys absent from each target. With Export set, the
// missing keys of each file are also written as a JSON array.
func (a *Auditor) Missing(ctx context.Context) (*Report, error) {
	targets, err := a.targets(true)
	if err != nil {
		return nil, err
	}
	baseKeys, err := a.loadBaseKeys()
	if err != nil {
		return nil, err
	}
	if a.opts.Export != "" {
		if err := a.fs.MkdirAll(a.opts.Export, 0o755); err != nil {
			return nil, errors.New(errors.ExportFailed, a.opts.Export, "Failed to create export directory", err)
		}
	}

	report := a.newReport(OpMissing)
	for _, path := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.add(a.checkMissing(baseKeys, path))
	}
	return report, nil
}

func (a *Auditor) checkMissing(baseKeys []string, path string) FileResult {
	a.logger.Debug("checking missing keys", "path", path)
	result := FileResult{Path: path}

	doc, err := a.readDocument(path)
	if err != nil {
		result.fail(err)
		return result
	}

	missing := locale.MissingKeys(baseKeys, doc)
	if len(missing) == 0 {
		result.Status = StatusOK
		return result
	}
	result.Status = StatusMissing
	result.Missing = missing

	if a.opts.Export != "" {
		out := paths.ExportPath(a.opts.Export, path)
		if err := a.export(out, missing); err != nil {
			a.logger.Info("export failed", "path", out, "error", err)
			result.fail(err)
			return result
		}
		result.ExportPath = out
	}
	return result
}

func (a *Auditor) export(out string, keys []string) error {
	data, err := locale.EncodeKeyList(keys)
	if err != nil {
		return errors.New(errors.ExportFailed, out, "Failed to encode missing keys", err)
	}
	if err := afero.WriteFile(a.fs, out, data, 0o644); err != nil {
		return errors.New(errors.ExportFailed, out, "Failed to write "+out, err)
	}
	return nil
}

// Sort rewrites each target so the base key order comes first and any
// extra keys follow alphabetically. Files already in that form are left
// untouched.
func (a *Auditor) Sort(ctx context.Context) (*Report, error) {
	targets, err := a.targets(true)
	if err != nil {
		return nil, err
	}
	order, err := a.loadBaseKeys()
	if err != nil {
		return nil, err
	}

	report := a.newReport(OpSort)
	for _, path := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.add(a.sortFile(order, path))
	}
	return report, nil
}

func (a *Auditor) sortFile(order []string, path string) FileResult {
	a.logger.Debug("sorting", "path", path)
	result := FileResult{Path: path}

	data, err := a.readFile(path)
	if err != nil {
		result.fail(err)
		return result
	}
	doc, err := locale.ParseDocument(path, data)
	if err != nil {
		result.fail(err)
		return result
	}

	out, err := locale.Encode(locale.SortDocument(order, doc))
	if err != nil {
		result.fail(errors.New(errors.WriteFailed, path, "Failed to encode "+path, err))
		return result
	}
	if bytes.Equal(out, data) {
		result.Status = StatusUnchanged
		return result
	}

	if a.opts.Backup {
		backup := paths.BackupPath(path)
		if err := writeBackup(a.fs, backup, path, data); err != nil {
			result.fail(err)
			return result
		}
		result.BackupPath = backup
	}

	if err := afero.WriteFile(a.fs, path, out, a.fileMode(path)); err != nil {
		result.fail(errors.New(errors.WriteFailed, path, "Failed to write "+path, err))
		return result
	}
	result.Status = StatusSorted
	return result
}

func (a *Auditor) fileMode(path string) os.FileMode {
	info, err := a.fs.Stat(path)
	if err != nil {
		return 0o644
	}
	return info.Mode().Perm()
}

// loadBaseKeys reads the base locale. Any failure here is fatal for the
// operation.
func (a *Auditor) loadBaseKeys() ([]string, error) {
	base := a.opts.Base
	ok, err := afero.Exists(a.fs, base)
	if err != nil || !ok {
		return nil, errors.Newf(errors.BaseNotFound, base, "Base file %s not found", base)
	}
	doc, err := a.readDocument(base)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded base", "path", base, "keys", doc.Len())
	return doc.Keys(), nil
}

func (a *Auditor) readFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, errors.New(errors.ReadFailed, path, "Failed to read "+path, err)
	}
	return data, nil
}

func (a *Auditor) readDocument(path string) (*locale.Document, error) {
	data, err := a.readFile(path)
	if err != nil {
		return nil, err
	}
	return locale.ParseDocument(path, data)
}

// targets lists the files an operation works on: the single File, or every
// non-excluded locale file in Directory sorted by name.
func (a *Auditor) targets(skipBase bool) ([]string, error) {
	if a.opts.File != "" {
		return []string{a.opts.File}, nil
	}

	for _, pattern := range a.opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.InvalidArgument, "", "invalid exclude pattern %q", pattern)
		}
	}

	dir := a.opts.Directory
	if ok, _ := afero.DirExists(a.fs, dir); !ok {
		return nil, errors.Newf(errors.DirectoryNotFound, dir, "Directory does not exist: %s", dir)
	}
	entries, err := afero.ReadDir(a.fs, dir)
	if err != nil {
		return nil, errors.New(errors.ReadFailed, dir, "Failed to read directory "+dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !paths.IsLocaleFile(name) {
			continue
		}
		if a.excluded(name) {
			a.logger.Debug("excluded", "file", name)
			continue
		}
		path := filepath.Join(dir, name)
		if skipBase && paths.SamePath(path, a.opts.Base) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func (a *Auditor) excluded(name string) bool {
	for _, pattern := range a.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
