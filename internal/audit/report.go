package audit

import (
	"github.com/hashicorp/go-multierror"

	"cvri18n/internal/errors"
	"cvri18n/internal/locale"
)

// Exit codes shared by every operation.
const (
	ExitClean    = 0
	ExitFindings = 1
	ExitError    = 2
)

// Operation names one of the audit operations.
type Operation string

const (
	OpDuplicates Operation = "duplicates"
	OpMissing    Operation = "missing"
	OpSort       Operation = "sort"
)

// Status is the outcome for one file.
type Status string

const (
	StatusOK         Status = "ok"
	StatusDuplicates Status = "duplicates"
	StatusMissing    Status = "missing"
	StatusSorted     Status = "sorted"
	StatusUnchanged  Status = "unchanged"
	StatusError      Status = "error"
)

// FileResult is the outcome of one operation on one file. A file can carry
// both a finding and an error, e.g. missing keys whose export failed.
type FileResult struct {
	Path       string             `json:"path" yaml:"path"`
	Status     Status             `json:"status" yaml:"status"`
	Duplicates []locale.Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Missing    []string           `json:"missing,omitempty" yaml:"missing,omitempty"`
	ExportPath string             `json:"exportPath,omitempty" yaml:"exportPath,omitempty"`
	BackupPath string             `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
	Code       errors.ErrorCode   `json:"code,omitempty" yaml:"code,omitempty"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the failure recorded for the file, if any.
func (f *FileResult) Err() error {
	if f.err == nil && f.Error != "" {
		return errors.New(f.Code, f.Path, f.Error, nil)
	}
	return f.err
}

func (f *FileResult) failed() bool {
	return f.err != nil || f.Error != ""
}

func (f *FileResult) finding() bool {
	return len(f.Duplicates) > 0 || len(f.Missing) > 0
}

func (f *FileResult) fail(err error) {
	f.err = err
	f.Code = errors.CodeOf(err)
	f.Error = err.Error()
	if f.Status == "" {
		f.Status = StatusError
	}
}

// Summary counts file outcomes.
type Summary struct {
	Files    int `json:"files" yaml:"files"`
	Findings int `json:"findings" yaml:"findings"`
	Errors   int `json:"errors" yaml:"errors"`
}

// Report collects the per-file results of one operation.
type Report struct {
	RunID     string       `json:"runId" yaml:"runId"`
	Operation Operation    `json:"operation" yaml:"operation"`
	Directory string       `json:"directory,omitempty" yaml:"directory,omitempty"`
	Base      string       `json:"base,omitempty" yaml:"base,omitempty"`
	Files     []FileResult `json:"files" yaml:"files"`
	Summary   Summary      `json:"summary" yaml:"summary"`
}

func (r *Report) add(f FileResult) {
	r.Files = append(r.Files, f)
	r.Summary.Files++
	if f.finding() {
		r.Summary.Findings++
	}
	if f.failed() {
		r.Summary.Errors++
	}
}

// HasErrors reports whether any file failed.
func (r *Report) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].failed() {
			return true
		}
	}
	return false
}

// HasFindings reports whether any file had duplicate or missing keys.
func (r *Report) HasFindings() bool {
	for i := range r.Files {
		if r.Files[i].finding() {
			return true
		}
	}
	return false
}

// ExitCode maps the report onto the process exit status. Errors outrank findings.
func (r *Report) ExitCode() int {
	switch {
	case r.HasErrors():
		return ExitError
	case r.HasFindings():
		return ExitFindings
	default:
		return ExitClean
	}
}

// Err aggregates every per-file failure, or returns nil.
func (r *Report) Err() error {
	var result *multierror.Error
	for i := range r.Files {
		if err := r.Files[i].Err(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
