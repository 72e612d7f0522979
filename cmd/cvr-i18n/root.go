package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cvri18n/internal/audit"
	"cvri18n/internal/config"
	"cvri18n/internal/paths"
	"cvri18n/internal/slogutil"
	"cvri18n/internal/version"
)

// cliOptions holds the raw flag values of one invocation.
type cliOptions struct {
	directory  string
	base       string
	file       string
	export     string
	exclude    []string
	format     string
	configFile string

	duplicates bool
	missing    bool
	sort       bool
	backup     bool
	noColor    bool
	quiet      bool
	verbosity  int
}

func (o *cliOptions) anyOperation() bool {
	return o.duplicates || o.missing || o.sort
}

// app carries the streams and filesystem of one invocation so commands can
// run against an in-memory tree in tests.
type app struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	opts   cliOptions
	exit   int
}

func newApp(fs afero.Fs, stdout, stderr io.Writer) *app {
	return &app{fs: fs, stdout: stdout, stderr: stderr}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cvr-i18n",
		Short: "Audit JSON locale files",
		Long: `cvr-i18n audits a directory of JSON locale files.

It reports duplicate top-level keys, lists keys missing relative to a base
locale, and rewrites files so their key order follows the base.

Examples:
  cvr-i18n -k                      # duplicate keys in every locale
  cvr-i18n -m -e out               # missing keys, exported to out/
  cvr-i18n -s -b de.json           # sort every locale by de.json
  cvr-i18n -k -f locales/fr.json   # check a single file`,
		Args:          cobra.NoArgs,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.run,
	}
	cmd.SetVersionTemplate("cvr-i18n version {{.Version}}\n")

	o := &a.opts
	flags := cmd.Flags()
	flags.StringVarP(&o.directory, "directory", "d", "", "Locale directory (default ./locales, then ./src/locales)")
	flags.BoolVarP(&o.duplicates, "duplicated-key", "k", false, "Report duplicate top-level keys")
	flags.BoolVarP(&o.missing, "missing-key", "m", false, "Report keys missing relative to the base file")
	flags.StringVarP(&o.export, "export", "e", "", "With -m, write <name>_missing.json files to this directory")
	flags.BoolVarP(&o.sort, "sort", "s", false, "Sort keys to follow the base file order (in place)")
	flags.StringVarP(&o.base, "base", "b", paths.DefaultBase, "Base locale file")
	flags.StringVarP(&o.file, "file", "f", "", "Check a single file instead of the whole directory")
	flags.StringSliceVar(&o.exclude, "exclude", nil, "Skip files matching this glob (repeatable)")
	flags.BoolVar(&o.backup, "backup", false, "Keep a gzip copy (<file>.orig.gz) before sorting")
	flags.StringVarP(&o.format, "format", "o", "human", "Output format (human, json, yaml)")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored output")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&o.configFile, "config", "", "Config file (default .cvr-i18n.{toml,json,yaml})")
	persistent.CountVarP(&o.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	persistent.BoolVarP(&o.quiet, "quiet", "q", false, "Suppress diagnostic logs")

	cmd.AddCommand(a.configCmd())
	return cmd
}

// execute runs the CLI and returns the process exit code.
func execute(fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	a := newApp(fs, stdout, stderr)
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return audit.ExitError
	}
	return a.exit
}

func (a *app) run(cmd *cobra.Command, _ []string) error {
	o := &a.opts
	if !o.anyOperation() {
		return cmd.Help()
	}

	loaded, err := config.Load(a.fs, o.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	cfg := loaded.Config

	logger := a.logger(cfg)
	if loaded.ConfigPath != "" {
		logger.Debug("loaded config", "path", loaded.ConfigPath)
	}
	for _, w := range loaded.Warnings {
		logger.Warn(w, "config", loaded.ConfigPath)
	}

	opts, err := a.auditOptions(cfg)
	if err != nil {
		return err
	}
	logger.Debug("resolved options", "directory", opts.Directory, "base", opts.Base, "file", opts.File)

	auditor := audit.New(a.fs, logger, opts)
	ctx := context.Background()
	format := OutputFormat(cfg.Format)
	colors := newPalette(!o.noColor && !color.NoColor)

	out := &runOutput{RunID: auditor.RunID(), Version: version.Version}
	steps := []struct {
		enabled bool
		run     func(context.Context) (*audit.Report, error)
	}{
		{o.duplicates, auditor.Duplicates},
		{o.missing, auditor.Missing},
		{o.sort, auditor.Sort},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		report, err := step.run(ctx)
		if err != nil {
			return err
		}
		out.add(report)
		if format == FormatHuman {
			writeHuman(a.stdout, a.stderr, report, colors)
		}
		if err := report.Err(); err != nil {
			logger.Info("operation finished with errors", "operation", report.Operation, "error", err)
		}
	}

	if format != FormatHuman {
		text, err := FormatOutput(out, format)
		if err != nil {
			return err
		}
		fmt.Fprint(a.stdout, text)
	}
	a.exit = out.ExitCode
	return nil
}

// auditOptions resolves the working directory and base file. The directory
// is only required when something has to be looked up in it.
func (a *app) auditOptions(cfg *config.Config) (audit.Options, error) {
	o := &a.opts
	opts := audit.Options{
		File:    o.file,
		Export:  cfg.Export,
		Exclude: cfg.Exclude,
		Backup:  cfg.Backup,
		Base:    cfg.Base,
	}

	needsBase := o.missing || o.sort
	needsDir := o.file == "" || (needsBase && !paths.IsQualified(cfg.Base))
	if !needsDir {
		return opts, nil
	}

	dir, err := paths.ResolveDirectory(a.fs, cfg.Directory, cfg.DirectoryCandidates)
	if err != nil {
		return opts, err
	}
	opts.Directory = dir
	opts.Base = paths.ResolveBase(dir, cfg.Base)
	return opts, nil
}

func (a *app) logger(cfg *config.Config) *slog.Logger {
	level := slogutil.EffectiveLevel(a.opts.verbosity, a.opts.quiet, cfg.Logging.Level)
	return slogutil.NewLogger(a.stderr, level)
}
