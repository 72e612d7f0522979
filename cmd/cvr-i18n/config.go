package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"cvri18n/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect cvr-i18n configuration",
		Long:  "Inspect the configuration assembled from .cvr-i18n.* files and CVR_I18N_* variables",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration after defaults, config file and environment
overrides are applied.

Examples:
  cvr-i18n config show                 # TOML, ready to save as .cvr-i18n.toml
  cvr-i18n config show --format json   # JSON output
  cvr-i18n config show --config ci.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow(format)
		},
	}
	show.Flags().StringVar(&format, "format", "toml", "Output format (toml, json)")

	cmd.AddCommand(show)
	return cmd
}

func (a *app) runConfigShow(format string) error {
	loaded, err := config.Load(a.fs, a.opts.configFile, nil)
	if err != nil {
		return err
	}
	logger := a.logger(loaded.Config)
	for _, w := range loaded.Warnings {
		logger.Warn(w, "config", loaded.ConfigPath)
	}

	switch format {
	case "toml":
		data, err := toml.Marshal(loaded.Config)
		if err != nil {
			return fmt.Errorf("failed to marshal TOML: %w", err)
		}
		if loaded.ConfigPath != "" {
			fmt.Fprintf(a.stdout, "# loaded from %s\n", loaded.ConfigPath)
		}
		fmt.Fprint(a.stdout, string(data))
	case "json":
		text, err := formatJSON(loaded.Config)
		if err != nil {
			return err
		}
		fmt.Fprint(a.stdout, text)
	default:
		return fmt.Errorf("unsupported format: %s (use: toml, json)", format)
	}
	return nil
}
