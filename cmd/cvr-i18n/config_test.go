package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"cvri18n/internal/config"
	"cvri18n/internal/testutil"
)

func TestConfigShow_TOMLDefaults(t *testing.T) {
	res := run(t, afero.NewMemMapFs(), "config", "show")
	if res.code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", res.code, res.stderr)
	}

	var cfg config.Config
	if err := toml.Unmarshal([]byte(res.stdout), &cfg); err != nil {
		t.Fatalf("output is not TOML: %v\n%s", err, res.stdout)
	}
	if cfg.Base != "en.json" || cfg.Format != "human" {
		t.Errorf("config = %+v", cfg)
	}
	if strings.Contains(res.stdout, "# loaded from") {
		t.Errorf("no config file was loaded, got header:\n%s", res.stdout)
	}
}

func TestConfigShow_JSONWithFileAndEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "", map[string]string{
		"audit.toml": "base = \"de.json\"\nbackup = true\ntypo = 1\n",
	})
	t.Setenv("CVR_I18N_EXPORT", "exports")

	res := run(t, fs, "config", "show", "--format", "json", "--config", "audit.toml")
	if res.code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", res.code, res.stderr)
	}

	var cfg config.Config
	if err := json.Unmarshal([]byte(res.stdout), &cfg); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
	}
	if cfg.Base != "de.json" || !cfg.Backup || cfg.Export != "exports" {
		t.Errorf("config = %+v", cfg)
	}
	if !strings.Contains(res.stderr, `[warn] unknown config key "typo"`) {
		t.Errorf("stderr = %q, want unknown key warning", res.stderr)
	}
}

func TestConfigShow_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing config file", []string{"config", "show", "--config", "nope.toml"}, "Error: read config"},
		{"bad format", []string{"config", "show", "--format", "ini"}, "Error: unsupported format: ini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, afero.NewMemMapFs(), tt.args...)
			if res.code != 2 {
				t.Errorf("exit code = %d, want 2", res.code)
			}
			if !strings.HasPrefix(res.stderr, tt.want) {
				t.Errorf("stderr = %q, want prefix %q", res.stderr, tt.want)
			}
		})
	}
}
