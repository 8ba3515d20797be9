package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultConcentrationConfig() {
		t.Errorf("embedded defaults = %+v, hardcoded = %+v", cfg, DefaultConcentrationConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("timing:\n  flip_delay: 1.5\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Timing.FlipDelay != 1.5 {
		t.Errorf("FlipDelay = %g, want 1.5", cfg.Timing.FlipDelay)
	}
	if cfg.Board.Size != 5 || cfg.Board.Pairs != 12 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg.Board)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConcentrationConfig)
		wantErr string
	}{
		{"defaults", func(*ConcentrationConfig) {}, ""},
		{"3x3 board", func(c *ConcentrationConfig) { c.Board.Size, c.Board.Pairs = 3, 4 }, ""},
		{"even size", func(c *ConcentrationConfig) { c.Board.Size, c.Board.Pairs = 4, 7 }, "cannot form pairs"},
		{"zero size", func(c *ConcentrationConfig) { c.Board.Size = 0 }, "board.size"},
		{"wrong pairs", func(c *ConcentrationConfig) { c.Board.Pairs = 10 }, "board.pairs must be 12"},
		{"negative delay", func(c *ConcentrationConfig) { c.Timing.FlipDelay = -1 }, "flip_delay"},
		{"zero tick rate", func(c *ConcentrationConfig) { c.Timing.TickRate = 0 }, "tick_rate"},
		{"narrow cells", func(c *ConcentrationConfig) { c.Layout.CellWidth = 4 }, "cell_width"},
		{"short cells", func(c *ConcentrationConfig) { c.Layout.CellHeight = 1 }, "cell_height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConcentrationConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "board:\n  size: 3\n  pairs: 4\ntiming:\n  flip_delay: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConcentration(path)
	if err != nil {
		t.Fatalf("LoadConcentration() failed: %v", err)
	}
	if cfg.Board.Size != 3 || cfg.Board.Pairs != 4 || cfg.Timing.FlipDelay != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Timing.TickRate != 60 {
		t.Errorf("TickRate should default to 60, got %d", cfg.Timing.TickRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadConcentration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  size: 4\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadConcentration(path); err == nil {
		t.Error("invalid custom config should fail")
	}

	if err := os.WriteFile(path, []byte("board: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadConcentration(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}
