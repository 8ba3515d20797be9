package config

import (
	_ "embed"
)

//go:embed defaults/concentration.yaml
var defaultConcentrationYAML []byte

// DefaultConcentrationConfig returns the default concentration configuration.
func DefaultConcentrationConfig() ConcentrationConfig {
	return ConcentrationConfig{
		Board: BoardConfig{
			Size:  5,
			Pairs: 12,
		},
		Timing: TimingConfig{
			FlipDelay: 5.0,
			TickRate:  60,
		},
		Layout: LayoutConfig{
			CellWidth:  11,
			CellHeight: 3,
			Padding:    1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultConcentrationYAML
}
