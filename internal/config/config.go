// Package config provides YAML-based game configuration loading for the
// concentration game.
package config

import (
	"errors"
	"fmt"
)

// ConcentrationConfig contains all configuration for the concentration game.
type ConcentrationConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Layout LayoutConfig `yaml:"layout"`
}

// BoardConfig sizes the grid.
type BoardConfig struct {
	Size  int `yaml:"size"`
	Pairs int `yaml:"pairs"`
}

// TimingConfig controls the simulation clock.
type TimingConfig struct {
	FlipDelay float64 `yaml:"flip_delay"` // Seconds a mismatched pair stays face up
	TickRate  int     `yaml:"tick_rate"`  // Simulation ticks per second
}

// LayoutConfig sets the on-screen card geometry in character cells.
type LayoutConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	Padding    int `yaml:"padding"`
}

// Minimum card geometry that still fits a glyph and the status text.
const (
	MinCellWidth  = 9
	MinCellHeight = 3
)

// Validate reports the first setting the game cannot run with.
func (c ConcentrationConfig) Validate() error {
	var errs []error

	if c.Board.Size < 1 {
		errs = append(errs, fmt.Errorf("board.size must be at least 1, got %d", c.Board.Size))
	} else {
		playable := c.Board.Size*c.Board.Size - 1
		if playable%2 != 0 {
			errs = append(errs, fmt.Errorf("board.size %d leaves %d playable cells, which cannot form pairs", c.Board.Size, playable))
		} else if c.Board.Pairs*2 != playable {
			errs = append(errs, fmt.Errorf("board.pairs must be %d for board.size %d, got %d", playable/2, c.Board.Size, c.Board.Pairs))
		}
	}
	if c.Timing.FlipDelay < 0 {
		errs = append(errs, fmt.Errorf("timing.flip_delay must not be negative, got %g", c.Timing.FlipDelay))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Layout.CellWidth < MinCellWidth {
		errs = append(errs, fmt.Errorf("layout.cell_width must be at least %d, got %d", MinCellWidth, c.Layout.CellWidth))
	}
	if c.Layout.CellHeight < MinCellHeight {
		errs = append(errs, fmt.Errorf("layout.cell_height must be at least %d, got %d", MinCellHeight, c.Layout.CellHeight))
	}
	if c.Layout.Padding < 0 {
		errs = append(errs, fmt.Errorf("layout.padding must not be negative, got %d", c.Layout.Padding))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid concentration config: %w", errors.Join(errs...))
	}
	return nil
}
