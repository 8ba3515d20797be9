package concentration

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-concentration/internal/config"
	"github.com/vovakirdan/tui-concentration/internal/core"
	"github.com/vovakirdan/tui-concentration/internal/registry"
)

// GameID is the registry identifier of the concentration game.
const GameID = "concentration"

// Screen rows reserved above and below the board.
const (
	hudTop    = 1
	hudBottom = 1
)

// configPath stores the custom config path set via CLI.
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game adapts Board to the platform: it owns the simulation clock, maps
// pointer and cursor input onto flips, and renders the board.
type Game struct {
	cfg      config.ConcentrationConfig
	fixedCfg bool // cfg was injected, skip file lookup on Reset

	rng      *rand.Rand
	board    *Board
	layout   Layout
	tick     uint64
	tickRate int

	screenW int
	screenH int

	cursorRow   int
	cursorCol   int
	flips       int // Successful flips this session
	lastOutcome Outcome

	paused   bool
	tooSmall bool
}

// New creates a game that loads its config from disk on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with a fixed config. An invalid config is
// replaced by the defaults.
func NewWithConfig(cfg config.ConcentrationConfig) *Game {
	if err := cfg.Validate(); err != nil {
		cfg = config.DefaultConcentrationConfig()
	}
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Concentration"
}

// Reset deals a new board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadConcentration(configPath)
		if err != nil {
			cfg = config.DefaultConcentrationConfig()
		}
		g.cfg = cfg
	}
	if err := g.cfg.Validate(); err != nil {
		g.cfg = config.DefaultConcentrationConfig()
	}

	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = g.cfg.Timing.TickRate
	}

	g.rng = rand.New(rand.NewSource(rc.Seed))
	board, err := NewBoard(g.Options(), g.rng)
	if err != nil {
		panic(fmt.Sprintf("concentration: validated config rejected by board: %v", err))
	}
	g.board = board

	g.tick = 0
	g.cursorRow = 0
	g.cursorCol = 0
	g.flips = 0
	g.lastOutcome = OutcomeNone
	g.paused = false

	g.resize(rc.ScreenW, rc.ScreenH)
}

// Options returns the board options derived from the config.
func (g *Game) Options() Options {
	return Options{
		Size:      g.cfg.Board.Size,
		Pairs:     g.cfg.Board.Pairs,
		FlipDelay: g.cfg.Timing.FlipDelay,
	}
}

// Config returns the active configuration.
func (g *Game) Config() config.ConcentrationConfig {
	return g.cfg
}

// resize recenters the board and checks that it fits.
func (g *Game) resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout = NewLayout(g.board.Size(), g.cfg.Layout)

	minW := g.layout.Width()
	minH := g.layout.Height() + hudTop + hudBottom
	g.tooSmall = w < minW || h < minH

	g.layout.Origin = core.Point{
		X: core.Max(0, (w-minW)/2),
		Y: hudTop + core.Max(0, (h-minH)/2),
	}
}

// Resize adapts the layout to a new screen size without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.resize(w, h)
}

// Now returns the simulation clock in seconds.
func (g *Game) Now() float64 {
	return float64(g.tick) / float64(g.tickRate)
}

// Board returns the underlying board. Callers must treat it as read-only.
func (g *Game) Board() *Board {
	return g.board
}

// Layout returns the current screen layout.
func (g *Game) Layout() Layout {
	return g.layout
}

// Cursor returns the keyboard cursor position.
func (g *Game) Cursor() (row, col int) {
	return g.cursorRow, g.cursorCol
}

// Flips returns the number of successful flips this session.
func (g *Game) Flips() int {
	return g.flips
}

// Flip turns over the card at (row, col) at the current clock.
func (g *Game) Flip(row, col int) bool {
	if g.paused || g.board.Complete() {
		return false
	}
	if !g.board.Flip(row, col, g.Now()) {
		return false
	}
	g.flips++
	return true
}

// Step advances the game by one tick. Input is applied before the board
// settles, so a pair completed this tick is matched in the same tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	changed := false

	if in.Has(core.ActionPause) && !g.board.Complete() {
		g.paused = !g.paused
		changed = true
	}

	if g.paused || g.board.Complete() {
		return core.StepResult{State: g.State(), Changed: changed}
	}

	g.tick++

	if g.moveCursor(in) {
		changed = true
	}
	if in.Has(core.ActionConfirm) && g.Flip(g.cursorRow, g.cursorCol) {
		changed = true
	}
	for _, p := range in.Clicks {
		row, col, ok := g.layout.CellAt(p.X, p.Y)
		if !ok {
			continue
		}
		g.cursorRow, g.cursorCol = row, col
		g.Flip(row, col)
		changed = true
	}

	if outcome := g.board.Update(g.Now()); outcome != OutcomeNone {
		g.lastOutcome = outcome
		changed = true
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// moveCursor applies arrow actions, clamped to the board.
func (g *Game) moveCursor(in core.InputFrame) bool {
	row, col := g.cursorRow, g.cursorCol
	last := g.board.Size() - 1

	if in.Has(core.ActionUp) {
		row--
	}
	if in.Has(core.ActionDown) {
		row++
	}
	if in.Has(core.ActionLeft) {
		col--
	}
	if in.Has(core.ActionRight) {
		col++
	}

	row = core.Clamp(row, 0, last)
	col = core.Clamp(col, 0, last)
	if row == g.cursorRow && col == g.cursorCol {
		return false
	}
	g.cursorRow, g.cursorCol = row, col
	return true
}

// Summary reports the session for result history.
func (g *Game) Summary() core.SessionSummary {
	if g.board == nil {
		return core.SessionSummary{}
	}
	return core.SessionSummary{
		Score:     g.board.MatchedPairs(),
		MaxScore:  g.board.TotalPairs(),
		Moves:     g.flips,
		Elapsed:   time.Duration(g.tick) * time.Second / time.Duration(g.tickRate),
		Completed: g.board.Complete(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.board.MatchedPairs(),
		GameOver: g.board.Complete(),
		Paused:   g.paused || g.tooSmall,
	}
}
