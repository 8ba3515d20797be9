// Package registry maps game IDs to constructors. The concentration game
// registers itself from init, so the CLI, the SSH server and the result
// store can look it up by the same ID they persist.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-concentration/internal/core"
)

// ErrUnknownGame is returned by Create for an ID nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what a front end drives once per simulation tick. Implementations
// keep no terminal or network state; the front end feeds them an InputFrame
// and copies their Screen out.
type Game interface {
	// ID is the stable key used by the CLI and stored with each result.
	ID() string

	// Title is shown in listings and window headers.
	Title() string

	// Reset deals a fresh board for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick and applies the frame's actions and clicks.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board into dst.
	Render(dst *core.Screen)

	// State reports score and the paused and finished flags.
	State() core.GameState
}

// GameInfo describes a registered game for listings.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new, not yet reset, game.
type Factory func() Game

type entry struct {
	build Factory
	title string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register makes a game available under id. It panics when id is taken,
// since that can only happen through two conflicting init functions.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, taken := entries[id]; taken {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{build: f, title: f().Title()}
}

// List returns the registered games ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(infos, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.build(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
