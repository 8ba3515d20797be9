// Package concentration implements the concentration (memory matching) card game.
//
// Board holds the rules: a square grid of face-down cards in pairs, one
// reserved status cell in the bottom-right corner, at most two unresolved
// flips, and a mismatch delay measured against timestamps supplied by the
// caller. Board does no timing of its own; Update must be called on a steady
// cadence with a non-decreasing clock.
package concentration

import (
	"errors"
	"math/rand"
	"time"
)

// Board construction errors.
var (
	ErrInvalidSize      = errors.New("concentration: board size must be at least 1")
	ErrOddPlayableCells = errors.New("concentration: board size leaves an odd number of playable cells")
	ErrPairCount        = errors.New("concentration: pair count does not fill the playable cells")
	ErrInvalidDelay     = errors.New("concentration: flip delay must not be negative")
)

// maxPending is the number of cards that may be face up and unresolved at once.
const maxPending = 2

// CardState is the lifecycle state of a single card.
type CardState int

const (
	Hidden   CardState = iota // Face down, can be flipped
	Revealed                  // Face up, waiting for resolution
	Matched                   // Paired, out of play for good
)

// String returns the lower-case name of the state.
func (s CardState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is one cell of the board.
type Card struct {
	Shape Shape
	State CardState
}

// FlipRecord tracks a face-up card that has not been resolved yet.
type FlipRecord struct {
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	RevealTime float64 `json:"reveal_time"`
}

// Outcome reports what an Update call resolved.
type Outcome int

const (
	OutcomeNone     Outcome = iota // Nothing changed
	OutcomeMatch                   // Two equal cards were matched
	OutcomeMismatch                // Two different cards were turned back over
)

// Options sizes the board and sets the mismatch delay.
type Options struct {
	Size      int     // Cards per row and per column
	Pairs     int     // Distinct shapes, each placed twice
	FlipDelay float64 // Time a mismatched pair stays face up
}

// DefaultOptions returns the classic 5x5 board with 12 pairs and a 5 second delay.
func DefaultOptions() Options {
	return Options{
		Size:      5,
		Pairs:     12,
		FlipDelay: 5.0,
	}
}

// Validate checks that the options describe a board that can be dealt.
func (o Options) Validate() error {
	if o.Size < 1 {
		return ErrInvalidSize
	}
	playable := o.Size*o.Size - 1
	if playable%2 != 0 {
		return ErrOddPlayableCells
	}
	if o.Pairs*2 != playable {
		return ErrPairCount
	}
	if o.FlipDelay < 0 {
		return ErrInvalidDelay
	}
	return nil
}

// Board is the state of one game session.
type Board struct {
	opts    Options
	cards   [][]Card
	pending []FlipRecord
	matched int
}

// NewBoard deals a shuffled board. The rng drives the shuffle; a nil rng is
// seeded from the wall clock.
func NewBoard(opts Options, rng *rand.Rand) (*Board, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	shapes := make([]Shape, 0, opts.Pairs*2)
	for i := 0; i < opts.Pairs; i++ {
		shapes = append(shapes, Shape(i), Shape(i))
	}
	rng.Shuffle(len(shapes), func(i, j int) {
		shapes[i], shapes[j] = shapes[j], shapes[i]
	})

	b := &Board{
		opts:    opts,
		cards:   make([][]Card, opts.Size),
		pending: make([]FlipRecord, 0, maxPending),
	}

	idx := 0
	for row := range b.cards {
		b.cards[row] = make([]Card, opts.Size)
		for col := range b.cards[row] {
			if b.IsStatusCell(row, col) {
				b.cards[row][col] = Card{Shape: ShapeNone, State: Hidden}
				continue
			}
			b.cards[row][col] = Card{Shape: shapes[idx], State: Hidden}
			idx++
		}
	}

	return b, nil
}

// Options returns the options the board was dealt with.
func (b *Board) Options() Options {
	return b.opts
}

// Size returns the number of cards per row and column.
func (b *Board) Size() int {
	return b.opts.Size
}

// StatusCell returns the position of the reserved status cell.
func (b *Board) StatusCell() (row, col int) {
	return b.opts.Size - 1, b.opts.Size - 1
}

// IsStatusCell reports whether (row, col) is the reserved status cell.
func (b *Board) IsStatusCell(row, col int) bool {
	sr, sc := b.StatusCell()
	return row == sr && col == sc
}

// InBounds reports whether (row, col) lies on the grid.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.opts.Size && col >= 0 && col < b.opts.Size
}

// at is the single bounds-checked access path into the grid.
func (b *Board) at(row, col int) (*Card, bool) {
	if !b.InBounds(row, col) {
		return nil, false
	}
	return &b.cards[row][col], true
}

// Card returns the card at (row, col). ok is false when out of bounds.
func (b *Board) Card(row, col int) (card Card, ok bool) {
	c, ok := b.at(row, col)
	if !ok {
		return Card{Shape: ShapeNone}, false
	}
	return *c, true
}

// Cards returns a copy of the grid, indexed [row][col].
func (b *Board) Cards() [][]Card {
	out := make([][]Card, len(b.cards))
	for row := range b.cards {
		out[row] = append([]Card(nil), b.cards[row]...)
	}
	return out
}

// Pending returns a copy of the unresolved flips in flip order.
func (b *Board) Pending() []FlipRecord {
	return append([]FlipRecord(nil), b.pending...)
}

// Flip turns over the card at (row, col) at time now.
// It returns false and changes nothing when the position is off the board,
// is the status cell, holds a card that is not hidden, or when two flips are
// already waiting for resolution.
func (b *Board) Flip(row, col int, now float64) bool {
	if b.IsStatusCell(row, col) || len(b.pending) >= maxPending {
		return false
	}
	card, ok := b.at(row, col)
	if !ok || card.State != Hidden {
		return false
	}

	card.State = Revealed
	b.pending = append(b.pending, FlipRecord{Row: row, Col: col, RevealTime: now})
	return true
}

// Update resolves a pair of face-up cards. Equal shapes match immediately.
// Different shapes turn back over once now is at least FlipDelay past the
// second flip; until then nothing changes.
func (b *Board) Update(now float64) Outcome {
	if len(b.pending) != maxPending {
		return OutcomeNone
	}

	first, second := b.pending[0], b.pending[1]
	c1, _ := b.at(first.Row, first.Col)
	c2, _ := b.at(second.Row, second.Col)

	switch {
	case c1.Shape == c2.Shape:
		c1.State = Matched
		c2.State = Matched
		b.matched++
		b.pending = b.pending[:0]
		return OutcomeMatch
	case now-second.RevealTime >= b.opts.FlipDelay:
		c1.State = Hidden
		c2.State = Hidden
		b.pending = b.pending[:0]
		return OutcomeMismatch
	}
	return OutcomeNone
}

// TotalPairs returns the number of pairs dealt.
func (b *Board) TotalPairs() int {
	return b.opts.Pairs
}

// MatchedPairs returns the number of pairs found so far.
func (b *Board) MatchedPairs() int {
	return b.matched
}

// RemainingPairs returns the number of pairs still to be found.
func (b *Board) RemainingPairs() int {
	return b.opts.Pairs - b.matched
}

// Complete reports whether every pair has been matched.
func (b *Board) Complete() bool {
	return b.matched == b.opts.Pairs
}
