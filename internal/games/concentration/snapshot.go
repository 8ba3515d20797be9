package concentration

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateComplete    GameStateType = "complete"
	StatePausedSmall GameStateType = "paused_small_window"
)

// CardView is a card as a client may see it: hidden cards carry no shape.
type CardView struct {
	State string `json:"state"`
	Shape string `json:"shape,omitempty"`
	ID    int    `json:"id"` // Shape identifier, -1 while hidden
}

// Snapshot captures the visible game state for replay tests and remote clients.
type Snapshot struct {
	Tick           uint64        `json:"tick"`
	Elapsed        float64       `json:"elapsed"`
	Size           int           `json:"size"`
	StatusRow      int           `json:"status_row"`
	StatusCol      int           `json:"status_col"`
	Cards          [][]CardView  `json:"cards"`
	Pending        []FlipRecord  `json:"pending"`
	MatchedPairs   int           `json:"matched_pairs"`
	RemainingPairs int           `json:"remaining_pairs"`
	TotalPairs     int           `json:"total_pairs"`
	Flips          int           `json:"flips"`
	CursorRow      int           `json:"cursor_row"`
	CursorCol      int           `json:"cursor_col"`
	State          GameStateType `json:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.board.Complete():
		state = StateComplete
	case g.paused:
		state = StatePaused
	}

	cards := g.board.Cards()
	views := make([][]CardView, len(cards))
	for row := range cards {
		views[row] = make([]CardView, len(cards[row]))
		for col, c := range cards[row] {
			v := CardView{State: c.State.String(), ID: int(ShapeNone)}
			if c.State != Hidden {
				v.Shape = c.Shape.String()
				v.ID = int(c.Shape)
			}
			views[row][col] = v
		}
	}

	sr, sc := g.board.StatusCell()
	return Snapshot{
		Tick:           g.tick,
		Elapsed:        g.Now(),
		Size:           g.board.Size(),
		StatusRow:      sr,
		StatusCol:      sc,
		Cards:          views,
		Pending:        g.board.Pending(),
		MatchedPairs:   g.board.MatchedPairs(),
		RemainingPairs: g.board.RemainingPairs(),
		TotalPairs:     g.board.TotalPairs(),
		Flips:          g.flips,
		CursorRow:      g.cursorRow,
		CursorCol:      g.cursorCol,
		State:          state,
	}
}
