package core

import "time"

// SessionSummary describes one play session for result history.
type SessionSummary struct {
	Score     int           // Progress made, e.g. matched pairs
	MaxScore  int           // Score that completes the game
	Moves     int           // Player moves that changed the game
	Elapsed   time.Duration // Simulated play time
	Completed bool
}

// Started reports whether the player did anything worth recording.
func (s SessionSummary) Started() bool {
	return s.Moves > 0
}
