package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-concentration/internal/core"
	"github.com/vovakirdan/tui-concentration/internal/games/concentration"
	"github.com/vovakirdan/tui-concentration/internal/storage"
)

// Message types exchanged over the websocket.
const (
	MsgFlip     = "flip"
	MsgRestart  = "restart"
	MsgPause    = "pause"
	MsgState    = "state"
	MsgRejected = "rejected"
	MsgError    = "error"
)

const (
	maxMessageSize = 512
	writeWait      = 5 * time.Second
)

// ClientMessage is a command sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// CellRef names a board position.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type  string                  `json:"type"`
	State *concentration.Snapshot `json:"state,omitempty"`
	Cell  *CellRef                `json:"cell,omitempty"` // Set on rejected flips
	Error string                  `json:"error,omitempty"`
}

// session is one websocket connection playing one board. Only its run
// goroutine touches the game and writes to the connection.
type session struct {
	conn     *websocket.Conn
	game     *concentration.Game
	rc       core.RuntimeConfig
	store    *storage.Store
	logger   *log.Logger
	seed     int64
	recorded bool
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := s.newSession(conn)
	s.logger.Info("session started", "remote", r.RemoteAddr)
	start := time.Now()
	sess.run(r.Context())
	s.logger.Info("session ended",
		"remote", r.RemoteAddr,
		"duration", time.Since(start).Round(time.Second),
	)
}

func (s *Server) newSession(conn *websocket.Conn) *session {
	cfg := s.cfg.Game
	tickRate := cfg.Timing.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	// The board is never drawn here; size the virtual screen so it always fits.
	layout := concentration.NewLayout(cfg.Board.Size, cfg.Layout)
	rc := core.RuntimeConfig{
		ScreenW:  layout.Width(),
		ScreenH:  layout.Height() + 2,
		TickRate: tickRate,
		Seed:     s.cfg.Seed,
	}

	return &session{
		conn:   conn,
		game:   concentration.NewWithConfig(cfg),
		rc:     rc,
		store:  s.cfg.Store,
		logger: s.logger,
		seed:   s.cfg.Seed,
	}
}

// run plays until the client disconnects or ctx ends.
func (sess *session) run(ctx context.Context) {
	sess.reset()
	defer sess.recordResult()

	sess.conn.SetReadLimit(maxMessageSize)
	incoming := make(chan ClientMessage)
	done := make(chan struct{})
	defer close(done)
	go sess.readLoop(incoming, done)

	if err := sess.sendState(); err != nil {
		return
	}

	ticker := time.NewTicker(time.Second / time.Duration(sess.rc.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sess.closeWith(websocket.CloseGoingAway, "server shutting down")
			return

		case msg, ok := <-incoming:
			if !ok {
				return
			}
			if err := sess.handle(msg); err != nil {
				sess.logger.Debug("write failed", "error", err)
				return
			}

		case <-ticker.C:
			res := sess.game.Step(core.NewInputFrame())
			if res.State.GameOver {
				sess.recordResult()
			}
			if res.Changed {
				if err := sess.sendState(); err != nil {
					return
				}
			}
		}
	}
}

// readLoop decodes client messages until the connection fails or run exits.
func (sess *session) readLoop(out chan<- ClientMessage, done <-chan struct{}) {
	defer close(out)
	for {
		var msg ClientMessage
		if err := sess.conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case out <- msg:
		case <-done:
			return
		}
	}
}

// handle applies one client command and answers it.
func (sess *session) handle(msg ClientMessage) error {
	switch msg.Type {
	case MsgFlip:
		if !sess.game.Flip(msg.Row, msg.Col) {
			return sess.send(ServerMessage{Type: MsgRejected, Cell: &CellRef{Row: msg.Row, Col: msg.Col}})
		}
		return sess.sendState()

	case MsgRestart:
		sess.recordResult()
		sess.reset()
		return sess.sendState()

	case MsgPause:
		in := core.NewInputFrame()
		in.Set(core.ActionPause)
		sess.game.Step(in)
		return sess.sendState()
	}

	return sess.send(ServerMessage{Type: MsgError, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
}

// reset deals a new board.
func (sess *session) reset() {
	rc := sess.rc
	if sess.seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	sess.game.Reset(rc)
	sess.recorded = false
}

// recordResult saves the current board once, if the player flipped anything.
func (sess *session) recordResult() {
	if sess.store == nil || sess.recorded {
		return
	}
	sum := sess.game.Summary()
	if !sum.Started() {
		return
	}
	if _, err := sess.store.SaveResult(storage.NewResult(sess.game.ID(), sum)); err != nil {
		sess.logger.Warn("could not save result", "error", err)
	}
	sess.recorded = true
}

func (sess *session) sendState() error {
	snap := sess.game.Snapshot()
	return sess.send(ServerMessage{Type: MsgState, State: &snap})
}

func (sess *session) send(msg ServerMessage) error {
	//nolint:errcheck // A failed deadline surfaces as a write error below
	sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return sess.conn.WriteJSON(msg)
}

func (sess *session) closeWith(code int, reason string) {
	//nolint:errcheck // Best-effort close frame, the connection is dropped anyway
	sess.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
}
