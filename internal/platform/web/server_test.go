package web

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-concentration/internal/config"
	"github.com/vovakirdan/tui-concentration/internal/games/concentration"
	"github.com/vovakirdan/tui-concentration/internal/storage"
)

const testSeed = 7

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = testSeed
	cfg.Store = store
	cfg.Logger = log.New(io.Discard)

	ts := httptest.NewServer(New(cfg).Router())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match accepts one or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() failed: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func isState(msg ServerMessage) bool { return msg.Type == MsgState }

// expectedBoard deals the board every test session starts with.
func expectedBoard(t *testing.T) *concentration.Board {
	t.Helper()
	b, err := concentration.NewBoard(concentration.DefaultOptions(), rand.New(rand.NewSource(testSeed)))
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	return b
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %s", body)
	}
}

func TestAPIConfig(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/config")
	if err != nil {
		t.Fatalf("GET /api/config failed: %v", err)
	}
	defer resp.Body.Close()

	var got configResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := configResponse{Size: 5, Pairs: 12, FlipDelay: 5, TickRate: 60, StatusRow: 4, StatusCol: 4}
	if got != want {
		t.Errorf("config = %+v, want %+v", got, want)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestWebsocketInitialState(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts)

	msg := readUntil(t, conn, isState)
	st := msg.State
	if st.Size != 5 || st.TotalPairs != 12 || st.RemainingPairs != 12 || st.MatchedPairs != 0 {
		t.Errorf("initial state = %+v", st)
	}
	for _, row := range st.Cards {
		for _, c := range row {
			if c.Shape != "" {
				t.Fatal("initial state should not reveal any shape")
			}
		}
	}
}

func TestWebsocketFlipAndMatch(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts)
	readUntil(t, conn, isState)

	var pair [][2]int
	b := expectedBoard(t)
	first, _ := b.Card(0, 0)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if c, ok := b.Card(row, col); ok && !b.IsStatusCell(row, col) && c.Shape == first.Shape {
				pair = append(pair, [2]int{row, col})
			}
		}
	}

	conn.WriteJSON(ClientMessage{Type: MsgFlip, Row: pair[0][0], Col: pair[0][1]})
	msg := readUntil(t, conn, func(m ServerMessage) bool { return isState(m) && m.State.Flips == 1 })
	if got := msg.State.Cards[0][0]; got.State != "revealed" || got.Shape != first.Shape.String() {
		t.Errorf("flipped card = %+v", got)
	}

	conn.WriteJSON(ClientMessage{Type: MsgFlip, Row: pair[1][0], Col: pair[1][1]})
	msg = readUntil(t, conn, func(m ServerMessage) bool { return isState(m) && m.State.MatchedPairs == 1 })
	if msg.State.RemainingPairs != 11 || len(msg.State.Pending) != 0 {
		t.Errorf("after match = %+v", msg.State)
	}
}

func TestWebsocketRejectsInvalidFlips(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts)
	readUntil(t, conn, isState)

	for _, cell := range []CellRef{{Row: 4, Col: 4}, {Row: -1, Col: 0}, {Row: 0, Col: 9}} {
		conn.WriteJSON(ClientMessage{Type: MsgFlip, Row: cell.Row, Col: cell.Col})
		msg := readUntil(t, conn, func(m ServerMessage) bool { return m.Type == MsgRejected })
		if msg.Cell == nil || *msg.Cell != cell {
			t.Errorf("rejected cell = %+v, want %+v", msg.Cell, cell)
		}
	}
}

func TestWebsocketUnknownMessage(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts)
	readUntil(t, conn, isState)

	conn.WriteJSON(ClientMessage{Type: "cheat"})
	msg := readUntil(t, conn, func(m ServerMessage) bool { return m.Type == MsgError })
	if !strings.Contains(msg.Error, "cheat") {
		t.Errorf("error = %q", msg.Error)
	}
}

func TestWebsocketPauseAndRestart(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts)
	readUntil(t, conn, isState)

	conn.WriteJSON(ClientMessage{Type: MsgPause})
	readUntil(t, conn, func(m ServerMessage) bool { return isState(m) && m.State.State == concentration.StatePaused })

	conn.WriteJSON(ClientMessage{Type: MsgFlip, Row: 0, Col: 0})
	readUntil(t, conn, func(m ServerMessage) bool { return m.Type == MsgRejected })

	conn.WriteJSON(ClientMessage{Type: MsgPause})
	readUntil(t, conn, func(m ServerMessage) bool { return isState(m) && m.State.State == concentration.StatePlaying })

	conn.WriteJSON(ClientMessage{Type: MsgFlip, Row: 0, Col: 0})
	readUntil(t, conn, func(m ServerMessage) bool { return isState(m) && m.State.Flips == 1 })

	conn.WriteJSON(ClientMessage{Type: MsgRestart})
	msg := readUntil(t, conn, func(m ServerMessage) bool { return isState(m) && m.State.Flips == 0 })
	if msg.State.Tick != 0 || len(msg.State.Pending) != 0 {
		t.Errorf("restart state = %+v", msg.State)
	}
}

func TestWebsocketDisconnectRecordsResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ts := newTestServer(t, store)
	conn := dial(t, ts)
	readUntil(t, conn, isState)

	conn.WriteJSON(ClientMessage{Type: MsgFlip, Row: 0, Col: 0})
	readUntil(t, conn, func(m ServerMessage) bool { return isState(m) && m.State.Flips == 1 })
	conn.Close()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		results, err := store.RecentResults(concentration.GameID, 10)
		if err != nil {
			t.Fatalf("RecentResults() failed: %v", err)
		}
		if len(results) == 1 {
			if results[0].Completed || results[0].Flips != 1 {
				t.Errorf("result = %+v", results[0])
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("abandoned session was not recorded")
}

func TestNewSessionScreenFitsBoard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game = config.DefaultConcentrationConfig()
	cfg.Game.Board.Size = 7
	cfg.Game.Board.Pairs = 24
	cfg.Logger = log.New(io.Discard)

	sess := New(cfg).newSession(nil)
	sess.reset()
	if sess.game.State().Paused {
		t.Error("virtual screen should always fit the board")
	}
	if sess.game.Board().TotalPairs() != 24 {
		t.Errorf("TotalPairs() = %d, want 24", sess.game.Board().TotalPairs())
	}
}
