package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/minimax-chess/internal/engine"
	"github.com/benbeisheim/minimax-chess/internal/ws"
)

var (
	ErrGameOver       = errors.New("game is over")
	ErrNotParticipant = errors.New("player is not part of this game")
	ErrStalePosition  = errors.New("position changed while the engine was thinking")
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// writeMu serialises writes, a connection supports one writer at a time
	writeMu sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one human-versus-engine session. The engine game is only touched
// under mu; the search works on copies handed out by BeginThinking.
type Game struct {
	ID    string
	Owner string
	Human engine.Color

	mu       sync.Mutex
	game     *engine.Game
	status   engine.Status
	plies    []Ply
	lastMove *SimpleMove
	sound    string
	// version changes on every applied or taken back move
	version  uint64
	thinking atomic.Bool

	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	ID             string         `json:"id"`
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	ToMove         string         `json:"toMove"`
	Status         engine.Status  `json:"status"`
	MoveHistory    []Move         `json:"moveHistory"`
	History        string         `json:"history"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	LegalMoves     []SimpleMove   `json:"legalMoves"`
	Resolve        *string        `json:"resolve"`
	Winner         *string        `json:"winner"`
	Evaluation     int            `json:"evaluation"`
	AIThinking     bool           `json:"aiThinking"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *SimpleMove `json:"lastMove"`
}

// CapturedPieces groups taken pieces by their own colour, in capture order.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id, owner string, human engine.Color, clock time.Duration) *Game {
	g := &Game{
		ID:          id,
		Owner:       owner,
		Human:       human,
		game:        engine.NewGame(nil),
		status:      engine.Continue,
		plies:       make([]Ply, 0),
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
	g.whiteClock.Start()
	return g
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	return playerID != "" && playerID == g.Owner
}

func (g *Game) clockFor(c engine.Color) *Clock {
	if c == engine.White {
		return g.whiteClock
	}
	return g.blackClock
}

// MakeMove validates and applies a human move.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsPlayerInGame(playerID) {
		return ErrNotParticipant
	}
	if g.status.Terminal() {
		return ErrGameOver
	}
	from, to := move.From.Square(), move.To.Square()
	if g.game.Turn != g.Human {
		return &engine.MoveError{From: from, To: to, Err: engine.ErrNotYourTurn}
	}
	if err := g.game.PlayerMove(from, to); err != nil {
		return err
	}
	g.afterMoveLocked()
	return nil
}

// AIToMove reports whether the engine should pick the next move.
func (g *Game) AIToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.game.Turn != g.Human && !g.status.Terminal()
}

// BeginThinking hands out a copy of the position for the engine to search,
// with the side to move and the version it belongs to. It fails if the
// engine is not to move or is already thinking. Every successful call must
// be paired with EndThinking.
func (g *Game) BeginThinking() (sim *engine.Game, version uint64, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.game.Turn == g.Human || g.status.Terminal() {
		return nil, 0, false
	}
	if !g.thinking.CompareAndSwap(false, true) {
		return nil, 0, false
	}
	return g.game.CopyForSimulation(), g.version, true
}

func (g *Game) EndThinking() {
	g.thinking.Store(false)
}

func (g *Game) Thinking() bool {
	return g.thinking.Load()
}

// ApplyAIMove plays the engine's choice, given by squares, on the live game.
// It is rejected if the position changed since BeginThinking.
func (g *Game) ApplyAIMove(version uint64, from, to engine.Square) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if version != g.version || g.game.Turn == g.Human {
		return ErrStalePosition
	}
	if g.status.Terminal() {
		return ErrGameOver
	}
	if err := g.game.PlayerMove(from, to); err != nil {
		return fmt.Errorf("engine move: %w", err)
	}
	g.afterMoveLocked()
	return nil
}

// afterMoveLocked records the ply just played, hands the clock over and
// refreshes the status.
func (g *Game) afterMoveLocked() {
	rec, _ := g.game.Board.History().Top()
	mover := rec.Piece.Color
	g.clockFor(mover).Stop()
	g.clockFor(mover.Opponent()).Start()

	g.status = g.game.CheckWinningConditions()
	g.plies = append(g.plies, newPly(rec, g.status))
	g.lastMove = &SimpleMove{From: PositionOf(rec.From), To: PositionOf(rec.To)}
	g.version++

	switch {
	case g.status == engine.Check || g.status == engine.Checkmate:
		g.sound = "check"
	case rec.Captured != nil:
		g.sound = "capture"
	default:
		g.sound = "move"
	}
	if g.status.Terminal() {
		g.whiteClock.Stop()
		g.blackClock.Stop()
		log.Infof("game %s over: %s, winner %s", g.ID, g.status, g.winnerLocked())
	}
}

// Undo takes back the human's last move together with the engine's reply.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsPlayerInGame(playerID) {
		return ErrNotParticipant
	}
	count := 1
	if g.game.Turn == g.Human {
		count = 2
	}
	if g.game.Board.History().Len() < count {
		return engine.ErrEmptyHistory
	}
	for i := 0; i < count; i++ {
		if err := g.game.Takeback(); err != nil {
			return err
		}
		g.plies = g.plies[:len(g.plies)-1]
	}

	g.lastMove = nil
	if n := len(g.plies); n > 0 {
		g.lastMove = &SimpleMove{From: g.plies[n-1].From, To: g.plies[n-1].To}
	}
	g.status = g.game.CheckWinningConditions()
	g.sound = "move"
	g.version++
	g.clockFor(g.game.Turn.Opponent()).Stop()
	g.clockFor(g.game.Turn).Start()
	return nil
}

// winnerLocked names the winner of a finished game: the mating side, or the
// side that took more material otherwise.
func (g *Game) winnerLocked() string {
	if g.status == engine.Checkmate {
		if g.game.Turn == engine.White {
			return "Black"
		}
		return "White"
	}
	return g.game.Winner()
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	state := GameState{
		ID:             g.ID,
		Sound:          g.sound,
		Board:          newBoardState(g.game.Board),
		ToMove:         g.game.Turn.String(),
		Status:         g.status,
		MoveHistory:    pairPlies(g.plies),
		History:        g.game.Board.History().String(),
		CapturedPieces: CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)},
		IsCheck:        g.status == engine.Check || g.status == engine.Checkmate,
		LegalMoves:     make([]SimpleMove, 0),
		Evaluation:     g.game.Board.Evaluate(),
		AIThinking:     g.thinking.Load(),
		LastMove:       g.lastMove,
	}
	for _, p := range g.game.Board.Captured {
		if p.Color == engine.White {
			state.CapturedPieces.White = append(state.CapturedPieces.White, *NewPiece(p))
		} else {
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, *NewPiece(p))
		}
	}
	if g.status.Terminal() {
		resolve := strings.ToLower(g.status.String())
		winner := g.winnerLocked()
		state.Resolve, state.Winner = &resolve, &winner
	} else if g.game.Turn == g.Human {
		for _, c := range g.game.LegalMoves(g.Human, true) {
			state.LegalMoves = append(state.LegalMoves, SimpleMove{From: PositionOf(c.Piece.Square), To: PositionOf(c.To)})
		}
	}

	human := ClientPlayer{ID: g.Owner, Color: g.Human.String(), TimeLeft: g.clockFor(g.Human).Tenths()}
	computer := ClientPlayer{ID: ComputerID, Color: g.Human.Opponent().String(), TimeLeft: g.clockFor(g.Human.Opponent()).Tenths(), IsAI: true}
	if g.Human == engine.White {
		state.Players.White, state.Players.Black = human, computer
	} else {
		state.Players.White, state.Players.Black = computer, human
	}
	return state
}

func pairPlies(plies []Ply) []Move {
	moves := make([]Move, 0, (len(plies)+1)/2)
	for i := range plies {
		ply := plies[i]
		if i%2 == 0 {
			moves = append(moves, Move{WhitePly: &ply})
		} else {
			moves[len(moves)-1].BlackPly = &ply
		}
	}
	return moves
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if !g.IsPlayerInGame(playerID) {
		return ErrNotParticipant
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the new one
		g.connections.mu.Unlock()
		g.connections.writeMu.Lock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		g.connections.writeMu.Unlock()
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for player %s", g.ID, playerID)

	g.Broadcast()
	return nil
}

// UnregisterConnection drops conn if it is still the player's current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Debugf("game %s: unregistered connection for player %s", g.ID, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()

	return len(g.connections.connections)
}

// Broadcast sends the current state to every connection. Connections that
// fail to take it are dropped.
func (g *Game) Broadcast() {
	payload, err := json.Marshal(g.GetState())
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}

// Send writes one message to a single connection of this game.
func (g *Game) Send(conn Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	return conn.WriteJSON(msg)
}
