package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/rs/zerolog"
)

// Subscriber receives state pushes. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Subscriber // clientID -> connection
	mu          sync.RWMutex
	sendMu      sync.Mutex // one writer per connection at a time
	sent        uint64     // revision of the newest state pushed, guarded by sendMu
}

// Game is one authoritative game session. Every exported method holds the
// session lock for its whole duration, so moves are processed one at a time.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	toMove      Color
	revision    uint64
	connections *GameConnections
	log         zerolog.Logger
}

type GameState struct {
	Board          BoardState     `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	Message        string         `json:"message"`
	Success        bool           `json:"success"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	IsCheckmate    bool           `json:"isCheckmate"`
	IsStalemate    bool           `json:"isStalemate"`
	Result         *string        `json:"result"`
	LastMove       *SimpleMove    `json:"lastMove"`
	Revision       uint64         `json:"revision"`
}

// CapturedPieces lists pieces taken by each side.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

type GameOption func(*Game)

func WithLogger(log zerolog.Logger) GameOption {
	return func(g *Game) {
		g.log = log.With().Str("game", g.ID).Logger()
	}
}

// WithBoard starts the session from a prepared position instead of the
// standard setup.
func WithBoard(b *Board, toMove Color) GameOption {
	return func(g *Game) {
		g.board = b
		g.toMove = toMove
	}
}

func NewGame(id string, opts ...GameOption) *Game {
	g := &Game{
		ID:          id,
		board:       NewBoard(),
		toMove:      White,
		connections: NewGameConnections(),
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Subscriber),
	}
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

// ToMove returns the side to move.
func (g *Game) ToMove() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMove
}

// Snapshot returns an independent copy of the board, the side to move and the
// revision the copy was taken at.
func (g *Game) Snapshot() (*Board, Color, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone(), g.toMove, g.revision
}

func (g *Game) LegalTargets(from Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p := g.board.PieceAt(from); p == nil || p.Color != g.toMove {
		return []Square{}
	}
	return g.board.LegalTargets(from)
}

// SubmitMove validates and plays a move for the side to move. A rejected move
// leaves the position untouched and is reported in the returned state.
func (g *Game) SubmitMove(from, to Square, promotion string) GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.submitLocked(from, to, promotion)
}

// SubmitMoveAt plays the move only if the game is still at revision rev.
func (g *Game) SubmitMoveAt(rev uint64, from, to Square, promotion string) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if rev != g.revision {
		return g.stateLocked(), ErrStaleRevision
	}
	return g.submitLocked(from, to, promotion), nil
}

func (g *Game) submitLocked(from, to Square, promotion string) GameState {
	m, err := g.validateMove(from, to, promotion)
	if err != nil {
		g.log.Debug().Err(err).Stringer("from", from).Stringer("to", to).Msg("move rejected")
		return g.failedStateLocked(err)
	}

	g.board.Apply(m)
	g.switchTurn()
	g.revision++

	state := g.stateLocked()
	switch {
	case state.IsCheckmate:
		g.board.annotateLast("#")
	case state.IsCheck:
		g.board.annotateLast("+")
	}
	state.MoveHistory = g.historyLocked()
	if !state.IsCheck && !state.IsCheckmate && !state.IsStalemate {
		state.Message = "Move Successful"
	}

	last := g.board.LastMove()
	g.log.Info().
		Str("move", last.Notation).
		Stringer("from", from).
		Stringer("to", to).
		Str("toMove", string(g.toMove)).
		Msg("move accepted")

	go g.broadcastState(state)
	return state
}

// validateMove checks a submitted move in order: coordinates, piece presence,
// turn, movement pattern, castling safety, own king safety.
func (g *Game) validateMove(from, to Square, promotion string) (Move, error) {
	if !from.InBounds() || !to.InBounds() {
		return Move{}, ErrOutOfBounds
	}
	piece := g.board.PieceAt(from)
	if piece == nil {
		return Move{}, ErrNoPiece
	}
	if piece.Color != g.toMove {
		return Move{}, fmt.Errorf("%w: it is %s's turn", ErrWrongTurn, g.toMove.displayName())
	}
	if !g.board.CanMove(from, to) {
		return Move{}, fmt.Errorf("%w for %s", ErrIllegalMove, piece.Type)
	}

	m := g.board.NewMove(from, to, ParsePromotion(promotion))
	if err := g.board.CheckMove(m); err != nil {
		return Move{}, err
	}
	return m, nil
}

// Undo takes back the last move. With no history it returns the current state.
func (g *Game) Undo() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	last := g.board.LastMove()
	if last == nil {
		state := g.stateLocked()
		state.Message = "Nothing to undo"
		return state
	}
	m := *last
	g.board.Undo(m)
	g.switchTurn()
	g.revision++
	g.log.Info().Str("move", m.Notation).Msg("move undone")

	state := g.stateLocked()
	state.Message = "Move undone"
	go g.broadcastState(state)
	return state
}

// Reset restores the starting position with White to move.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.board.Reset()
	g.toMove = White
	g.revision++
	g.log.Info().Msg("game reset")

	go g.broadcastState(g.stateLocked())
}

func (g *Game) switchTurn() {
	g.toMove = g.toMove.Opponent()
}

func (g *Game) stateLocked() GameState {
	inCheck := g.board.KingInCheck(g.toMove)
	hasMoves := g.board.HasAnyLegalMove(g.toMove)

	state := GameState{
		Board:          g.board.Snapshot(),
		ToMove:         g.toMove,
		Message:        "Current State",
		Success:        true,
		MoveHistory:    g.historyLocked(),
		CapturedPieces: g.capturedLocked(),
		IsCheck:        inCheck,
		Revision:       g.revision,
	}
	if last := g.board.LastMove(); last != nil {
		simple := last.Simple()
		state.LastMove = &simple
	}

	switch {
	case inCheck && !hasMoves:
		result := "checkmate"
		state.IsCheckmate = true
		state.Result = &result
		state.Message = fmt.Sprintf("Checkmate! %s Wins!", g.toMove.Opponent().displayName())
	case inCheck:
		state.Message = "Check!"
	case !hasMoves:
		result := "stalemate"
		state.IsStalemate = true
		state.Result = &result
		state.Message = "Stalemate! Game Draw."
	}
	return state
}

func (g *Game) failedStateLocked(err error) GameState {
	state := GameState{
		Board:          g.board.Snapshot(),
		ToMove:         g.toMove,
		Message:        "Error: " + err.Error(),
		Success:        false,
		MoveHistory:    g.historyLocked(),
		CapturedPieces: g.capturedLocked(),
		IsCheck:        g.board.KingInCheck(g.toMove),
		Revision:       g.revision,
	}
	if last := g.board.LastMove(); last != nil {
		simple := last.Simple()
		state.LastMove = &simple
	}
	return state
}

func (g *Game) historyLocked() []Move {
	history := g.board.History()
	for i := range history {
		history[i] = history[i].clone()
	}
	return history
}

func (g *Game) capturedLocked() CapturedPieces {
	captured := CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)}
	for _, m := range g.board.history {
		if m.CapturedPiece == nil {
			continue
		}
		switch m.Piece.Color {
		case White:
			captured.White = append(captured.White, *m.CapturedPiece)
		case Black:
			captured.Black = append(captured.Black, *m.CapturedPiece)
		}
	}
	return captured
}

func (g *Game) RegisterConnection(clientID string, conn Subscriber) error {
	if clientID == "" {
		return errors.New("client ID is required")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		g.connections.mu.Unlock()
		return fmt.Errorf("connection already exists for client %s", clientID)
	}
	g.connections.connections[clientID] = conn
	g.connections.mu.Unlock()
	g.log.Debug().Str("client", clientID).Msg("registered connection")

	go g.broadcastState(g.GetState())
	return nil
}

func (g *Game) UnregisterConnection(clientID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[clientID]; exists {
		delete(g.connections.connections, clientID)
		g.log.Debug().Str("client", clientID).Msg("unregistered connection")
	}
}

// broadcastState pushes state to every connected client, dropping the ones
// that fail. Pushes run on their own goroutines, so a state older than one
// already sent is skipped and clients never step back to an earlier position.
func (g *Game) broadcastState(state GameState) {
	g.connections.mu.RLock()
	activeConnections := make(map[string]Subscriber, len(g.connections.connections))
	for clientID, conn := range g.connections.connections {
		activeConnections[clientID] = conn
	}
	g.connections.mu.RUnlock()

	if len(activeConnections) == 0 {
		return
	}
	payload, err := json.Marshal(state)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to marshal state")
		return
	}

	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	if state.Revision < g.connections.sent {
		g.log.Debug().Uint64("revision", state.Revision).Uint64("sent", g.connections.sent).Msg("skipping stale state")
		return
	}
	g.connections.sent = state.Revision
	for clientID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			g.log.Warn().Err(err).Str("client", clientID).Msg("failed to send state")
			g.UnregisterConnection(clientID)
		}
	}
}
