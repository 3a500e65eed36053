package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/ai"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/rs/zerolog"
)

var (
	ErrNoLegalMove = errors.New("no legal move available")
	ErrGameChanged = errors.New("game changed during AI search")
)

// GameService is the API the transport layer talks to. It never applies chess
// rules itself; everything goes through the game sessions and the searcher.
type GameService struct {
	gameManager     *GameManager
	searcher        *ai.Searcher
	defaultStrength ai.Strength
	maxStrength     ai.Strength
	log             zerolog.Logger
}

type ServiceOption func(*GameService)

func WithStrengths(def, maxStrength ai.Strength) ServiceOption {
	return func(gs *GameService) {
		gs.defaultStrength = def
		gs.maxStrength = maxStrength
	}
}

func WithLogger(log zerolog.Logger) ServiceOption {
	return func(gs *GameService) {
		gs.log = log
	}
}

func NewGameService(gameManager *GameManager, searcher *ai.Searcher, opts ...ServiceOption) *GameService {
	gs := &GameService{
		gameManager:     gameManager,
		searcher:        searcher,
		defaultStrength: ai.Medium,
		maxStrength:     ai.Hard,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

func (gs *GameService) CreateGame() (string, error) {
	gameID, err := gs.gameManager.CreateGame()
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// HandleMove submits a move. Rule failures come back as a state with
// Success=false, not as an error.
func (gs *GameService) HandleMove(gameID string, from, to model.Square, promotion string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.SubmitMove(from, to, promotion), nil
}

func (gs *GameService) Undo(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Undo(), nil
}

func (gs *GameService) Reset(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	game.Reset()
	return game.GetState(), nil
}

func (gs *GameService) LegalTargets(gameID string, from model.Square) ([]model.Square, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalTargets(from), nil
}

// ResolveStrength parses a requested difficulty, falling back to the default
// for an empty value and capping it at the configured maximum.
func (gs *GameService) ResolveStrength(requested string) (ai.Strength, error) {
	if requested == "" {
		return gs.capStrength(gs.defaultStrength), nil
	}
	strength, err := ai.ParseStrength(requested)
	if err != nil {
		return "", err
	}
	return gs.capStrength(strength), nil
}

func (gs *GameService) capStrength(s ai.Strength) ai.Strength {
	if s.Depth() > gs.maxStrength.Depth() {
		return gs.maxStrength
	}
	return s
}

// RequestAiMove suggests a move for the side to move without playing it.
func (gs *GameService) RequestAiMove(gameID string, strength ai.Strength) (model.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Move{}, err
	}
	board, toMove, _ := game.Snapshot()
	move, ok := gs.searcher.BestMove(board, strength, toMove)
	if !ok {
		return model.Move{}, ErrNoLegalMove
	}
	return move, nil
}

// PlayAiMove searches on a copy of the game and plays the result, provided
// nobody moved in the meantime.
func (gs *GameService) PlayAiMove(gameID string, strength ai.Strength) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	board, toMove, rev := game.Snapshot()
	res := gs.searcher.Search(board, strength, toMove)
	if !res.Found {
		return game.GetState(), ErrNoLegalMove
	}
	gs.log.Info().
		Str("game", gameID).
		Str("strength", string(strength)).
		Str("move", res.Move.String()).
		Int("nodes", res.Nodes).
		Msg("ai move chosen")

	state, err := game.SubmitMoveAt(rev, res.Move.From, res.Move.To, string(res.Move.Promotion))
	if errors.Is(err, model.ErrStaleRevision) {
		return state, ErrGameChanged
	}
	return state, err
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn model.Subscriber) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID)
}
