package ai

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/rs/zerolog"
)

type Strength string

const (
	Easy   Strength = "EASY"
	Medium Strength = "MEDIUM"
	Hard   Strength = "HARD"
)

const (
	depthMedium = 2
	depthHard   = 4
)

func ParseStrength(s string) (Strength, error) {
	switch Strength(strings.ToUpper(strings.TrimSpace(s))) {
	case Easy:
		return Easy, nil
	case Medium:
		return Medium, nil
	case Hard:
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Depth is the number of plies searched; Easy does not search.
func (s Strength) Depth() int {
	switch s {
	case Medium:
		return depthMedium
	case Hard:
		return depthHard
	}
	return 0
}

// Result is the outcome of one search.
type Result struct {
	Move  model.Move
	Found bool
	Score int
	Depth int
	Nodes int
}

// Searcher picks moves for the computer side. It is safe for concurrent use;
// each call works on its own copy of the board.
type Searcher struct {
	mu  sync.Mutex
	rng *rand.Rand
	log zerolog.Logger
}

type Option func(*Searcher)

// WithRand fixes the source used by Easy. Without it the global generator is used.
func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		s.rng = r
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Searcher) {
		s.log = log
	}
}

func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BestMove returns the move chosen for color, or false when it has none.
// board is never modified.
func (s *Searcher) BestMove(board *model.Board, strength Strength, color model.Color) (model.Move, bool) {
	res := s.Search(board, strength, color)
	return res.Move, res.Found
}

func (s *Searcher) Search(board *model.Board, strength Strength, color model.Color) Result {
	start := time.Now()
	sim := board.Clone()

	legalMoves := sim.LegalMoves(color)
	if len(legalMoves) == 0 {
		return Result{}
	}

	if strength == Easy {
		return Result{Move: legalMoves[s.intN(len(legalMoves))], Found: true, Nodes: 1}
	}

	depth := strength.Depth()
	if depth == 0 {
		s.log.Warn().Str("strength", string(strength)).Msg("unknown strength, searching at medium depth")
		depth = depthMedium
	}
	st := &searchTree{board: sim}
	res := st.root(legalMoves, depth, color)

	s.log.Debug().
		Str("strength", string(strength)).
		Int("depth", depth).
		Int("nodes", res.Nodes).
		Int("score", res.Score).
		Str("move", res.Move.String()).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")
	return res
}

func (s *Searcher) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// searchTree owns the board copy for one search. Every child is explored with
// Apply before the recursive call and Undo right after it.
type searchTree struct {
	board *model.Board
	nodes int
}

func (st *searchTree) root(moves []model.Move, depth int, color model.Color) Result {
	orderMoves(moves)

	maximizing := color == model.White
	bestValue := math.MaxInt
	if maximizing {
		bestValue = math.MinInt
	}
	alpha, beta := math.MinInt, math.MaxInt
	var best model.Move
	found := false

	for _, m := range moves {
		st.board.Apply(m)
		value := st.minimax(depth-1, alpha, beta, color.Opponent())
		st.board.Undo(m)

		// strict comparison keeps the first move reaching the best score
		if maximizing {
			if !found || value > bestValue {
				bestValue, best, found = value, m, true
			}
			alpha = max(alpha, bestValue)
		} else {
			if !found || value < bestValue {
				bestValue, best, found = value, m, true
			}
			beta = min(beta, bestValue)
		}
		if beta <= alpha {
			break
		}
	}
	return Result{Move: best, Found: found, Score: bestValue, Depth: depth, Nodes: st.nodes}
}

func (st *searchTree) minimax(depth, alpha, beta int, color model.Color) int {
	st.nodes++
	if depth == 0 {
		return Evaluate(st.board)
	}

	moves := st.board.LegalMoves(color)
	if len(moves) == 0 {
		if st.board.KingInCheck(color) {
			if color == model.White {
				return -MateScore
			}
			return MateScore
		}
		return 0
	}
	orderMoves(moves)

	if color == model.White {
		maxEval := math.MinInt
		for _, m := range moves {
			st.board.Apply(m)
			eval := st.minimax(depth-1, alpha, beta, model.Black)
			st.board.Undo(m)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt
	for _, m := range moves {
		st.board.Apply(m)
		eval := st.minimax(depth-1, alpha, beta, model.White)
		st.board.Undo(m)
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}

// orderMoves puts captures first, most valuable victim first. The sort is
// stable so equal moves keep generation order.
func orderMoves(moves []model.Move) {
	slices.SortStableFunc(moves, func(a, b model.Move) int {
		return captureValue(b) - captureValue(a)
	})
}

func captureValue(m model.Move) int {
	if m.CapturedPiece == nil {
		return 0
	}
	return PieceValue(m.CapturedPiece.Type)
}
