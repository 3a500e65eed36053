package model

import "testing"

// sq parses algebraic notation such as "e2".
func sq(t *testing.T, name string) Square {
	t.Helper()
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		t.Fatalf("bad square %q", name)
	}
	return Sq(int(name[1]-'1'), int(name[0]-'a'))
}

type placement struct {
	square string
	piece  PieceType
	color  Color
}

func boardWith(t *testing.T, pieces ...placement) *Board {
	t.Helper()
	b := EmptyBoard()
	for _, p := range pieces {
		b.Place(sq(t, p.square), NewPiece(p.piece, p.color))
	}
	return b
}

// sameBoard compares placement, moved flags and history length.
func sameBoard(a, b *Board) bool {
	if len(a.history) != len(b.history) {
		return false
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pa, pb := a.squares[r][f], b.squares[r][f]
			if (pa == nil) != (pb == nil) {
				return false
			}
			if pa != nil && *pa != *pb {
				return false
			}
		}
	}
	return true
}

func play(t *testing.T, g *Game, from, to string) GameState {
	t.Helper()
	state := g.SubmitMove(sq(t, from), sq(t, to), "")
	if !state.Success {
		t.Fatalf("%s-%s rejected: %s", from, to, state.Message)
	}
	return state
}

// boardFromFEN reads the placement field of a FEN string. Kings and rooks
// off their starting squares are marked as moved; nothing else is.
func boardFromFEN(t *testing.T, fen string) *Board {
	t.Helper()
	types := map[byte]PieceType{'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King}
	b := EmptyBoard()
	rank, file := 7, 0
	for i := 0; i < len(fen) && fen[i] != ' '; i++ {
		ch := fen[i]
		switch {
		case ch == '/':
			rank--
			file = 0
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			color := White
			lower := ch
			if ch >= 'a' && ch <= 'z' {
				color = Black
			} else {
				lower = ch + ('a' - 'A')
			}
			pt, ok := types[lower]
			if !ok {
				t.Fatalf("bad FEN piece %q", ch)
			}
			p := NewPiece(pt, color)
			home := color.homeRank()
			switch pt {
			case King:
				p.HasMoved = rank != home || file != 4
			case Rook:
				p.HasMoved = rank != home || (file != 0 && file != 7)
			}
			b.Place(Sq(rank, file), p)
			file++
		}
	}
	return b
}

func perft(b *Board, c Color, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := b.LegalMoves(c)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		b.Apply(m)
		nodes += perft(b, c.Opponent(), depth-1)
		b.Undo(m)
	}
	return nodes
}
