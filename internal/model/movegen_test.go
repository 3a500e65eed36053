package model

import (
	"errors"
	"testing"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color Color
		depth int
		want  int
	}{
		{"start depth 1", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", White, 1, 20},
		{"start depth 2", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", White, 2, 400},
		{"start depth 3", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", White, 3, 8902},
		{"kiwipete depth 1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R", White, 1, 48},
		{"kiwipete depth 2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R", White, 2, 2039},
		{"rook endgame depth 1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8", White, 1, 14},
		{"rook endgame depth 2", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8", White, 2, 191},
		{"rook endgame depth 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8", White, 3, 2812},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if testing.Short() && tt.want > 2000 {
				t.Skip("skipping deep perft in short mode")
			}
			b := boardFromFEN(t, tt.fen)
			before := b.Clone()
			if got := perft(b, tt.color, tt.depth); got != tt.want {
				t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
			}
			if !sameBoard(b, before) {
				t.Errorf("board changed during perft:\n%s", b)
			}
		})
	}
}

func TestLegalMovesNeverLeaveKingAttacked(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8",
		"4k3/8/8/8/8/8/4r3/4K3",   // king attacked by an adjacent rook
		"4k3/4r3/8/8/8/8/4B3/4K3", // pinned bishop
	}
	for _, fen := range fens {
		b := boardFromFEN(t, fen)
		for _, c := range []Color{White, Black} {
			for _, m := range b.LegalMoves(c) {
				b.Apply(m)
				if b.KingInCheck(c) {
					t.Errorf("%s: %s leaves %s in check", fen, m, c)
				}
				b.Undo(m)
			}
		}
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := boardFromFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3")
	for _, m := range b.LegalMoves(White) {
		if m.Piece.Type == Bishop {
			t.Errorf("pinned bishop move %s generated", m)
		}
	}
	if targets := b.LegalTargets(sq(t, "e2")); len(targets) != 0 {
		t.Errorf("LegalTargets(e2) = %v, want none", targets)
	}
}

func TestLegalTargets(t *testing.T) {
	b := NewBoard()
	targets := b.LegalTargets(sq(t, "e2"))
	want := []Square{sq(t, "e3"), sq(t, "e4")}
	if len(targets) != len(want) {
		t.Fatalf("LegalTargets(e2) = %v, want %v", targets, want)
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Errorf("target %d = %s, want %s", i, targets[i], want[i])
		}
	}
	if targets := b.LegalTargets(sq(t, "e4")); len(targets) != 0 {
		t.Errorf("LegalTargets on empty square = %v", targets)
	}
}

func TestHasAnyLegalMove(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color Color
		want  bool
	}{
		{"start", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", White, true},
		{"stalemate", "7k/5K2/6Q1/8/8/8/8/8", Black, false},
		{"back rank mate", "R5k1/5ppp/8/8/8/8/8/6K1", Black, false},
		{"not in check", "6k1/5pp1/8/8/8/8/8/R5K1", Black, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromFEN(t, tt.fen)
			if got := b.HasAnyLegalMove(tt.color); got != tt.want {
				t.Errorf("HasAnyLegalMove(%s) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

func TestLegalMovesExcludeCastlingThroughCheck(t *testing.T) {
	b := boardFromFEN(t, "k4r2/8/8/8/8/8/8/4K2R")
	for _, m := range b.LegalMoves(White) {
		if m.CastleRookMove != nil {
			t.Errorf("castling %s generated while f1 is attacked", m)
		}
	}
	if err := b.CheckMove(b.NewMove(sq(t, "e1"), sq(t, "g1"), "")); !errors.Is(err, ErrCastleThroughCheck) {
		t.Errorf("CheckMove = %v, want %v", err, ErrCastleThroughCheck)
	}
}
