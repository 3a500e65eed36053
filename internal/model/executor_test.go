package model

import "testing"

func TestApplyUndoRoundTrip(t *testing.T) {
	fens := map[string]string{
		"start":     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"kiwipete":  "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R",
		"promotion": "n3k3/1P6/8/8/8/8/6p1/4K2R",
	}
	for name, fen := range fens {
		t.Run(name, func(t *testing.T) {
			b := boardFromFEN(t, fen)
			for _, c := range []Color{White, Black} {
				for _, m := range b.LegalMoves(c) {
					before := b.Clone()
					b.Apply(m)
					b.Undo(m)
					if !sameBoard(b, before) {
						t.Fatalf("%s not undone cleanly:\n%s\nwant\n%s", m, b, before)
					}
				}
			}
		})
	}
}

func TestApplyCastling(t *testing.T) {
	tests := []struct {
		name             string
		kingTo           string
		rookFrom, rookTo string
		notation         string
	}{
		{"king side", "g1", "h1", "f1", "O-O"},
		{"queen side", "c1", "a1", "d1", "O-O-O"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromFEN(t, "4k3/8/8/8/8/8/8/R3K2R")
			before := b.Clone()
			m := b.NewMove(sq(t, "e1"), sq(t, tt.kingTo), "")
			if m.CastleRookMove == nil {
				t.Fatal("castling not detected")
			}
			if m.Notation != tt.notation {
				t.Errorf("notation = %q, want %q", m.Notation, tt.notation)
			}

			b.Apply(m)
			king := b.PieceAt(sq(t, tt.kingTo))
			rook := b.PieceAt(sq(t, tt.rookTo))
			if king == nil || king.Type != King || !king.HasMoved {
				t.Errorf("king not on %s after castling: %+v", tt.kingTo, king)
			}
			if rook == nil || rook.Type != Rook || !rook.HasMoved {
				t.Errorf("rook not on %s after castling: %+v", tt.rookTo, rook)
			}
			if b.PieceAt(sq(t, tt.rookFrom)) != nil || b.PieceAt(sq(t, "e1")) != nil {
				t.Errorf("start squares not cleared:\n%s", b)
			}

			b.Undo(m)
			if !sameBoard(b, before) {
				t.Errorf("castling not undone:\n%s", b)
			}
			if b.PieceAt(sq(t, tt.rookFrom)).HasMoved {
				t.Error("rook still marked as moved after undo")
			}
		})
	}
}

func TestApplyEnPassantRestoresCapturedSnapshot(t *testing.T) {
	b := boardFromFEN(t, "4k3/3p4/8/4P3/8/8/8/4K3")
	double := b.NewMove(sq(t, "d7"), sq(t, "d5"), "")
	b.Apply(double)
	victim := b.PieceAt(sq(t, "d5"))
	before := b.Clone()

	m := b.NewMove(sq(t, "e5"), sq(t, "d6"), "")
	if !m.EnPassant || m.CaptureSquare != sq(t, "d5") || m.CapturedPiece != victim {
		t.Fatalf("en passant not classified: %+v", m)
	}
	if m.Notation != "exd6" {
		t.Errorf("notation = %q, want exd6", m.Notation)
	}

	b.Apply(m)
	if b.PieceAt(sq(t, "d5")) != nil {
		t.Error("captured pawn still on d5")
	}
	if p := b.PieceAt(sq(t, "d6")); p == nil || p.Type != Pawn || p.Color != White {
		t.Errorf("capturing pawn not on d6: %+v", p)
	}

	b.Undo(m)
	if b.PieceAt(sq(t, "d5")) != victim {
		t.Error("undo did not restore the captured pawn itself")
	}
	if !victim.HasMoved {
		t.Error("captured pawn lost its moved flag")
	}
	if !sameBoard(b, before) {
		t.Errorf("en passant not undone:\n%s", b)
	}
}

func TestApplyPromotion(t *testing.T) {
	tests := []struct {
		choice PieceType
		want   PieceType
	}{
		{"", Queen},
		{Rook, Rook},
		{Knight, Knight},
		{"dragon", Queen},
	}
	for _, tt := range tests {
		t.Run(string(tt.want)+"/"+string(tt.choice), func(t *testing.T) {
			b := boardFromFEN(t, "4k3/P7/8/8/8/8/8/4K3")
			pawn := b.PieceAt(sq(t, "a7"))
			before := b.Clone()

			m := b.NewMove(sq(t, "a7"), sq(t, "a8"), tt.choice)
			b.Apply(m)
			p := b.PieceAt(sq(t, "a8"))
			if p == nil || p.Type != tt.want || p.Color != White || !p.HasMoved {
				t.Fatalf("a8 = %+v, want moved white %s", p, tt.want)
			}

			b.Undo(m)
			if b.PieceAt(sq(t, "a7")) != pawn || pawn.Type != Pawn {
				t.Error("undo did not restore the original pawn")
			}
			if b.PieceAt(sq(t, "a8")) != nil {
				t.Error("promoted piece left on a8")
			}
			if !sameBoard(b, before) {
				t.Errorf("promotion not undone:\n%s", b)
			}
		})
	}
}

func TestUndoRestoresFirstMoveFlag(t *testing.T) {
	b := NewBoard()
	m := b.NewMove(sq(t, "g1"), sq(t, "f3"), "")
	if !m.FirstMove {
		t.Fatal("first move of the knight not recorded")
	}
	b.Apply(m)
	again := b.NewMove(sq(t, "f3"), sq(t, "g5"), "")
	if again.FirstMove {
		t.Fatal("second move recorded as first")
	}
	b.Apply(again)
	b.Undo(again)
	if !b.PieceAt(sq(t, "f3")).HasMoved {
		t.Error("knight lost its moved flag after undoing its second move")
	}
	b.Undo(m)
	if b.PieceAt(sq(t, "g1")).HasMoved {
		t.Error("knight still marked as moved after undoing its first move")
	}
	if b.HistoryLen() != 0 {
		t.Errorf("history length = %d, want 0", b.HistoryLen())
	}
}
