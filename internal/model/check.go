package model

// SquareAttacked reports whether any piece of color by attacks sq. Sliding
// pieces need a clear path; pawns attack only their two forward diagonals and
// kings only adjacent squares, whatever stands on sq.
func (b *Board) SquareAttacked(sq Square, by Color) bool {
	if !sq.InBounds() {
		return false
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b.squares[r][f]
			if p == nil || p.Color != by {
				continue
			}
			if b.attacks(p, Sq(r, f), sq) {
				return true
			}
		}
	}
	return false
}

func (b *Board) attacks(p *Piece, from, to Square) bool {
	if from == to {
		return false
	}
	switch p.Type {
	case Pawn:
		return to.Rank-from.Rank == p.Color.forward() && abs(to.File-from.File) == 1
	case Knight:
		return knightCanMove(from, to)
	case Bishop:
		return b.bishopCanMove(from, to)
	case Rook:
		return b.rookCanMove(from, to)
	case Queen:
		return b.rookCanMove(from, to) || b.bishopCanMove(from, to)
	case King:
		return abs(to.Rank-from.Rank) <= 1 && abs(to.File-from.File) <= 1
	}
	return false
}

// KingInCheck reports whether the king of color c is attacked. A board with
// no such king is treated as not in check.
func (b *Board) KingInCheck(c Color) bool {
	kingSq, ok := b.findKing(c)
	if !ok {
		return false
	}
	return b.SquareAttacked(kingSq, c.Opponent())
}
