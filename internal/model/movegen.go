package model

// LegalMoves returns every legal move for color c, pieces scanned rank by rank
// from a1 and destinations in the same order. Promotions are to a queen.
func (b *Board) LegalMoves(c Color) []Move {
	legalMoves := []Move{}
	b.eachLegalMove(c, func(m Move) bool {
		legalMoves = append(legalMoves, m)
		return true
	})
	return legalMoves
}

// HasAnyLegalMove stops at the first legal move found.
func (b *Board) HasAnyLegalMove(c Color) bool {
	found := false
	b.eachLegalMove(c, func(Move) bool {
		found = true
		return false
	})
	return found
}

// LegalTargets lists the squares the piece on from may legally move to.
func (b *Board) LegalTargets(from Square) []Square {
	targets := []Square{}
	piece := b.PieceAt(from)
	if piece == nil {
		return targets
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			to := Sq(r, f)
			if !b.CanMove(from, to) {
				continue
			}
			if b.CheckMove(b.NewMove(from, to, Queen)) == nil {
				targets = append(targets, to)
			}
		}
	}
	return targets
}

// eachLegalMove calls fn for each legal move of c until fn returns false.
func (b *Board) eachLegalMove(c Color, fn func(Move) bool) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b.squares[r][f]
			if p == nil || p.Color != c {
				continue
			}
			from := Sq(r, f)
			for tr := 0; tr < 8; tr++ {
				for tf := 0; tf < 8; tf++ {
					to := Sq(tr, tf)
					if !b.CanMove(from, to) {
						continue
					}
					m := b.NewMove(from, to, Queen)
					if b.CheckMove(m) != nil {
						continue
					}
					if !fn(m) {
						return
					}
				}
			}
		}
	}
}

// CheckMove runs the king safety rules against a pattern-legal move: castling
// may not start in, pass through or land in check, and no move may leave the
// mover's own king attacked. The board is unchanged on return.
func (b *Board) CheckMove(m Move) error {
	color := m.Piece.Color
	if m.CastleRookMove != nil {
		if err := b.castlingError(m); err != nil {
			return err
		}
	}
	b.Apply(m)
	inCheck := b.KingInCheck(color)
	b.Undo(m)
	if inCheck {
		return ErrSelfCheck
	}
	return nil
}

func (b *Board) castlingError(m Move) error {
	color := m.Piece.Color
	opponent := color.Opponent()
	if b.KingInCheck(color) {
		return ErrCastleInCheck
	}
	passThrough := Sq(m.From.Rank, m.From.File+sign(m.To.File-m.From.File))
	if b.SquareAttacked(passThrough, opponent) {
		return ErrCastleThroughCheck
	}
	if b.SquareAttacked(m.To, opponent) {
		return ErrCastleIntoCheck
	}
	return nil
}
