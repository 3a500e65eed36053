package model

// CanMove reports whether the piece on from may move to to by its movement
// pattern alone. It reads occupancy and the last move (for en passant) and
// knows nothing about check.
func (b *Board) CanMove(from, to Square) bool {
	if !from.InBounds() || !to.InBounds() || from == to {
		return false
	}
	piece := b.PieceAt(from)
	if piece == nil {
		return false
	}
	if target := b.PieceAt(to); target != nil && target.Color == piece.Color {
		return false
	}

	switch piece.Type {
	case Pawn:
		return b.pawnCanMove(piece, from, to)
	case Knight:
		return knightCanMove(from, to)
	case Bishop:
		return b.bishopCanMove(from, to)
	case Rook:
		return b.rookCanMove(from, to)
	case Queen:
		return b.rookCanMove(from, to) || b.bishopCanMove(from, to)
	case King:
		return b.kingCanMove(piece, from, to)
	}
	return false
}

func (b *Board) pawnCanMove(piece *Piece, from, to Square) bool {
	dir := piece.Color.forward()
	dr := to.Rank - from.Rank
	df := to.File - from.File
	target := b.PieceAt(to)

	if df == 0 {
		if dr == dir {
			return target == nil
		}
		if dr == 2*dir && from.Rank == piece.Color.pawnRank() {
			return target == nil && b.PieceAt(Sq(from.Rank+dir, from.File)) == nil
		}
		return false
	}
	if abs(df) != 1 || dr != dir {
		return false
	}
	if target != nil {
		return true
	}

	// en passant: the previous move was an enemy pawn's double step that
	// landed beside us on the destination file
	last := b.LastMove()
	if last == nil || last.Piece == nil {
		return false
	}
	return last.Piece.Type == Pawn &&
		last.Piece.Color != piece.Color &&
		abs(last.To.Rank-last.From.Rank) == 2 &&
		last.To.Rank == from.Rank &&
		last.To.File == to.File
}

func knightCanMove(from, to Square) bool {
	return abs(to.Rank-from.Rank)*abs(to.File-from.File) == 2
}

func (b *Board) bishopCanMove(from, to Square) bool {
	dr := abs(to.Rank - from.Rank)
	if dr == 0 || dr != abs(to.File-from.File) {
		return false
	}
	return b.pathClear(from, to)
}

func (b *Board) rookCanMove(from, to Square) bool {
	if (from.Rank == to.Rank) == (from.File == to.File) {
		return false
	}
	return b.pathClear(from, to)
}

func (b *Board) kingCanMove(piece *Piece, from, to Square) bool {
	dr := abs(to.Rank - from.Rank)
	df := abs(to.File - from.File)
	if dr <= 1 && df <= 1 {
		return true
	}

	// castling
	if piece.HasMoved || dr != 0 || df != 2 {
		return false
	}
	step := sign(to.File - from.File)
	if b.PieceAt(Sq(from.Rank, from.File+step)) != nil || b.PieceAt(to) != nil {
		return false
	}
	rookFrom, _ := castleRookSquares(from, to)
	rook := b.PieceAt(rookFrom)
	if rook == nil || rook.Type != Rook || rook.Color != piece.Color || rook.HasMoved {
		return false
	}
	return b.pathClear(from, rookFrom)
}

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a rank, a file or a diagonal.
func (b *Board) pathClear(from, to Square) bool {
	stepR := sign(to.Rank - from.Rank)
	stepF := sign(to.File - from.File)
	for sq := Sq(from.Rank+stepR, from.File+stepF); sq != to; sq = Sq(sq.Rank+stepR, sq.File+stepF) {
		if b.PieceAt(sq) != nil {
			return false
		}
	}
	return true
}
