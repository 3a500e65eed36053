package model

// Apply plays m on the board and appends it to the history. m must have been
// built by NewMove on this board in its current position; legality is the
// caller's business.
func (b *Board) Apply(m Move) {
	if m.EnPassant {
		b.Place(m.CaptureSquare, nil)
	}

	if m.CastleRookMove != nil {
		rook := b.PieceAt(m.CastleRookMove.From)
		b.Place(m.CastleRookMove.From, nil)
		b.Place(m.CastleRookMove.To, rook)
		if rook != nil {
			rook.HasMoved = true
		}
	}

	b.Place(m.From, nil)
	b.Place(m.To, m.Piece)
	m.Piece.HasMoved = true

	if m.Promotion != "" {
		b.Place(m.To, &Piece{Type: m.Promotion, Color: m.Piece.Color, HasMoved: true})
	}

	b.history = append(b.history, m)
}

// Undo takes back m, which must be the most recent move applied to the board.
// Placement, moved flags and history are restored exactly.
func (b *Board) Undo(m Move) {
	// this also discards a promoted piece
	b.Place(m.To, nil)
	b.Place(m.From, m.Piece)
	m.Piece.HasMoved = !m.FirstMove

	if m.CapturedPiece != nil {
		b.Place(m.CaptureSquare, m.CapturedPiece)
	}

	if m.CastleRookMove != nil {
		rook := b.PieceAt(m.CastleRookMove.To)
		b.Place(m.CastleRookMove.To, nil)
		b.Place(m.CastleRookMove.From, rook)
		if rook != nil {
			rook.HasMoved = false
		}
	}

	if len(b.history) > 0 {
		b.history = b.history[:len(b.history)-1]
	}
}

// annotateLast appends a suffix such as "+" or "#" to the notation of the
// most recent move.
func (b *Board) annotateLast(suffix string) {
	if len(b.history) == 0 {
		return
	}
	b.history[len(b.history)-1].Notation += suffix
}
