package model

import "fmt"

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Move records everything needed to apply a move and to take it back.
// Piece and CapturedPiece point at the actual board pieces, so undo puts the
// very same values back.
type Move struct {
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	Piece          *Piece          `json:"piece"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CaptureSquare  Square          `json:"captureSquare"`
	FirstMove      bool            `json:"firstMove"`
	EnPassant      bool            `json:"enPassant"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	Notation       string          `json:"notation"`
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) Simple() SimpleMove {
	return SimpleMove{From: m.From, To: m.To}
}

func (m Move) String() string {
	if m.Notation != "" {
		return m.Notation
	}
	return m.From.String() + m.To.String()
}

func (m Move) IsCapture() bool {
	return m.CapturedPiece != nil
}

func (m Move) clone() Move {
	cp := m
	cp.Piece = m.Piece.clone()
	cp.CapturedPiece = m.CapturedPiece.clone()
	if m.CastleRookMove != nil {
		crm := *m.CastleRookMove
		cp.CastleRookMove = &crm
	}
	return cp
}

// NewMove describes moving the piece on from to to in the current position.
// It classifies en passant, castling and promotion but does not check that
// the move is legal. promotion is only used when a pawn reaches its last rank;
// an empty value promotes to a queen.
func (b *Board) NewMove(from, to Square, promotion PieceType) Move {
	piece := b.PieceAt(from)
	m := Move{
		From:          from,
		To:            to,
		Piece:         piece,
		CapturedPiece: b.PieceAt(to),
		CaptureSquare: to,
	}
	if piece == nil {
		return m
	}
	m.FirstMove = !piece.HasMoved

	switch piece.Type {
	case Pawn:
		if from.File != to.File && m.CapturedPiece == nil {
			m.EnPassant = true
			m.CaptureSquare = Sq(from.Rank, to.File)
			m.CapturedPiece = b.PieceAt(m.CaptureSquare)
		}
		if to.Rank == piece.Color.promotionRank() {
			m.Promotion = ParsePromotion(string(promotion))
		}
	case King:
		if from.Rank == to.Rank && abs(to.File-from.File) == 2 {
			rookFrom, rookTo := castleRookSquares(from, to)
			m.CastleRookMove = &CastleRookMove{From: rookFrom, To: rookTo}
		}
	}
	m.Notation = b.getNotation(m)
	return m
}

// castleRookSquares returns the corner the rook starts on and the square it
// lands on, next to the king's destination on the king's starting side.
func castleRookSquares(from, to Square) (Square, Square) {
	if to.File > from.File {
		return Sq(from.Rank, 7), Sq(from.Rank, to.File-1)
	}
	return Sq(from.Rank, 0), Sq(from.Rank, to.File+1)
}

func (b *Board) getNotation(m Move) string {
	if m.CastleRookMove != nil {
		if m.To.File > m.From.File {
			return "O-O"
		}
		return "O-O-O"
	}
	piecePrefix := m.Piece.Type.getPieceNotation()
	capture := ""
	if m.CapturedPiece != nil {
		capture = "x"
	}
	pawnFile := ""
	if m.Piece.Type == Pawn && m.From.File != m.To.File {
		pawnFile = m.From.fileNotation()
	}
	promotion := ""
	if m.Promotion != "" {
		promotion = "=" + m.Promotion.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s%s", piecePrefix, pawnFile, capture, m.To.String(), promotion)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
