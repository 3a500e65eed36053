package model

import (
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// ParsePromotion maps a client supplied promotion choice to a piece type.
// Anything other than queen, rook, bishop or knight (in any case) yields Queen.
func ParsePromotion(choice string) PieceType {
	switch PieceType(strings.ToLower(strings.TrimSpace(choice))) {
	case Rook:
		return Rook
	case Bishop:
		return Bishop
	case Knight:
		return Knight
	default:
		return Queen
	}
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the rank delta of a pawn advance for this color.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) pawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

func (c Color) promotionRank() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) displayName() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Piece carries no coordinates; where it stands is implied by the board.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func NewPiece(t PieceType, c Color) *Piece {
	return &Piece{Type: t, Color: c}
}

func (p *Piece) clone() *Piece {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Square is a board coordinate. Rank is the pawn-advance axis (white starts
// on rank 0), File is the sideways axis.
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

func (s Square) InBounds() bool {
	return s.Rank >= 0 && s.Rank < 8 && s.File >= 0 && s.File < 8
}

func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Rank, s.File)
	}
	return fmt.Sprintf("%c%d", s.File+'a', s.Rank+1)
}

func (s Square) fileNotation() string {
	return fmt.Sprintf("%c", s.File+'a')
}

// Board is the mutable position: piece placement plus the applied move history.
type Board struct {
	squares [8][8]*Piece
	history []Move
}

// BoardState is an immutable copy of the placement, indexed [rank][file].
type BoardState struct {
	Squares [8][8]*Piece `json:"squares"`
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// EmptyBoard returns a board with no pieces, used to build custom positions.
func EmptyBoard() *Board {
	return &Board{}
}

// Reset restores the standard starting position and clears history.
func (b *Board) Reset() {
	b.squares = [8][8]*Piece{}
	b.history = nil
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, c := range []Color{White, Black} {
		for file, t := range backRank {
			b.squares[c.homeRank()][file] = NewPiece(t, c)
			b.squares[c.pawnRank()][file] = NewPiece(Pawn, c)
		}
	}
}

func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b.squares[sq.Rank][sq.File]
}

// Place puts p on sq, replacing whatever stood there. A nil piece clears it.
func (b *Board) Place(sq Square, p *Piece) {
	if !sq.InBounds() {
		return
	}
	b.squares[sq.Rank][sq.File] = p
}

func (b *Board) LastMove() *Move {
	if len(b.history) == 0 {
		return nil
	}
	return &b.history[len(b.history)-1]
}

func (b *Board) History() []Move {
	out := make([]Move, len(b.history))
	copy(out, b.history)
	return out
}

func (b *Board) HistoryLen() int {
	return len(b.history)
}

// Clone deep-copies the placement and the history. Pieces are fresh values,
// so nothing done to the clone is visible on b.
func (b *Board) Clone() *Board {
	cp := &Board{}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			cp.squares[r][f] = b.squares[r][f].clone()
		}
	}
	cp.history = make([]Move, len(b.history))
	for i, m := range b.history {
		cp.history[i] = m.clone()
	}
	return cp
}

func (b *Board) Snapshot() BoardState {
	var s BoardState
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			s.Squares[r][f] = b.squares[r][f].clone()
		}
	}
	return s
}

// findKing returns the square of the king of color c.
func (b *Board) findKing(c Color) (Square, bool) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b.squares[r][f]
			if p != nil && p.Type == King && p.Color == c {
				return Sq(r, f), true
			}
		}
	}
	return Square{}, false
}

// String renders the board with rank 8 on top, uppercase for white.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		fmt.Fprintf(&sb, "%d ", r+1)
		for f := 0; f < 8; f++ {
			p := b.squares[r][f]
			if p == nil {
				sb.WriteString(". ")
				continue
			}
			c := p.Type.getPieceNotation()
			if c == "" {
				c = "P"
			}
			if p.Color == Black {
				c = strings.ToLower(c)
			}
			sb.WriteString(c + " ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
