package ai

import "github.com/benbeisheim/chess-backend/internal/model"

const (
	ValuePawn   = 10
	ValueKnight = 30
	ValueBishop = 30
	ValueRook   = 50
	ValueQueen  = 90
	ValueKing   = 900

	// CenterBonus is added for a piece standing on d4, e4, d5 or e5.
	CenterBonus = 2

	// MateScore is returned for a side that is checkmated inside the search.
	MateScore = 10000
)

func PieceValue(t model.PieceType) int {
	switch t {
	case model.Pawn:
		return ValuePawn
	case model.Knight:
		return ValueKnight
	case model.Bishop:
		return ValueBishop
	case model.Rook:
		return ValueRook
	case model.Queen:
		return ValueQueen
	case model.King:
		return ValueKing
	}
	return 0
}

func positionBonus(sq model.Square) int {
	if (sq.Rank == 3 || sq.Rank == 4) && (sq.File == 3 || sq.File == 4) {
		return CenterBonus
	}
	return 0
}

// Evaluate scores a position from White's point of view: white material and
// centre bonuses minus black's.
func Evaluate(b *model.Board) int {
	score := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := model.Sq(r, f)
			p := b.PieceAt(sq)
			if p == nil {
				continue
			}
			val := PieceValue(p.Type) + positionBonus(sq)
			if p.Color == model.White {
				score += val
			} else {
				score -= val
			}
		}
	}
	return score
}
