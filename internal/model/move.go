package model

import (
	"fmt"

	"github.com/benbeisheim/minimax-chess/internal/engine"
)

// WSMove is a move request from a client.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece          *Piece          `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion"`
	Notation       string          `json:"notation"`
}

// Move pairs a white ply with the black reply, if any.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// newPly describes an applied move. status is the position's status after
// the move and decides the check suffix.
func newPly(rec engine.MoveRecord, status engine.Status) Ply {
	ply := Ply{
		Piece:         NewPiece(rec.Piece),
		From:          PositionOf(rec.From),
		To:            PositionOf(rec.To),
		CapturedPiece: NewPiece(rec.Captured),
	}
	// the piece has been moved already, report it as it stood
	ply.Piece.Position = ply.From
	ply.Piece.HasMoved = rec.Piece.Moves > 1
	if rec.Captured != nil {
		ply.CapturedPiece.Position = PositionOf(rec.CapturedAt)
	}
	if rec.IsCastle() {
		ply.CastleRookMove = &CastleRookMove{From: PositionOf(rec.RookFrom), To: PositionOf(rec.RookTo)}
	}
	if rec.Promoted != nil {
		ply.Promotion = Queen
	}
	ply.Notation = notation(rec, status)
	return ply
}

func notation(rec engine.MoveRecord, status engine.Status) string {
	var san string
	switch {
	case rec.IsCastle() && rec.RookFrom.X == 7:
		san = "O-O"
	case rec.IsCastle():
		san = "O-O-O"
	default:
		prefix := rec.Piece.Kind.Notation()
		capture := ""
		if rec.Captured != nil {
			capture = "x"
			if rec.Piece.Kind == engine.Pawn {
				prefix = rec.From.File()
			}
		}
		san = fmt.Sprintf("%s%s%s", prefix, capture, rec.To)
		if rec.Promoted != nil {
			san += "=Q"
		}
	}
	switch status {
	case engine.Checkmate:
		san += "#"
	case engine.Check:
		san += "+"
	}
	return san
}
