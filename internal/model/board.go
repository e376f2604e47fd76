package model

import (
	"github.com/benbeisheim/minimax-chess/internal/engine"
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

var pieceTypes = map[engine.Kind]PieceType{
	engine.King:   King,
	engine.Queen:  Queen,
	engine.Rook:   Rook,
	engine.Bishop: Bishop,
	engine.Knight: Knight,
	engine.Pawn:   Pawn,
}

// BoardState is the client view of the grid. Board is indexed [y][x] with
// y = 0 being White's back rank.
type BoardState struct {
	Board             [][]*Piece `json:"board"`
	BlackKingPosition *Position  `json:"blackKingPosition"`
	WhiteKingPosition *Position  `json:"whiteKingPosition"`
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    string    `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Square() engine.Square {
	return engine.Square{X: p.X, Y: p.Y}
}

func PositionOf(sq engine.Square) Position {
	return Position{X: sq.X, Y: sq.Y}
}

func NewPiece(p *engine.Piece) *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Type:     pieceTypes[p.Kind],
		Color:    p.Color.String(),
		Position: PositionOf(p.Square),
		HasMoved: p.HasMoved(),
	}
}

func newBoardState(b *engine.Board) *BoardState {
	grid := b.Grid()
	board := &BoardState{Board: make([][]*Piece, 8)}
	for y := 0; y < 8; y++ {
		board.Board[y] = make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			board.Board[y][x] = NewPiece(grid[x][y])
		}
	}
	if k := b.Find(engine.King, engine.White); k != nil {
		pos := PositionOf(k.Square)
		board.WhiteKingPosition = &pos
	}
	if k := b.Find(engine.King, engine.Black); k != nil {
		pos := PositionOf(k.Square)
		board.BlackKingPosition = &pos
	}
	return board
}
