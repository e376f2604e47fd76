package engine

import (
	"fmt"
	"strings"
)

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the y direction pawns of this color advance in.
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

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

type Kind int

const (
	King Kind = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var kindNames = [...]string{King: "king", Queen: "queen", Rook: "rook", Bishop: "bishop", Knight: "knight", Pawn: "pawn"}

var kindLetters = [...]string{King: "K", Queen: "Q", Rook: "R", Bishop: "B", Knight: "N", Pawn: ""}

// pieceValues are the material points used by MaterialEvaluator and Game.Winner.
var pieceValues = [...]int{King: 900, Queen: 90, Rook: 50, Bishop: 30, Knight: 30, Pawn: 10}

func (k Kind) String() string {
	if k < King || k > Pawn {
		return "invalid"
	}
	return kindNames[k]
}

// Notation returns the algebraic letter of the kind, empty for pawns.
func (k Kind) Notation() string {
	if k < King || k > Pawn {
		return "?"
	}
	return kindLetters[k]
}

func (k Kind) Value() int {
	if k < King || k > Pawn {
		return 0
	}
	return pieceValues[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s Square) InBounds() bool {
	return s.X >= 0 && s.X < 8 && s.Y >= 0 && s.Y < 8
}

func (s Square) offset(dx, dy int) Square {
	return Square{X: s.X + dx, Y: s.Y + dy}
}

// String renders the square in algebraic form, a1 being (0,0).
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.X, s.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+s.X, s.Y+1)
}

func (s Square) File() string {
	return fmt.Sprintf("%c", 'a'+s.X)
}

// Piece is owned by the Board whose grid holds it. Pieces are compared by
// pointer: undo puts back the exact instance that was taken.
type Piece struct {
	Kind   Kind
	Color  Color
	Square Square
	// JustDoubleMoved is set on the pawn that made the previous move as a
	// two-square advance and is what makes it capturable en passant.
	JustDoubleMoved bool
	// Moves counts how many applied moves this piece has made.
	Moves int
}

func NewPiece(kind Kind, color Color, sq Square) *Piece {
	return &Piece{Kind: kind, Color: color, Square: sq}
}

func (p *Piece) HasMoved() bool {
	return p.Moves > 0
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s %s", p.Color, p.Kind, p.Square)
}

func (p *Piece) clone() *Piece {
	c := *p
	return &c
}
