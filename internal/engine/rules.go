package engine

import "fmt"

type Status int

const (
	Continue Status = iota
	Check
	Checkmate
	Stalemate
)

var statusNames = [...]string{Continue: "Continue", Check: "Check", Checkmate: "Checkmate", Stalemate: "Stalemate"}

func (s Status) String() string {
	if s < Continue || s > Stalemate {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Terminal reports whether the game cannot continue.
func (s Status) Terminal() bool {
	return s == Checkmate || s == Stalemate
}

// Candidate is one move a side could make: a piece and its destination.
type Candidate struct {
	Piece *Piece
	To    Square
}

func (c Candidate) String() string {
	if c.Piece == nil {
		return "none"
	}
	return fmt.Sprintf("%s %s -> %s", c.Piece.Kind, c.Piece.Square, c.To)
}

// Game pairs a board with the side to move. Its status is always derived
// from the current position.
type Game struct {
	Board *Board
	Turn  Color
}

// NewGame sets up the standard position with White to move.
func NewGame(ev Evaluator) *Game {
	b := NewBoard(ev)
	b.SetUp()
	return &Game{Board: b, Turn: White}
}

// CopyForSimulation returns a game on an independent copy of the board.
func (g *Game) CopyForSimulation() *Game {
	return &Game{Board: g.Board.Copy(), Turn: g.Turn}
}

// LegalMoves lists the moves of side in board scan order, then generator
// order. With filterCheck, moves that leave side's own king attacked are
// dropped; each candidate is tried on the board and taken back.
func (g *Game) LegalMoves(side Color, filterCheck bool) []Candidate {
	moves := make([]Candidate, 0, 40)
	for _, p := range g.Board.Pieces(side) {
		for _, to := range g.Board.ValidMoves(p) {
			moves = append(moves, Candidate{Piece: p, To: to})
		}
	}
	if !filterCheck {
		return moves
	}
	king := g.Board.Find(King, side)
	legal := moves[:0:0]
	for _, c := range moves {
		g.Board.scoped(c.Piece, c.To, func() {
			if !g.InCheck(king, side) {
				legal = append(legal, c)
			}
		})
	}
	return legal
}

// InCheck reports whether king, belonging to side, is attacked by an enemy
// piece other than the enemy king. A missing king is never in check.
func (g *Game) InCheck(king *Piece, side Color) bool {
	if king == nil {
		return false
	}
	return g.Board.attacked(king.Square, side.Opponent(), nil, false)
}

func (g *Game) InCheckmate(king *Piece, side Color) bool {
	if !g.InCheck(king, side) {
		return false
	}
	return len(g.LegalMoves(side, true)) == 0
}

func (g *Game) InStalemate(king *Piece, side Color) bool {
	if g.InCheck(king, side) {
		return false
	}
	return len(g.LegalMoves(side, true)) == 0
}

// CheckWinningConditions classifies the position for the side to move.
// A side whose king has been taken is checkmated.
func (g *Game) CheckWinningConditions() Status {
	side := g.Turn
	king := g.Board.Find(King, side)
	if king == nil {
		return Checkmate
	}
	if g.InCheck(king, side) {
		if len(g.LegalMoves(side, true)) == 0 {
			return Checkmate
		}
		return Check
	}
	if len(g.LegalMoves(side, true)) == 0 {
		return Stalemate
	}
	return Continue
}

// PlayerMove validates and applies a move for the side to move, given as a
// pair of squares. Rejected moves leave the game unchanged.
func (g *Game) PlayerMove(from, to Square) error {
	if !from.InBounds() || !to.InBounds() {
		return &MoveError{From: from, To: to, Err: ErrOutOfBounds}
	}
	p := g.Board.At(from)
	if p == nil {
		return &MoveError{From: from, To: to, Err: ErrNoPiece}
	}
	if p.Color != g.Turn {
		return &MoveError{From: from, To: to, Err: ErrNotYourTurn}
	}
	if !g.Board.Move(p, to, true) {
		return &MoveError{From: from, To: to, Err: ErrInvalidMove}
	}
	if g.InCheck(g.Board.Find(King, p.Color), p.Color) {
		g.Board.Undo(true)
		return &MoveError{From: from, To: to, Err: ErrKingExposed}
	}
	g.Turn = g.Turn.Opponent()
	return nil
}

// Apply plays a candidate produced by LegalMoves on this game.
func (g *Game) Apply(c Candidate) error {
	if c.Piece == nil {
		return ErrNoLegalMoves
	}
	from := c.Piece.Square
	if !g.Board.Move(c.Piece, c.To, true) {
		return &MoveError{From: from, To: c.To, Err: ErrInvalidMove}
	}
	g.Turn = g.Turn.Opponent()
	return nil
}

// Takeback undoes the last ply and gives the turn back to its mover.
func (g *Game) Takeback() error {
	if _, ok := g.Board.Undo(true); !ok {
		return ErrEmptyHistory
	}
	g.Turn = g.Turn.Opponent()
	return nil
}

// Score is the material a side has taken from its opponent.
func (g *Game) Score(side Color) int {
	score := 0
	for _, p := range g.Board.Captured {
		if p.Color != side {
			score += p.Kind.Value()
		}
	}
	return score
}

// Winner compares the accumulated scores: "White", "Black" or "Tie".
func (g *Game) Winner() string {
	white, black := g.Score(White), g.Score(Black)
	switch {
	case white > black:
		return "White"
	case black > white:
		return "Black"
	}
	return "Tie"
}
