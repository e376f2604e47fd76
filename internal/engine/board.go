package engine

import (
	"golang.org/x/exp/slices"
)

// Board owns an 8x8 grid indexed [x][y], the ordered list of captured pieces
// and the history of moves applied to it.
type Board struct {
	cells     [8][8]*Piece
	Captured  []*Piece
	history   *MoveHistory
	evaluator Evaluator
	// doubleMoved is the only pawn allowed to carry JustDoubleMoved.
	doubleMoved *Piece
}

// NewBoard returns an empty board. A nil evaluator falls back to material counting.
func NewBoard(ev Evaluator) *Board {
	if ev == nil {
		ev = MaterialEvaluator{}
	}
	return &Board{
		Captured:  make([]*Piece, 0),
		history:   NewMoveHistory(),
		evaluator: ev,
	}
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// SetUp clears the board and places the standard initial position.
func (b *Board) SetUp() {
	b.cells = [8][8]*Piece{}
	b.Captured = b.Captured[:0]
	b.history = NewMoveHistory()
	b.doubleMoved = nil
	for x := 0; x < 8; x++ {
		b.Add(NewPiece(backRank[x], White, Square{X: x, Y: 0}))
		b.Add(NewPiece(Pawn, White, Square{X: x, Y: 1}))
		b.Add(NewPiece(Pawn, Black, Square{X: x, Y: 6}))
		b.Add(NewPiece(backRank[x], Black, Square{X: x, Y: 7}))
	}
}

// At returns the piece on sq, nil for empty or off-board squares.
func (b *Board) At(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b.cells[sq.X][sq.Y]
}

// Add places p on its own square without any move validation.
func (b *Board) Add(p *Piece) {
	b.cells[p.Square.X][p.Square.Y] = p
	if p.JustDoubleMoved {
		if b.doubleMoved != nil && b.doubleMoved != p {
			b.doubleMoved.JustDoubleMoved = false
		}
		b.doubleMoved = p
	}
}

// Remove clears the square p stands on.
func (b *Board) Remove(p *Piece) {
	if b.doubleMoved == p {
		b.doubleMoved = nil
	}
	b.cells[p.Square.X][p.Square.Y] = nil
}

func (b *Board) Capture(p *Piece, recordCapture bool) {
	if recordCapture {
		b.Captured = append(b.Captured, p)
	}
}

func (b *Board) uncapture(p *Piece) {
	if i := slices.Index(b.Captured, p); i >= 0 {
		b.Captured = slices.Delete(b.Captured, i, i+1)
	}
}

// Find scans the board for the first piece of the given kind and color.
func (b *Board) Find(kind Kind, color Color) *Piece {
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			if p := b.cells[x][y]; p != nil && p.Kind == kind && p.Color == color {
				return p
			}
		}
	}
	return nil
}

// Pieces lists the pieces of one color in board scan order.
func (b *Board) Pieces(color Color) []*Piece {
	pieces := make([]*Piece, 0, 16)
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			if p := b.cells[x][y]; p != nil && p.Color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// Grid returns a copy of the cell array for renderers.
func (b *Board) Grid() [8][8]*Piece {
	return b.cells
}

func (b *Board) History() *MoveHistory {
	return b.history
}

func (b *Board) Evaluator() Evaluator {
	return b.evaluator
}

func (b *Board) Evaluate() int {
	return b.evaluator.Evaluate(b)
}

// Copy builds an independent board: new pieces in the same places with the
// same flags, a copied capture list, an empty history and the same evaluator.
func (b *Board) Copy() *Board {
	nb := NewBoard(b.evaluator)
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			if p := b.cells[x][y]; p != nil {
				c := p.clone()
				nb.cells[x][y] = c
				if p == b.doubleMoved {
					nb.doubleMoved = c
				}
			}
		}
	}
	for _, p := range b.Captured {
		nb.Captured = append(nb.Captured, p.clone())
	}
	return nb
}
