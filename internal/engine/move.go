package engine

import (
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/slices"
)

// Move applies p -> dest if dest is one of p's valid moves and reports
// whether it did. A rejected move leaves the board untouched. With
// recordCapture unset, taken pieces are not added to the capture list.
func (b *Board) Move(p *Piece, dest Square, recordCapture bool) bool {
	if p == nil || b.At(p.Square) != p {
		return false
	}
	if !slices.Contains(b.ValidMoves(p), dest) {
		return false
	}
	b.play(p, dest, recordCapture)
	return true
}

// play applies a move already known to be valid.
func (b *Board) play(p *Piece, dest Square, recordCapture bool) {
	rec := MoveRecord{
		Piece:           p,
		From:            p.Square,
		To:              dest,
		PrevDoubleMoved: b.doubleMoved,
	}
	if victim := b.At(dest); victim != nil {
		rec.Captured, rec.CapturedAt = victim, dest
	} else if p.Kind == Pawn && dest.X != p.Square.X {
		if victim := b.enPassantVictim(p, dest); victim != nil {
			rec.Captured, rec.CapturedAt = victim, victim.Square
		}
	}
	if p.Kind == King && abs(dest.X-p.Square.X) == 2 {
		rec.RookFrom = Square{X: 7, Y: dest.Y}
		rec.RookTo = Square{X: 5, Y: dest.Y}
		if dest.X < p.Square.X {
			rec.RookFrom = Square{X: 0, Y: dest.Y}
			rec.RookTo = Square{X: 3, Y: dest.Y}
		}
		rec.Rook = b.At(rec.RookFrom)
	}
	if p.Kind == Pawn && dest.Y == p.Color.Opponent().homeRank() {
		rec.Promoted = NewPiece(Queen, p.Color, dest)
	}
	b.history.Push(rec)

	if rec.Captured != nil {
		b.cells[rec.CapturedAt.X][rec.CapturedAt.Y] = nil
		b.Capture(rec.Captured, recordCapture)
	}
	if b.doubleMoved != nil {
		b.doubleMoved.JustDoubleMoved = false
		b.doubleMoved = nil
	}
	b.cells[rec.From.X][rec.From.Y] = nil
	p.Square = dest
	b.cells[dest.X][dest.Y] = p
	p.Moves++
	if p.Kind == Pawn && abs(dest.Y-rec.From.Y) == 2 {
		p.JustDoubleMoved = true
		b.doubleMoved = p
	}
	if rec.Rook != nil {
		b.cells[rec.RookFrom.X][rec.RookFrom.Y] = nil
		rec.Rook.Square = rec.RookTo
		b.cells[rec.RookTo.X][rec.RookTo.Y] = rec.Rook
		rec.Rook.Moves++
	}
	if rec.Promoted != nil {
		b.cells[dest.X][dest.Y] = rec.Promoted
	}
}

// Undo takes back the most recent move. An empty history is logged and
// reported as false. With recordCapture set, the restored piece is also
// removed from the capture list.
func (b *Board) Undo(recordCapture bool) (MoveRecord, bool) {
	rec, ok := b.history.pop()
	if !ok {
		log.Warn("no moves to undo")
		return rec, false
	}
	p := rec.Piece
	if rec.Rook != nil {
		b.cells[rec.RookTo.X][rec.RookTo.Y] = nil
		rec.Rook.Square = rec.RookFrom
		b.cells[rec.RookFrom.X][rec.RookFrom.Y] = rec.Rook
		rec.Rook.Moves--
	}
	b.cells[rec.To.X][rec.To.Y] = nil
	p.Square = rec.From
	b.cells[rec.From.X][rec.From.Y] = p
	p.Moves--
	p.JustDoubleMoved = false
	if rec.Captured != nil {
		b.cells[rec.CapturedAt.X][rec.CapturedAt.Y] = rec.Captured
		if recordCapture {
			b.uncapture(rec.Captured)
		}
	}
	b.doubleMoved = rec.PrevDoubleMoved
	if b.doubleMoved != nil {
		b.doubleMoved.JustDoubleMoved = true
	}
	return rec, true
}

// WithMove makes p -> dest, runs fn on the resulting position and takes the
// move back however fn exits. It reports false, without calling fn, when the
// move is not valid.
func (b *Board) WithMove(p *Piece, dest Square, recordCapture bool, fn func()) bool {
	if !b.Move(p, dest, recordCapture) {
		return false
	}
	defer b.Undo(recordCapture)
	fn()
	return true
}

// scoped is WithMove for moves taken straight from the generators.
func (b *Board) scoped(p *Piece, dest Square, fn func()) {
	b.play(p, dest, false)
	defer b.undoQuiet()
	fn()
}

func (b *Board) undoQuiet() {
	if _, ok := b.Undo(false); !ok {
		panic("engine: move history underflow inside a scoped move")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
