package engine

import (
	"fmt"
	"strings"
)

// MoveRecord is everything needed to take one applied move back.
type MoveRecord struct {
	Piece *Piece
	From  Square
	To    Square
	// Captured sits on CapturedAt, which differs from To for en passant.
	Captured   *Piece
	CapturedAt Square
	// Promoted is the queen that replaced Piece on the last rank.
	Promoted *Piece
	// Rook, RookFrom and RookTo describe the rook hop of a castling move.
	Rook     *Piece
	RookFrom Square
	RookTo   Square
	// PrevDoubleMoved is the pawn that was capturable en passant before the move.
	PrevDoubleMoved *Piece
}

func (r MoveRecord) IsCastle() bool {
	return r.Rook != nil
}

func (r MoveRecord) String() string {
	return fmt.Sprintf("%s: %s -> %s", r.Piece.Kind, r.From, r.To)
}

// MoveHistory is a LIFO log of applied moves. Only the top entry is reachable,
// so moves can only be taken back in reverse order.
type MoveHistory struct {
	stack []MoveRecord
}

func NewMoveHistory() *MoveHistory {
	return &MoveHistory{stack: make([]MoveRecord, 0, 32)}
}

func (h *MoveHistory) Push(r MoveRecord) {
	h.stack = append(h.stack, r)
}

func (h *MoveHistory) pop() (MoveRecord, bool) {
	if len(h.stack) == 0 {
		return MoveRecord{}, false
	}
	r := h.stack[len(h.stack)-1]
	h.stack[len(h.stack)-1] = MoveRecord{}
	h.stack = h.stack[:len(h.stack)-1]
	return r, true
}

// Top returns the most recent entry without removing it.
func (h *MoveHistory) Top() (MoveRecord, bool) {
	if len(h.stack) == 0 {
		return MoveRecord{}, false
	}
	return h.stack[len(h.stack)-1], true
}

func (h *MoveHistory) CanUndo() bool {
	return len(h.stack) > 0
}

func (h *MoveHistory) Len() int {
	return len(h.stack)
}

func (h *MoveHistory) String() string {
	entries := make([]string, len(h.stack))
	for i, r := range h.stack {
		entries[i] = r.String()
	}
	return "[" + strings.Join(entries, ", ") + "]"
}
