package engine

// attacked reports whether sq is attacked by a piece of color by. ignore is
// treated as an empty square, so a king testing where it may step does not
// hide the squares behind itself. Enemy kings only count when withKing is set.
func (b *Board) attacked(sq Square, by Color, ignore *Piece, withKing bool) bool {
	occupant := func(s Square) *Piece {
		p := b.At(s)
		if p == ignore {
			return nil
		}
		return p
	}
	for _, dir := range rookDirs {
		target := sq.offset(dir.X, dir.Y)
		for target.InBounds() {
			if p := occupant(target); p != nil {
				if p.Color == by && (p.Kind == Rook || p.Kind == Queen) {
					return true
				}
				break
			}
			target = target.offset(dir.X, dir.Y)
		}
	}
	for _, dir := range bishopDirs {
		target := sq.offset(dir.X, dir.Y)
		for target.InBounds() {
			if p := occupant(target); p != nil {
				if p.Color == by && (p.Kind == Bishop || p.Kind == Queen) {
					return true
				}
				break
			}
			target = target.offset(dir.X, dir.Y)
		}
	}
	for _, dir := range knightDirs {
		if p := occupant(sq.offset(dir.X, dir.Y)); p != nil && p.Color == by && p.Kind == Knight {
			return true
		}
	}
	// a pawn of color by attacks from one rank behind, seen from its side
	for _, dx := range []int{-1, 1} {
		if p := occupant(sq.offset(dx, -by.forward())); p != nil && p.Color == by && p.Kind == Pawn {
			return true
		}
	}
	if withKing {
		for _, dir := range kingDirs {
			if p := occupant(sq.offset(dir.X, dir.Y)); p != nil && p.Color == by && p.Kind == King {
				return true
			}
		}
	}
	return false
}
