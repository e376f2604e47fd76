package engine

var (
	rookDirs   = []Square{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Square{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Square{}, rookDirs...), bishopDirs...)
	knightDirs = []Square{{X: 1, Y: 2}, {X: -1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: -2}, {X: 2, Y: 1}, {X: -2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: -1}}
	kingDirs   = queenDirs
)

// ValidMoves returns the pseudo-legal destinations of p: geometry and
// occupancy are respected, leaving the own king attacked is not checked
// (except for king moves, which avoid attacked squares).
func (b *Board) ValidMoves(p *Piece) []Square {
	switch p.Kind {
	case King:
		return b.kingMoves(p)
	case Queen:
		return b.slide(p, queenDirs)
	case Rook:
		return b.slide(p, rookDirs)
	case Bishop:
		return b.slide(p, bishopDirs)
	case Knight:
		return b.leap(p, knightDirs)
	case Pawn:
		return b.pawnMoves(p)
	}
	return nil
}

func (b *Board) slide(p *Piece, dirs []Square) []Square {
	moves := make([]Square, 0, 14)
	for _, dir := range dirs {
		target := p.Square.offset(dir.X, dir.Y)
		for target.InBounds() {
			occupant := b.At(target)
			if occupant == nil {
				moves = append(moves, target)
			} else {
				if occupant.Color != p.Color {
					moves = append(moves, target)
				}
				break
			}
			target = target.offset(dir.X, dir.Y)
		}
	}
	return moves
}

func (b *Board) leap(p *Piece, dirs []Square) []Square {
	moves := make([]Square, 0, len(dirs))
	for _, dir := range dirs {
		target := p.Square.offset(dir.X, dir.Y)
		if !target.InBounds() {
			continue
		}
		if occupant := b.At(target); occupant == nil || occupant.Color != p.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func (b *Board) kingMoves(k *Piece) []Square {
	moves := make([]Square, 0, 10)
	for _, target := range b.leap(k, kingDirs) {
		if !b.BeExposedToCheck(k, target) {
			moves = append(moves, target)
		}
	}
	if b.canCastle(k, 0) {
		moves = append(moves, Square{X: 2, Y: k.Square.Y})
	}
	if b.canCastle(k, 7) {
		moves = append(moves, Square{X: 6, Y: k.Square.Y})
	}
	return moves
}

// BeExposedToCheck reports whether king k standing on dest would be attacked.
// The move is not made; k is treated as absent so it cannot shield dest.
func (b *Board) BeExposedToCheck(k *Piece, dest Square) bool {
	return b.attacked(dest, k.Color.Opponent(), k, true)
}

// canCastle checks castling towards the rook on file rookX. King and rook
// must both be unmoved on their original squares, the squares between them
// empty, and the squares the king stands on and crosses not attacked.
func (b *Board) canCastle(k *Piece, rookX int) bool {
	home := k.Color.homeRank()
	if k.HasMoved() || k.Square != (Square{X: 4, Y: home}) {
		return false
	}
	rook := b.At(Square{X: rookX, Y: home})
	if rook == nil || rook.Kind != Rook || rook.Color != k.Color || rook.HasMoved() {
		return false
	}
	step, kingTo := 1, 6
	if rookX < 4 {
		step, kingTo = -1, 2
	}
	for x := 4 + step; x != rookX; x += step {
		if b.At(Square{X: x, Y: home}) != nil {
			return false
		}
	}
	for x := 4; x != kingTo+step; x += step {
		if b.attacked(Square{X: x, Y: home}, k.Color.Opponent(), k, true) {
			return false
		}
	}
	return true
}

func (b *Board) pawnMoves(p *Piece) []Square {
	moves := make([]Square, 0, 4)
	dir := p.Color.forward()
	one := p.Square.offset(0, dir)
	if !one.InBounds() {
		return moves
	}
	if b.At(one) == nil {
		moves = append(moves, one)
		two := p.Square.offset(0, 2*dir)
		if p.Square.Y == p.Color.pawnRank() && b.At(two) == nil {
			moves = append(moves, two)
		}
	}
	for _, dx := range []int{-1, 1} {
		diag := p.Square.offset(dx, dir)
		if !diag.InBounds() {
			continue
		}
		if target := b.At(diag); target != nil {
			if target.Color != p.Color {
				moves = append(moves, diag)
			}
			continue
		}
		if b.enPassantVictim(p, diag) != nil {
			moves = append(moves, diag)
		}
	}
	return moves
}

// enPassantVictim returns the enemy pawn p would take by moving diagonally
// onto the empty square diag: the pawn beside p on p's rank in diag's file,
// provided it has just made a double step.
func (b *Board) enPassantVictim(p *Piece, diag Square) *Piece {
	victim := b.At(Square{X: diag.X, Y: p.Square.Y})
	if victim == nil || victim.Kind != Pawn || victim.Color == p.Color || !victim.JustDoubleMoved {
		return nil
	}
	return victim
}
