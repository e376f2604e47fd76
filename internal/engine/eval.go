package engine

// Evaluator scores a position from White's point of view: positive favours
// White, negative favours Black.
type Evaluator interface {
	Evaluate(b *Board) int
}

// MaterialEvaluator counts material only.
type MaterialEvaluator struct{}

func (MaterialEvaluator) Evaluate(b *Board) int {
	score := 0
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			p := b.cells[x][y]
			if p == nil {
				continue
			}
			if p.Color == White {
				score += p.Kind.Value()
			} else {
				score -= p.Kind.Value()
			}
		}
	}
	return score
}
