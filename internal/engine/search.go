package engine

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultDepth = 3
	inf          = 1 << 30
)

// Searcher picks moves with a depth-limited minimax search and alpha-beta
// pruning. White maximizes the evaluation, Black minimizes it.
type Searcher struct {
	depth      int
	rng        *rand.Rand
	strictRoot bool
	nodes      int
}

type Option func(*Searcher)

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithSeed makes root move ordering reproducible. A zero seed keeps the
// time-seeded source.
func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithStrictRoot controls whether root candidates are always filtered for
// self-check. With it off they are only filtered when the side is in check.
func WithStrictRoot(strict bool) Option {
	return func(s *Searcher) {
		s.strictRoot = strict
	}
}

func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		depth:      DefaultDepth,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		strictRoot: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) Depth() int {
	return s.depth
}

// Nodes is the number of positions visited by the last FindBestMove.
func (s *Searcher) Nodes() int {
	return s.nodes
}

// BestMove returns the minimax value of g searched depth plies deep within
// the (alpha, beta) window. Every move it makes on g.Board is taken back and
// g.Turn is restored before it returns.
func (s *Searcher) BestMove(g *Game, depth, alpha, beta int, maximizing bool) int {
	s.nodes++
	if depth == 0 {
		return g.Board.Evaluate()
	}
	status := g.CheckWinningConditions()
	if status.Terminal() {
		return g.Board.Evaluate()
	}
	moves := g.LegalMoves(g.Turn, status == Check)
	if len(moves) == 0 {
		return g.Board.Evaluate()
	}

	if maximizing {
		best := -inf
		for _, c := range moves {
			best = max(best, s.child(g, c, depth, alpha, beta, maximizing))
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}
	best := inf
	for _, c := range moves {
		best = min(best, s.child(g, c, depth, alpha, beta, maximizing))
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// child plays c, hands the turn over, searches one ply deeper and restores
// both the board and the turn.
func (s *Searcher) child(g *Game, c Candidate, depth, alpha, beta int, maximizing bool) (score int) {
	g.Board.scoped(c.Piece, c.To, func() {
		g.Turn = g.Turn.Opponent()
		defer func() { g.Turn = g.Turn.Opponent() }()
		score = s.BestMove(g, depth-1, alpha, beta, !maximizing)
	})
	return score
}

// FindBestMove chooses a move for side on g without touching g: the search
// runs on a single simulation copy, and the returned candidate refers to a
// piece of g. It reports false when side has no moves.
func (s *Searcher) FindBestMove(g *Game, side Color, inCheck bool) (Candidate, bool) {
	s.nodes = 0
	candidates := g.LegalMoves(side, inCheck || s.strictRoot)
	if len(candidates) == 0 {
		log.Debugf("search: no moves for %s", side)
		return Candidate{}, false
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	sim := g.CopyForSimulation()
	sim.Turn = side
	best, found := Candidate{}, false
	bestScore := inf
	if side == White {
		bestScore = -inf
	}
	for _, c := range candidates {
		p := sim.Board.At(c.Piece.Square)
		if p == nil {
			continue
		}
		score := s.child(sim, Candidate{Piece: p, To: c.To}, s.depth, -inf, inf, side == White)
		if (side == White && score > bestScore) || (side == Black && score < bestScore) {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		best = candidates[s.rng.Intn(len(candidates))]
		log.Debugf("search: %s falls back to random move %s", side, best)
		return best, true
	}
	log.Debugf("search: %s plays %s (score %d, %d nodes, depth %d)", side, best, bestScore, s.nodes, s.depth)
	return best, true
}
