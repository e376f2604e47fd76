package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/minimax-chess/internal/engine"
	"github.com/benbeisheim/minimax-chess/internal/model"
)

// AIPlayer picks the engine's moves on background goroutines, one decision
// per session at a time.
type AIPlayer struct {
	depth      int
	strictRoot bool
	seed       uint64
	decisions  atomic.Uint64
	wg         sync.WaitGroup
}

func NewAIPlayer(depth int, strictRoot bool, seed uint64) *AIPlayer {
	return &AIPlayer{depth: depth, strictRoot: strictRoot, seed: seed}
}

// newSearcher builds a searcher for one decision. Searchers are not shared
// between goroutines. A fixed seed gives every decision its own derived seed.
func (a *AIPlayer) newSearcher() *engine.Searcher {
	opts := []engine.Option{engine.WithDepth(a.depth), engine.WithStrictRoot(a.strictRoot)}
	if a.seed != 0 {
		opts = append(opts, engine.WithSeed(a.seed+a.decisions.Add(1)-1))
	}
	return engine.NewSearcher(opts...)
}

// StartThinking starts a decision for game if the engine is to move and not
// already thinking. done runs after the move has been applied or dropped.
func (a *AIPlayer) StartThinking(game *model.Game, done func(*model.Game)) bool {
	sim, version, ok := game.BeginThinking()
	if !ok {
		return false
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if done != nil {
				done(game)
			}
		}()
		defer game.EndThinking()

		start := time.Now()
		side := sim.Turn
		s := a.newSearcher()
		c, ok := s.FindBestMove(sim, side, sim.InCheck(sim.Board.Find(engine.King, side), side))
		if !ok {
			log.Infof("game %s: engine has no move as %s", game.ID, side)
			return
		}
		if err := game.ApplyAIMove(version, c.Piece.Square, c.To); err != nil {
			log.Warnf("game %s: dropping engine move %s: %v", game.ID, c, err)
			return
		}
		log.Debugf("game %s: engine played %s in %s (%d nodes)", game.ID, c, time.Since(start), s.Nodes())
	}()
	return true
}

// Wait blocks until every running decision has finished.
func (a *AIPlayer) Wait() {
	a.wg.Wait()
}
