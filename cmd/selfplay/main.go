// Command selfplay lets the engine play both sides from the initial position.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/minimax-chess/internal/config"
	"github.com/benbeisheim/minimax-chess/internal/engine"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	plies := flag.Int("plies", 80, "maximum number of plies to play")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "search depth in plies")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for move ordering, 0 for time based")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	searcher := engine.NewSearcher(
		engine.WithDepth(cfg.Depth),
		engine.WithSeed(cfg.Seed),
		engine.WithStrictRoot(cfg.StrictRoot),
	)
	g := engine.NewGame(nil)
	status := g.CheckWinningConditions()
	start := time.Now()
	for ply := 1; ply <= *plies && !status.Terminal(); ply++ {
		c, ok := searcher.FindBestMove(g, g.Turn, status == engine.Check)
		if !ok {
			break
		}
		mover := g.Turn
		if err := g.Apply(c); err != nil {
			log.Errorf("ply %d: %v", ply, err)
			os.Exit(1)
		}
		status = g.CheckWinningConditions()
		log.Infof("%3d. %-5s %-18s score %5d  %s", ply, mover, c.Piece.Kind.String()+" "+moveText(g), g.Board.Evaluate(), status)
	}

	log.Infof("finished after %d plies in %s: %s", g.Board.History().Len(), time.Since(start).Round(time.Millisecond), status)
	log.Infof("winner: %s (white %d, black %d)", g.Winner(), g.Score(engine.White), g.Score(engine.Black))
	log.Infof("history: %s", g.Board.History())
}

func moveText(g *engine.Game) string {
	rec, ok := g.Board.History().Top()
	if !ok {
		return ""
	}
	return rec.From.String() + "-" + rec.To.String()
}
