package testutil

import (
	"sort"

	"github.com/dylhunn/dragontoothmg"
)

// Fixture positions in FEN. None of them has a promotion or an en passant
// capture available to the side to move.
const (
	StartFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	EndgameFEN   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	MiddleFEN    = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	BlackMoveFEN = "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
)

// OracleMoves returns the legal moves of the side to move in fen, in
// coordinate notation ("e2e4"), sorted. They come from dragontoothmg, an
// independent generator used to cross-check the engine.
func OracleMoves(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	moves := board.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	sort.Strings(out)
	return out
}
