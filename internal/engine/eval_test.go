package engine

import (
	"testing"

	"github.com/benbeisheim/minimax-chess/internal/testutil"
)

// mirror swaps colours and flips ranks, which must negate the evaluation.
func mirror(b *Board) *Board {
	m := NewBoard(b.Evaluator())
	for _, color := range []Color{White, Black} {
		for _, p := range b.Pieces(color) {
			m.Add(NewPiece(p.Kind, p.Color.Opponent(), Square{X: p.Square.X, Y: 7 - p.Square.Y}))
		}
	}
	return m
}

func TestMaterialEvaluator(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"start", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 0},
		{"extra queen", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", 90},
		{"black up a rook and pawn", "r3k3/p7/8/8/8/8/8/4K3 w - - 0 1", -60},
		{"minor pieces", "2b1k3/8/8/8/8/8/8/1N2KB2 w - - 0 1", 30},
		{"empty", "8/8/8/8/8/8/8/8 w - - 0 1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := gameFromFEN(t, tt.fen).Board
			testutil.AssertEqual(t, b.Evaluate(), tt.want)
			testutil.AssertEqual(t, mirror(b).Evaluate(), -tt.want, "mirrored")
		})
	}
}

type constEvaluator int

func (c constEvaluator) Evaluate(*Board) int { return int(c) }

func TestCustomEvaluator(t *testing.T) {
	g := NewGame(constEvaluator(7))
	testutil.AssertEqual(t, g.Board.Evaluate(), 7)
	testutil.AssertEqual(t, g.CopyForSimulation().Board.Evaluate(), 7, "copies keep the evaluator")
	testutil.AssertEqual(t, NewSearcher(WithDepth(2), WithSeed(1)).BestMove(g, 2, -inf, inf, true), 7)
}

func TestPieceValues(t *testing.T) {
	testutil.AssertEqual(t, King.Value(), 900)
	testutil.AssertEqual(t, Queen.Value(), 90)
	testutil.AssertEqual(t, Rook.Value(), 50)
	testutil.AssertEqual(t, Bishop.Value(), 30)
	testutil.AssertEqual(t, Knight.Value(), 30)
	testutil.AssertEqual(t, Pawn.Value(), 10)
	testutil.AssertEqual(t, Kind(42).Value(), 0)
}
