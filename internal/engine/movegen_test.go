package engine

import (
	"strings"
	"testing"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"github.com/benbeisheim/minimax-chess/internal/testutil"
)

func TestStartPosition(t *testing.T) {
	g := NewGame(nil)

	testutil.AssertEqual(t, len(g.LegalMoves(White, false)), 20, "white pseudo-legal moves")
	testutil.AssertEqual(t, len(g.LegalMoves(Black, false)), 20, "black pseudo-legal moves")
	testutil.AssertFalse(t, g.InCheck(g.Board.Find(King, White), White))
	testutil.AssertFalse(t, g.InCheck(g.Board.Find(King, Black), Black))
	testutil.AssertEqual(t, g.CheckWinningConditions(), Continue)
}

// oracleMoves drops under-promotions and the promotion suffix, since the
// engine always promotes to a queen.
func oracleMoves(fen string) []string {
	var out []string
	for _, m := range testutil.OracleMoves(fen) {
		if len(m) == 5 {
			if m[4] != 'q' {
				continue
			}
			m = m[:4]
		}
		out = append(out, m)
	}
	return out
}

func TestLegalMovesMatchOracle(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"start", testutil.StartFEN, 20},
		{"kiwipete", testutil.KiwipeteFEN, 48},
		{"endgame", testutil.EndgameFEN, 14},
		{"open game", testutil.MiddleFEN, -1},
		{"black to move", testutil.BlackMoveFEN, -1},
		{"kiwipete black", strings.Replace(testutil.KiwipeteFEN, " w ", " b ", 1), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameFromFEN(t, tt.fen)
			got := moveStrings(g.LegalMoves(g.Turn, true))
			testutil.AssertEqual(t, got, oracleMoves(tt.fen))
			if tt.want >= 0 {
				testutil.AssertEqual(t, len(got), tt.want)
			}
		})
	}
}

// TestRandomGamesMatchOracle walks random games and checks every position
// reached, castling, en passant and promotions included, against the oracle.
func TestRandomGamesMatchOracle(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGame(nil)
		for ply := 0; ply < 80; ply++ {
			fen := toFEN(g)
			moves := g.LegalMoves(g.Turn, true)
			if diff := moveStrings(moves); !slices.Equal(diff, oracleMoves(fen)) {
				testutil.AssertEqual(t, diff, oracleMoves(fen), "seed %d ply %d fen %s", seed, ply, fen)
				break
			}
			if len(moves) == 0 || g.Board.Find(King, g.Turn.Opponent()) == nil {
				break
			}
			if err := g.Apply(moves[rng.Intn(len(moves))]); err != nil {
				t.Fatalf("seed %d ply %d: %v", seed, ply, err)
			}
		}
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{"single and double push", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "e2", []string{"e3", "e4"}},
		{"double push blocked on second square", "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1", "e2", []string{"e3"}},
		{"blocked in front", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2", []string{}},
		{"captures diagonally", "4k3/8/8/8/8/3n1b2/4P3/4K3 w - - 0 1", "e2", []string{"d3", "e3", "e4", "f3"}},
		{"no double push off the start rank", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", "e3", []string{"e4"}},
		{"black moves down", "4k3/4p3/8/8/8/8/8/4K3 b - - 0 1", "e7", []string{"e5", "e6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameFromFEN(t, tt.fen)
			var got []string
			for _, sq := range g.Board.ValidMoves(mustPiece(t, g.Board, tt.from)) {
				got = append(got, sq.String())
			}
			if got == nil {
				got = []string{}
			}
			testutil.AssertEqual(t, sortedStrings(got), tt.want)
		})
	}
}

func sortedStrings(s []string) []string {
	out := append([]string{}, s...)
	slices.Sort(out)
	return out
}

func TestEnPassant(t *testing.T) {
	g := NewGame(nil)
	playMoves(t, g, "e2e4", "a7a6", "e4e5", "d7d5")

	pawn := mustPiece(t, g.Board, "e5")
	victim := mustPiece(t, g.Board, "d5")
	testutil.AssertTrue(t, victim.JustDoubleMoved, "d5 pawn just double moved")
	before := snapshot(g.Board)

	playMoves(t, g, "e5d6")
	testutil.AssertNil(t, g.Board.At(sqr(t, "d5")), "victim removed")
	testutil.AssertEqual(t, g.Board.At(sqr(t, "d6")), pawn)
	testutil.AssertEqual(t, len(g.Board.Captured), 1)

	testutil.AssertNoError(t, g.Takeback())
	testutil.AssertEqual(t, snapshot(g.Board), before, "takeback restores the flag and the victim")
}

func TestEnPassantExpires(t *testing.T) {
	g := NewGame(nil)
	playMoves(t, g, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "a6a5")

	testutil.AssertFalse(t, mustPiece(t, g.Board, "d5").JustDoubleMoved)
	for _, sq := range g.Board.ValidMoves(mustPiece(t, g.Board, "e5")) {
		if sq.String() == "d6" {
			t.Fatal("en passant allowed one move too late")
		}
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"c1", "g1"}},
		{"moved rook", "r3k2r/8/8/8/8/8/8/R3K2R w Q - 0 1", []string{"c1"}},
		{"blocked", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", []string{}},
		{"through attack", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQ - 0 1", []string{"c1"}},
		{"out of check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQ - 0 1", []string{}},
		{"b1 attacked is fine", "r3k2r/8/8/8/8/8/1r6/R3K2R w KQ - 0 1", []string{"c1", "g1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameFromFEN(t, tt.fen)
			got := []string{}
			king := mustPiece(t, g.Board, "e1")
			for _, sq := range g.Board.ValidMoves(king) {
				if abs(sq.X-king.Square.X) == 2 {
					got = append(got, sq.String())
				}
			}
			testutil.AssertEqual(t, sortedStrings(got), tt.want)
		})
	}
}

func TestCastlingMovesRookAndUndoes(t *testing.T) {
	g := gameFromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	before := snapshot(g.Board)
	rook := mustPiece(t, g.Board, "h1")

	playMoves(t, g, "e1g1")
	testutil.AssertEqual(t, g.Board.At(sqr(t, "f1")), rook)
	testutil.AssertNil(t, g.Board.At(sqr(t, "h1")))
	rec, ok := g.Board.History().Top()
	testutil.AssertTrue(t, ok)
	testutil.AssertTrue(t, rec.IsCastle())

	testutil.AssertNoError(t, g.Takeback())
	testutil.AssertEqual(t, snapshot(g.Board), before)
}

func TestPromotionToQueen(t *testing.T) {
	g := gameFromFEN(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	before := snapshot(g.Board)
	pawn := mustPiece(t, g.Board, "a7")

	playMoves(t, g, "a7b8")
	queen := g.Board.At(sqr(t, "b8"))
	testutil.AssertNotNil(t, queen)
	testutil.AssertEqual(t, queen.Kind, Queen)
	testutil.AssertEqual(t, queen.Color, White)
	testutil.AssertEqual(t, g.Board.Evaluate(), 900+90-900)

	testutil.AssertNoError(t, g.Takeback())
	testutil.AssertEqual(t, g.Board.At(sqr(t, "a7")), pawn)
	testutil.AssertEqual(t, snapshot(g.Board), before)
}

func TestKingAvoidsAttackedSquares(t *testing.T) {
	// the rook on a1 covers the whole first rank, the king on e1 must not
	// be allowed to slide along it by hiding behind itself
	g := gameFromFEN(t, "4k3/8/8/8/8/8/8/r3K3 w - - 0 1")
	var got []string
	for _, sq := range g.Board.ValidMoves(mustPiece(t, g.Board, "e1")) {
		got = append(got, sq.String())
	}
	testutil.AssertEqual(t, sortedStrings(got), []string{"d2", "e2", "f2"})

	// kings may not stand next to each other
	g = gameFromFEN(t, "8/8/8/8/8/4k3/8/4K3 w - - 0 1")
	got = nil
	for _, sq := range g.Board.ValidMoves(mustPiece(t, g.Board, "e1")) {
		got = append(got, sq.String())
	}
	testutil.AssertEqual(t, sortedStrings(got), []string{"d1", "f1"})
}
