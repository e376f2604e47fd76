package engine

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"unicode"
)

var fenKinds = map[rune]Kind{'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn}

// gameFromFEN builds a game from the placement, side and castling fields of
// fen. Rooks whose castling right is absent are marked as moved.
func gameFromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	fields := strings.Fields(fen)
	if len(fields) < 3 {
		t.Fatalf("bad fen %q", fen)
	}
	b := NewBoard(nil)
	rows := strings.Split(fields[0], "/")
	if len(rows) != 8 {
		t.Fatalf("bad placement %q", fields[0])
	}
	for i, row := range rows {
		y, x := 7-i, 0
		for _, r := range row {
			if r >= '1' && r <= '8' {
				x += int(r - '0')
				continue
			}
			kind, ok := fenKinds[unicode.ToLower(r)]
			if !ok {
				t.Fatalf("bad piece %q in %q", r, fen)
			}
			color := White
			if unicode.IsLower(r) {
				color = Black
			}
			b.Add(NewPiece(kind, color, Square{X: x, Y: y}))
			x++
		}
	}
	turn := White
	if fields[1] == "b" {
		turn = Black
	}
	rights := []struct {
		letter rune
		color  Color
		rookX  int
	}{{'K', White, 7}, {'Q', White, 0}, {'k', Black, 7}, {'q', Black, 0}}
	for _, r := range rights {
		if strings.ContainsRune(fields[2], r.letter) {
			continue
		}
		if p := b.At(Square{X: r.rookX, Y: r.color.homeRank()}); p != nil && p.Kind == Rook && p.Color == r.color {
			p.Moves = 1
		}
	}
	return &Game{Board: b, Turn: turn}
}

// toFEN renders g for the move oracle. Castling rights come from unmoved
// kings and rooks, the en passant square from the double-moved pawn.
func toFEN(g *Game) string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		empty := 0
		for x := 0; x < 8; x++ {
			p := g.Board.At(Square{X: x, Y: y})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(fenLetter(p))
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if g.Turn == Black {
		side = "b"
	}
	castling := ""
	for _, c := range []Color{White, Black} {
		king := g.Board.At(Square{X: 4, Y: c.homeRank()})
		if king == nil || king.Kind != King || king.Color != c || king.HasMoved() {
			continue
		}
		for _, rookX := range []int{7, 0} {
			rook := g.Board.At(Square{X: rookX, Y: c.homeRank()})
			if rook == nil || rook.Kind != Rook || rook.Color != c || rook.HasMoved() {
				continue
			}
			letter := "K"
			if rookX == 0 {
				letter = "Q"
			}
			if c == Black {
				letter = strings.ToLower(letter)
			}
			castling += letter
		}
	}
	if castling == "" {
		castling = "-"
	}
	ep := "-"
	if p := g.Board.doubleMoved; p != nil {
		ep = p.Square.offset(0, -p.Color.forward()).String()
	}
	return fmt.Sprintf("%s %s %s %s 0 1", sb.String(), side, castling, ep)
}

func fenLetter(p *Piece) string {
	letter := "p"
	for r, k := range fenKinds {
		if k == p.Kind {
			letter = string(r)
		}
	}
	if p.Color == White {
		return strings.ToUpper(letter)
	}
	return letter
}

// moveStrings renders candidates in coordinate notation, sorted.
func moveStrings(moves []Candidate) []string {
	out := make([]string, 0, len(moves))
	for _, c := range moves {
		out = append(out, c.Piece.Square.String()+c.To.String())
	}
	sort.Strings(out)
	return out
}

// snapshot captures everything a move and its undo must leave unchanged.
func snapshot(b *Board) string {
	var sb strings.Builder
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			if p := b.cells[x][y]; p != nil {
				fmt.Fprintf(&sb, "%s@%s/%d/%t %p;", p.Kind, p.Square, p.Moves, p.JustDoubleMoved, p)
			}
		}
	}
	fmt.Fprintf(&sb, "|captured=%v|double=%p|history=%d", b.Captured, b.doubleMoved, b.history.Len())
	return sb.String()
}

func mustPiece(t *testing.T, b *Board, sq string) *Piece {
	t.Helper()
	p := b.At(sqr(t, sq))
	if p == nil {
		t.Fatalf("no piece on %s", sq)
	}
	return p
}

// sqr parses an algebraic square such as "e4".
func sqr(t *testing.T, s string) Square {
	t.Helper()
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		t.Fatalf("bad square %q", s)
	}
	return Square{X: int(s[0] - 'a'), Y: int(s[1] - '1')}
}

// playMoves applies a sequence of "e2e4" moves through PlayerMove.
func playMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.PlayerMove(sqr(t, m[:2]), sqr(t, m[2:])); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
}
