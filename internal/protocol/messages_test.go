package protocol

import (
	"testing"

	"github.com/mavstuff/snake/internal/game"
)

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want game.Direction
		ok   bool
	}{
		{"UP", game.Up, true},
		{"DOWN", game.Down, true},
		{"LEFT", game.Left, true},
		{"RIGHT", game.Right, true},
		{"up", game.Direction{}, false},
		{"RESET", game.Direction{}, false},
		{"", game.Direction{}, false},
	}
	for _, c := range cases {
		got, ok := ParseDirection(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseDirection(%q) = %v,%v, want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeLetter(t *testing.T) {
	cases := []struct{ in, want string }{
		{"z", "Z"},
		{"M", "M"},
		{"é", "É"},
		{"", "A"},
		{"ab", "A"},
		{"5", "A"},
		{"!", "A"},
	}
	for _, c := range cases {
		if got := NormalizeLetter(c.in); got != c.want {
			t.Errorf("NormalizeLetter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
