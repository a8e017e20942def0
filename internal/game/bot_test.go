package game

import (
	"math/rand"
	"testing"
)

func TestBotLevelClamped(t *testing.T) {
	if b := NewBot(-3, rand.New(rand.NewSource(1))); b.Level != 0 {
		t.Fatalf("level = %d, want clamp to 0", b.Level)
	}
	if b := NewBot(42, rand.New(rand.NewSource(1))); b.Level != 9 {
		t.Fatalf("level = %d, want clamp to 9", b.Level)
	}
}

func TestBotNeverReverses(t *testing.T) {
	bot := NewBot(0, rand.New(rand.NewSource(2)))
	placer := rand.New(rand.NewSource(8))
	for i := 0; i < 500; i++ {
		s := NewSnake(Coord{20, 15}) // heading right
		food := Coord{placer.Intn(GridWidth), 15}
		d, ok := bot.ChooseDirection(s, []Coord{food}, nil)
		if ok && d == Left {
			t.Fatalf("trial %d: bot reversed into its own neck", i)
		}
	}
}

// A level-9 bot takes the goal branch 90% of the time, and the goal branch
// only ever proposes distance-reducing moves. Over many open-field trials
// the distance to food must shrink in well over 90% of decisions.
func TestLevelNineBotSeeksFood(t *testing.T) {
	bot := NewBot(9, rand.New(rand.NewSource(3)))
	placer := rand.New(rand.NewSource(4))

	const trials = 2000
	reduced := 0
	for i := 0; i < trials; i++ {
		s := NewSnake(Coord{20, 15})
		food := randomCell(placer)
		if s.Occupies(food) {
			continue
		}
		before := s.Head().ManhattanDist(food)
		d, ok := bot.ChooseDirection(s, []Coord{food}, nil)
		if !ok {
			t.Fatalf("trial %d: no direction on an open field", i)
		}
		if s.Head().Add(d).ManhattanDist(food) < before {
			reduced++
		}
	}
	if frac := float64(reduced) / trials; frac < 0.90 {
		t.Fatalf("distance reduced in %.0f%% of decisions, want >= 90%%", frac*100)
	}
}

// A level-0 bot takes the random branch 90% of the time. With the food
// straight ahead only the rare goal branch keeps heading toward it, so the
// straight-ahead choice must stay a small minority.
func TestLevelZeroBotMostlyRandom(t *testing.T) {
	bot := NewBot(0, rand.New(rand.NewSource(5)))

	const trials = 2000
	straight := 0
	for i := 0; i < trials; i++ {
		s := NewSnake(Coord{20, 15}) // heading right
		food := Coord{35, 15}
		d, ok := bot.ChooseDirection(s, []Coord{food}, nil)
		if !ok {
			t.Fatalf("trial %d: no direction on an open field", i)
		}
		if d == Right {
			straight++
		}
	}
	if frac := float64(straight) / trials; frac > 0.15 {
		t.Fatalf("level-0 bot went straight for food %.0f%% of the time, want rare", frac*100)
	}
}

func TestBotBoxedInReturnsFalse(t *testing.T) {
	s := &Snake{Body: []Coord{{0, 0}, {0, 1}}, Dir: Up}
	wall := &Snake{Body: []Coord{{1, 0}}, Dir: Right}
	bot := NewBot(5, rand.New(rand.NewSource(6)))
	for i := 0; i < 20; i++ {
		if _, ok := bot.ChooseDirection(s, []Coord{{20, 20}}, []*Snake{wall}); ok {
			t.Fatal("boxed-in bot found a direction")
		}
	}
}

// With equal distances the goal branch prefers the candidate with more free
// space ahead.
func TestGoalBranchAvoidsCrampedPath(t *testing.T) {
	bot := NewBot(9, rand.New(rand.NewSource(7)))
	s := NewSnake(Coord{5, 5}) // heading right
	blocker := &Snake{Body: []Coord{{7, 5}, {7, 4}}, Dir: Down}
	food := Coord{10, 10}
	for i := 0; i < 50; i++ {
		d, ok := bot.ChooseDirection(s, []Coord{food}, []*Snake{blocker})
		if !ok {
			t.Fatal("no direction found")
		}
		if d == Right {
			t.Fatal("bot chose the cramped path toward the blocker")
		}
	}
}

func TestFreeSpaceIgnoresOwnTail(t *testing.T) {
	// Tail at (3,5) vacates next move, so looking down-left it must not
	// count as an obstacle.
	s := &Snake{Body: []Coord{{4, 5}, {4, 6}, {3, 6}, {3, 5}}, Dir: Up}
	if got := freeSpace(s, nil, Left); got != 3 {
		t.Fatalf("free space left = %d, want 3 (tail ignored)", got)
	}
}
