package game

import (
	"math/rand"
	"sort"
)

// ---------------------------------------------------------------------------
// Bot decision procedure
// ---------------------------------------------------------------------------

// lookaheadDepth is how many cells ahead a candidate direction is probed
// when scoring free space.
const lookaheadDepth = 3

// Bot chooses a direction for one computer-controlled snake each tick.
// Level 9 plays almost purely toward food, level 0 almost purely picks a
// random safe direction. The chosen direction goes through the same
// no-reverse rule as a human request; Bots never mutate game state.
type Bot struct {
	Level int
	rng   *rand.Rand
}

func NewBot(level int, rng *rand.Rand) *Bot {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	return &Bot{Level: level, rng: rng}
}

// ChooseDirection returns the bot's move for this tick, or ok=false when no
// safe direction exists and the snake should keep its current heading.
func (b *Bot) ChooseDirection(s *Snake, foods []Coord, others []*Snake) (Direction, bool) {
	randomChance := float64(9-b.Level) / 10
	if b.rng.Float64() < randomChance {
		return b.randomSafeDirection(s, others)
	}
	if d, ok := b.goalDirection(s, foods, others); ok {
		return d, true
	}
	return b.randomSafeDirection(s, others)
}

// safe reports whether moving the head to next is immediately legal:
// in bounds, off the snake's own body (head excluded) and off every other
// living snake.
func safe(next Coord, s *Snake, others []*Snake) bool {
	if !next.InBounds() {
		return false
	}
	for _, c := range s.Body[1:] {
		if c == next {
			return false
		}
	}
	for _, o := range others {
		if o.Occupies(next) {
			return false
		}
	}
	return true
}

// freeSpace walks up to lookaheadDepth cells in direction d and counts how
// many are reachable. The snake's tail cell is ignored since it vacates on
// the next move.
func freeSpace(s *Snake, others []*Snake, d Direction) int {
	own := s.Body[:len(s.Body)-1]
	pos := s.Head()
	score := 0
steps:
	for i := 0; i < lookaheadDepth; i++ {
		pos = pos.Add(d)
		if !pos.InBounds() {
			break
		}
		for _, c := range own {
			if c == pos {
				break steps
			}
		}
		for _, o := range others {
			if o.Occupies(pos) {
				break steps
			}
		}
		score++
	}
	return score
}

type candidate struct {
	dir   Direction
	space int
	score int
}

// randomSafeDirection picks among the three non-reversing directions,
// weighted toward the one with the most free space ahead: the top
// candidate wins with probability 0.7, otherwise the runner-up.
func (b *Bot) randomSafeDirection(s *Snake, others []*Snake) (Direction, bool) {
	reverse := s.Dir.Opposite()
	var cands []candidate
	for _, d := range directions {
		if d == reverse {
			continue
		}
		if !safe(s.Head().Add(d), s, others) {
			continue
		}
		cands = append(cands, candidate{dir: d, space: freeSpace(s, others, d)})
	}
	if len(cands) == 0 {
		return Direction{}, false
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].space > cands[j].space })
	if len(cands) == 1 || b.rng.Float64() < 0.7 {
		return cands[0].dir, true
	}
	return cands[1].dir, true
}

// goalDirection steers toward the nearest food by Manhattan distance.
func (b *Bot) goalDirection(s *Snake, foods []Coord, others []*Snake) (Direction, bool) {
	if len(foods) == 0 {
		return Direction{}, false
	}
	head := s.Head()
	target := foods[0]
	best := head.ManhattanDist(target)
	for _, f := range foods[1:] {
		if d := head.ManhattanDist(f); d < best {
			best = d
			target = f
		}
	}

	var dirs []Direction
	if target.X > head.X {
		dirs = append(dirs, Right)
	} else if target.X < head.X {
		dirs = append(dirs, Left)
	}
	if target.Y > head.Y {
		dirs = append(dirs, Down)
	} else if target.Y < head.Y {
		dirs = append(dirs, Up)
	}

	var cands []candidate
	for _, d := range dirs {
		next := head.Add(d)
		if !safe(next, s, others) {
			continue
		}
		space := freeSpace(s, others, d)
		dist := next.ManhattanDist(target)
		var score int
		if space >= 1 {
			score = -50*dist + space
		} else {
			// Severe penalty branch: ranks zero-space moves last.
			score = -10*dist - 100*space
		}
		cands = append(cands, candidate{dir: d, space: space, score: score})
	}
	if len(cands) == 0 {
		return Direction{}, false
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	// A cramped winner yields to a clearly roomier runner-up.
	if len(cands) > 1 && cands[0].space < 2 && cands[1].space > cands[0].space+1 {
		return cands[1].dir, true
	}
	return cands[0].dir, true
}
