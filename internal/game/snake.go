package game

// ---------------------------------------------------------------------------
// Snake
// ---------------------------------------------------------------------------

// DeathReason reports why a snake died. The zero value means "still alive"
// and serializes as an empty game_over_reason.
type DeathReason string

const (
	DeathNone  DeathReason = ""
	DeathWall  DeathReason = "wall"
	DeathSelf  DeathReason = "self"
	DeathOther DeathReason = "other_player"
)

// Snake is an ordered, head-first sequence of occupied cells. Movement is
// blind: Move never bounds-checks, legality is judged afterward by Collide.
type Snake struct {
	Body []Coord // head first, never empty
	Dir  Direction

	pendingGrowth bool
}

// NewSnake builds the initial three-cell body heading right, tail trailing
// off to the left of start.
func NewSnake(start Coord) *Snake {
	return &Snake{
		Body: []Coord{
			start,
			{X: start.X - 1, Y: start.Y},
			{X: start.X - 2, Y: start.Y},
		},
		Dir: Right,
	}
}

func (s *Snake) Head() Coord {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Grow requests one cell of growth, consumed by the next Move. Calling it
// twice before a Move still grows by exactly one.
func (s *Snake) Grow() {
	s.pendingGrowth = true
}

// Move prepends head+direction. Without pending growth the tail cell is
// dropped, keeping length constant; with it the tail stays and the flag is
// cleared.
func (s *Snake) Move() {
	newHead := s.Head().Add(s.Dir)
	if s.pendingGrowth {
		s.pendingGrowth = false
	} else {
		s.Body = s.Body[:len(s.Body)-1]
	}
	s.Body = append([]Coord{newHead}, s.Body...)
}

// Occupies reports whether any segment sits on c.
func (s *Snake) Occupies(c Coord) bool {
	for _, b := range s.Body {
		if b == c {
			return true
		}
	}
	return false
}

// Collide judges the head against the wall, the snake's own body and every
// other snake in all (which includes s itself). Reasons are prioritized:
// a head that is simultaneously out of bounds and on its own body reports
// wall, never self.
func (s *Snake) Collide(all []*Snake) DeathReason {
	head := s.Head()
	if !head.InBounds() {
		return DeathWall
	}
	for _, b := range s.Body[1:] {
		if b == head {
			return DeathSelf
		}
	}
	for _, other := range all {
		if other == s {
			continue
		}
		if other.Occupies(head) {
			return DeathOther
		}
	}
	return DeathNone
}
