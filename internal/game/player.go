package game

import "time"

// ---------------------------------------------------------------------------
// Player
// ---------------------------------------------------------------------------

// Player ties a stable identity to its snake and scoring state. Identity,
// color, letter and bot-ness survive resets; everything else is rebuilt.
type Player struct {
	ID     int
	Color  Color
	Letter string
	IsBot  bool
	Level  int // bot difficulty 0-9, unused for humans

	Snake     *Snake
	Score     int
	Alive     bool
	Death     DeathReason
	GameTimer time.Duration // total alive time
	FoodTimer time.Duration // time since last food
}

func newPlayer(id int, color Color, letter string, isBot bool, level int, start Coord) *Player {
	return &Player{
		ID:     id,
		Color:  color,
		Letter: letter,
		IsBot:  isBot,
		Level:  level,
		Snake:  NewSnake(start),
		Alive:  true,
	}
}

// reset rebuilds the mutable half of the player at a new start position.
func (p *Player) reset(start Coord) {
	p.Snake = NewSnake(start)
	p.Score = 0
	p.Alive = true
	p.Death = DeathNone
	p.GameTimer = 0
	p.FoodTimer = 0
}
