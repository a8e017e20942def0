package game

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// Grid geometry
// ---------------------------------------------------------------------------

// Playfield dimensions in cells (must match every client).
const (
	GridWidth  = 40
	GridHeight = 30
)

// Coord is a cell on the grid. It travels over the wire as a two-element
// JSON array [x,y].
type Coord struct {
	X, Y int
}

func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < GridWidth && c.Y >= 0 && c.Y < GridHeight
}

func (c Coord) Add(d Direction) Coord {
	return Coord{X: c.X + d.DX, Y: c.Y + d.DY}
}

func (c Coord) ManhattanDist(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	c.X, c.Y = pair[0], pair[1]
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ---------------------------------------------------------------------------
// Directions
// ---------------------------------------------------------------------------

// Direction is one of the four grid unit vectors. Y grows downward.
type Direction struct {
	DX, DY int
}

var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// directions is the fixed enumeration order used wherever candidate moves
// are generated; keeping it stable keeps tie-breaking deterministic.
var directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) Opposite() Direction {
	return Direction{-d.DX, -d.DY}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	}
	return fmt.Sprintf("Direction(%d,%d)", d.DX, d.DY)
}

// ---------------------------------------------------------------------------
// Colors
// ---------------------------------------------------------------------------

// Color is an RGB triple, serialized as [r,g,b].
type Color [3]uint8

// palette holds the snake colors handed out round-robin. Colors repeat
// once the player count exceeds the palette.
var palette = [8]Color{
	{0, 255, 0},     // green
	{0, 0, 255},     // blue
	{255, 165, 0},   // orange
	{255, 0, 255},   // magenta
	{0, 255, 255},   // cyan
	{255, 255, 0},   // yellow
	{255, 192, 203}, // pink
	{128, 0, 128},   // purple
}
