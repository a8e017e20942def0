package game

import "math/rand"

// ---------------------------------------------------------------------------
// Food placement
// ---------------------------------------------------------------------------

// foodPlaceAttempts bounds the rejection sampling in placeFood. 1000
// attempts over a 1200-cell grid makes a miss astronomically unlikely
// unless the board really is almost full.
const foodPlaceAttempts = 1000

func randomCell(rng *rand.Rand) Coord {
	return Coord{X: rng.Intn(GridWidth), Y: rng.Intn(GridHeight)}
}

// placeFood draws a uniformly random cell not in occupied. If the attempt
// budget runs out it falls back to an unchecked draw, accepting a
// theoretical placement on an occupied cell rather than spinning forever.
func placeFood(rng *rand.Rand, occupied map[Coord]struct{}) Coord {
	for i := 0; i < foodPlaceAttempts; i++ {
		c := randomCell(rng)
		if _, taken := occupied[c]; !taken {
			return c
		}
	}
	return randomCell(rng)
}
