// Package protocol defines the JSON messages exchanged with game clients
// and the stream codec that frames them over a raw byte stream.
package protocol

import (
	"strings"
	"unicode"

	"github.com/mavstuff/snake/internal/game"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// Hello is the first message a client sends after connecting.
type Hello struct {
	Letter string `json:"letter"`
}

// Welcome answers the handshake with the assigned identity and color.
type Welcome struct {
	PlayerID int        `json:"player_id"`
	Color    game.Color `json:"color"`
}

// Intent is one steady-state client message. Direction nil (or the field
// omitted) means "no intent, just send me a snapshot".
type Intent struct {
	Direction *string `json:"direction"`
}

// Control values carried in Intent.Direction alongside the four headings.
const (
	ControlReset      = "RESET"
	ControlRestartAll = "RESTART_ALL"
)

// ParseDirection maps a wire direction value onto a grid direction.
func ParseDirection(s string) (game.Direction, bool) {
	switch s {
	case "UP":
		return game.Up, true
	case "DOWN":
		return game.Down, true
	case "LEFT":
		return game.Left, true
	case "RIGHT":
		return game.Right, true
	}
	return game.Direction{}, false
}

// NormalizeLetter validates the handshake letter: anything but a single
// alphabetic character becomes "A", and the result is uppercased. A bad
// letter never rejects the connection.
func NormalizeLetter(s string) string {
	runes := []rune(s)
	if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
		return "A"
	}
	return strings.ToUpper(s)
}
