// Package discovery defines the LAN announcement datagram format. An
// external announcer broadcasts one Announcement per interval; clients
// take the datagram's source address as the server host and the payload's
// port as the game port. Only the payload format lives here.
package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ServiceName identifies snake game servers among unrelated broadcasts.
const ServiceName = "snake-game-server"

var (
	ErrUnknownService = errors.New("discovery: not a snake-game-server announcement")
	ErrInvalidPort    = errors.New("discovery: port out of range")
)

// Announcement is the broadcast payload: {"service":"snake-game-server","port":N}.
type Announcement struct {
	Service string `json:"service"`
	Port    int    `json:"port"`
}

// NewAnnouncement builds a payload for the given game port.
func NewAnnouncement(port int) Announcement {
	return Announcement{Service: ServiceName, Port: port}
}

func (a Announcement) validate() error {
	if a.Service != ServiceName {
		return ErrUnknownService
	}
	if a.Port <= 0 || a.Port > 65535 {
		return ErrInvalidPort
	}
	return nil
}

// Marshal serializes the announcement, refusing payloads a discoverer
// would reject.
func (a Announcement) Marshal() ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(a)
}

// Parse decodes and validates one datagram payload.
func Parse(payload []byte) (Announcement, error) {
	var a Announcement
	if err := json.Unmarshal(payload, &a); err != nil {
		return Announcement{}, fmt.Errorf("discovery: decode announcement: %w", err)
	}
	if err := a.validate(); err != nil {
		return Announcement{}, err
	}
	return a, nil
}
