package server

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/mavstuff/snake/internal/protocol"
)

// codec abstracts the message transport so TCP and websocket sessions run
// the same request/response cycle.
type codec interface {
	Decode(v any) error
	Encode(v any) error
}

// runSession drives one client from handshake to disconnect. The session
// goroutine owns no game state: the world is the only durable owner of
// player data, and every mutation happens under its lock.
func (s *Server) runSession(c codec, logger *log.Entry) {
	var hello protocol.Hello
	if err := c.Decode(&hello); err != nil {
		logger.WithError(err).Debug("handshake failed")
		return
	}
	letter := protocol.NormalizeLetter(hello.Letter)

	id, color := s.world.AddPlayer(letter)
	defer s.world.RemovePlayer(id)
	// The bot roster spawns when the first human arrives; later calls are
	// no-ops.
	s.world.InitializeBots(s.cfg.Bots, s.cfg.BotLevel)
	s.metrics.connections.Inc()

	logger = logger.WithFields(log.Fields{"player_id": id, "letter": letter})
	if err := c.Encode(protocol.Welcome{PlayerID: id, Color: color}); err != nil {
		logger.WithError(err).Debug("welcome send failed")
		return
	}

	for {
		var intent protocol.Intent
		err := c.Decode(&intent)
		if errors.Is(err, protocol.ErrMalformed) {
			// Skip the cycle, no reply; the next message may be fine.
			logger.Debug("ignoring malformed message")
			continue
		}
		if err != nil {
			logger.WithError(err).Debug("client gone")
			return
		}

		s.applyIntent(id, intent)

		if err := c.Encode(s.world.Snapshot(id)); err != nil {
			logger.WithError(err).Debug("snapshot send failed")
			return
		}
	}
}

func (s *Server) applyIntent(id int, intent protocol.Intent) {
	if intent.Direction == nil {
		return
	}
	switch value := *intent.Direction; value {
	case protocol.ControlReset:
		s.world.ResetPlayerAndBots(id)
	case protocol.ControlRestartAll:
		s.world.RestartAll(id)
	default:
		if d, ok := protocol.ParseDirection(value); ok {
			s.world.ChangeDirection(id, d)
		}
	}
}
