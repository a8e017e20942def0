package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/mavstuff/snake/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HTTPHandler serves the browser-facing side: /ws speaks the exact game
// protocol (one JSON text message per round), /stats the ops snapshot and
// /metrics the Prometheus registry.
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/stats", s.handleStats)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	logger := log.WithFields(log.Fields{
		"conn_id": uuid.NewString(),
		"remote":  r.RemoteAddr,
		"via":     "ws",
	})
	logger.Debug("websocket connected")

	netConn := conn.UnderlyingConn()
	s.track(netConn)
	defer s.untrack(netConn)
	defer conn.Close()

	s.runSession(&wsCodec{conn: conn}, logger)
}

// wsCodec adapts a websocket connection to the session codec. Websocket
// frames already delimit messages, so no stream reassembly is needed.
// Wrong-shape payloads decode as empty messages, matching StreamCodec.
type wsCodec struct {
	conn *websocket.Conn
}

func (c *wsCodec) Decode(v any) error {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil
		}
		return protocol.ErrMalformed
	}
	return nil
}

func (c *wsCodec) Encode(v any) error {
	return c.conn.WriteJSON(v)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(s.world.Stats())
}
