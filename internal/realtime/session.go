package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"parlour.service/internal/core/model"
)

const (
	writeWait      = 10 * time.Second    // Time allowed to write a message to the peer.
	pongWait       = 60 * time.Second    // Time allowed to read the next pong message from the peer.
	pingPeriod     = (pongWait * 9) / 10 // Send pings to peer with this period. Must be less than pongWait.
	maxMessageSize = 1024                // Maximum message size allowed from peer.
	sendBufferSize = 256                 // Buffer size for subscriber and ack channels.
)

const (
	eventPunch  = "attendance:punch"
	eventUpdate = "attendance:update"
	eventAck    = "attendance:ack"
)

// PunchService is the slice of the attendance service the realtime
// surface needs: record a punch and hand back the enriched view.
type PunchService interface {
	Punch(ctx context.Context, employeeID, punchType string) (*model.EnrichedAttendanceEvent, error)
}

type clientFrame struct {
	Event string          `json:"event"`
	AckID int64           `json:"ackId"`
	Data  json.RawMessage `json:"data"`
}

type punchPayload struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Type         string `json:"type"`
}

type serverFrame struct {
	Event string `json:"event"`
	AckID int64  `json:"ackId,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// session couples one WebSocket connection to a hub subscription. All
// writes go through writePump; readPump is the sole reader.
type session struct {
	conn    *websocket.Conn
	hub     *Hub
	sub     *Subscriber
	service PunchService
	// Acks and other direct replies, merged with broadcast events in writePump.
	out chan serverFrame
}

// Handler returns the HTTP handler that upgrades dashboard connections
// and serves the attendance realtime protocol on them.
func Handler(hub *Hub, service PunchService) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// The HTTP layer fronts this with its own CORS policy.
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
			return
		}
		log.Info().Str("remote_addr", conn.RemoteAddr().String()).Msg("Dashboard client connected")

		s := &session{
			conn:    conn,
			hub:     hub,
			sub:     hub.Subscribe(),
			service: service,
			out:     make(chan serverFrame, sendBufferSize),
		}

		go s.writePump()
		// The request context dies with the upgrade handler; the
		// connection lives on, so punches run on their own context.
		go s.readPump(context.Background())
	}
}

// readPump pumps frames from the WebSocket connection. Punch frames are
// handed to the attendance service and acknowledged on the same socket;
// everything else is ignored.
func (s *session) readPump(ctx context.Context) {
	defer func() {
		s.hub.Unsubscribe(s.sub)
		s.conn.Close()
		log.Info().Str("remote_addr", s.conn.RemoteAddr().String()).Msg("Dashboard client disconnected")
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("remote_addr", s.conn.RemoteAddr().String()).Msg("WebSocket read error")
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Warn().Err(err).Msg("Ignoring malformed WebSocket frame")
			continue
		}
		if frame.Event != eventPunch {
			continue
		}
		s.handlePunch(ctx, frame)
	}
}

// handlePunch records a punch arriving over the socket and replies with an
// ack frame carrying either the enriched event or an error message. The
// broadcast to all subscribers happens inside the service, same as for
// punches arriving over HTTP.
func (s *session) handlePunch(ctx context.Context, frame clientFrame) {
	var payload punchPayload
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		s.reply(serverFrame{Event: eventAck, AckID: frame.AckID, Error: "Failed to punch"})
		return
	}

	enriched, err := s.service.Punch(ctx, payload.EmployeeID, payload.Type)
	if err != nil {
		s.reply(serverFrame{Event: eventAck, AckID: frame.AckID, Error: punchErrorMessage(err)})
		return
	}

	s.reply(serverFrame{Event: eventAck, AckID: frame.AckID, Data: enriched})
}

func punchErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrEmployeeNotFound):
		return "Employee not found"
	case errors.Is(err, model.ErrInvalidPunchType):
		return err.Error()
	default:
		return "Failed to punch"
	}
}

func (s *session) reply(frame serverFrame) {
	select {
	case s.out <- frame:
	default:
		log.Warn().Str("remote_addr", s.conn.RemoteAddr().String()).Msg("Session reply buffer full, ack dropped")
	}
}

// writePump is the single writer for the connection. It interleaves
// broadcast events from the hub subscription with direct replies, and
// keeps the connection alive with pings.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case event, ok := <-s.sub.Events():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Subscription released by the hub.
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(serverFrame{Event: eventUpdate, Data: event}); err != nil {
				log.Error().Err(err).Str("remote_addr", s.conn.RemoteAddr().String()).Msg("WebSocket write error")
				return
			}
		case frame := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				log.Error().Err(err).Str("remote_addr", s.conn.RemoteAddr().String()).Msg("WebSocket write error")
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
