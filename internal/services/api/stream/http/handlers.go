// Package http streams live zone membership events over websocket
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	"zonewatch/internal/modkit/httpkit"
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/logger"
	zonedomain "zonewatch/internal/services/zones/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*stdhttp.Request) bool { return true },
}

const (
	writeWait  = 5 * time.Second
	pingEvery  = 30 * time.Second
	sendBuffer = 64
)

// Register mounts the stream endpoint
func Register(r httpkit.Router, b *bus.Bus) {
	h := &handler{bus: b, log: logger.Named("stream")}
	r.Get("/", h.serve)
}

type handler struct {
	bus *bus.Bus
	log *logger.Logger
}

// wireEvent is the websocket frame; payload is the membership event
type wireEvent struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// serve upgrades the connection and forwards matching bus events until the
// client goes away; a slow client loses events rather than stalling the bus
//
// @Summary Live zone membership stream
// @Tags stream
// @Param camera query string false "Camera identifier filter"
// @Param zone query string false "Zone name filter"
// @Router /stream [get]
func (h *handler) serve(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	camera := r.URL.Query().Get("camera")
	zone := r.URL.Query().Get("zone")
	if camera == "" {
		camera = "*"
	}
	if zone == "" {
		zone = "*"
	}
	pattern := zonedomain.Topic(camera, zone)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.bus.Subscribe(pattern, sendBuffer)
	defer cancel()

	// reader loop: we never expect client data, but reading surfaces closes
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingEvery)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wireEvent{Topic: ev.Topic, Payload: ev.Payload}); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
