package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"zoneclash/internal/match"
)

// upgrader builds the websocket upgrader with an origin check against the
// router's allowed list. Requests with no Origin header (native clients,
// tests) are allowed.
func (h *handlers) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range h.origins {
				if origin == allowed {
					return true
				}
			}
			RecordConnectionRejected("origin")
			return false
		},
	}
}

func (h *handlers) upgrade(w http.ResponseWriter, r *http.Request) (match.Transport, bool) {
	if h.maxRooms > 0 && h.manager.ActiveCount() >= h.maxRooms {
		RecordConnectionRejected("room_cap")
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return nil, false
	}

	up := h.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		RecordConnectionRejected("upgrade")
		log.Printf("api: websocket upgrade failed: %v", err)
		return nil, false
	}

	wsConnectionsActive.Inc()
	peer := match.NewWebSocketTransport(conn, func() {
		wsConnectionsActive.Dec()
	})
	return peer, true
}

// wsJoin puts the peer into PvP matchmaking: first peer waits, second
// starts the match.
func (h *handlers) wsJoin(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.upgrade(w, r)
	if !ok {
		return
	}
	if room := h.manager.Join(peer); room != nil {
		log.Printf("api: pvp room %s started", room.ID)
	}
}

// wsSolo starts a single-player match against the bot.
func (h *handlers) wsSolo(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.upgrade(w, r)
	if !ok {
		return
	}
	room := h.manager.JoinSolo(peer)
	log.Printf("api: solo room %s started", room.ID)
}
