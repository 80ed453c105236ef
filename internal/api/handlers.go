package api

import (
	"encoding/json"
	"net/http"
	"time"

	"zoneclash/internal/game"
	"zoneclash/internal/match"
	"zoneclash/internal/render"
)

type handlers struct {
	manager     *match.Manager
	rateLimiter *IPRateLimiter
	origins     []string
	maxRooms    int
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"rooms":  h.manager.ActiveCount(),
	})
}

type roomInfo struct {
	ID        string    `json:"id"`
	Solo      bool      `json:"solo"`
	CreatedAt time.Time `json:"createdAt"`
	Tick      uint64    `json:"tick"`
	Over      bool      `json:"over"`
}

func (h *handlers) rooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.manager.Rooms()
	infos := make([]roomInfo, 0, len(rooms))
	for _, room := range rooms {
		snap := room.Sim().Snapshots.Latest()
		infos = append(infos, roomInfo{
			ID:        room.ID,
			Solo:      room.Solo,
			CreatedAt: room.CreatedAt,
			Tick:      snap.Tick,
			Over:      snap.Over,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

// roomFor resolves the ?room= query parameter, defaulting to the first
// running room.
func (h *handlers) roomFor(r *http.Request) *match.Room {
	rooms := h.manager.Rooms()
	if len(rooms) == 0 {
		return nil
	}
	if id := r.URL.Query().Get("room"); id != "" {
		for _, room := range rooms {
			if room.ID == id {
				return room
			}
		}
		return nil
	}
	return rooms[0]
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	room := h.roomFor(r)
	if room == nil {
		http.Error(w, "no such room", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, room.Sim().Snapshots.Latest())
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"rooms":     h.manager.ActiveCount(),
		"waiting":   h.manager.Waiting(),
		"ratelimit": h.rateLimiter.GetStats(),
	}
	if room := h.roomFor(r); room != nil {
		snap := room.Sim().Snapshots.Latest()
		stats["room"] = map[string]interface{}{
			"id":              room.ID,
			"tick":            snap.Tick,
			"timeRemainingMs": snap.TimeRemaining,
			"zoneRadius":      snap.ZoneRadius,
			"bullets":         len(snap.Bullets),
			"loot":            len(snap.Loot),
			"events":          room.Sim().EventLog().Stats(),
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

type weaponInfo struct {
	Name         string  `json:"name"`
	Damage       float64 `json:"damage"`
	FireInterval float64 `json:"fireIntervalMs"`
	ClipSize     int     `json:"clipSize"`
	ReloadTime   float64 `json:"reloadTimeMs"`
	Range        float64 `json:"range"`
	Pellets      int     `json:"pellets"`
}

func (h *handlers) weapons(w http.ResponseWriter, r *http.Request) {
	all := game.AllWeapons()
	infos := make([]weaponInfo, 0, len(all))
	for _, wp := range all {
		infos = append(infos, weaponInfo{
			Name:         wp.Name,
			Damage:       wp.Damage,
			FireInterval: wp.FireInterval,
			ClipSize:     wp.ClipSize,
			ReloadTime:   wp.ReloadTime,
			Range:        wp.Range,
			Pellets:      wp.Pellets,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *handlers) preview(w http.ResponseWriter, r *http.Request) {
	room := h.roomFor(r)
	if room == nil {
		http.Error(w, "no such room", http.StatusNotFound)
		return
	}

	start := time.Now()
	data, err := render.PreviewPNG(room.Sim().Snapshots.Latest())
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	ObservePreviewRender(time.Since(start))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}
