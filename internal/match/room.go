package match

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"zoneclash/internal/game"
)

// Room is one running match and its session lifetime.
type Room struct {
	ID        string
	Solo      bool
	CreatedAt time.Time

	host   *Host
	cancel context.CancelFunc
}

// Sim exposes the room's authoritative simulation.
func (r *Room) Sim() *game.Sim { return r.host.Sim() }

// Host exposes the room's host session.
func (r *Room) Host() *Host { return r.host }

// Close tears the room down early.
func (r *Room) Close() { r.cancel() }

// Manager pairs incoming peers into PvP rooms and starts solo rooms on
// demand. One manager serves the whole process.
type Manager struct {
	opts HostOptions

	mu      sync.Mutex
	rooms   map[string]*Room
	waiting Transport
	seq     int

	// Optional lifecycle hooks, used for metrics.
	OnMatchStart func(r *Room)
	OnMatchEnd   func(r *Room)
}

// NewManager creates a room manager. The options seed both solo and PvP
// rooms; a zero seed gets replaced with the clock per room.
func NewManager(opts HostOptions) *Manager {
	return &Manager{opts: opts, rooms: map[string]*Room{}}
}

// Join adds a peer to matchmaking. The first peer waits; the second starts
// a PvP room with both. Returns the room, or nil while waiting.
func (m *Manager) Join(peer Transport) *Room {
	m.mu.Lock()
	if m.waiting == nil {
		m.waiting = peer
		m.mu.Unlock()
		return nil
	}
	first := m.waiting
	m.waiting = nil
	m.mu.Unlock()

	opts := m.roomOpts()
	host := NewHost(opts, map[string]Transport{
		game.SeatP1: first,
		game.SeatP2: peer,
	})
	return m.launch(host, false)
}

// StartSolo starts a single-player room: local seat vs bot.
func (m *Manager) StartSolo() *Room {
	return m.launch(NewSoloHost(m.roomOpts()), true)
}

// JoinSolo starts a single-player room with the human seat attached over a
// transport. The bot drives the other seat.
func (m *Manager) JoinSolo(peer Transport) *Room {
	opts := m.roomOpts()
	host := newHost(game.NewSim(game.ModeSolo, opts.Seed), opts, map[string]Transport{
		game.SeatP1: peer,
	})
	return m.launch(host, true)
}

func (m *Manager) roomOpts() HostOptions {
	opts := m.opts
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}

func (m *Manager) launch(host *Host, solo bool) *Room {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	m.seq++
	room := &Room{
		ID:        fmt.Sprintf("room_%d", m.seq),
		Solo:      solo,
		CreatedAt: time.Now(),
		host:      host,
		cancel:    cancel,
	}
	m.rooms[room.ID] = room
	m.mu.Unlock()

	if m.OnMatchStart != nil {
		m.OnMatchStart(room)
	}

	go func() {
		if err := host.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("match: room %s ended with error: %v", room.ID, err)
		}
		cancel()

		m.mu.Lock()
		delete(m.rooms, room.ID)
		m.mu.Unlock()

		if m.OnMatchEnd != nil {
			m.OnMatchEnd(room)
		}
	}()

	return room
}

// Rooms returns the currently running rooms.
func (m *Manager) Rooms() []*Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// ActiveCount returns the number of running rooms.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// Waiting reports whether a peer is parked in matchmaking.
func (m *Manager) Waiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting != nil
}
