package match

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"zoneclash/internal/game"
	"zoneclash/internal/protocol"
)

// HostOptions tunes a hosted match.
type HostOptions struct {
	Seed         int64
	TickRate     int
	StateRateHz  float64       // throttle on State broadcasts
	InputTimeout time.Duration // remote seat silence that forfeits the match
	EventLogPath string        // empty disables the event log
}

// Host runs the authoritative simulation for one match. Remote seats attach
// through transports; a seat without a transport is driven locally through
// SetIntent, or by the bot in solo mode.
type Host struct {
	sim  *game.Sim
	opts HostOptions

	mu    sync.Mutex
	peers map[string]Transport
	gone  map[string]bool // seats whose transport died

	stateLimiter *rate.Limiter
}

// NewSoloHost creates a single-player match: local seat vs bot, no peers.
func NewSoloHost(opts HostOptions) *Host {
	return newHost(game.NewSim(game.ModeSolo, opts.Seed), opts, nil)
}

// NewHost creates a PvP match with the given remote seats.
func NewHost(opts HostOptions, peers map[string]Transport) *Host {
	return newHost(game.NewSim(game.ModeHost, opts.Seed), opts, peers)
}

func newHost(sim *game.Sim, opts HostOptions, peers map[string]Transport) *Host {
	if opts.TickRate <= 0 {
		opts.TickRate = game.DefaultTickRate
	}
	if opts.StateRateHz <= 0 {
		opts.StateRateHz = 20
	}
	if peers == nil {
		peers = map[string]Transport{}
	}
	return &Host{
		sim:          sim,
		opts:         opts,
		peers:        peers,
		gone:         map[string]bool{},
		stateLimiter: rate.NewLimiter(rate.Limit(opts.StateRateHz), 1),
	}
}

// Sim exposes the authoritative simulation for local rendering and stats.
func (h *Host) Sim() *game.Sim { return h.sim }

// SetIntent feeds input for a locally-driven seat.
func (h *Host) SetIntent(seat string, in game.Intent) {
	h.sim.Mailbox().Put(seat, in)
}

// Run drives the match to its terminal state. It blocks until the match
// ends or the context is canceled.
func (h *Host) Run(ctx context.Context) error {
	if h.opts.EventLogPath != "" {
		if err := h.sim.EventLog().Start(h.opts.EventLogPath); err != nil {
			log.Printf("match: event log disabled: %v", err)
		}
		defer h.sim.EventLog().Stop()
	}

	if err := h.sendInit(); err != nil {
		return err
	}

	for seat, peer := range h.peers {
		go h.receiveLoop(seat, peer)
	}

	interval := time.Second / time.Duration(h.opts.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			h.checkTimeouts(now)
			h.sim.Tick(dt)

			if h.sim.Over {
				h.broadcastGameOver(h.endReason())
				return nil
			}
			if h.stateLimiter.Allow() {
				h.broadcastState()
			}
		}
	}
}

// sendInit normalizes both loadouts and ships the arena to every peer.
// Fairness first: whatever state the seats carried before, a PvP match
// starts from identical loadouts.
func (h *Host) sendInit() error {
	h.sim.P1.ResetLoadout()
	h.sim.P2.ResetLoadout()

	walls := make([]game.WallSnapshot, 0, len(h.sim.Walls))
	for _, w := range h.sim.Walls {
		walls = append(walls, game.WallSnapshot{
			ID: w.ID, Pos: w.Pos, W: w.W, H: w.H, Radius: w.Radius, Circle: w.Circle,
		})
	}

	for seat, peer := range h.peers {
		own := h.sim.SeatByID(seat)
		foe := h.sim.SeatByID(otherSeat(seat))
		data, err := protocol.Encode(protocol.MsgInit, protocol.InitPayload{
			Seat:        seat,
			Walls:       walls,
			PlayerStart: own.Pos,
			EnemyStart:  foe.Pos,
			Seed:        h.opts.Seed,
			TickRate:    h.opts.TickRate,
		})
		if err != nil {
			return err
		}
		if err := peer.Send(data); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) receiveLoop(seat string, peer Transport) {
	for data := range peer.Receive() {
		env, err := protocol.Decode(data)
		if err != nil {
			log.Printf("match: bad message from %s: %v", seat, err)
			continue
		}
		switch env.Type {
		case protocol.MsgInput:
			var in protocol.InputPayload
			if err := protocol.DecodePayload(env, &in); err != nil {
				log.Printf("match: bad input from %s: %v", seat, err)
				continue
			}
			h.sim.Mailbox().PutAt(seat, in.Intent(), float64(time.Now().UnixMilli()))
		case protocol.MsgPing:
			if data, err := protocol.Encode(protocol.MsgPing, nil); err == nil {
				peer.Send(data)
			}
		}
	}

	h.mu.Lock()
	h.gone[seat] = true
	h.mu.Unlock()
}

// checkTimeouts forfeits the match when a remote seat disconnects or goes
// silent past the input timeout.
func (h *Host) checkTimeouts(now time.Time) {
	if h.sim.Over {
		return
	}
	for seat := range h.peers {
		h.mu.Lock()
		dead := h.gone[seat]
		h.mu.Unlock()

		if !dead && h.opts.InputTimeout > 0 {
			last := h.sim.Mailbox().LastInputAt(seat)
			if last >= 0 && float64(now.UnixMilli())-last > float64(h.opts.InputTimeout.Milliseconds()) {
				dead = true
			}
		}
		if dead {
			log.Printf("match: seat %s lost, forfeiting", seat)
			h.sim.Forfeit(seat)
			return
		}
	}
}

func (h *Host) endReason() string {
	if h.sim.Forfeited() {
		return "disconnect"
	}
	if h.sim.P1.Alive() && h.sim.P2.Alive() {
		return "timeout"
	}
	return "elimination"
}

func (h *Host) broadcastState() {
	snap := h.sim.Snapshots.Latest()
	data, err := protocol.Encode(protocol.MsgState, protocol.StateFromSnapshot(snap))
	if err != nil {
		return
	}
	h.broadcast(data)
}

func (h *Host) broadcastGameOver(reason string) {
	data, err := protocol.Encode(protocol.MsgGameOver, protocol.GameOverPayload{
		Winner:    h.sim.Winner,
		Reason:    reason,
		ElapsedMs: h.sim.Now(),
	})
	if err != nil {
		return
	}
	h.broadcast(data)
}

func (h *Host) broadcast(data []byte) {
	for seat, peer := range h.peers {
		if err := peer.Send(data); err != nil {
			h.mu.Lock()
			h.gone[seat] = true
			h.mu.Unlock()
		}
	}
}

func otherSeat(seat string) string {
	if seat == game.SeatP1 {
		return game.SeatP2
	}
	return game.SeatP1
}
