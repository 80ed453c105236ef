package match

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"zoneclash/internal/game"
	"zoneclash/internal/protocol"
)

// ClientState tracks the client session lifecycle.
type ClientState int

const (
	ClientConnecting ClientState = iota
	ClientPlaying
	ClientOver
	ClientDisconnected
)

// String returns a readable state name.
func (s ClientState) String() string {
	switch s {
	case ClientConnecting:
		return "connecting"
	case ClientPlaying:
		return "playing"
	case ClientOver:
		return "over"
	case ClientDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// ErrConnectTimeout means the host never completed the Init handshake.
var ErrConnectTimeout = errors.New("match: init handshake timed out")

// ClientOptions tunes a client session.
type ClientOptions struct {
	TickRate       int
	ConnectTimeout time.Duration // max wait for the host's Init
}

// Client is the non-authoritative side of a PvP match. It predicts locally
// every tick and yields to each authoritative State snapshot as it arrives;
// the last snapshot always wins, except the local aim angle.
type Client struct {
	peer Transport
	opts ClientOptions

	mu     sync.Mutex
	sim    *game.Sim
	seat   string
	state  ClientState
	intent game.Intent
	result protocol.GameOverPayload
}

// NewClient creates a client session over the given peer link.
func NewClient(peer Transport, opts ClientOptions) *Client {
	if opts.TickRate <= 0 {
		opts.TickRate = game.DefaultTickRate
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	return &Client{peer: peer, opts: opts, state: ClientConnecting}
}

// State returns the session lifecycle state.
func (c *Client) State() ClientState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the game-over payload once the session is over.
func (c *Client) Result() protocol.GameOverPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Sim returns the predicted simulation for rendering, nil until Init.
func (c *Client) Sim() *game.Sim {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sim
}

// Seat returns the local seat id assigned by the host, "" until Init.
func (c *Client) Seat() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seat
}

// SetIntent stores the local input device's latest sample. It is sent to
// the host and fed to the local prediction on the next tick.
func (c *Client) SetIntent(in game.Intent) {
	c.mu.Lock()
	c.intent = in
	c.mu.Unlock()
}

func (c *Client) setState(s ClientState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Run blocks until the match ends, the peer disappears, or the context is
// canceled.
func (c *Client) Run(ctx context.Context) error {
	if err := c.awaitInit(ctx); err != nil {
		c.setState(ClientDisconnected)
		return err
	}
	c.setState(ClientPlaying)

	interval := time.Second / time.Duration(c.opts.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data, ok := <-c.peer.Receive():
			if !ok {
				c.setState(ClientDisconnected)
				return ErrTransportClosed
			}
			if done := c.handleMessage(data); done {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			c.step(dt)
		}
	}
}

// awaitInit blocks for the host's Init handshake, bounded by the connect
// timeout. Any other message type before Init is a protocol violation and
// is dropped.
func (c *Client) awaitInit(ctx context.Context) error {
	timer := time.NewTimer(c.opts.ConnectTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return ErrConnectTimeout
		case data, ok := <-c.peer.Receive():
			if !ok {
				return ErrTransportClosed
			}
			env, err := protocol.Decode(data)
			if err != nil || env.Type != protocol.MsgInit {
				continue
			}
			var init protocol.InitPayload
			if err := protocol.DecodePayload(env, &init); err != nil {
				return err
			}
			c.adoptInit(init)
			return nil
		}
	}
}

// adoptInit builds the local predicted sim from the host's handshake: the
// host's arena and seed, normalized loadouts, and the assigned spawns.
func (c *Client) adoptInit(init protocol.InitPayload) {
	sim := game.NewSim(game.ModeClient, init.Seed)

	walls := make([]*game.Wall, 0, len(init.Walls))
	for _, ws := range init.Walls {
		walls = append(walls, game.WallFromSnapshot(ws))
	}
	sim.SetWalls(walls)

	local := sim.SeatByID(init.Seat)
	remote := sim.SeatByID(otherSeat(init.Seat))
	local.ResetLoadout()
	remote.ResetLoadout()
	local.Pos = init.PlayerStart
	remote.Pos = init.EnemyStart

	c.mu.Lock()
	c.sim = sim
	c.seat = init.Seat
	c.mu.Unlock()
}

// step advances local prediction and sends the resulting intent upstream.
// Prediction owns the facing: the raw stick feeds the local sim, and the
// angle it computes this tick is what the host receives, so stick-driven
// aim steers the authoritative side exactly like an explicit pointer angle.
func (c *Client) step(dt float64) {
	c.mu.Lock()
	in := c.intent
	sim := c.sim
	seat := c.seat
	c.mu.Unlock()

	sim.Mailbox().Put(seat, in)
	sim.Tick(dt)

	out := protocol.InputFromIntent(in)
	out.Angle = sim.SeatByID(seat).Angle
	data, err := protocol.Encode(protocol.MsgInput, out)
	if err == nil {
		if err := c.peer.Send(data); err != nil {
			log.Printf("match: input send failed: %v", err)
		}
	}
}

// handleMessage dispatches one host message. Returns true when the session
// reached its terminal state.
func (c *Client) handleMessage(data []byte) bool {
	env, err := protocol.Decode(data)
	if err != nil {
		log.Printf("match: bad host message: %v", err)
		return false
	}

	switch env.Type {
	case protocol.MsgState:
		var st protocol.StatePayload
		if err := protocol.DecodePayload(env, &st); err != nil {
			log.Printf("match: bad state payload: %v", err)
			return false
		}
		snap := st.Snapshot()

		c.mu.Lock()
		c.sim.ApplySnapshot(&snap, c.seat)
		c.mu.Unlock()

	case protocol.MsgGameOver:
		var over protocol.GameOverPayload
		if err := protocol.DecodePayload(env, &over); err != nil {
			log.Printf("match: bad game over payload: %v", err)
			return false
		}
		c.mu.Lock()
		c.result = over
		c.state = ClientOver
		c.sim.Over = true
		c.sim.Winner = over.Winner
		c.mu.Unlock()
		return true

	case protocol.MsgPing:
		// Echo from our own probe, nothing to do.
	}
	return false
}
