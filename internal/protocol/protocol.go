// Package protocol defines the wire messages exchanged between the match
// host and the client. Every message travels as a typed envelope with a
// JSON payload, so either side can dispatch on the type without decoding
// the body first.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zoneclash/internal/game"
	"zoneclash/internal/geom"
)

// Message types. The host sends init, state and game_over; the client sends
// input; ping flows both ways.
const (
	MsgInit     = "init"
	MsgInput    = "input"
	MsgState    = "state"
	MsgGameOver = "game_over"
	MsgPing     = "ping"
)

// ErrUnknownType marks a message whose type neither side understands.
var ErrUnknownType = errors.New("protocol: unknown message type")

// Envelope is the outer frame of every message.
type Envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"` // unix ms at send time
}

// InitPayload is the host's match setup handshake. The client adopts the
// host's arena and seed wholesale; after this message both sides agree on
// every wall and both start from the normalized loadout.
type InitPayload struct {
	Seat        string              `json:"seat"` // the receiver's seat id
	Walls       []game.WallSnapshot `json:"walls"`
	PlayerStart geom.Vec            `json:"playerStart"` // the receiver's spawn
	EnemyStart  geom.Vec            `json:"enemyStart"`
	Seed        int64               `json:"seed"`
	TickRate    int                 `json:"tickRate"`
}

// InputPayload carries one intent sample from the client.
type InputPayload struct {
	Move   geom.Vec `json:"move"`
	Aim    geom.Vec `json:"aim"`
	Sprint bool     `json:"sprint"`
	Fire   bool     `json:"fire"`
	Angle  float64  `json:"angle"`
}

// Intent converts the wire form into a sim intent. The client always owns
// its own facing, so the angle override is unconditional.
func (p InputPayload) Intent() game.Intent {
	return game.Intent{
		Move:     p.Move,
		Aim:      p.Aim,
		Sprint:   p.Sprint,
		Fire:     p.Fire,
		Angle:    p.Angle,
		HasAngle: true,
	}
}

// InputFromIntent converts a sim intent into its wire form.
func InputFromIntent(in game.Intent) InputPayload {
	return InputPayload{
		Move:   in.Move,
		Aim:    in.Aim,
		Sprint: in.Sprint,
		Fire:   in.Fire,
		Angle:  in.Angle,
	}
}

// StatePayload is the host's authoritative world broadcast. It reuses the
// snapshot value types directly; walls are deliberately absent since Init
// already delivered them.
type StatePayload struct {
	Tick          uint64                   `json:"tick"`
	Combatants    []game.CombatantSnapshot `json:"combatants"`
	Bullets       []game.BulletSnapshot    `json:"bullets"`
	Loot          []game.LootSnapshot      `json:"loot"`
	ZoneCenter    geom.Vec                 `json:"zoneCenter"`
	ZoneRadius    float64                  `json:"zoneRadius"`
	TimeRemaining float64                  `json:"timeRemainingMs"`
}

// StateFromSnapshot builds the broadcast payload from a sim snapshot.
func StateFromSnapshot(snap *game.Snapshot) StatePayload {
	return StatePayload{
		Tick:          snap.Tick,
		Combatants:    snap.Combatants,
		Bullets:       snap.Bullets,
		Loot:          snap.Loot,
		ZoneCenter:    snap.ZoneCenter,
		ZoneRadius:    snap.ZoneRadius,
		TimeRemaining: snap.TimeRemaining,
	}
}

// Snapshot converts the wire state back into a snapshot the sim can apply.
func (p StatePayload) Snapshot() game.Snapshot {
	return game.Snapshot{
		Tick:          p.Tick,
		Combatants:    p.Combatants,
		Bullets:       p.Bullets,
		Loot:          p.Loot,
		ZoneCenter:    p.ZoneCenter,
		ZoneRadius:    p.ZoneRadius,
		TimeRemaining: p.TimeRemaining,
	}
}

// GameOverPayload announces the terminal result.
type GameOverPayload struct {
	Winner    string  `json:"winner"` // seat id, "" for a draw
	Reason    string  `json:"reason"` // "elimination", "timeout", "disconnect"
	ElapsedMs float64 `json:"elapsedMs"`
}

// PingPayload carries a liveness probe; Nonce echoes back unchanged.
type PingPayload struct {
	Nonce int64 `json:"nonce"`
}

// Encode wraps a payload in an envelope and marshals it.
func Encode(msgType string, payload interface{}) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("protocol: encode %s payload: %w", msgType, err)
		}
		raw = data
	}
	return json.Marshal(Envelope{
		Type:      msgType,
		Payload:   raw,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Decode unmarshals an envelope and validates its type.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("protocol: decode envelope: %w", err)
	}
	switch env.Type {
	case MsgInit, MsgInput, MsgState, MsgGameOver, MsgPing:
		return env, nil
	default:
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

// DecodePayload unmarshals the envelope body into dst.
func DecodePayload(env Envelope, dst interface{}) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("protocol: %s message has no payload", env.Type)
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("protocol: decode %s payload: %w", env.Type, err)
	}
	return nil
}
