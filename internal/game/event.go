package game

import (
	"encoding/json"
	"time"
)

// EventType classifies match events.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventTick              // tick boundary with RNG seed, for replay
	EventShot
	EventDamage
	EventPickup
	EventLootSpawn
	EventZoneShrink
	EventMatchEnd
)

// EventVersion guards backwards compatibility when replaying old logs.
const EventVersion uint8 = 1

// Event is one record in the match event log.
type Event struct {
	Version   uint8           `json:"version"`
	Type      EventType       `json:"type"`
	Timestamp int64           `json:"timestamp"` // unix nano
	Sequence  uint64          `json:"sequence"`  // monotonic
	TickNum   uint64          `json:"tickNum"`
	SourceID  string          `json:"sourceId"` // combatant that caused the event
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// String returns a human-readable event type.
func (t EventType) String() string {
	switch t {
	case EventTick:
		return "tick"
	case EventShot:
		return "shot"
	case EventDamage:
		return "damage"
	case EventPickup:
		return "pickup"
	case EventLootSpawn:
		return "loot_spawn"
	case EventZoneShrink:
		return "zone_shrink"
	case EventMatchEnd:
		return "match_end"
	default:
		return "unknown"
	}
}

// TickPayload carries the per-tick replay anchor.
type TickPayload struct {
	RNGSeed     int64   `json:"rngSeed"`
	DeltaTimeMs float64 `json:"deltaTimeMs"`
}

// ShotPayload records a weapon discharge.
type ShotPayload struct {
	CombatantID string `json:"combatantId"`
	Weapon      string `json:"weapon"`
	AmmoLeft    int    `json:"ammoLeft"`
}

// DamagePayload records damage application after armor routing.
type DamagePayload struct {
	TargetID string  `json:"targetId"`
	Damage   float64 `json:"damage"`
	HP       float64 `json:"hp"`
	Armor    float64 `json:"armor"`
}

// LootPayload records loot spawning and pickups.
type LootPayload struct {
	LootID      string `json:"lootId"`
	Kind        string `json:"kind"`
	CombatantID string `json:"combatantId,omitempty"`
}

// MatchEndPayload records the terminal outcome.
type MatchEndPayload struct {
	Winner  string  `json:"winner"`
	Elapsed float64 `json:"elapsedMs"`
}

// NewEvent creates an event stamped with the current wall clock.
func NewEvent(t EventType, tickNum uint64, sourceID string, payload interface{}) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		data = nil
	}
	return Event{
		Version:   EventVersion,
		Type:      t,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		SourceID:  sourceID,
		Payload:   data,
	}
}
