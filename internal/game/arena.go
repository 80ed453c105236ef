package game

import (
	"fmt"
	"math/rand"

	"zoneclash/internal/geom"
)

// GenerateWalls builds the arena: four oversized rectangles enclosing the
// playfield plus a set of interior obstacles (rectangles and pillars).
// Obstacle placement retries a bounded number of times to keep the spawn
// corners clear, then accepts the last candidate.
func GenerateWalls(rng *rand.Rand) []*Wall {
	walls := make([]*Wall, 0, 4+ObstacleCount)

	// Boundary: oversized so fast entities cannot tunnel past a thin edge.
	walls = append(walls,
		&Wall{ID: "bound_n", Pos: geom.Vec{X: ArenaWidth / 2, Y: -BoundaryDepth / 2}, W: ArenaWidth + 2*BoundaryDepth, H: BoundaryDepth},
		&Wall{ID: "bound_s", Pos: geom.Vec{X: ArenaWidth / 2, Y: ArenaHeight + BoundaryDepth/2}, W: ArenaWidth + 2*BoundaryDepth, H: BoundaryDepth},
		&Wall{ID: "bound_w", Pos: geom.Vec{X: -BoundaryDepth / 2, Y: ArenaHeight / 2}, W: BoundaryDepth, H: ArenaHeight + 2*BoundaryDepth},
		&Wall{ID: "bound_e", Pos: geom.Vec{X: ArenaWidth + BoundaryDepth/2, Y: ArenaHeight / 2}, W: BoundaryDepth, H: ArenaHeight + 2*BoundaryDepth},
	)

	spawns := []geom.Vec{PlayerSpawn(), EnemySpawn()}

	for i := 0; i < ObstacleCount; i++ {
		var w *Wall
		for attempt := 0; attempt < LootPlaceAttempts; attempt++ {
			w = randomObstacle(rng, i)
			if !nearAnySpawn(w, spawns) {
				break
			}
		}
		walls = append(walls, w)
	}
	return walls
}

func randomObstacle(rng *rand.Rand, n int) *Wall {
	pos := geom.Vec{
		X: SpawnMargin + rng.Float64()*(ArenaWidth-2*SpawnMargin),
		Y: SpawnMargin + rng.Float64()*(ArenaHeight-2*SpawnMargin),
	}
	if rng.Float64() < 0.35 {
		return &Wall{
			ID:     fmt.Sprintf("pillar_%d", n),
			Pos:    pos,
			Radius: 36 + rng.Float64()*34,
			Circle: true,
		}
	}
	return &Wall{
		ID:  fmt.Sprintf("wall_%d", n),
		Pos: pos,
		W:   80 + rng.Float64()*180,
		H:   30 + rng.Float64()*60,
	}
}

func nearAnySpawn(w *Wall, spawns []geom.Vec) bool {
	for _, sp := range spawns {
		if w.BlocksCircle(sp, CombatantRadius+SpawnMargin/2) {
			return true
		}
	}
	return false
}

// PlayerSpawn is the local/host combatant start position.
func PlayerSpawn() geom.Vec {
	return geom.Vec{X: SpawnMargin + 40, Y: ArenaHeight / 2}
}

// EnemySpawn is the opponent start position, mirrored across the arena.
func EnemySpawn() geom.Vec {
	return geom.Vec{X: ArenaWidth - SpawnMargin - 40, Y: ArenaHeight / 2}
}
