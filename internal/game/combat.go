package game

import "zoneclash/internal/geom"

// fireReady reports whether the weapon's fire-rate cooldown has elapsed.
func fireReady(c *Combatant, w Weapon, now float64, rateMult float64) bool {
	return now-c.LastFiredAt >= w.FireInterval*rateMult
}

// Fire attempts to discharge the combatant's weapon at the sim clock time
// now. Firing with an empty clip is not an error: it triggers the reload
// state transition instead.
func (s *Sim) Fire(c *Combatant, now float64) {
	if c.Reloading {
		return
	}

	w := GetWeapon(c.Weapon)
	rateMult := 1.0
	if c.IsBot {
		rateMult = w.BotRateMult
	}
	if !fireReady(c, w, now, rateMult) {
		return
	}

	if c.Ammo <= 0 {
		s.startReload(c, w, now)
		return
	}

	c.Ammo--
	c.LastFiredAt = now

	for i := 0; i < w.Pellets; i++ {
		spread := (s.rng.Float64() - 0.5) * w.Spread
		angle := c.Angle + spread
		dir := geom.FromAngle(angle)

		if len(s.Bullets) >= MaxBullets {
			break
		}
		s.Bullets = append(s.Bullets, &Bullet{
			ID:        bulletID(c.ID, s.tick, i),
			OwnerID:   c.ID,
			Pos:       c.Pos.Add(dir.Scale(c.Radius + 2)),
			Vel:       dir.Scale(w.Speed),
			Radius:    3,
			Damage:    w.Damage,
			RangeLeft: w.Range,
			Color:     w.Color,
		})
	}

	s.events.Emit(EventShot, s.tick, c.ID, ShotPayload{
		CombatantID: c.ID,
		Weapon:      c.Weapon.String(),
		AmmoLeft:    c.Ammo,
	})

	if c.Ammo == 0 {
		s.startReload(c, w, now)
	}
}

func (s *Sim) startReload(c *Combatant, w Weapon, now float64) {
	c.Reloading = true
	c.ReloadReadyAt = now + w.ReloadTime
}

// updateReload completes a pending reload once its timer elapses.
func updateReload(c *Combatant, now float64) {
	if c.Reloading && now > c.ReloadReadyAt {
		c.Reloading = false
		c.Ammo = GetWeapon(c.Weapon).ClipSize
	}
}

// AdvanceBullets integrates every live bullet and removes those that hit a
// wall, hit the non-owner combatant, or exhaust their range. Wall collision
// sweeps the full path traveled this tick, not just the endpoint: at the
// clamped max step a sniper round moves farther than the thinnest obstacle
// is wide.
func (s *Sim) AdvanceBullets(dt float64) {
	n := 0
	for _, b := range s.Bullets {
		from := b.Pos
		step := b.Vel.Scale(dt)
		b.Pos = b.Pos.Add(step)
		b.RangeLeft -= step.Len()

		if s.bulletHitsWall(from, b.Pos) || b.RangeLeft <= 0 || s.bulletHitsCombatant(b) {
			continue
		}

		s.Bullets[n] = b
		n++
	}
	s.Bullets = s.Bullets[:n]
}

func (s *Sim) bulletHitsWall(from, to geom.Vec) bool {
	for _, w := range s.Walls {
		if w.BlocksSegment(from, to) {
			return true
		}
	}
	return false
}

func (s *Sim) bulletHitsCombatant(b *Bullet) bool {
	for _, c := range s.combatants() {
		if c.ID == b.OwnerID || !c.Alive() {
			continue
		}
		if geom.CirclesOverlap(b.Pos, b.Radius, c.Pos, c.Radius) {
			s.applyDamage(c, b.Damage)
			return true
		}
	}
	return false
}

// applyDamage routes damage through armor first. Armor absorbs up to its own
// remaining value per hit and never spills the remainder into hp on the same
// hit. Damage always resets the regeneration window.
func (s *Sim) applyDamage(target *Combatant, damage float64) {
	if target.Armor > 0 {
		target.Armor = geom.Clamp(target.Armor-damage, 0, MaxArmor)
	} else {
		target.HP = geom.Clamp(target.HP-damage, 0, target.MaxHP)
	}
	target.LastDamageAt = s.now
	target.RegenAccum = 0

	s.events.Emit(EventDamage, s.tick, target.ID, DamagePayload{
		TargetID: target.ID,
		Damage:   damage,
		HP:       target.HP,
		Armor:    target.Armor,
	})

	// Solo mode only: a wounded bot sometimes sheds a consumable near its
	// position. Never happens in networked play.
	if s.Mode == ModeSolo && target.IsBot && s.rng.Float64() < BotDropChance {
		s.dropConsumableNear(target.Pos)
	}
}
