// Package render draws debug PNG previews of a match snapshot. This is a
// diagnostics aid for the preview endpoint; the real game renderer lives in
// the browser client.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"zoneclash/internal/game"
)

const previewScale = 0.5

var (
	colorBackground = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	colorWall       = color.RGBA{R: 70, G: 76, B: 90, A: 255}
	colorZone       = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	colorP1         = color.RGBA{R: 96, G: 200, B: 120, A: 255}
	colorP2         = color.RGBA{R: 230, G: 110, B: 100, A: 255}
	colorLoot       = color.RGBA{R: 250, G: 210, B: 90, A: 255}
	colorBullet     = color.RGBA{R: 245, G: 245, B: 245, A: 255}
)

// PreviewPNG renders the snapshot to a PNG image.
func PreviewPNG(snap *game.Snapshot) ([]byte, error) {
	w := int(game.ArenaWidth * previewScale)
	h := int(game.ArenaHeight * previewScale)
	dc := gg.NewContext(w, h)
	dc.Scale(previewScale, previewScale)

	dc.SetColor(colorBackground)
	dc.Clear()

	drawZone(dc, snap)
	drawWalls(dc, snap)
	drawLoot(dc, snap)
	drawBullets(dc, snap)
	drawCombatants(dc, snap)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("render: encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

func drawZone(dc *gg.Context, snap *game.Snapshot) {
	dc.SetColor(colorZone)
	dc.SetLineWidth(3)
	dc.DrawCircle(snap.ZoneCenter.X, snap.ZoneCenter.Y, snap.ZoneRadius)
	dc.Stroke()
}

func drawWalls(dc *gg.Context, snap *game.Snapshot) {
	dc.SetColor(colorWall)
	for _, w := range snap.Walls {
		if w.Circle {
			dc.DrawCircle(w.Pos.X, w.Pos.Y, w.Radius)
		} else {
			dc.DrawRectangle(w.Pos.X-w.W/2, w.Pos.Y-w.H/2, w.W, w.H)
		}
		dc.Fill()
	}
}

func drawLoot(dc *gg.Context, snap *game.Snapshot) {
	dc.SetColor(colorLoot)
	for _, item := range snap.Loot {
		dc.DrawCircle(item.Pos.X, item.Pos.Y, game.LootRadius)
		dc.Stroke()
	}
}

func drawBullets(dc *gg.Context, snap *game.Snapshot) {
	dc.SetColor(colorBullet)
	for _, b := range snap.Bullets {
		dc.DrawCircle(b.Pos.X, b.Pos.Y, 3)
		dc.Fill()
	}
}

func drawCombatants(dc *gg.Context, snap *game.Snapshot) {
	for i, c := range snap.Combatants {
		if i == 0 {
			dc.SetColor(colorP1)
		} else {
			dc.SetColor(colorP2)
		}
		dc.DrawCircle(c.Pos.X, c.Pos.Y, game.CombatantRadius)
		dc.Fill()

		// Facing tick.
		dc.SetLineWidth(2)
		reach := game.CombatantRadius * 1.6
		dc.DrawLine(c.Pos.X, c.Pos.Y, c.Pos.X+reach*math.Cos(c.Angle), c.Pos.Y+reach*math.Sin(c.Angle))
		dc.Stroke()

		// Health arc over the body.
		frac := c.HP / c.MaxHP
		dc.DrawArc(c.Pos.X, c.Pos.Y, game.CombatantRadius+6, -math.Pi/2, -math.Pi/2+frac*2*math.Pi)
		dc.Stroke()
	}
}
