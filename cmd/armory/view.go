package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/player"
	"github.com/cory-johannsen/armory/internal/game/projectile"
	"github.com/cory-johannsen/armory/internal/game/weapon"
	"github.com/cory-johannsen/armory/internal/hud"
)

// columnsPerUnit compensates for terminal cells being about twice as tall as
// they are wide.
const columnsPerUnit = 2

var (
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleTarget     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCursor     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	stylePickup     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// viewport maps world coordinates to screen cells, centred on the player
// below the HUD rows.
type viewport struct {
	width, height int
}

func (v viewport) centre() (int, int) {
	top := hud.RowStatus + 1
	return v.width / 2, top + (v.height-top)/2
}

// toWorldOffset converts a screen cell to a world offset from the player.
func (v viewport) toWorldOffset(x, y int) weapon.Vec2 {
	cx, cy := v.centre()
	return weapon.Vec2{X: float64(x-cx) / columnsPerUnit, Y: float64(cy - y)}
}

// toScreen converts a world offset from the player to a screen cell.
func (v viewport) toScreen(off weapon.Vec2) (int, int, bool) {
	cx, cy := v.centre()
	x := cx + int(math.Round(off.X*columnsPerUnit))
	y := cy - int(math.Round(off.Y))
	return x, y, x >= 0 && x < v.width && y > hud.RowStatus && y < v.height
}

// pickupGlyph is 'W' for a weapon lying on the floor and 'a' for ammo.
func pickupGlyph(k inventory.PickupKind) rune {
	if k == inventory.PickupWeapon {
		return 'W'
	}
	return 'a'
}

// drawWorld draws floor pickups, targets, projectiles, the player and the
// aim point.
func drawWorld(s tcell.Screen, v viewport, p *player.Player, targets []projectile.Target, cursor weapon.Vec3) {
	origin := p.Body().Position
	put := func(pos weapon.Vec2, r rune, st tcell.Style) {
		if x, y, ok := v.toScreen(pos.Sub(origin)); ok {
			s.SetContent(x, y, r, nil, st)
		}
	}
	for _, pl := range p.Floor().Items() {
		put(pl.Position, pickupGlyph(pl.Kind), stylePickup)
	}
	for _, t := range targets {
		put(t.Position, 'O', styleTarget)
	}
	for _, pr := range p.World().Snapshot() {
		put(pr.Position, '*', styleProjectile)
	}
	put(cursor.XY(), '+', styleCursor)
	glyph := '@'
	if p.Controller().Active() != nil {
		glyph = '>'
		if p.Facing() < 0 {
			glyph = '<'
		}
	}
	put(origin, glyph, stylePlayer)
}
