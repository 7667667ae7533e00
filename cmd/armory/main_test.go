package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/armory/internal/config"
	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/weapon"
	"github.com/cory-johannsen/armory/internal/replay"
	"github.com/cory-johannsen/armory/internal/scripting"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Content.WeaponsDir = "../../content/weapons"
	cfg.Content.ScriptsDir = "../../content/scripts"
	cfg.Session.StartingWeapons = []string{"carrion_9mm"}
	return cfg
}

func TestNewSession_LoadsContent(t *testing.T) {
	sess, err := newSession(testConfig(t), zaptest.NewLogger(t), nil, nil)
	require.NoError(t, err)
	defer sess.Close()

	assert.NotEmpty(t, sess.id)
	require.Len(t, sess.profiles, 2)
	assert.Equal(t, "carrion_9mm", sess.profiles[0].ID)
	assert.Equal(t, "esp_cano_curto", sess.profiles[1].ID)
	require.NotNil(t, sess.scripts)

	// Fragmentation pellets lose a third after the first target.
	dmg := sess.scripts.ProjectileHit(scripting.HitInfo{Type: "fragmentation", Damage: 6, Hits: 2})
	assert.InDelta(t, 4.0, dmg, 1e-9)
	assert.Equal(t, "carrion_9mm", sess.player.Bar().Slots()[0].WeaponID)
}

func TestNewSession_UnknownStartingWeapon(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.StartingWeapons = []string{"bfg"}
	_, err := newSession(cfg, nil, nil, nil)
	assert.Error(t, err)
}

func TestNewSession_MissingContent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Content.WeaponsDir = t.TempDir() + "/missing"
	_, err := newSession(cfg, nil, nil, nil)
	assert.Error(t, err)
}

func TestSampleReplayRuns(t *testing.T) {
	sess, err := newSession(testConfig(t), nil, nil, nil)
	require.NoError(t, err)
	defer sess.Close()

	script, err := replay.Load("../../content/replays/pickups.yaml")
	require.NoError(t, err)
	rep, err := replay.Run(script, sess.player, sess.cfg.Session.TickInterval(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Pickups)
	assert.NotEmpty(t, rep.Hits)
	assert.Greater(t, sess.mixer.Played("pistol_fire"), 0)
	assert.Greater(t, sess.mixer.Played("shotgun_fire"), 0)
	// The shotgun was discarded at the end.
	require.Len(t, rep.Weapons, 1)
	assert.Equal(t, "carrion_9mm", rep.Weapons[0].ID)
	assert.Equal(t, "", rep.Active)

	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf))
	assert.Contains(t, buf.String(), "(holstered)")
}

func TestInputState_EdgesAreConsumed(t *testing.T) {
	in := newInputState(viewport{width: 80, height: 24})
	for _, r := range "2r p" {
		in.handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	pin, drop, quit := in.drain(weapon.Vec2{X: 3})
	assert.Equal(t, 2, pin.SlotKey)
	assert.True(t, pin.Reload)
	assert.True(t, pin.FirePressed)
	assert.True(t, drop)
	assert.False(t, quit)
	assert.Equal(t, weapon.Vec3{X: 4}, pin.Cursor)

	pin, drop, _ = in.drain(weapon.Vec2{})
	assert.Equal(t, 0, pin.SlotKey)
	assert.False(t, pin.Reload)
	assert.False(t, pin.FirePressed)
	assert.False(t, drop)
}

func TestInputState_DiscardNeedsArming(t *testing.T) {
	in := newInputState(viewport{width: 80, height: 24})
	in.handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	in.handle(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone))
	pin, _, _ := in.drain(weapon.Vec2{})
	assert.Equal(t, 3, pin.DiscardKey)
	assert.Equal(t, 0, pin.SlotKey)
}

func TestInputState_HeldAndWalkPersist(t *testing.T) {
	in := newInputState(viewport{width: 80, height: 24})
	in.handle(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	in.handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	for i := 0; i < 2; i++ {
		pin, _, _ := in.drain(weapon.Vec2{})
		assert.True(t, pin.FireHeld)
		assert.Equal(t, -1.0, pin.Move)
	}
}

func TestInputState_QuitKeys(t *testing.T) {
	in := newInputState(viewport{width: 80, height: 24})
	assert.False(t, in.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	_, _, quit := in.drain(weapon.Vec2{})
	assert.True(t, quit)

	in = newInputState(viewport{width: 80, height: 24})
	assert.False(t, in.handle(tcell.NewEventInterrupt(nil)))
}

func TestInputState_MouseAims(t *testing.T) {
	v := viewport{width: 80, height: 24}
	in := newInputState(v)
	cx, cy := v.centre()
	in.handle(tcell.NewEventMouse(cx+4, cy-3, tcell.Button1, tcell.ModNone))
	pin, _, _ := in.drain(weapon.Vec2{})
	assert.True(t, pin.FireHeld)
	assert.Equal(t, weapon.Vec3{X: 2, Y: 3}, pin.Cursor)
}

func TestViewport_RoundTrip(t *testing.T) {
	v := viewport{width: 80, height: 24}
	x, y, ok := v.toScreen(weapon.Vec2{X: 5, Y: 2})
	require.True(t, ok)
	assert.Equal(t, weapon.Vec2{X: 5, Y: 2}, v.toWorldOffset(x, y))

	_, _, ok = v.toScreen(weapon.Vec2{X: 100})
	assert.False(t, ok)
}

func TestSeedFloor_SkipsStartingWeapons(t *testing.T) {
	sess, err := newSession(testConfig(t), nil, nil, nil)
	require.NoError(t, err)
	defer sess.Close()

	n := seedFloor(sess.player, sess.profiles, sess.cfg.Session.StartingWeapons)
	assert.Equal(t, 1, n)
	items := sess.player.Floor().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "esp_cano_curto", items[0].WeaponID)
	assert.Equal(t, 'W', pickupGlyph(items[0].Kind))
	assert.Equal(t, 'a', pickupGlyph(inventory.PickupAmmo))
}

func TestFPSMeter_Smooths(t *testing.T) {
	var m fpsMeter
	t0 := time.Unix(0, 0)
	assert.Equal(t, 0.0, m.frame(t0))
	assert.InDelta(t, 50.0, m.frame(t0.Add(20*time.Millisecond)), 1e-9)
	// One slow 120ms frame moves the 20ms average a tenth of the way.
	assert.InDelta(t, 1000.0/30, m.frame(t0.Add(140*time.Millisecond)), 1e-6)
}

func TestDropPickup(t *testing.T) {
	_, ok := dropPickup("")
	assert.False(t, ok)
	pk, ok := dropPickup("carrion_9mm")
	require.True(t, ok)
	assert.Equal(t, dropAmount, pk.Amount)
}
