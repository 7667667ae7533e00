package player_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/armory/internal/game/controller"
	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/player"
	"github.com/cory-johannsen/armory/internal/game/projectile"
	"github.com/cory-johannsen/armory/internal/game/weapon"
	"github.com/cory-johannsen/armory/internal/testutil"
)

const ms = time.Millisecond

type slotSink struct {
	last  []inventory.SlotView
	calls int
}

func (s *slotSink) ShowSlots(v []inventory.SlotView) {
	s.last = append([]inventory.SlotView(nil), v...)
	s.calls++
}

func profiles() []*weapon.Profile {
	return []*weapon.Profile{testutil.PistolProfile(), testutil.ShotgunProfile()}
}

func newPlayer(t *testing.T, starting ...string) (*player.Player, *testutil.Recorder, *slotSink) {
	t.Helper()
	rec := &testutil.Recorder{}
	sink := &slotSink{}
	p, err := player.New(profiles(), player.Ports{Audio: rec, HUD: rec, Slots: sink},
		player.Options{Slots: 4, StartingWeapons: starting}, nil)
	require.NoError(t, err)
	return p, rec, sink
}

var right = weapon.Vec3{X: 10}

func TestNew_Errors(t *testing.T) {
	_, err := player.New(nil, player.Ports{}, player.Options{}, nil)
	assert.ErrorIs(t, err, controller.ErrNoProfiles)

	_, err = player.New(profiles(), player.Ports{}, player.Options{StartingWeapons: []string{"bfg"}}, nil)
	assert.ErrorIs(t, err, controller.ErrUnknownWeapon)
}

func TestNew_StartingWeaponsHolstered(t *testing.T) {
	p, _, sink := newPlayer(t, "carrion_9mm", "esp_cano_curto")
	assert.Equal(t, "", p.Controller().ActiveID())
	require.Len(t, sink.last, 4)
	assert.Equal(t, "carrion_9mm", sink.last[0].WeaponID)
	assert.Equal(t, "esp_cano_curto", sink.last[1].WeaponID)
	assert.True(t, sink.last[2].Empty())
	assert.Equal(t, 4, p.Bar().Len())
}

func TestNew_DefaultSlots(t *testing.T) {
	p, err := player.New(profiles(), player.Ports{}, player.Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, player.DefaultSlots, p.Bar().Len())
}

func TestTick_SlotKeySwitchesAndRefreshesBar(t *testing.T) {
	p, rec, sink := newPlayer(t, "carrion_9mm", "esp_cano_curto")
	p.Tick(0, player.Input{SlotKey: 1, Cursor: right})

	assert.Equal(t, "carrion_9mm", p.Controller().ActiveID())
	ro, ok := rec.LastReadout()
	require.True(t, ok)
	assert.Equal(t, weapon.Readout{Current: 10, Capacity: 10, Reserve: 100, Name: "Carrion 9mm", Kind: 0}, ro)
	assert.True(t, sink.last[0].Active)
	assert.False(t, sink.last[1].Active)
}

func TestTick_OutOfRangeSlotKeyIgnored(t *testing.T) {
	p, _, _ := newPlayer(t, "carrion_9mm")
	assert.NotPanics(t, func() {
		p.Tick(0, player.Input{SlotKey: 9, DiscardKey: 7, Cursor: right})
	})
	assert.Equal(t, "", p.Controller().ActiveID())
}

func TestTick_PistolProjectileHitsTarget(t *testing.T) {
	p, rec, _ := newPlayer(t, "carrion_9mm")
	targets := []projectile.Target{{ID: "dummy", Position: weapon.Vec2{X: 5}, Radius: 1}}

	hits := p.Tick(0, player.Input{SlotKey: 1, FirePressed: true, Cursor: right, Targets: targets})
	assert.Empty(t, hits)
	assert.Equal(t, 1, p.World().Len())
	assert.Equal(t, 1, rec.CountSound("pistol_fire"))
	assert.Equal(t, 9, p.Controller().Active().State().Magazine)

	hits = p.Tick(100*ms, player.Input{Cursor: right, Targets: targets})
	assert.Empty(t, hits)

	hits = p.Tick(200*ms, player.Input{Cursor: right, Targets: targets})
	require.Len(t, hits, 1)
	assert.Equal(t, "dummy", hits[0].TargetID)
	assert.Equal(t, "carrion_9mm", hits[0].WeaponID)
	assert.InDelta(t, 10.0, hits[0].Damage, 1e-9)
	assert.True(t, hits[0].Destroyed)
	assert.Equal(t, 0, p.World().Len())
}

func TestTick_ShotgunKickbackMovesBody(t *testing.T) {
	p, _, _ := newPlayer(t, "carrion_9mm", "esp_cano_curto")
	p.Tick(0, player.Input{SlotKey: 2, FirePressed: true, Cursor: right})

	assert.Equal(t, 3, p.World().Len())
	assert.Equal(t, 1, p.Body().Kickbacks())
	assert.InDelta(t, -4.0, p.Body().Velocity().X, 1e-9)

	p.Tick(100*ms, player.Input{Cursor: right})
	assert.InDelta(t, -0.4, p.Body().Position.X, 1e-9)
	assert.InDelta(t, -2.0, p.Body().Velocity().X, 1e-9)
}

func TestTick_FacingFollowsCursor(t *testing.T) {
	p, _, _ := newPlayer(t)
	p.Tick(0, player.Input{Cursor: weapon.Vec3{X: -10}})
	assert.Equal(t, -1.0, p.Facing())
	assert.InDelta(t, 360.0, p.Rig().Angle(), 1e-9)

	// A cursor level with the body keeps the previous facing.
	p.Tick(10*ms, player.Input{Cursor: weapon.Vec3{Y: 5}})
	assert.Equal(t, -1.0, p.Facing())

	p.Tick(20*ms, player.Input{Cursor: right})
	assert.Equal(t, 1.0, p.Facing())
	assert.InDelta(t, 0.0, p.Rig().Angle(), 1e-9)
}

func TestTick_WalkMovesBody(t *testing.T) {
	p, _, _ := newPlayer(t)
	p.Tick(0, player.Input{Cursor: right})
	p.Tick(200*ms, player.Input{Move: 1, Cursor: right})
	assert.InDelta(t, player.DefaultMoveSpeed*0.2, p.Body().Position.X, 1e-9)
}

func TestTick_DiscardActiveHolsters(t *testing.T) {
	p, rec, sink := newPlayer(t, "carrion_9mm")
	p.Tick(0, player.Input{SlotKey: 1, Cursor: right})
	require.Equal(t, "carrion_9mm", p.Controller().ActiveID())

	p.Tick(10*ms, player.Input{DiscardKey: 1, Cursor: right})
	assert.Equal(t, "", p.Controller().ActiveID())
	assert.Equal(t, 1, rec.Clears)
	assert.True(t, sink.last[0].Empty())
	assert.False(t, p.Bar().Bucket("carrion_9mm").Acquired)
}

func TestCollect_PendingAmmoTransfers(t *testing.T) {
	p, _, _ := newPlayer(t, "carrion_9mm")

	ok, err := p.Collect(inventory.Pickup{Kind: inventory.PickupAmmo, WeaponID: "esp_cano_curto", Amount: 12})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Collect(inventory.Pickup{Kind: inventory.PickupWeapon, WeaponID: "esp_cano_curto"})
	require.NoError(t, err)
	assert.True(t, ok)

	w, err := p.Controller().Weapon("esp_cano_curto")
	require.NoError(t, err)
	assert.Equal(t, 52, w.State().Reserve)
}

func TestCollect_UnknownKind(t *testing.T) {
	p, _, _ := newPlayer(t)
	_, err := p.Collect(inventory.Pickup{Kind: "health"})
	assert.Error(t, err)
}

func TestDrop_LandsInFrontOfFacing(t *testing.T) {
	p, _, _ := newPlayer(t)
	p.Tick(0, player.Input{Cursor: weapon.Vec3{X: -10}})
	require.Equal(t, -1.0, p.Facing())

	id := p.Drop(inventory.Pickup{Kind: inventory.PickupAmmo, WeaponID: "carrion_9mm", Amount: 5})
	items := p.Floor().Items()
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, weapon.Vec2{X: -2}, items[0].Position)
}

func TestTick_WalkingOntoPickupCollectsIt(t *testing.T) {
	p, _, sink := newPlayer(t, "carrion_9mm")
	p.Tick(0, player.Input{Cursor: right})
	p.Drop(inventory.Pickup{Kind: inventory.PickupWeapon, WeaponID: "esp_cano_curto"})

	p.Tick(10*ms, player.Input{Cursor: right})
	require.Equal(t, 1, p.Floor().Len(), "pickup out of reach")

	p.Tick(250*ms, player.Input{Move: 1, Cursor: right})
	assert.Equal(t, 0, p.Floor().Len())
	assert.Equal(t, "esp_cano_curto", sink.last[1].WeaponID)
}

func TestTick_WeaponPickupStaysWhenBarFull(t *testing.T) {
	p, err := player.New(profiles(), player.Ports{},
		player.Options{Slots: 1, StartingWeapons: []string{"carrion_9mm"}, PickupRadius: 3}, nil)
	require.NoError(t, err)
	p.Drop(inventory.Pickup{Kind: inventory.PickupWeapon, WeaponID: "esp_cano_curto"})
	p.Drop(inventory.Pickup{Kind: inventory.PickupAmmo, WeaponID: "esp_cano_curto", Amount: 6})

	p.Tick(0, player.Input{Cursor: right})
	items := p.Floor().Items()
	require.Len(t, items, 1)
	assert.Equal(t, inventory.PickupWeapon, items[0].Kind)
	assert.Equal(t, 6, p.Bar().Bucket("esp_cano_curto").Pending)
}

func TestTick_InvalidFloorPickupRemoved(t *testing.T) {
	p, _, _ := newPlayer(t)
	p.Drop(inventory.Pickup{Kind: "health"})
	p.Tick(0, player.Input{Cursor: weapon.Vec3{X: 1}})
	// Dropped at X=2, outside the default reach of 1.
	require.Equal(t, 1, p.Floor().Len())

	p.Tick(300*ms, player.Input{Move: 1, Cursor: right})
	assert.Equal(t, 0, p.Floor().Len())
}

func TestProperty_TickKeepsInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p, err := player.New(profiles(), player.Ports{},
			player.Options{Slots: 3, StartingWeapons: []string{"carrion_9mm", "esp_cano_curto"}}, nil)
		if err != nil {
			rt.Fatalf("New: %v", err)
		}
		now := time.Duration(0)
		steps := rapid.IntRange(1, 80).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			now += time.Duration(rapid.IntRange(0, 300).Draw(rt, "dt_ms")) * ms
			p.Tick(now, player.Input{
				SlotKey:    rapid.IntRange(0, 5).Draw(rt, "slot"),
				DiscardKey: rapid.SampledFrom([]int{0, 0, 0, 0, 1, 2, 3}).Draw(rt, "discard"),
				Reload:     rapid.Bool().Draw(rt, "reload"),
				FireHeld:   rapid.Bool().Draw(rt, "fire"),
				Move:       float64(rapid.IntRange(-1, 1).Draw(rt, "move")),
				Cursor:     weapon.Vec3{X: rapid.Float64Range(-20, 20).Draw(rt, "cx"), Y: rapid.Float64Range(-20, 20).Draw(rt, "cy")},
			})
			if f := p.Facing(); f != 1 && f != -1 {
				rt.Fatalf("facing %v", f)
			}
			if w := p.Controller().Active(); w != nil {
				st := w.State()
				if st.Magazine < 0 || st.Magazine > w.Profile().MagazineCapacity || st.Reserve < 0 {
					rt.Fatalf("bad state %+v", st)
				}
				if !p.Bar().Bucket(w.Profile().ID).Acquired {
					rt.Fatalf("active weapon %q not in bar", w.Profile().ID)
				}
			}
		}
	})
}
