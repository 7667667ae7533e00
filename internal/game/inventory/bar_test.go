package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/armory/internal/game/controller"
	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/game/weapon"
	"github.com/cory-johannsen/armory/internal/testutil"
)

const (
	pistol  = "carrion_9mm"
	shotgun = "esp_cano_curto"
)

type sinkRecorder struct {
	calls [][]inventory.SlotView
}

func (s *sinkRecorder) ShowSlots(v []inventory.SlotView) { s.calls = append(s.calls, v) }

func (s *sinkRecorder) last() []inventory.SlotView {
	if len(s.calls) == 0 {
		return nil
	}
	return s.calls[len(s.calls)-1]
}

type fixture struct {
	bar  *inventory.Bar
	ctl  *controller.Controller
	rec  *testutil.Recorder
	sink *sinkRecorder
}

// tb is satisfied by *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

func newFixture(t tb, slots int) fixture {
	t.Helper()
	rec := &testutil.Recorder{}
	ctl, err := controller.New(
		[]*weapon.Profile{testutil.PistolProfile(), testutil.ShotgunProfile()},
		rec.Ports(), controller.Options{}, nil)
	require.NoError(t, err)
	sink := &sinkRecorder{}
	return fixture{bar: inventory.NewBar(slots, ctl, sink, nil), ctl: ctl, rec: rec, sink: sink}
}

func reserve(t *testing.T, ctl *controller.Controller, id string) int {
	t.Helper()
	w, err := ctl.Weapon(id)
	require.NoError(t, err)
	return w.State().Reserve
}

func TestNewBar_PanicsOnZeroSlots(t *testing.T) {
	f := newFixture(t, 1)
	assert.Panics(t, func() { inventory.NewBar(0, f.ctl, nil, nil) })
}

func TestAddWeapon_FillsFirstEmptySlot(t *testing.T) {
	f := newFixture(t, 4)
	require.True(t, f.bar.AddWeapon(shotgun))
	require.True(t, f.bar.AddWeapon(pistol))

	slots := f.bar.Slots()
	assert.Equal(t, shotgun, slots[0].WeaponID)
	assert.Equal(t, pistol, slots[1].WeaponID)
	assert.True(t, slots[2].Empty())
	assert.Equal(t, "Carrion 9mm", slots[1].Name)
	assert.True(t, f.bar.Bucket(pistol).Acquired)
}

func TestAddWeapon_AlreadyHeldIsNoop(t *testing.T) {
	f := newFixture(t, 4)
	require.True(t, f.bar.AddWeapon(pistol))
	assert.False(t, f.bar.AddWeapon(pistol))
	assert.True(t, f.bar.Slots()[1].Empty())
}

func TestAddWeapon_FullBarIsNoop(t *testing.T) {
	f := newFixture(t, 1)
	require.True(t, f.bar.AddWeapon(pistol))
	assert.False(t, f.bar.AddWeapon(shotgun))
	assert.False(t, f.bar.Bucket(shotgun).Acquired)
}

func TestAddWeapon_UnknownIsNoop(t *testing.T) {
	f := newFixture(t, 2)
	assert.False(t, f.bar.AddWeapon("bazooka"))
	assert.Empty(t, f.sink.calls)
}

func TestAddWeapon_TransfersPendingAmmoOnce(t *testing.T) {
	f := newFixture(t, 4)
	require.NoError(t, f.bar.AddAmmo(shotgun, 12))
	require.NoError(t, f.bar.AddAmmo(shotgun, 6))
	assert.Equal(t, inventory.Bucket{Accumulated: 18, Pending: 18}, f.bar.Bucket(shotgun))

	require.True(t, f.bar.AddWeapon(shotgun))
	assert.Equal(t, 40+18, reserve(t, f.ctl, shotgun))
	assert.Equal(t, inventory.Bucket{Accumulated: 18, Acquired: true}, f.bar.Bucket(shotgun))
}

func TestAddAmmo_HeldWeaponGoesStraightToReserve(t *testing.T) {
	f := newFixture(t, 4)
	require.True(t, f.bar.AddWeapon(pistol))
	require.NoError(t, f.ctl.Switch(pistol))

	require.NoError(t, f.bar.AddAmmo(pistol, 15))
	assert.Equal(t, 115, reserve(t, f.ctl, pistol))
	assert.Equal(t, 0, f.bar.Bucket(pistol).Pending)

	ro, ok := f.rec.LastReadout()
	require.True(t, ok)
	assert.Equal(t, 115, ro.Reserve)
}

func TestAddAmmo_InactiveWeaponDoesNotTouchHUD(t *testing.T) {
	f := newFixture(t, 4)
	require.True(t, f.bar.AddWeapon(pistol))
	require.True(t, f.bar.AddWeapon(shotgun))
	require.NoError(t, f.ctl.Switch(pistol))
	before := len(f.rec.Readouts)

	require.NoError(t, f.bar.AddAmmo(shotgun, 4))
	assert.Len(t, f.rec.Readouts, before)
	assert.Equal(t, 44, reserve(t, f.ctl, shotgun))
}

func TestAddAmmo_Rejections(t *testing.T) {
	f := newFixture(t, 4)
	assert.ErrorIs(t, f.bar.AddAmmo(pistol, -1), inventory.ErrNegativeAmount)
	assert.ErrorIs(t, f.bar.AddAmmo("bazooka", 1), inventory.ErrUnknownWeapon)
	assert.Equal(t, inventory.Bucket{}, f.bar.Bucket(pistol))
}

func TestDiscardSlot_KeepsBucket(t *testing.T) {
	f := newFixture(t, 4)
	require.NoError(t, f.bar.AddAmmo(pistol, 20))
	require.True(t, f.bar.AddWeapon(pistol))

	require.NoError(t, f.bar.DiscardSlot(0))
	assert.True(t, f.bar.Slots()[0].Empty())
	assert.Equal(t, inventory.Bucket{Accumulated: 20}, f.bar.Bucket(pistol))
	assert.Equal(t, 0, f.rec.Clears)
}

func TestDiscardSlot_ActiveWeaponHolstersAndClearsHUD(t *testing.T) {
	f := newFixture(t, 4)
	require.True(t, f.bar.AddWeapon(pistol))
	require.NoError(t, f.ctl.Switch(pistol))

	require.NoError(t, f.bar.DiscardSlot(0))
	assert.Equal(t, "", f.ctl.ActiveID())
	assert.Equal(t, 1, f.rec.Clears)
}

func TestDiscardSlot_EmptySlotIsNoop(t *testing.T) {
	f := newFixture(t, 2)
	require.NoError(t, f.bar.DiscardSlot(1))
	assert.Empty(t, f.sink.calls)
}

func TestDiscardSlot_OutOfRange(t *testing.T) {
	f := newFixture(t, 2)
	assert.ErrorIs(t, f.bar.DiscardSlot(2), inventory.ErrSlotOutOfRange)
	assert.ErrorIs(t, f.bar.DiscardSlot(-1), inventory.ErrSlotOutOfRange)
}

func TestRepickup_TransfersOnlyAmmoGatheredWhileDiscarded(t *testing.T) {
	f := newFixture(t, 4)
	require.True(t, f.bar.AddWeapon(pistol))
	require.NoError(t, f.bar.AddAmmo(pistol, 10))
	require.NoError(t, f.bar.DiscardSlot(0))
	require.NoError(t, f.bar.AddAmmo(pistol, 5))

	require.True(t, f.bar.AddWeapon(pistol))
	assert.Equal(t, 100+10+5, reserve(t, f.ctl, pistol))
	assert.Equal(t, 15, f.bar.Bucket(pistol).Accumulated)
}

func TestSelectSlot(t *testing.T) {
	f := newFixture(t, 3)
	require.True(t, f.bar.AddWeapon(shotgun))

	id, err := f.bar.SelectSlot(0)
	require.NoError(t, err)
	assert.Equal(t, shotgun, id)

	require.NoError(t, f.ctl.Switch(shotgun))
	id, err = f.bar.SelectSlot(2)
	require.NoError(t, err)
	assert.Equal(t, "", id)
	assert.Equal(t, "", f.ctl.ActiveID())
	assert.Equal(t, 1, f.rec.Clears)

	_, err = f.bar.SelectSlot(3)
	assert.ErrorIs(t, err, inventory.ErrSlotOutOfRange)
}

func TestSink_ReceivesViewsAfterChanges(t *testing.T) {
	f := newFixture(t, 2)
	require.True(t, f.bar.AddWeapon(pistol))
	require.NoError(t, f.ctl.Switch(pistol))
	require.NoError(t, f.bar.AddAmmo(pistol, 7))

	require.Len(t, f.sink.calls, 2)
	last := f.sink.last()
	require.Len(t, last, 2)
	assert.Equal(t, inventory.SlotView{Index: 0, WeaponID: pistol, Name: "Carrion 9mm", Ammo: 7, Active: true}, last[0])
	assert.Equal(t, inventory.SlotView{Index: 1}, last[1])
}

func TestCollect(t *testing.T) {
	f := newFixture(t, 1)

	ok, err := f.bar.Collect(inventory.Pickup{Kind: inventory.PickupAmmo, WeaponID: shotgun, Amount: 8})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.bar.Collect(inventory.Pickup{Kind: inventory.PickupWeapon, WeaponID: shotgun, Amount: 99})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 48, reserve(t, f.ctl, shotgun))

	ok, err = f.bar.Collect(inventory.Pickup{Kind: inventory.PickupWeapon, WeaponID: pistol})
	require.NoError(t, err)
	assert.False(t, ok, "weapon pickup stays in the world when the bar is full")

	_, err = f.bar.Collect(inventory.Pickup{Kind: "armor"})
	assert.Error(t, err)

	_, err = f.bar.Collect(inventory.Pickup{Kind: inventory.PickupAmmo, WeaponID: pistol, Amount: -3})
	assert.ErrorIs(t, err, inventory.ErrNegativeAmount)
}

func TestProperty_Bar_SlotInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(rt, 3)
		ids := []string{pistol, shotgun}
		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(ids).Draw(rt, "id")
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				f.bar.AddWeapon(id)
			case 1:
				_ = f.bar.AddAmmo(id, rapid.IntRange(0, 50).Draw(rt, "amount"))
			case 2:
				_ = f.bar.DiscardSlot(rapid.IntRange(0, 2).Draw(rt, "slot"))
			case 3:
				if sel, err := f.bar.SelectSlot(rapid.IntRange(0, 2).Draw(rt, "slot")); err == nil && sel != "" {
					_ = f.ctl.Switch(sel)
				}
			}

			seen := map[string]int{}
			for _, s := range f.bar.Slots() {
				if !s.Empty() {
					seen[s.WeaponID]++
				}
			}
			for _, id := range ids {
				if seen[id] > 1 {
					rt.Fatalf("%s occupies %d slots", id, seen[id])
				}
				if got := f.bar.Bucket(id).Acquired; got != (seen[id] == 1) {
					rt.Fatalf("%s acquired=%v but slotted=%v", id, got, seen[id] == 1)
				}
				if f.bar.Bucket(id).Pending < 0 || f.bar.Bucket(id).Accumulated < f.bar.Bucket(id).Pending {
					rt.Fatalf("%s bucket inconsistent: %+v", id, f.bar.Bucket(id))
				}
			}
		}
	})
}
