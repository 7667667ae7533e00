// Package inventory tracks the player's quick-slot bar and the ammunition
// gathered for each weapon archetype.
package inventory

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/weapon"
)

var (
	// ErrSlotOutOfRange is returned for a slot index outside the bar.
	ErrSlotOutOfRange = errors.New("slot index out of range")
	// ErrNegativeAmount is returned when a negative ammo amount is added.
	ErrNegativeAmount = errors.New("ammo amount must be >= 0")
	// ErrUnknownWeapon is returned for an archetype with no weapon profile.
	ErrUnknownWeapon = errors.New("unknown weapon")
)

// Arsenal is the live weapon collection the bar feeds. *controller.Controller
// satisfies it.
type Arsenal interface {
	Has(id string) bool
	Weapon(id string) (weapon.Weapon, error)
	ActiveID() string
	Holster()
}

// Bucket is the ammunition bookkeeping for one archetype.
type Bucket struct {
	// Accumulated is every round ever picked up for the archetype. It is a
	// display total and is never reduced.
	Accumulated int
	// Pending is ammo picked up while the archetype was not held. It moves
	// into the weapon's reserve on the next weapon pickup.
	Pending int
	// Acquired is true while the archetype occupies a slot.
	Acquired bool
}

// SlotView is one slot as shown on the slot bar.
type SlotView struct {
	// Index is the zero-based slot index; the selection key is Index+1.
	Index    int
	WeaponID string
	Name     string
	Ammo     int
	Active   bool
}

// Empty reports whether the slot holds no weapon.
func (v SlotView) Empty() bool { return v.WeaponID == "" }

// SlotSink displays the slot bar.
type SlotSink interface {
	ShowSlots(slots []SlotView)
}

type nopSink struct{}

func (nopSink) ShowSlots([]SlotView) {}

// Bar is the quick-slot bar.
//
// Invariant: a weapon ID occupies at most one slot, and Bucket(id).Acquired
// is true iff id occupies a slot.
type Bar struct {
	slots   []string
	buckets map[string]*Bucket
	arsenal Arsenal
	sink    SlotSink
	logger  *zap.Logger
}

// NewBar returns a bar with n empty slots feeding arsenal.
//
// Precondition: n > 0 and arsenal is not nil (panics otherwise).
// Postcondition: every slot is empty; sink defaults to a no-op.
func NewBar(n int, arsenal Arsenal, sink SlotSink, logger *zap.Logger) *Bar {
	if n <= 0 {
		panic(fmt.Sprintf("inventory: NewBar: n must be > 0, got %d", n))
	}
	if arsenal == nil {
		panic("inventory: NewBar: arsenal must not be nil")
	}
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bar{
		slots:   make([]string, n),
		buckets: make(map[string]*Bucket),
		arsenal: arsenal,
		sink:    sink,
		logger:  logger,
	}
}

// Len returns the number of slots.
func (b *Bar) Len() int { return len(b.slots) }

// Bucket returns a copy of the bucket for id. Unknown IDs report the zero
// Bucket.
func (b *Bar) Bucket(id string) Bucket {
	if bk, ok := b.buckets[id]; ok {
		return *bk
	}
	return Bucket{}
}

func (b *Bar) bucket(id string) *Bucket {
	bk, ok := b.buckets[id]
	if !ok {
		bk = &Bucket{}
		b.buckets[id] = bk
	}
	return bk
}

// AddWeapon places id in the first empty slot and moves any pending ammo
// into the weapon's reserve.
//
// Postcondition: returns true iff the weapon was placed. A full bar, an
// unknown ID or an ID already held leave the bar unchanged.
func (b *Bar) AddWeapon(id string) bool {
	if !b.arsenal.Has(id) {
		b.logger.Warn("weapon pickup for unknown archetype", zap.String("weapon", id))
		return false
	}
	bk := b.bucket(id)
	if bk.Acquired {
		b.logger.Info("weapon already held", zap.String("weapon", id))
		return false
	}
	idx := b.firstEmpty()
	if idx < 0 {
		b.logger.Warn("no empty slot for weapon", zap.String("weapon", id))
		return false
	}
	w, err := b.arsenal.Weapon(id)
	if err != nil {
		b.logger.Error("weapon instance unavailable", zap.String("weapon", id), zap.Error(err))
		return false
	}

	b.slots[idx] = id
	bk.Acquired = true
	if bk.Pending > 0 {
		w.AddReserve(bk.Pending)
		b.logger.Info("pending ammo transferred",
			zap.String("weapon", id),
			zap.Int("rounds", bk.Pending),
		)
		bk.Pending = 0
	}
	if b.arsenal.ActiveID() == id {
		w.RefreshHUD()
	}
	b.logger.Info("weapon added", zap.String("weapon", id), zap.Int("slot", idx))
	b.Refresh()
	return true
}

// AddAmmo records amount rounds for id. When id is held the rounds go
// straight into the weapon's reserve; otherwise they wait in the bucket.
//
// Postcondition: returns an error wrapping ErrNegativeAmount or
// ErrUnknownWeapon without changing state.
func (b *Bar) AddAmmo(id string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("inventory: Bar.AddAmmo: %d: %w", amount, ErrNegativeAmount)
	}
	if !b.arsenal.Has(id) {
		return fmt.Errorf("inventory: Bar.AddAmmo: %q: %w", id, ErrUnknownWeapon)
	}
	bk := b.bucket(id)
	bk.Accumulated += amount
	if bk.Acquired {
		w, err := b.arsenal.Weapon(id)
		if err != nil {
			return fmt.Errorf("inventory: Bar.AddAmmo: %w", err)
		}
		w.AddReserve(amount)
		if b.arsenal.ActiveID() == id {
			w.RefreshHUD()
		}
	} else {
		bk.Pending += amount
	}
	b.logger.Info("ammo added",
		zap.String("weapon", id),
		zap.Int("amount", amount),
		zap.Int("accumulated", bk.Accumulated),
	)
	b.Refresh()
	return nil
}

// DiscardSlot empties slot index. The archetype's bucket is kept for a
// future pickup. Discarding the active weapon holsters it.
//
// Postcondition: returns an error wrapping ErrSlotOutOfRange for a bad
// index; discarding an empty slot is a no-op.
func (b *Bar) DiscardSlot(index int) error {
	if err := b.checkIndex(index); err != nil {
		return fmt.Errorf("inventory: Bar.DiscardSlot: %w", err)
	}
	id := b.slots[index]
	if id == "" {
		return nil
	}
	b.slots[index] = ""
	b.bucket(id).Acquired = false
	if b.arsenal.ActiveID() == id {
		b.arsenal.Holster()
	}
	b.logger.Info("weapon discarded", zap.String("weapon", id), zap.Int("slot", index))
	b.Refresh()
	return nil
}

// SelectSlot returns the weapon ID in slot index for the caller to switch
// to. An empty slot holsters the active weapon and returns "".
//
// Postcondition: returns an error wrapping ErrSlotOutOfRange for a bad index.
func (b *Bar) SelectSlot(index int) (string, error) {
	if err := b.checkIndex(index); err != nil {
		return "", fmt.Errorf("inventory: Bar.SelectSlot: %w", err)
	}
	id := b.slots[index]
	if id == "" {
		b.arsenal.Holster()
		return "", nil
	}
	return id, nil
}

// Slots returns the current slot contents.
func (b *Bar) Slots() []SlotView {
	active := b.arsenal.ActiveID()
	out := make([]SlotView, len(b.slots))
	for i, id := range b.slots {
		out[i] = SlotView{Index: i, WeaponID: id}
		if id == "" {
			continue
		}
		out[i].Ammo = b.Bucket(id).Accumulated
		out[i].Active = id == active
		if w, err := b.arsenal.Weapon(id); err == nil {
			out[i].Name = w.Profile().Name
		}
	}
	return out
}

// Refresh pushes the current slots to the sink.
func (b *Bar) Refresh() {
	b.sink.ShowSlots(b.Slots())
}

func (b *Bar) firstEmpty() int {
	for i, id := range b.slots {
		if id == "" {
			return i
		}
	}
	return -1
}

func (b *Bar) checkIndex(index int) error {
	if index < 0 || index >= len(b.slots) {
		b.logger.Warn("slot index out of range", zap.Int("index", index), zap.Int("slots", len(b.slots)))
		return fmt.Errorf("%d of %d: %w", index, len(b.slots), ErrSlotOutOfRange)
	}
	return nil
}
