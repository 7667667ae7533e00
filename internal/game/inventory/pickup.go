package inventory

import (
	"fmt"

	"go.uber.org/zap"
)

// PickupKind distinguishes ammunition from weapon pickups.
type PickupKind string

const (
	PickupAmmo   PickupKind = "ammo"
	PickupWeapon PickupKind = "weapon"
)

// Pickup is a collectible lying in the world.
type Pickup struct {
	Kind     PickupKind `yaml:"kind"`
	WeaponID string     `yaml:"weapon"`
	// Amount is the number of rounds of an ammo pickup. Weapon pickups carry
	// no quantity.
	Amount int `yaml:"amount"`
}

// Collect applies p to the bar.
//
// Postcondition: returns true when the pickup was consumed. A weapon pickup
// that cannot be placed is left in the world.
func (b *Bar) Collect(p Pickup) (bool, error) {
	switch p.Kind {
	case PickupAmmo:
		if err := b.AddAmmo(p.WeaponID, p.Amount); err != nil {
			return false, fmt.Errorf("inventory: Bar.Collect: %w", err)
		}
		return true, nil
	case PickupWeapon:
		if p.Amount != 0 {
			b.logger.Debug("weapon pickup quantity ignored", zap.Int("amount", p.Amount))
		}
		return b.AddWeapon(p.WeaponID), nil
	default:
		return false, fmt.Errorf("inventory: Bar.Collect: unknown pickup kind %q", p.Kind)
	}
}
