package weapon

// Shot is the geometry of one trigger pull.
type Shot struct {
	// Origin is the weapon's world position.
	Origin Vec3
	// AimRotation is the arm rotation in degrees applied to the muzzle offset.
	AimRotation float64
	// Facing is +1 when the player faces right and -1 when facing left.
	Facing float64
	// Target is the cursor position in world coordinates.
	Target Vec3
}

// AimDirection returns the normalized planar direction from Origin to Target.
func (s Shot) AimDirection() Vec2 {
	return s.Target.Sub(s.Origin).XY().Normalize()
}

// PelletDeviations returns the angular deviation in degrees of each pellet,
// spread evenly from -spread to +spread.
//
// Precondition: pellets >= 1.
// Postcondition: len(result) == pellets; a single pellet has deviation -spread.
func PelletDeviations(pellets int, spread float64) []float64 {
	out := make([]float64, pellets)
	for i := range out {
		t := 0.0
		if pellets > 1 {
			t = float64(i) / float64(pellets-1)
		}
		out[i] = Lerp(-spread, spread, t)
	}
	return out
}

// SpreadPattern computes the spawn requests for one trigger pull of p.
//
// Precondition: p is valid.
// Postcondition: len(result) == p.PelletsPerShot; every request shares the
// muzzle position.
func SpreadPattern(p *Profile, s Shot) []SpawnRequest {
	aim := s.AimDirection()
	facing := s.Facing
	if facing == 0 {
		facing = 1
	}
	muzzle := s.Origin.Add(p.MuzzleOffset.FlipX(facing).RotateZ(s.AimRotation))

	devs := PelletDeviations(p.PelletsPerShot, p.SpreadDegrees)
	reqs := make([]SpawnRequest, 0, len(devs))
	for _, dev := range devs {
		dir := aim.Rotate(dev).Normalize()
		reqs = append(reqs, SpawnRequest{
			WeaponID:   p.ID,
			Position:   muzzle,
			Rotation:   dir.AngleDeg() + p.SpriteRotation,
			Velocity:   dir.Scale(p.ProjectileSpeed),
			Range:      p.ProjectileRange,
			Projectile: p.Projectile,
		})
	}
	return reqs
}
