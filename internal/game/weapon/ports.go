package weapon

//go:generate mockgen -destination=mock/mock.go -package=weaponmock github.com/cory-johannsen/armory/internal/game/weapon ProjectileSpawner,AudioPlayer,HUD,ArmRecoiler,Body

// SpawnRequest asks the projectile layer to create one projectile.
type SpawnRequest struct {
	WeaponID string
	Position Vec3
	// Rotation is the sprite rotation in degrees, including the profile's
	// sprite rotation offset.
	Rotation   float64
	Velocity   Vec2
	Range      float64
	Projectile ProjectileDef
}

// ProjectileSpawner creates projectile entities.
type ProjectileSpawner interface {
	Spawn(req SpawnRequest)
}

// AudioPlayer plays a clip fire-and-forget.
type AudioPlayer interface {
	Play(clip string)
}

// Readout is the ammunition tuple shown by the HUD.
type Readout struct {
	Current  int
	Capacity int
	Reserve  int
	Name     string
	Kind     int
}

// HUD displays the active weapon's ammunition.
type HUD interface {
	ShowAmmo(r Readout)
	Clear()
}

// ArmRecoiler applies a transient visual offset to the arm.
type ArmRecoiler interface {
	ApplyRecoil(direction Vec2, magnitude float64)
}

// Body is the player body that receives kickback.
type Body interface {
	ApplyImpulse(force Vec2)
	KickbackApplied()
}

// Ports bundles the collaborators a weapon drives. Spawner and Body are
// required by the controller; the others may be nil.
type Ports struct {
	Spawner ProjectileSpawner
	Audio   AudioPlayer
	HUD     HUD
	Arm     ArmRecoiler
	Body    Body
}

// WithDefaults replaces nil collaborators with no-ops.
func (p Ports) WithDefaults() Ports {
	if p.Spawner == nil {
		p.Spawner = nopSpawner{}
	}
	if p.Audio == nil {
		p.Audio = nopAudio{}
	}
	if p.HUD == nil {
		p.HUD = nopHUD{}
	}
	if p.Arm == nil {
		p.Arm = nopArm{}
	}
	if p.Body == nil {
		p.Body = nopBody{}
	}
	return p
}

type nopSpawner struct{}

func (nopSpawner) Spawn(SpawnRequest) {}

type nopAudio struct{}

func (nopAudio) Play(string) {}

type nopHUD struct{}

func (nopHUD) ShowAmmo(Readout) {}
func (nopHUD) Clear()           {}

type nopArm struct{}

func (nopArm) ApplyRecoil(Vec2, float64) {}

type nopBody struct{}

func (nopBody) ApplyImpulse(Vec2) {}
func (nopBody) KickbackApplied()  {}
