package weapon

import "math"

// Vec2 is a 2D vector used for directions, velocities and forces.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec3 is a position or offset. Z is carried through for layering but the
// simulation is planar.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec2) Add(u Vec2) Vec2        { return Vec2{v.X + u.X, v.Y + u.Y} }
func (v Vec2) Sub(u Vec2) Vec2        { return Vec2{v.X - u.X, v.Y - u.Y} }
func (v Vec2) Scale(s float64) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2              { return Vec2{-v.X, -v.Y} }
func (v Vec2) Length() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(u Vec2) float64 { return v.Sub(u).Length() }

// Normalize returns the unit vector in v's direction, or the zero vector when
// v has no length.
func (v Vec2) Normalize() Vec2 {
	m := v.Length()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// Rotate returns v rotated counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// AngleDeg returns atan2(y, x) in degrees.
func (v Vec2) AngleDeg() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

func (v Vec3) Add(u Vec3) Vec3      { return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }
func (v Vec3) Sub(u Vec3) Vec3      { return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// RotateZ rotates v around the Z axis by deg degrees.
func (v Vec3) RotateZ(deg float64) Vec3 {
	r := v.XY().Rotate(deg)
	return Vec3{r.X, r.Y, v.Z}
}

// FlipX returns v with X multiplied by facing (+1 right, -1 left).
func (v Vec3) FlipX(facing float64) Vec3 {
	return Vec3{v.X * facing, v.Y, v.Z}
}

// Extend lifts a planar vector into Vec3 with Z = 0.
func Extend(v Vec2) Vec3 { return Vec3{v.X, v.Y, 0} }

// Lerp interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// LerpVec3 interpolates component-wise between a and b by t.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}
