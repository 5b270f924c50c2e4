package object

import (
	"github.com/chewxy/math32"
	"github.com/google/uuid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is a world-space placement: position, rotation as Euler angles
// (pitch/yaw/roll, radians), and per-axis scale.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
}

// ConnectionPoint is a local-space attachment site: a position on the
// object's surface and the outward normal of that surface. Tags, when
// present, restrict which object types may snap onto this point.
// Connection points are used only for snapping, never for collision.
type ConnectionPoint struct {
	Position rl.Vector3
	Normal   rl.Vector3
	Tags     []string
}

// Object is a placeable scene entity. The State Store owns it; resolvers
// receive it read-only and never mutate it in place.
type Object struct {
	ID        uuid.UUID
	Name      string
	Type      string
	Transform Transform
	// Points are computed once at creation from the bounding geometry and
	// are immutable afterwards; their world placement follows the transform.
	Points  []ConnectionPoint
	Opening OpeningKind
}

// New returns an object of the given type at position with the given scale,
// unit rotation, and a fresh id.
func New(objType string, position, scale rl.Vector3) *Object {
	return &Object{
		ID:   uuid.New(),
		Type: objType,
		Transform: Transform{
			Position: position,
			Scale:    scale,
		},
	}
}

// RotationQuaternion returns the transform's rotation as a quaternion.
func (t Transform) RotationQuaternion() rl.Quaternion {
	return rl.QuaternionFromEuler(t.Rotation.X, t.Rotation.Y, t.Rotation.Z)
}

// safeScale substitutes 1 for zero scale components so degenerate objects
// still have usable bounds.
func safeScale(s rl.Vector3) rl.Vector3 {
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	return s
}

// WorldBounds evaluates the object's world AABB as if it were placed at
// `at`, without mutating the object. The local box is the unit cube scaled
// by the transform's scale, centered on the position; rotation is applied
// to all eight corners and the result re-boxed, so rotated objects get a
// conservative axis-aligned hull.
func (o *Object) WorldBounds(at rl.Vector3) rl.BoundingBox {
	s := safeScale(o.Transform.Scale)
	half := rl.NewVector3(s.X*0.5, s.Y*0.5, s.Z*0.5)
	q := o.Transform.RotationQuaternion()

	min := rl.NewVector3(math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32)
	max := rl.NewVector3(-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32)
	for i := 0; i < 8; i++ {
		corner := rl.NewVector3(
			half.X*sign(i&1 == 1),
			half.Y*sign(i&2 == 2),
			half.Z*sign(i&4 == 4),
		)
		w := rl.Vector3Add(at, rl.Vector3RotateByQuaternion(corner, q))
		min = rl.NewVector3(math32.Min(min.X, w.X), math32.Min(min.Y, w.Y), math32.Min(min.Z, w.Z))
		max = rl.NewVector3(math32.Max(max.X, w.X), math32.Max(max.Y, w.Y), math32.Max(max.Z, w.Z))
	}
	return rl.NewBoundingBox(min, max)
}

// Bounds is WorldBounds at the object's committed position.
func (o *Object) Bounds() rl.BoundingBox {
	return o.WorldBounds(o.Transform.Position)
}

// WorldPoint returns a connection point's world position and unit normal
// under the given transform: scale, then rotate, then translate. The normal
// is rotated only.
func WorldPoint(t Transform, cp ConnectionPoint) (pos, normal rl.Vector3) {
	q := t.RotationQuaternion()
	scaled := rl.Vector3Multiply(cp.Position, safeScale(t.Scale))
	pos = rl.Vector3Add(t.Position, rl.Vector3RotateByQuaternion(scaled, q))
	normal = rl.Vector3Normalize(rl.Vector3RotateByQuaternion(cp.Normal, q))
	return pos, normal
}

func sign(b bool) float32 {
	if b {
		return 1
	}
	return -1
}
