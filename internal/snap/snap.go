package snap

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/object"
)

// Default tunables. Radius caps how far a snap may pull an object from the
// gesture's desired position; the tolerances classify normal pairs as flush
// (dot near -1) or perpendicular (dot near 0).
const (
	DefaultRadius   = 0.3
	DefaultFlushTol = 0.1
	DefaultPerpTol  = 0.1
)

// zeroLengthSq guards quaternion construction against degenerate vectors:
// anything shorter short-circuits to "no match" instead of producing NaN.
const zeroLengthSq = 1e-12

// Resolver aligns a moving object's transform to the nearest compatible
// connection point on another object. Independent of rooms.
type Resolver struct {
	Radius   float32
	FlushTol float32
	PerpTol  float32
}

// NewResolver returns a resolver with the given snap radius; non-positive
// values fall back to the defaults.
func NewResolver(radius, flushTol, perpTol float32) *Resolver {
	if radius <= 0 {
		radius = DefaultRadius
	}
	if flushTol <= 0 {
		flushTol = DefaultFlushTol
	}
	if perpTol <= 0 {
		perpTol = DefaultPerpTol
	}
	return &Resolver{Radius: radius, FlushTol: flushTol, PerpTol: perpTol}
}

// Result is a resolved transform: position plus Euler rotation. When no
// compatible point is in range it equals the desired inputs unchanged.
type Result struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Snapped  bool
}

// ComputeSnapTransform evaluates the moving object's connection points
// under the desired transform against every other object's points under
// their committed transforms. Pairs farther apart than the snap radius are
// skipped; the rest are classified by normal dot product as flush (near -1)
// or perpendicular (near 0). The closest compatible pair wins (ties by
// iteration order); its faces are made flush by the minimal rotation
// carrying the moving normal onto the negated target normal, then the
// moving point is translated onto the target point. Alignments that would
// drag the object farther than the snap radius are discarded.
func (r *Resolver) ComputeSnapTransform(obj *object.Object, desiredPos, desiredRot rl.Vector3, others []*object.Object) Result {
	identity := Result{Position: desiredPos, Rotation: desiredRot}
	if len(obj.Points) == 0 || len(others) == 0 {
		return identity
	}

	moving := object.Transform{Position: desiredPos, Rotation: desiredRot, Scale: obj.Transform.Scale}

	best := identity
	var bestDist float32 = math32.MaxFloat32
	for _, cp := range obj.Points {
		worldP, worldN := object.WorldPoint(moving, cp)
		for _, other := range others {
			if other.ID == obj.ID {
				continue
			}
			for _, ocp := range other.Points {
				worldQ, worldM := object.WorldPoint(other.Transform, ocp)
				dist := rl.Vector3Distance(worldP, worldQ)
				if dist > r.Radius || dist >= bestDist {
					continue
				}
				if !r.compatible(worldN, worldM) {
					continue
				}
				if !tagsAllow(cp.Tags, other.Type) || !tagsAllow(ocp.Tags, obj.Type) {
					continue
				}
				aligned, ok := r.align(moving, cp, worldQ, worldM)
				if !ok {
					continue
				}
				best = aligned
				bestDist = dist
			}
		}
	}
	return best
}

// compatible classifies a pair of world normals: flush when the dot is near
// -1, perpendicular when near 0. Anything else cannot snap.
func (r *Resolver) compatible(n, m rl.Vector3) bool {
	dot := rl.Vector3DotProduct(n, m)
	return math32.Abs(dot+1) <= r.FlushTol || math32.Abs(dot) <= r.PerpTol
}

// tagsAllow reports whether a point's compatibility tags admit the given
// object type. An empty tag list admits everything.
func tagsAllow(tags []string, objType string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if tag == objType {
			return true
		}
	}
	return false
}

// align produces the snapped transform for one pair: rotate the moving
// point's normal onto the negated target normal, then translate the moving
// point onto the target point. Reports ok=false when the rotation is
// degenerate or the resulting pull exceeds the snap radius.
func (r *Resolver) align(moving object.Transform, cp object.ConnectionPoint, targetPos, targetNormal rl.Vector3) (Result, bool) {
	_, worldN := object.WorldPoint(moving, cp)
	delta, ok := RotationBetween(worldN, rl.Vector3Negate(targetNormal))
	if !ok {
		return Result{}, false
	}

	finalQ := rl.QuaternionNormalize(rl.QuaternionMultiply(delta, moving.RotationQuaternion()))
	finalRot := rl.QuaternionToEuler(finalQ)

	rotated := object.Transform{Position: moving.Position, Rotation: finalRot, Scale: moving.Scale}
	movedP, _ := object.WorldPoint(rotated, cp)
	shift := rl.Vector3Subtract(targetPos, movedP)
	if rl.Vector3Length(shift) > r.Radius {
		return Result{}, false
	}

	return Result{
		Position: rl.Vector3Add(moving.Position, shift),
		Rotation: finalRot,
		Snapped:  true,
	}, true
}

// RotationBetween returns the minimal rotation carrying unit vector from
// onto unit vector to, via the half-way-vector construction. Exactly
// opposite vectors take a 180-degree turn about an axis orthogonal to
// from, since the general formula is singular there. Degenerate inputs
// report ok=false.
func RotationBetween(from, to rl.Vector3) (rl.Quaternion, bool) {
	if lenSq(from) < zeroLengthSq || lenSq(to) < zeroLengthSq {
		return rl.QuaternionIdentity(), false
	}
	from = rl.Vector3Normalize(from)
	to = rl.Vector3Normalize(to)

	dot := rl.Vector3DotProduct(from, to)
	if dot >= 1-1e-6 {
		return rl.QuaternionIdentity(), true
	}
	if dot <= -1+1e-6 {
		axis := rl.Vector3CrossProduct(from, rl.NewVector3(1, 0, 0))
		if lenSq(axis) < zeroLengthSq {
			axis = rl.Vector3CrossProduct(from, rl.NewVector3(0, 1, 0))
		}
		return rl.QuaternionFromAxisAngle(rl.Vector3Normalize(axis), math32.Pi), true
	}

	half := rl.Vector3Add(from, to)
	if lenSq(half) < zeroLengthSq {
		return rl.QuaternionIdentity(), false
	}
	half = rl.Vector3Normalize(half)
	cross := rl.Vector3CrossProduct(from, half)
	q := rl.NewQuaternion(cross.X, cross.Y, cross.Z, rl.Vector3DotProduct(from, half))
	return rl.QuaternionNormalize(q), true
}

func lenSq(v rl.Vector3) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}
