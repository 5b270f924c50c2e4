package placement

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/object"
	"scene-editor/internal/room"
)

// DefaultInterpolationSteps is the number of samples taken along the path
// back from a colliding candidate toward the last valid position. A
// tunable approximation of a sweep test: more steps hug the wall tighter
// at linear cost.
const DefaultInterpolationSteps = 10

// BoundsFunc evaluates an object's world AABB at a candidate position
// without mutating the object (the Geometry Query Adapter surface).
type BoundsFunc func(obj *object.Object, at rl.Vector3) rl.BoundingBox

// Solver turns desired positions into allowed positions against a room's
// walls and floor.
type Solver struct {
	bounds BoundsFunc
	steps  int
}

// NewSolver returns a solver using the given bounds adapter. steps below 2
// falls back to DefaultInterpolationSteps: a single step has no interior
// samples, so the solver would reject every colliding candidate outright.
func NewSolver(bounds BoundsFunc, steps int) *Solver {
	if bounds == nil {
		bounds = (*object.Object).WorldBounds
	}
	if steps < 2 {
		steps = DefaultInterpolationSteps
	}
	return &Solver{bounds: bounds, steps: steps}
}

// Result is the outcome of a constrained move. Blocked means the desired
// move was rejected outright and Position is the caller's original.
type Result struct {
	Position rl.Vector3
	Blocked  bool
}

// ConstrainRoomMovement resolves a desired position against a room.
//
// When locked, the desired Y is rederived so the object's lowest bound sits
// exactly on the floor. If the candidate collides with a wall, positions
// along the straight line back toward original are sampled from nearest-
// to-candidate down to nearest-to-original; the first collision-free sample
// wins. If every sample collides the move is rejected and the object stays
// at original. Dragging into a wall therefore slows to a stop at the wall
// instead of freezing far from the cursor.
func (s *Solver) ConstrainRoomMovement(obj *object.Object, desired rl.Vector3, rm room.Room, locked bool, original rl.Vector3) Result {
	candidate := s.settle(obj, desired, rm, locked)
	if !rm.CollidesWith(s.bounds(obj, candidate)) {
		return Result{Position: candidate}
	}

	for i := s.steps - 1; i >= 1; i-- {
		t := float32(i) / float32(s.steps)
		sample := s.settle(obj, rl.Vector3Lerp(original, desired, t), rm, locked)
		if !rm.CollidesWith(s.bounds(obj, sample)) {
			return Result{Position: sample}
		}
	}

	return Result{Position: original, Blocked: true}
}

// settle applies the vertical rules to a candidate: floor-locked objects
// get their Y rederived so the lowest bound touches the floor, and no
// object's lowest bound ever ends up below it.
func (s *Solver) settle(obj *object.Object, candidate rl.Vector3, rm room.Room, locked bool) rl.Vector3 {
	bounds := s.bounds(obj, candidate)
	floor := rm.FloorHeight()
	if locked {
		candidate.Y += floor - bounds.Min.Y
		return candidate
	}
	// Floor-clipping safety net for unlocked objects.
	if bounds.Min.Y < floor {
		candidate.Y += floor - bounds.Min.Y
	}
	return candidate
}
