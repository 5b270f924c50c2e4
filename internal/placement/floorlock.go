package placement

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/object"
	"scene-editor/internal/room"
)

// LockResult is the floor-lock state machine's verdict for one candidate
// position. Room is the containing room (nil outside all rooms), Locked the
// new flag value, and Position the candidate with the lock's Y snap applied
// when a fresh lock fired.
type LockResult struct {
	Room     room.Room
	Locked   bool
	Position rl.Vector3
}

// ResolveFloorLock runs the two floor-lock transitions for an object moving
// to candidate.
//
// Unlocked -> Locked: the candidate's XZ lies in a room and any part of the
// object's vertical extent is below the wall tops (floor furniture, not a
// ceiling fixture); the Y snaps so the lowest bound touches the floor.
// Locked -> Unlocked: the candidate's XZ leaves all rooms; no re-snap.
// The flag itself lives in the State Store; callers apply Locked there.
func ResolveFloorLock(bounds BoundsFunc, obj *object.Object, candidate rl.Vector3, rooms []room.Room, locked bool) LockResult {
	if bounds == nil {
		bounds = (*object.Object).WorldBounds
	}
	rm := room.FindContainingRoom(rl.NewVector2(candidate.X, candidate.Z), rooms)
	if rm == nil {
		// Outside all rooms the lock clears immediately and vertical
		// movement is unconstrained.
		return LockResult{Position: candidate}
	}

	if locked {
		return LockResult{Room: rm, Locked: true, Position: candidate}
	}

	box := bounds(obj, candidate)
	ceiling := rm.FloorHeight() + rm.WallHeight()
	if box.Min.Y < ceiling {
		candidate.Y += rm.FloorHeight() - box.Min.Y
		return LockResult{Room: rm, Locked: true, Position: candidate}
	}

	// Tall or hovering pass-through volume: inside the room but not pinned.
	return LockResult{Room: rm, Position: candidate}
}
