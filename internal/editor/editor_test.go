package editor

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/catalog"
	"scene-editor/internal/editorconfig"
	"scene-editor/internal/room"
	"scene-editor/internal/store"
)

const tol = 1e-3

func sceneWithRoom(t *testing.T) (*Editor, room.Room) {
	t.Helper()
	st := store.New()
	floor := []rl.Vector2{
		rl.NewVector2(-5, -5),
		rl.NewVector2(5, -5),
		rl.NewVector2(5, 5),
		rl.NewVector2(-5, 5),
	}
	rm := room.NewPolygonRoom("room", floor, 0, 3)
	st.Rooms().Add(rm)
	return New(st, editorconfig.Default(), nil), rm
}

func TestDragLocksAndCommits(t *testing.T) {
	e, _ := sceneWithRoom(t)
	cube, err := catalog.Default().Instantiate("cube", rl.NewVector3(0, 2, 0))
	if err != nil {
		t.Fatal(err)
	}
	e.Store().Add(cube)

	if err := e.BeginDrag(cube.ID); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	preview, err := e.DragTo(rl.NewVector3(1, 2, 1), rl.NewVector3(0, 0, 0))
	if err != nil {
		t.Fatalf("DragTo: %v", err)
	}
	if !preview.Locked {
		t.Fatal("cube inside the room should floor-lock")
	}
	if math32.Abs(preview.Position.Y-0.5) > tol {
		t.Fatalf("locked preview Y = %f, want 0.5", preview.Position.Y)
	}
	if !e.Store().IsFloorLocked(cube.ID) {
		t.Fatal("lock flag not recorded in the store")
	}

	// Authoritative state is untouched until EndDrag.
	if e.Store().Get(cube.ID).Transform.Position.Y != 2 {
		t.Fatal("drag mutated the store before commit")
	}

	if err := e.EndDrag(); err != nil {
		t.Fatalf("EndDrag: %v", err)
	}
	got := e.Store().Get(cube.ID).Transform.Position
	if math32.Abs(got.X-1) > tol || math32.Abs(got.Y-0.5) > tol || math32.Abs(got.Z-1) > tol {
		t.Fatalf("committed position = %v, want (1,0.5,1)", got)
	}
}

func TestDragIntoWallCommitsLastAccepted(t *testing.T) {
	e, rm := sceneWithRoom(t)
	cube, err := catalog.Default().Instantiate("cube", rl.NewVector3(4, 0.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	e.Store().Add(cube)
	e.Store().SetFloorLocked(cube.ID, true)

	if err := e.BeginDrag(cube.ID); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	// Desired position pushes the cube's face through the x=5 wall.
	preview, err := e.DragTo(rl.NewVector3(4.8, 0.5, 0), rl.NewVector3(0, 0, 0))
	if err != nil {
		t.Fatalf("DragTo: %v", err)
	}
	if preview.Blocked {
		t.Fatal("partial movement toward the wall should not be blocked")
	}
	if err := e.EndDrag(); err != nil {
		t.Fatalf("EndDrag: %v", err)
	}

	got := e.Store().Get(cube.ID).Transform.Position
	if got.X <= 4 || got.X > 4.5+tol {
		t.Fatalf("committed X = %f, want in (4, 4.5] just short of the wall", got.X)
	}
	if rm.CollidesWith(cube.WorldBounds(got)) {
		t.Fatalf("committed position %v collides with the wall", got)
	}
}

func TestMoveWithRotationStopsAtWall(t *testing.T) {
	e, rm := sceneWithRoom(t)
	plank, err := catalog.Default().Instantiate("cube", rl.NewVector3(0, 0.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	plank.Transform.Scale = rl.NewVector3(1, 1, 4)
	e.Store().Add(plank)

	// Unrotated, the plank runs along Z and the X span at the desired
	// position clears the x=5 wall. The quarter yaw swings the long axis
	// onto X, so the same position would pierce the wall; the move has to
	// stop where the rotated extent still fits.
	preview, err := e.MoveObject(plank.ID, rl.NewVector3(3.4, 0.5, 0), rl.NewVector3(0, math32.Pi/2, 0))
	if err != nil {
		t.Fatalf("MoveObject: %v", err)
	}
	if preview.Blocked {
		t.Fatal("partial movement toward the wall should not be blocked")
	}
	got := e.Store().Get(plank.ID).Transform
	if math32.Abs(got.Rotation.Y-math32.Pi/2) > tol {
		t.Fatalf("committed yaw = %f, want pi/2", got.Rotation.Y)
	}
	if got.Position.X <= 0 || got.Position.X > 3+tol {
		t.Fatalf("committed X = %f, want in (0, 3] so the rotated span stays inside", got.Position.X)
	}
	if rm.CollidesWith(plank.WorldBounds(got.Position)) {
		t.Fatalf("committed transform %v pierces the wall", got.Position)
	}
}

func TestBlockedRotationKeepsPreviousRotation(t *testing.T) {
	e, rm := sceneWithRoom(t)
	plank, err := catalog.Default().Instantiate("cube", rl.NewVector3(4, 0.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	plank.Transform.Scale = rl.NewVector3(1, 1, 4)
	e.Store().Add(plank)

	// Rotating in place swings the long axis through the x=5 wall at every
	// sample, so the whole candidate transform is rejected.
	preview, err := e.MoveObject(plank.ID, rl.NewVector3(4, 0.5, 0), rl.NewVector3(0, math32.Pi/2, 0))
	if err != nil {
		t.Fatalf("MoveObject: %v", err)
	}
	if !preview.Blocked {
		t.Fatal("expected the in-place rotation to be blocked")
	}
	got := e.Store().Get(plank.ID).Transform
	if math32.Abs(got.Rotation.Y) > tol {
		t.Fatalf("committed yaw = %f, want 0 (rejected rotation must not commit)", got.Rotation.Y)
	}
	if rm.CollidesWith(plank.WorldBounds(got.Position)) {
		t.Fatalf("committed transform %v pierces the wall", got.Position)
	}
}

func TestBlockedMoveRecordsNoLock(t *testing.T) {
	e, _ := sceneWithRoom(t)
	cube, err := catalog.Default().Instantiate("cube", rl.NewVector3(5.2, 0.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	e.Store().Add(cube)

	// The cube starts outside, straddling the x=5 wall line; every sample
	// between it and the in-room target collides, so the move is rejected
	// and the cube stays outside all rooms. The lock transition that the
	// in-room target would have fired must not reach the store.
	preview, err := e.MoveObject(cube.ID, rl.NewVector3(4.8, 0.5, 0), rl.NewVector3(0, 0, 0))
	if err != nil {
		t.Fatalf("MoveObject: %v", err)
	}
	if !preview.Blocked {
		t.Fatal("expected the move through the wall to be blocked")
	}
	if preview.Locked {
		t.Fatal("rejected move reported a lock it never took")
	}
	if e.Store().IsFloorLocked(cube.ID) {
		t.Fatal("store records a floor lock for an object outside all rooms")
	}
	got := e.Store().Get(cube.ID).Transform.Position
	if math32.Abs(got.X-5.2) > tol {
		t.Fatalf("blocked move shifted the object: %v", got)
	}
}

func TestDragOutOfRoomUnlocks(t *testing.T) {
	e, _ := sceneWithRoom(t)
	cube, err := catalog.Default().Instantiate("cube", rl.NewVector3(0, 0.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	e.Store().Add(cube)
	e.Store().SetFloorLocked(cube.ID, true)

	preview, err := e.MoveObject(cube.ID, rl.NewVector3(50, 4, 50), rl.NewVector3(0, 0, 0))
	if err != nil {
		t.Fatalf("MoveObject: %v", err)
	}
	if preview.Locked {
		t.Fatal("expected unlock outside all rooms")
	}
	if e.Store().IsFloorLocked(cube.ID) {
		t.Fatal("store still reports the stale lock")
	}
	got := e.Store().Get(cube.ID).Transform.Position
	if math32.Abs(got.Y-4) > tol {
		t.Fatalf("vertical movement constrained after unlock: %v", got)
	}
}

func TestDragSnapsToNeighbor(t *testing.T) {
	st := store.New()
	cfg := editorconfig.Default()
	cfg.SnapRadius = 0.6
	e := New(st, cfg, nil)

	cat := catalog.Default()
	mover, _ := cat.Instantiate("cube", rl.NewVector3(5, 1, 5))
	anchor, _ := cat.Instantiate("cube", rl.NewVector3(7, 1, 5))
	st.Add(mover)
	st.Add(anchor)

	preview, err := e.MoveObject(mover.ID, rl.NewVector3(5.5, 1, 5), rl.NewVector3(0, 0, 0))
	if err != nil {
		t.Fatalf("MoveObject: %v", err)
	}
	if !preview.Snapped {
		t.Fatal("expected a snap against the neighbor cube")
	}
	got := st.Get(mover.ID).Transform.Position
	if math32.Abs(got.X-6) > tol {
		t.Fatalf("snapped X = %f, want 6 (faces flush)", got.X)
	}
}

func TestGestureLifecycleErrors(t *testing.T) {
	e, _ := sceneWithRoom(t)
	cube, _ := catalog.Default().Instantiate("cube", rl.NewVector3(0, 0.5, 0))
	e.Store().Add(cube)

	if _, err := e.DragTo(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 0)); err == nil {
		t.Fatal("DragTo without BeginDrag should error")
	}
	if err := e.EndDrag(); err == nil {
		t.Fatal("EndDrag without BeginDrag should error")
	}
	if err := e.BeginDrag(cube.ID); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := e.BeginDrag(cube.ID); err == nil {
		t.Fatal("nested BeginDrag should error")
	}
	e.CancelDrag()
	if err := e.EndDrag(); err == nil {
		t.Fatal("EndDrag after cancel should error")
	}
}
