package editor

import (
	"fmt"

	"github.com/google/uuid"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/editorconfig"
	"scene-editor/internal/logger"
	"scene-editor/internal/object"
	"scene-editor/internal/placement"
	"scene-editor/internal/snap"
	"scene-editor/internal/store"
)

// Editor wires the constraint solver, the snap resolver, and the state
// store into the two gesture call sites: a continuous drag callback and a
// drag-end commit. Single-goroutine; the drag mutates only the preview
// until EndDrag.
type Editor struct {
	store  *store.Store
	solver *placement.Solver
	snap   *snap.Resolver
	log    *logger.Logger
	drag   *dragState
}

// dragState is the transient gesture state. original tracks the last
// accepted position, which anchors the solver's wall-stop interpolation on
// the next pointer move.
type dragState struct {
	id       uuid.UUID
	preview  *object.Object
	original rl.Vector3
	rotation rl.Vector3
}

// Preview is the transform shown while dragging, before commit.
type Preview struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Blocked  bool
	Snapped  bool
	Locked   bool
}

// New builds an editor over a store with the given tunables. log may be
// nil to disable event logging.
func New(st *store.Store, cfg editorconfig.Config, log *logger.Logger) *Editor {
	return &Editor{
		store:  st,
		solver: placement.NewSolver(nil, cfg.InterpolationSteps),
		snap:   snap.NewResolver(cfg.SnapRadius, cfg.FlushTolerance, cfg.PerpTolerance),
		log:    log,
	}
}

// Store exposes the underlying state store.
func (e *Editor) Store() *store.Store {
	return e.store
}

// BeginDrag starts a gesture on an object, snapshotting it for preview.
func (e *Editor) BeginDrag(id uuid.UUID) error {
	if e.drag != nil {
		return fmt.Errorf("editor: drag already in progress on %s", e.drag.id)
	}
	preview, err := e.store.Snapshot(id)
	if err != nil {
		return err
	}
	e.drag = &dragState{
		id:       id,
		preview:  preview,
		original: preview.Transform.Position,
		rotation: preview.Transform.Rotation,
	}
	return nil
}

// DragTo runs the placement pipeline for one pointer move: floor-lock
// evaluation, room constraint, connection-point snapping, a final wall
// check on the snapped transform, and the lock transition at the accepted
// position. Only the preview and the lock flag move; the object's
// committed transform is untouched until EndDrag.
func (e *Editor) DragTo(desiredPos, desiredRot rl.Vector3) (Preview, error) {
	if e.drag == nil {
		return Preview{}, fmt.Errorf("editor: no drag in progress")
	}
	d := e.drag
	rooms := e.store.Rooms().All()

	// Every bounds query below must see the rotation being committed, not
	// the one from the previous accepted move. A yaw can swing a long
	// object's extent into a wall at a position the old extent cleared.
	prevRot := d.rotation
	d.preview.Transform.Rotation = desiredRot

	wasLocked := e.store.IsFloorLocked(d.id)
	lock := placement.ResolveFloorLock(nil, d.preview, desiredPos, rooms, wasLocked)

	candidate := lock.Position
	blocked := false
	if lock.Room != nil {
		res := e.solver.ConstrainRoomMovement(d.preview, candidate, lock.Room, lock.Locked, d.original)
		candidate = res.Position
		blocked = res.Blocked
		if blocked {
			e.logf("move blocked for %s at %v", d.id, desiredPos)
		}
	}

	finalPos, finalRot := candidate, desiredRot
	snapped := false
	if blocked {
		// A fully blocked move rejects the whole candidate transform,
		// rotation included; original was only ever validated under the
		// rotation it was accepted with.
		finalPos, finalRot = d.original, prevRot
	} else {
		res := e.snap.ComputeSnapTransform(d.preview, candidate, desiredRot, e.store.Others(d.id))
		if res.Snapped {
			// The snapped transform still has to respect the walls. The
			// preview's rotation feeds its bounds, so set it first.
			d.preview.Transform.Rotation = res.Rotation
			if lock.Room == nil || !lock.Room.CollidesWith(d.preview.WorldBounds(res.Position)) {
				finalPos, finalRot = res.Position, res.Rotation
				snapped = true
				e.logf("snap for %s at %v", d.id, finalPos)
			}
		}
	}

	d.preview.Transform.Position = finalPos
	d.preview.Transform.Rotation = finalRot
	if !blocked {
		d.original = finalPos
	}
	d.rotation = finalRot

	// The lock flag is the state machine's own state, not part of the
	// transform, so transitions land in the store during the drag. They are
	// evaluated at the accepted position: a rejected move must not record a
	// lock the object never took.
	acceptedLock := placement.ResolveFloorLock(nil, d.preview, finalPos, rooms, wasLocked)
	if acceptedLock.Locked != wasLocked {
		e.store.SetFloorLocked(d.id, acceptedLock.Locked)
		e.logf("floor lock %v for %s", acceptedLock.Locked, d.id)
	}

	return Preview{
		Position: finalPos,
		Rotation: finalRot,
		Blocked:  blocked,
		Snapped:  snapped,
		Locked:   acceptedLock.Locked,
	}, nil
}

// EndDrag commits the last accepted preview transform to the store and
// closes the gesture.
func (e *Editor) EndDrag() error {
	if e.drag == nil {
		return fmt.Errorf("editor: no drag in progress")
	}
	d := e.drag
	e.drag = nil
	return e.store.CommitTransform(d.id, d.original, d.rotation)
}

// CancelDrag abandons the gesture without committing.
func (e *Editor) CancelDrag() {
	e.drag = nil
}

// MoveObject is the programmatic path: one-shot BeginDrag/DragTo/EndDrag.
func (e *Editor) MoveObject(id uuid.UUID, desiredPos, desiredRot rl.Vector3) (Preview, error) {
	if err := e.BeginDrag(id); err != nil {
		return Preview{}, err
	}
	preview, err := e.DragTo(desiredPos, desiredRot)
	if err != nil {
		e.CancelDrag()
		return Preview{}, err
	}
	return preview, e.EndDrag()
}

func (e *Editor) logf(format string, args ...any) {
	if e.log != nil {
		e.log.Logf(format, args...)
	}
}
