package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/object"
	"scene-editor/internal/room"
)

// Store owns the authoritative scene state: the object list, the room
// registry, and the per-object floor-lock record. Resolvers never write
// here; transforms are committed only after validation, from the main
// thread. The mutex guards against accidental cross-goroutine use; the
// editor itself is single-threaded.
type Store struct {
	mu      sync.Mutex
	objects map[uuid.UUID]*object.Object
	order   []uuid.UUID
	locked  map[uuid.UUID]bool
	rooms   *room.Registry
}

// New returns an empty store.
func New() *Store {
	return &Store{
		objects: make(map[uuid.UUID]*object.Object),
		locked:  make(map[uuid.UUID]bool),
		rooms:   room.NewRegistry(),
	}
}

// Add inserts an object, assigning an id when it has none. Iteration order
// is insertion order, which also fixes snap-candidate tie-breaks.
func (s *Store) Add(obj *object.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj.ID == uuid.Nil {
		obj.ID = uuid.New()
	}
	if _, ok := s.objects[obj.ID]; !ok {
		s.order = append(s.order, obj.ID)
	}
	s.objects[obj.ID] = obj
}

// Remove deletes an object and its floor-lock record. Unknown ids are
// ignored.
func (s *Store) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return
	}
	delete(s.objects, id)
	delete(s.locked, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns the stored object, or nil.
func (s *Store) Get(id uuid.UUID) *object.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[id]
}

// Objects returns all objects in insertion order.
func (s *Store) Objects() []*object.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*object.Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// Others returns all objects except the one with the given id, in
// insertion order. This is the snap resolver's candidate set.
func (s *Store) Others(id uuid.UUID) []*object.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*object.Object, 0, len(s.order))
	for _, oid := range s.order {
		if oid == id {
			continue
		}
		out = append(out, s.objects[oid])
	}
	return out
}

// Snapshot returns a deep copy of an object for preview mutation during a
// drag. The copy shares nothing with the stored object.
func (s *Store) Snapshot(id uuid.UUID) (*object.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("store: no object %s", id)
	}
	var dst object.Object
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("store: snapshot %s: %w", id, err)
	}
	return &dst, nil
}

// CommitTransform writes a validated transform to the authoritative
// object. Callers must have run the constraint pipeline first.
func (s *Store) CommitTransform(id uuid.UUID, position, rotation rl.Vector3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("store: no object %s", id)
	}
	obj.Transform.Position = position
	obj.Transform.Rotation = rotation
	return nil
}

// IsFloorLocked reports the object's floor-lock flag. Unknown ids are
// unlocked.
func (s *Store) IsFloorLocked(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked[id]
}

// SetFloorLocked records the floor-lock flag for an object. Single source
// of truth; only the floor-lock state machine's verdicts should land here.
func (s *Store) SetFloorLocked(id uuid.UUID, locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locked {
		s.locked[id] = true
	} else {
		delete(s.locked, id)
	}
}

// Rooms exposes the scene's room registry.
func (s *Store) Rooms() *room.Registry {
	return s.rooms
}
