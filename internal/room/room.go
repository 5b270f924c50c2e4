package room

import (
	"github.com/google/uuid"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/geometry"
)

// wallContactMargin expands wall boxes slightly during overlap tests so a
// footprint a few millimeters into a wall still registers as contact.
const wallContactMargin = 0.01

// Room is the capability surface shared by the two room variants. Both
// expose the floor outline for containment; wall collision dispatches to
// the variant's own strategy.
type Room interface {
	ID() uuid.UUID
	Name() string
	// FloorPolygon is the ordered XZ outline of the walkable floor,
	// implicitly closed. rl.Vector2.Y carries world Z.
	FloorPolygon() []rl.Vector2
	// FloorHeight is the world Y of the walkable surface.
	FloorHeight() float32
	// WallHeight is the vertical extent of the walls above the floor.
	WallHeight() float32
	// CollidesWith reports whether an object with the given world bounds
	// intersects any wall of the room.
	CollidesWith(bounds rl.BoundingBox) bool
}

// PolygonRoom derives its walls from the floor outline itself: collision is
// footprint-edge against polygon-edge intersection. Handles arbitrary
// simple outlines, including non-rectangular ones.
type PolygonRoom struct {
	id         uuid.UUID
	name       string
	floor      []rl.Vector2
	floorY     float32
	wallHeight float32
	// GridCell is editor grid metadata carried through untouched; the
	// resolvers never read it.
	GridCell float32
}

// NewPolygonRoom builds a room from a floor outline. The outline should
// have at least 3 vertices; a degenerate outline yields a room that
// contains nothing and collides with nothing.
func NewPolygonRoom(name string, floor []rl.Vector2, floorY, wallHeight float32) *PolygonRoom {
	return &PolygonRoom{
		id:         uuid.New(),
		name:       name,
		floor:      floor,
		floorY:     floorY,
		wallHeight: wallHeight,
	}
}

func (r *PolygonRoom) ID() uuid.UUID { return r.id }
func (r *PolygonRoom) Name() string { return r.name }
func (r *PolygonRoom) FloorPolygon() []rl.Vector2 { return r.floor }
func (r *PolygonRoom) FloorHeight() float32 { return r.floorY }
func (r *PolygonRoom) WallHeight() float32 { return r.wallHeight }

// CollidesWith tests the bounds' footprint edges against every edge of the
// floor outline. A footprint fully inside the room, away from any wall,
// never collides; only crossing the outline does.
func (r *PolygonRoom) CollidesWith(bounds rl.BoundingBox) bool {
	if len(r.floor) < 2 {
		return false
	}
	// Objects entirely above the walls pass over them.
	if bounds.Min.Y >= r.floorY+r.wallHeight {
		return false
	}
	fp := geometry.FootprintFromBounds(bounds)
	return geometry.FootprintIntersectsPolygon(fp, r.floor)
}

// SegmentedRoom keeps its walls as discrete world-space boxes (one per wall
// sub-mesh); collision is a 3-axis AABB overlap against each of them.
type SegmentedRoom struct {
	id         uuid.UUID
	name       string
	floor      []rl.Vector2
	floorY     float32
	wallHeight float32
	walls      []rl.BoundingBox
}

// NewSegmentedRoom builds a room whose walls are explicit world-space
// boxes. The floor outline is still used for containment.
func NewSegmentedRoom(name string, floor []rl.Vector2, floorY, wallHeight float32, walls []rl.BoundingBox) *SegmentedRoom {
	return &SegmentedRoom{
		id:         uuid.New(),
		name:       name,
		floor:      floor,
		floorY:     floorY,
		wallHeight: wallHeight,
		walls:      walls,
	}
}

func (r *SegmentedRoom) ID() uuid.UUID { return r.id }
func (r *SegmentedRoom) Name() string { return r.name }
func (r *SegmentedRoom) FloorPolygon() []rl.Vector2 { return r.floor }
func (r *SegmentedRoom) FloorHeight() float32 { return r.floorY }
func (r *SegmentedRoom) WallHeight() float32 { return r.wallHeight }

func (r *SegmentedRoom) CollidesWith(bounds rl.BoundingBox) bool {
	for _, wall := range r.walls {
		if geometry.BoxesOverlap(bounds, wall, wallContactMargin) {
			return true
		}
	}
	return false
}

// FindContainingRoom returns the first room whose floor outline contains
// the XZ point, or nil when none does. Rooms are expected not to overlap;
// when they do, iteration order decides (first match wins).
func FindContainingRoom(point rl.Vector2, rooms []Room) Room {
	for _, r := range rooms {
		if geometry.PointInPolygon(point, r.FloorPolygon()) {
			return r
		}
	}
	return nil
}

// Registry is an explicit index of the rooms in a scene, replacing any
// name-pattern scanning of the scene graph. Iteration order is insertion
// order, which also fixes the overlap tie-break in FindContainingRoom.
type Registry struct {
	rooms []Room
	byID  map[uuid.UUID]Room
}

// NewRegistry returns an empty room registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[uuid.UUID]Room)}
}

// Add appends a room to the registry. Re-adding an id replaces the entry
// in place without changing its position.
func (g *Registry) Add(r Room) {
	if _, ok := g.byID[r.ID()]; ok {
		for i, existing := range g.rooms {
			if existing.ID() == r.ID() {
				g.rooms[i] = r
				break
			}
		}
	} else {
		g.rooms = append(g.rooms, r)
	}
	g.byID[r.ID()] = r
}

// Remove deletes a room by id. Unknown ids are ignored.
func (g *Registry) Remove(id uuid.UUID) {
	if _, ok := g.byID[id]; !ok {
		return
	}
	delete(g.byID, id)
	for i, r := range g.rooms {
		if r.ID() == id {
			g.rooms = append(g.rooms[:i], g.rooms[i+1:]...)
			break
		}
	}
}

// ByID returns the room with the given id, or nil.
func (g *Registry) ByID(id uuid.UUID) Room {
	return g.byID[id]
}

// All returns the rooms in insertion order. The slice is shared; callers
// must not mutate it.
func (g *Registry) All() []Room {
	return g.rooms
}

// Containing returns the registered room containing the XZ point, or nil.
func (g *Registry) Containing(point rl.Vector2) Room {
	return FindContainingRoom(point, g.rooms)
}
