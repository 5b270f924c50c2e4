package object

import "fmt"

// OpeningKind classifies an object that punches through or attaches to a
// wall. OpeningNone marks ordinary furniture.
type OpeningKind int

const (
	OpeningNone OpeningKind = iota
	OpeningDoor
	OpeningWindow
	OpeningRoundWindow
)

// openingNames maps each kind to its catalog spelling. Parsing and String
// both go through this table so the two can never drift apart.
var openingNames = map[OpeningKind]string{
	OpeningNone:        "none",
	OpeningDoor:        "door",
	OpeningWindow:      "window",
	OpeningRoundWindow: "round-window",
}

func (k OpeningKind) String() string {
	if name, ok := openingNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OpeningKind(%d)", int(k))
}

// ParseOpeningKind maps a catalog spelling to its kind. Unknown spellings
// report an error rather than silently becoming OpeningNone.
func ParseOpeningKind(name string) (OpeningKind, error) {
	for kind, n := range openingNames {
		if n == name {
			return kind, nil
		}
	}
	return OpeningNone, fmt.Errorf("unknown opening kind %q", name)
}

// SnapsToWalls reports whether this kind of object attaches to wall faces
// (and should therefore prefer perpendicular connection-point matches).
// The switch is exhaustive over the declared kinds; a new kind added
// without a case here is caught by the panic in tests.
func (k OpeningKind) SnapsToWalls() bool {
	switch k {
	case OpeningNone:
		return false
	case OpeningDoor, OpeningWindow, OpeningRoundWindow:
		return true
	default:
		panic(fmt.Sprintf("unhandled opening kind %d", int(k)))
	}
}
