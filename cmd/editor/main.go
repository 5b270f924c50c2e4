package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/catalog"
	"scene-editor/internal/editor"
	"scene-editor/internal/editorconfig"
	"scene-editor/internal/logger"
	"scene-editor/internal/room"
	"scene-editor/internal/store"
)

// main runs a headless editing session: build a demo scene, drag a few
// objects through the placement pipeline, and print what the constraint
// engine decided. Rendering is a host concern; this binary exercises the
// engine on its own.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "editor:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := editorconfig.Load()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return err
	}
	log := logger.New()

	st := store.New()
	st.Rooms().Add(room.NewPolygonRoom("studio", []rl.Vector2{
		rl.NewVector2(-5, -5),
		rl.NewVector2(5, -5),
		rl.NewVector2(5, 5),
		rl.NewVector2(-5, 5),
	}, 0, 3))

	table, err := cat.Instantiate("table", rl.NewVector3(0, 2, 0))
	if err != nil {
		return err
	}
	cube, err := cat.Instantiate("cube", rl.NewVector3(2, 2, 2))
	if err != nil {
		return err
	}
	st.Add(table)
	st.Add(cube)

	ed := editor.New(st, cfg, log)

	// Drop the table into the room: it floor-locks and lands on the floor.
	p, err := ed.MoveObject(table.ID, rl.NewVector3(1, 2, 1), rl.NewVector3(0, 0, 0))
	if err != nil {
		return err
	}
	fmt.Printf("table -> %v locked=%v\n", p.Position, p.Locked)

	// Drag the cube into the east wall: the move stops short of the wall.
	p, err = ed.MoveObject(cube.ID, rl.NewVector3(4.9, 0.5, 0), rl.NewVector3(0, 0, 0))
	if err != nil {
		return err
	}
	fmt.Printf("cube -> %v blocked=%v\n", p.Position, p.Blocked)

	// Nudge the cube toward the table: connection points pull it flush.
	target := st.Get(table.ID).Transform.Position
	p, err = ed.MoveObject(cube.ID, rl.NewVector3(target.X+1.2, p.Position.Y, target.Z), rl.NewVector3(0, 0, 0))
	if err != nil {
		return err
	}
	fmt.Printf("cube -> %v snapped=%v\n", p.Position, p.Snapped)

	return nil
}
