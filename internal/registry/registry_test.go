package registry_test

import (
	"errors"
	"testing"

	_ "github.com/vovakirdan/canvas-arcade/internal/games/breakout"
	_ "github.com/vovakirdan/canvas-arcade/internal/games/invaders"
	_ "github.com/vovakirdan/canvas-arcade/internal/games/snake"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

func TestListIsSorted(t *testing.T) {
	got := registry.List()
	want := []string{"breakout", "breakout_endless", "invaders", "snake"}

	if len(got) != len(want) {
		t.Fatalf("List() returned %d games, expected %d", len(got), len(want))
	}
	for i, info := range got {
		if info.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, expected %q", i, info.ID, want[i])
		}
		if info.Title == "" {
			t.Errorf("game %q has no title", info.ID)
		}
	}
}

func TestCreate(t *testing.T) {
	for _, id := range []string{"breakout", "snake", "invaders"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
		if !registry.Exists(id) {
			t.Errorf("Exists(%q) = false", id)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := registry.Create("pong")
	if !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("Create(unknown) error = %v, expected ErrUnknownGame", err)
	}
	if registry.Exists("pong") {
		t.Error("Exists(pong) = true")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	registry.Register("snake", func() registry.Game { return nil })
}
