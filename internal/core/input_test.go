package core

import (
	"testing"
	"time"
)

func TestInputAdapterHeldUntilKeyUp(t *testing.T) {
	a := NewInputAdapter(0)
	now := time.Unix(0, 0)

	a.KeyDown(ActionLeft, now)
	for i := range 3 {
		f := a.Snapshot(now.Add(time.Duration(i) * time.Second))
		if !f.Has(ActionLeft) {
			t.Fatalf("tick %d: left should stay held", i)
		}
		if f.Edges[ActionLeft] {
			t.Fatalf("tick %d: held key must not look like a press", i)
		}
	}

	a.KeyUp(ActionLeft)
	if a.Snapshot(now).Has(ActionLeft) {
		t.Error("left should be released after KeyUp")
	}
}

func TestInputAdapterHoldTimeout(t *testing.T) {
	a := NewInputAdapter(100 * time.Millisecond)
	now := time.Unix(0, 0)

	a.KeyDown(ActionRight, now)
	if !a.Snapshot(now.Add(50 * time.Millisecond)).Has(ActionRight) {
		t.Error("right should be held inside the timeout")
	}

	// Key repeat refreshes the deadline
	a.KeyDown(ActionRight, now.Add(80*time.Millisecond))
	if !a.Snapshot(now.Add(150 * time.Millisecond)).Has(ActionRight) {
		t.Error("repeat should extend the hold")
	}

	if a.Snapshot(now.Add(200 * time.Millisecond)).Has(ActionRight) {
		t.Error("right should expire after the timeout")
	}
}

func TestInputAdapterOppositeRelease(t *testing.T) {
	a := NewInputAdapter(0)
	now := time.Unix(0, 0)

	a.KeyDown(ActionLeft, now)
	a.KeyDown(ActionRight, now)

	f := a.Snapshot(now)
	if f.Has(ActionLeft) || !f.Has(ActionRight) {
		t.Errorf("pressing right should release left, got %v", f.Actions)
	}
}

func TestInputAdapterLatestDirection(t *testing.T) {
	a := NewInputAdapter(DefaultHoldTimeout)
	now := time.Unix(0, 0)

	if f := a.Snapshot(now); f.Latest != ActionNone {
		t.Errorf("Latest = %v with nothing held, expected None", f.Latest)
	}

	a.KeyDown(ActionUp, now)
	a.KeyDown(ActionLeft, now.Add(10*time.Millisecond))
	a.KeyDown(ActionFire, now.Add(20*time.Millisecond))
	f := a.Snapshot(now.Add(30 * time.Millisecond))
	if !f.Has(ActionUp) || f.Latest != ActionLeft {
		t.Errorf("Latest = %v, expected Left with Up still held", f.Latest)
	}

	// A repeat of the older key makes it the newest
	a.KeyDown(ActionUp, now.Add(40*time.Millisecond))
	if f := a.Snapshot(now.Add(50 * time.Millisecond)); f.Latest != ActionUp {
		t.Errorf("Latest = %v, expected Up", f.Latest)
	}

	// Up expires first; Left was refreshed later and stays
	a.KeyDown(ActionLeft, now.Add(100*time.Millisecond))
	if f := a.Snapshot(now.Add(200 * time.Millisecond)); f.Has(ActionUp) || f.Latest != ActionLeft {
		t.Errorf("Latest = %v, expected Left after Up expired", f.Latest)
	}

	a.KeyUp(ActionLeft)
	if f := a.Snapshot(now.Add(210 * time.Millisecond)); f.Latest != ActionNone {
		t.Errorf("Latest = %v after release, expected None", f.Latest)
	}
}

func TestActionMovement(t *testing.T) {
	for _, act := range []Action{ActionLeft, ActionRight, ActionUp, ActionDown} {
		if !act.Movement() {
			t.Errorf("%v should be a movement", act)
		}
	}
	for _, act := range []Action{ActionNone, ActionFire, ActionStart, ActionPause, ActionQuit} {
		if act.Movement() {
			t.Errorf("%v should not be a movement", act)
		}
	}
}

func TestInputAdapterEdgesConsumedOnce(t *testing.T) {
	a := NewInputAdapter(0)
	now := time.Unix(0, 0)

	a.Press(ActionFire)
	a.Press(ActionFire) // key repeat collapses into one command per tick

	first := a.Snapshot(now)
	if !first.Edges[ActionFire] {
		t.Fatal("fire should be pressed on the first snapshot")
	}
	if a.Snapshot(now).Edges[ActionFire] {
		t.Error("fire must be consumed by the first snapshot")
	}
}

func TestInputAdapterPointer(t *testing.T) {
	a := NewInputAdapter(0)
	now := time.Unix(0, 0)

	a.PointerMove(321)
	f := a.Snapshot(now)
	if !f.HasPointer || f.PointerX != 321 {
		t.Errorf("pointer = (%v, %v), expected (true, 321)", f.HasPointer, f.PointerX)
	}

	// Pointer persists between ticks until released
	if !a.Snapshot(now).HasPointer {
		t.Error("pointer should persist while dragging")
	}

	a.PointerRelease()
	if a.Snapshot(now).HasPointer {
		t.Error("pointer should be cleared after release")
	}
}

func TestInputAdapterIgnoresNone(t *testing.T) {
	a := NewInputAdapter(0)
	now := time.Unix(0, 0)

	a.KeyDown(ActionNone, now)
	a.Press(ActionNone)

	f := a.Snapshot(now)
	if len(f.Actions) != 0 || len(f.Edges) != 0 {
		t.Errorf("ActionNone should be ignored, got %v %v", f.Actions, f.Edges)
	}
}

func TestInputAdapterReset(t *testing.T) {
	a := NewInputAdapter(0)
	now := time.Unix(0, 0)

	a.KeyDown(ActionUp, now)
	a.Press(ActionPause)
	a.PointerMove(10)
	a.Reset()

	f := a.Snapshot(now)
	if f.Has(ActionUp) || f.Edges[ActionPause] || f.HasPointer {
		t.Error("Reset should clear all input")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Press(ActionFire)
	f.SetPointer(42)
	f.Clear()

	if f.Has(ActionLeft) || f.Has(ActionFire) || f.HasPointer || f.PointerX != 0 {
		t.Error("Clear should reset every flag and the pointer")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionLeft, "Left"},
		{ActionFire, "Fire"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, expected %q", tt.action, got, tt.expected)
		}
	}
}
