package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionPause) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set(ActionPause) should be visible via Has")
	}

	var zero InputFrame
	if zero.Has(ActionPause) {
		t.Error("zero frame should report no actions")
	}
	zero.Set(ActionRestart)
	if !zero.Has(ActionRestart) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFramePointerAndClear(t *testing.T) {
	f := NewInputFrame()
	f.PushPointer(PointerMove, 1, 2)
	f.PushPointer(PointerDown, 3, 4)
	f.PushKey("p", true)
	f.Set(ActionPause)

	clone := f.Clone()
	f.Clear()

	if len(f.Pointer) != 0 || len(f.Keys) != 0 || f.Has(ActionPause) {
		t.Error("Clear should drop all input")
	}
	if len(clone.Pointer) != 2 || clone.Pointer[1] != (PointerEvent{Kind: PointerDown, X: 3, Y: 4}) {
		t.Errorf("Clone should keep pointer events, got %+v", clone.Pointer)
	}
	if !clone.Has(ActionPause) || len(clone.Keys) != 1 {
		t.Error("Clone should keep actions and keys")
	}
}
