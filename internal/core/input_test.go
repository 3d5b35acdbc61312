package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionConfirm) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionConfirm)
	f.Set(ActionLeft)
	if !f.Has(ActionConfirm) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Empty() {
		t.Error("frame with actions should not be empty")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove every action")
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" {
		t.Errorf("ActionRight.String() = %q", ActionRight.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}

func TestInputFrameCloneSurvivesClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionConfirm)

	clone := f.Clone()
	f.Clear()

	if !clone.Has(ActionRight) || !clone.Has(ActionConfirm) {
		t.Error("clone lost its actions when the original was cleared")
	}
	clone.Set(ActionBack)
	if f.Has(ActionBack) {
		t.Error("clone shares the original's action map")
	}
}
