package engine

import (
	"math"
	"testing"
)

func TestClipDragMoveCommitsOneHistoryEntry(t *testing.T) {
	s := NewStoreWith(testState())
	d := NewClipDrag(s)

	if !d.Begin("v1", DragMove) {
		t.Fatal("begin failed")
	}
	d.Update(1)
	d.Update(2)
	d.Update(3)
	d.End(3.5)

	clip := s.State().Timeline.Clips["v1"]
	if clip.Start != 5.5 || clip.Duration != 10 {
		t.Fatalf("committed geometry wrong: start=%v duration=%v", clip.Start, clip.Duration)
	}

	// One undo restores the pre-drag geometry; the streamed positions left
	// no checkpoints.
	s.Undo()
	clip = s.State().Timeline.Clips["v1"]
	if clip.Start != 2 {
		t.Fatalf("undo landed at start=%v, want 2", clip.Start)
	}
	if s.CanUndo() {
		t.Fatal("drag left more than one checkpoint")
	}
}

func TestClipDragMoveClampsAtZero(t *testing.T) {
	s := NewStoreWith(testState())
	d := NewClipDrag(s)

	d.Begin("v1", DragMove)
	d.End(-100)

	if got := s.State().Timeline.Clips["v1"].Start; got != 0 {
		t.Fatalf("start = %v, want clamp to 0", got)
	}
}

func TestClipDragResizeLeft(t *testing.T) {
	s := NewStoreWith(testState())
	d := NewClipDrag(s)

	d.Begin("v1", DragResizeLeft)
	d.End(4)

	clip := s.State().Timeline.Clips["v1"]
	if clip.Start != 6 || clip.Duration != 6 {
		t.Fatalf("resize-left wrong: start=%v duration=%v", clip.Start, clip.Duration)
	}

	// Dragging past the right edge pins a minimum duration at the end.
	d.Begin("v1", DragResizeLeft)
	d.End(100)
	clip = s.State().Timeline.Clips["v1"]
	if math.Abs(clip.Duration-MinClipDuration) > 1e-9 {
		t.Fatalf("duration = %v, want %v", clip.Duration, MinClipDuration)
	}
	if math.Abs(clip.End()-12) > 1e-9 {
		t.Fatalf("end moved during left resize: %v", clip.End())
	}
}

func TestClipDragResizeRight(t *testing.T) {
	s := NewStoreWith(testState())
	d := NewClipDrag(s)

	d.Begin("v1", DragResizeRight)
	d.End(5)
	clip := s.State().Timeline.Clips["v1"]
	if clip.Start != 2 || clip.Duration != 15 {
		t.Fatalf("resize-right wrong: start=%v duration=%v", clip.Start, clip.Duration)
	}

	d.Begin("v1", DragResizeRight)
	d.End(-100)
	clip = s.State().Timeline.Clips["v1"]
	if clip.Duration != MinClipDuration {
		t.Fatalf("duration = %v, want %v", clip.Duration, MinClipDuration)
	}
}

func TestClipDragCancelRestoresWithoutHistory(t *testing.T) {
	s := NewStoreWith(testState())
	d := NewClipDrag(s)

	d.Begin("v1", DragMove)
	d.Update(5)
	d.Cancel()

	clip := s.State().Timeline.Clips["v1"]
	if clip.Start != 2 {
		t.Fatalf("cancel left start=%v", clip.Start)
	}
	if s.CanUndo() {
		t.Fatal("cancel created a history checkpoint")
	}
	if d.Active() {
		t.Fatal("drag still active after cancel")
	}
}

func TestClipDragRejectsConcurrentAndMissing(t *testing.T) {
	s := NewStoreWith(testState())
	d := NewClipDrag(s)

	if d.Begin("missing", DragMove) {
		t.Fatal("begin accepted a missing clip")
	}
	if !d.Begin("v1", DragMove) {
		t.Fatal("begin failed")
	}
	if d.Begin("a1", DragMove) {
		t.Fatal("second begin accepted while drag in flight")
	}
	d.Cancel()
}
