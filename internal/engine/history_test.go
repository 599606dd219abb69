package engine

import (
	"testing"

	"github.com/reelcraft/api/internal/model"
)

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(Reduce, testState())
	base := h.Present()

	if h.CanUndo() || h.CanRedo() {
		t.Fatal("fresh history should have no checkpoints")
	}

	if !h.Apply(SetSelection{ClipIDs: []string{"v1"}}, model.ActionMeta{}) {
		t.Fatal("apply reported no change")
	}
	afterSelect := h.Present()

	if !h.CanUndo() {
		t.Fatal("expected undo checkpoint")
	}
	if !h.Undo() {
		t.Fatal("undo failed")
	}
	if !StatesEqual(h.Present(), base) {
		t.Fatal("undo did not restore the previous state")
	}
	if !h.CanRedo() {
		t.Fatal("expected redo checkpoint")
	}
	if !h.Redo() {
		t.Fatal("redo failed")
	}
	if !StatesEqual(h.Present(), afterSelect) {
		t.Fatal("redo did not restore the undone state")
	}
}

func TestHistoryUndoRedoOnEmptyStacks(t *testing.T) {
	h := NewHistory(Reduce, testState())
	if h.Undo() {
		t.Fatal("undo on empty past should be a no-op")
	}
	if h.Redo() {
		t.Fatal("redo on empty future should be a no-op")
	}
}

func TestHistoryNoopActionLeavesNoCheckpoint(t *testing.T) {
	h := NewHistory(Reduce, testState())

	// Deleting a missing clip changes nothing.
	if h.Apply(DeleteClip{ClipID: "missing"}, model.ActionMeta{}) {
		t.Fatal("no-op action reported a change")
	}
	if past, _ := h.Depths(); past != 0 {
		t.Fatalf("no-op action left %d checkpoints", past)
	}

	// Re-applying the present selection changes nothing either.
	h.Apply(SetSelection{ClipIDs: []string{"v1"}}, model.ActionMeta{})
	if h.Apply(SetSelection{ClipIDs: []string{"v1"}}, model.ActionMeta{}) {
		t.Fatal("identical selection reported a change")
	}
	if past, _ := h.Depths(); past != 1 {
		t.Fatalf("expected 1 checkpoint, got %d", past)
	}
}

func TestHistorySkipHistoryReplacesPresent(t *testing.T) {
	h := NewHistory(Reduce, testState())
	skip := model.ActionMeta{SkipHistory: true}

	h.Apply(SetCurrentTime{Time: 1}, skip)
	h.Apply(SetCurrentTime{Time: 2}, skip)
	h.Apply(SetCurrentTime{Time: 3}, skip)

	if h.Present().Playback.CurrentTime != 3 {
		t.Fatalf("current time = %v", h.Present().Playback.CurrentTime)
	}
	if past, future := h.Depths(); past != 0 || future != 0 {
		t.Fatalf("transient updates created checkpoints: past=%d future=%d", past, future)
	}
}

func TestHistorySkipHistoryPreservesRedoStack(t *testing.T) {
	h := NewHistory(Reduce, testState())

	h.Apply(SetSelection{ClipIDs: []string{"v1"}}, model.ActionMeta{})
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("expected redo checkpoint")
	}

	h.Apply(SetCurrentTime{Time: 5}, model.ActionMeta{SkipHistory: true})
	if !h.CanRedo() {
		t.Fatal("transient update cleared the redo stack")
	}
}

func TestHistoryTrackedActionClearsFuture(t *testing.T) {
	h := NewHistory(Reduce, testState())

	h.Apply(SetSelection{ClipIDs: []string{"v1"}}, model.ActionMeta{})
	h.Undo()
	h.Apply(SetSelection{ClipIDs: []string{"a1"}}, model.ActionMeta{})

	if h.CanRedo() {
		t.Fatal("branching should invalidate the redo stack")
	}
}

func TestHistorySplitUndoRestoresOriginal(t *testing.T) {
	h := NewHistory(Reduce, testState())
	base := h.Present()

	h.Apply(SplitClip{ClipID: "v1", SplitTime: 5}, model.ActionMeta{})
	if len(h.Present().Timeline.Clips) != 3 {
		t.Fatalf("expected 3 clips after split, got %d", len(h.Present().Timeline.Clips))
	}

	h.Undo()
	if !StatesEqual(h.Present(), base) {
		t.Fatal("undo after split did not restore the original clip")
	}
}
