package engine

import "github.com/reelcraft/api/internal/model"

// Reducer is a pure state transition over the editor state.
type Reducer func(model.EditorState, Action) model.EditorState

// History wraps a reducer with undo/redo time travel. Snapshots of the
// present state are retained by value; because the reducer follows an
// immutable-update discipline, snapshots share unchanged substructure and
// stay cheap.
type History struct {
	reducer Reducer
	past    []model.EditorState
	present model.EditorState
	future  []model.EditorState
}

// NewHistory returns a history around the reducer, seeded with the initial
// state and empty past/future stacks.
func NewHistory(reducer Reducer, initial model.EditorState) *History {
	return &History{reducer: reducer, present: initial}
}

// Present returns the current state snapshot.
func (h *History) Present() model.EditorState {
	return h.present
}

// CanUndo reports whether an undo checkpoint exists.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo checkpoint exists.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depths returns the sizes of the past and future stacks.
func (h *History) Depths() (past, future int) {
	return len(h.past), len(h.future)
}

// Apply runs the action through the wrapped reducer. A structurally
// unchanged result is a no-op: no history entry, no state replacement.
// With skipHistory the present is replaced in place, leaving past and
// future untouched; otherwise the old present is pushed onto past and the
// redo stack is cleared, since branching invalidates it.
// Returns whether the present state changed.
func (h *History) Apply(action Action, meta model.ActionMeta) bool {
	next := h.reducer(h.present, action)
	if StatesEqual(h.present, next) {
		return false
	}
	if meta.SkipHistory {
		h.present = next
		return true
	}
	h.past = append(h.past, h.present)
	h.present = next
	h.future = nil
	return true
}

// Undo steps back one checkpoint. No-op when past is empty.
// Returns whether the present state changed.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]model.EditorState{h.present}, h.future...)
	h.present = previous
	return true
}

// Redo steps forward one checkpoint. No-op when future is empty.
// Returns whether the present state changed.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}
