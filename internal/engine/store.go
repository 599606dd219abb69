package engine

import (
	"sync"

	"github.com/reelcraft/api/internal/model"
)

// Listener is notified after the present state changed. Listeners run
// outside the store lock and receive the new snapshot by value.
type Listener func(model.EditorState)

// Store is the single owned root of an editor session: every mutation flows
// through Dispatch, which serializes actions in dispatch order through the
// history engine. Concurrent readers (playback clock, compositor, audio
// engine) always observe a consistent snapshot because states are only ever
// replaced wholesale, never mutated in place.
type Store struct {
	mu        sync.Mutex
	history   *History
	listeners []Listener
}

// NewStore returns a store over a fresh editor state.
func NewStore() *Store {
	return NewStoreWith(model.NewEditorState())
}

// NewStoreWith returns a store seeded with an existing state, e.g. a loaded
// project snapshot.
func NewStoreWith(initial model.EditorState) *Store {
	return &Store{history: NewHistory(Reduce, initial)}
}

// State returns the current state snapshot.
func (s *Store) State() model.EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Present()
}

// Dispatch applies a history-tracked action.
func (s *Store) Dispatch(action Action) {
	s.dispatch(action, model.ActionMeta{})
}

// DispatchTransient applies an action with the skipHistory flag: the state
// advances but no undo checkpoint is created and the redo stack survives.
func (s *Store) DispatchTransient(action Action) {
	s.dispatch(action, model.ActionMeta{SkipHistory: true})
}

// DispatchMeta applies an action with explicit meta, as decoded from the
// wire envelope.
func (s *Store) DispatchMeta(action Action, meta model.ActionMeta) {
	s.dispatch(action, meta)
}

func (s *Store) dispatch(action Action, meta model.ActionMeta) {
	s.mu.Lock()
	changed := s.history.Apply(action, meta)
	next := s.history.Present()
	listeners := s.listeners
	s.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(next)
		}
	}
}

// Undo steps the session back one checkpoint.
func (s *Store) Undo() {
	s.timeTravel((*History).Undo)
}

// Redo steps the session forward one checkpoint.
func (s *Store) Redo() {
	s.timeTravel((*History).Redo)
}

func (s *Store) timeTravel(step func(*History) bool) {
	s.mu.Lock()
	changed := step(s.history)
	next := s.history.Present()
	listeners := s.listeners
	s.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(next)
		}
	}
}

// CanUndo reports whether an undo checkpoint exists.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo checkpoint exists.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Subscribe registers a listener for state changes.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(append([]Listener{}, s.listeners...), l)
}
