package engine

import (
	"testing"

	"github.com/reelcraft/api/internal/model"
)

func TestStatesEqualNilVersusEmpty(t *testing.T) {
	a := model.EditorState{}
	b := model.EditorState{
		ProjectAssets: []model.Asset{},
		Timeline:      model.Timeline{Tracks: []model.Track{}, Clips: map[string]model.Clip{}},
		Selection:     model.SelectionState{Clips: []string{}},
	}
	if !StatesEqual(a, b) {
		t.Fatal("nil and empty containers must compare equal")
	}
}

func TestStatesEqualDetectsDifference(t *testing.T) {
	a := testState()

	b := testState()
	if !StatesEqual(a, b) {
		t.Fatal("identical states compared unequal")
	}

	b.Playback.CurrentTime = 1
	if StatesEqual(a, b) {
		t.Fatal("playback change not detected")
	}

	b = testState()
	clip := b.Timeline.Clips["v1"]
	clip.Filter = "sepia(1)"
	b.Timeline.Clips["v1"] = clip
	if StatesEqual(a, b) {
		t.Fatal("clip change not detected")
	}

	b = testState()
	tr := model.DefaultTransform()
	clip = b.Timeline.Clips["v1"]
	clip.Transform = tr
	b.Timeline.Clips["v1"] = clip
	if StatesEqual(a, b) {
		t.Fatal("transform pointer change not detected")
	}
}

func TestStatesEqualComparesPointersByValue(t *testing.T) {
	a := testState()
	b := testState()

	ca := a.Timeline.Clips["v1"]
	ca.Transform = &model.Transform{Scale: 2}
	a.Timeline.Clips["v1"] = ca

	cb := b.Timeline.Clips["v1"]
	cb.Transform = &model.Transform{Scale: 2}
	b.Timeline.Clips["v1"] = cb

	if !StatesEqual(a, b) {
		t.Fatal("equal transforms behind distinct pointers compared unequal")
	}
}
