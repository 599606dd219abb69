package engine

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/reelcraft/api/internal/model"
)

// DuplicateGap is the gap placed between the end of a track and the first
// duplicated clip, in seconds.
const DuplicateGap = 0.5

// Reduce applies an action to the editor state and returns the next state.
// It is pure and total: the input state is never mutated, invalid input
// yields the input state unchanged, unknown actions are no-ops.
func Reduce(state model.EditorState, action Action) model.EditorState {
	switch a := action.(type) {
	case AddAsset:
		return reduceAddAsset(state, a)
	case RemoveAsset:
		return reduceRemoveAsset(state, a)
	case AddClip:
		return reduceAddClip(state, a)
	case UpdateClip:
		return reduceUpdateClip(state, a)
	case DeleteClip:
		return reduceDeleteClip(state, a.ClipID)
	case SplitClip:
		return reduceSplitClip(state, a)
	case DuplicateClips:
		return reduceDuplicateClips(state, a)
	case SetCurrentTime:
		state.Playback.CurrentTime = a.Time
		return state
	case SetIsPlaying:
		state.Playback.IsPlaying = a.IsPlaying
		return state
	case SetVolume:
		state.Playback.Volume = a.Volume
		return state
	case SetIsMuted:
		state.Playback.IsMuted = a.IsMuted
		return state
	case SetSelection:
		state.Selection = model.SelectionState{Clips: append([]string{}, a.ClipIDs...)}
		return state
	case SelectAllClips:
		ids := make([]string, 0, len(state.Timeline.Clips))
		for _, c := range state.Timeline.ClipsInTrackOrder() {
			ids = append(ids, c.ID)
		}
		state.Selection = model.SelectionState{Clips: ids}
		return state
	case ClearSelection:
		state.Selection = model.SelectionState{Clips: []string{}}
		return state
	case SetPixelsPerSecond:
		state.Timeline.PixelsPerSecond = a.PixelsPerSecond
		return state
	case StartRecording:
		state.IsRecording = true
		return state
	case StopRecording:
		state.IsRecording = false
		return state
	default:
		return state
	}
}

func reduceAddAsset(state model.EditorState, a AddAsset) model.EditorState {
	if a.Asset.URL != "" {
		for _, existing := range state.ProjectAssets {
			if existing.URL == a.Asset.URL {
				return state
			}
		}
	}
	assets := make([]model.Asset, 0, len(state.ProjectAssets)+1)
	assets = append(assets, state.ProjectAssets...)
	assets = append(assets, a.Asset)
	state.ProjectAssets = assets
	return state
}

func reduceRemoveAsset(state model.EditorState, a RemoveAsset) model.EditorState {
	found := false
	assets := make([]model.Asset, 0, len(state.ProjectAssets))
	for _, asset := range state.ProjectAssets {
		if asset.ID == a.AssetID {
			found = true
			continue
		}
		assets = append(assets, asset)
	}
	if !found {
		return state
	}
	// Cascade: drop every clip referencing the asset before the asset itself,
	// so no observable state carries a dangling assetId.
	for _, clip := range state.Timeline.ClipsInTrackOrder() {
		if clip.AssetID == a.AssetID {
			state = reduceDeleteClip(state, clip.ID)
		}
	}
	state.ProjectAssets = assets
	return state
}

// allowedTrackTypes returns the track types a clip of the given type may be
// placed on. Text and element clips may overlay a video track.
func allowedTrackTypes(clipType model.ClipType) []model.ClipType {
	if clipType == model.ClipTypeText || clipType == model.ClipTypeElement {
		return []model.ClipType{model.ClipTypeVideo, model.ClipTypeText, model.ClipTypeElement}
	}
	return []model.ClipType{clipType}
}

func trackAllows(track model.Track, clipType model.ClipType) bool {
	for _, t := range allowedTrackTypes(clipType) {
		if track.Type == t {
			return true
		}
	}
	return false
}

func reduceAddClip(state model.EditorState, a AddClip) model.EditorState {
	clip := a.Clip.Clone()

	var target *model.Track
	if a.TrackID != "" {
		if tr, ok := state.Timeline.Track(a.TrackID); ok && trackAllows(tr, clip.Type) {
			target = &tr
		}
	}
	if target == nil {
		for _, tr := range state.Timeline.Tracks {
			if trackAllows(tr, clip.Type) {
				tr := tr
				target = &tr
				break
			}
		}
	}
	if target == nil {
		log.Debug().Str("clipType", string(clip.Type)).Msg("no suitable track for clip")
		return state
	}

	if clip.ID == "" {
		clip.ID = model.NewID()
	}
	clip.TrackID = target.ID

	clips := copyClipMap(state.Timeline.Clips)
	clips[clip.ID] = clip
	state.Timeline.Clips = clips
	state.Timeline.Tracks = mapTracks(state.Timeline.Tracks, func(tr model.Track) model.Track {
		if tr.ID == target.ID {
			tr.Clips = appendCopy(tr.Clips, clip.ID)
		}
		return tr
	})
	return state
}

func reduceUpdateClip(state model.EditorState, a UpdateClip) model.EditorState {
	existing, ok := state.Timeline.Clips[a.ClipID]
	if !ok {
		return state
	}
	updated := existing.Clone()
	u := a.Updates
	if u.Start != nil {
		updated.Start = *u.Start
	}
	if u.Duration != nil {
		updated.Duration = *u.Duration
	}
	if u.Volume != nil {
		updated.Volume = *u.Volume
	}
	if u.Speed != nil {
		updated.Speed = *u.Speed
	}
	if u.Transform != nil {
		tr := *u.Transform
		updated.Transform = &tr
	}
	if u.Crop != nil {
		cr := *u.Crop
		updated.Crop = &cr
	}
	if u.Filter != nil {
		updated.Filter = *u.Filter
	}
	if u.Waveform != nil {
		updated.Waveform = append([]float64(nil), u.Waveform...)
	}
	if u.Text != nil {
		updated.Text = *u.Text
	}
	if u.Style != nil {
		st := *u.Style
		updated.Style = &st
	}
	if u.Bounds != nil {
		b := *u.Bounds
		updated.Bounds = &b
	}

	clips := copyClipMap(state.Timeline.Clips)
	clips[a.ClipID] = updated
	state.Timeline.Clips = clips
	return state
}

func reduceDeleteClip(state model.EditorState, clipID string) model.EditorState {
	if _, ok := state.Timeline.Clips[clipID]; !ok {
		return state
	}
	clips := copyClipMap(state.Timeline.Clips)
	delete(clips, clipID)
	state.Timeline.Clips = clips
	state.Timeline.Tracks = mapTracks(state.Timeline.Tracks, func(tr model.Track) model.Track {
		tr.Clips = removeID(tr.Clips, clipID)
		return tr
	})
	state.Selection = model.SelectionState{Clips: removeID(state.Selection.Clips, clipID)}
	return state
}

func reduceSplitClip(state model.EditorState, a SplitClip) model.EditorState {
	original, ok := state.Timeline.Clips[a.ClipID]
	if !ok || a.SplitTime <= original.Start || a.SplitTime >= original.End() {
		return state
	}

	first := original.Clone()
	first.ID = model.NewID()
	first.Duration = a.SplitTime - original.Start

	second := original.Clone()
	second.ID = model.NewID()
	second.Start = a.SplitTime
	second.Duration = original.End() - a.SplitTime

	clips := copyClipMap(state.Timeline.Clips)
	delete(clips, original.ID)
	clips[first.ID] = first
	clips[second.ID] = second
	state.Timeline.Clips = clips

	// Replace the original in place so the track's draw order is preserved.
	state.Timeline.Tracks = mapTracks(state.Timeline.Tracks, func(tr model.Track) model.Track {
		if tr.ID != original.TrackID {
			return tr
		}
		out := make([]string, 0, len(tr.Clips)+1)
		for _, id := range tr.Clips {
			if id == original.ID {
				out = append(out, first.ID, second.ID)
			} else {
				out = append(out, id)
			}
		}
		tr.Clips = out
		return tr
	})

	state.Selection = model.SelectionState{Clips: []string{first.ID, second.ID}}
	return state
}

func reduceDuplicateClips(state model.EditorState, a DuplicateClips) model.EditorState {
	if len(a.ClipIDs) == 0 {
		return state
	}

	var toDuplicate []model.Clip
	for _, id := range a.ClipIDs {
		if c, ok := state.Timeline.Clips[id]; ok {
			toDuplicate = append(toDuplicate, c)
		}
	}
	if len(toDuplicate) == 0 {
		return state
	}

	byTrack := map[string][]model.Clip{}
	var trackOrder []string
	for _, c := range toDuplicate {
		if _, ok := byTrack[c.TrackID]; !ok {
			trackOrder = append(trackOrder, c.TrackID)
		}
		byTrack[c.TrackID] = append(byTrack[c.TrackID], c)
	}

	clips := copyClipMap(state.Timeline.Clips)
	appended := map[string][]string{}
	var selection []string

	for _, trackID := range trackOrder {
		track, ok := state.Timeline.Track(trackID)
		if !ok {
			continue
		}

		// Place after the furthest existing clip on the track, plus a gap.
		placement := 0.0
		for _, id := range track.Clips {
			if c, ok := state.Timeline.Clips[id]; ok {
				placement = math.Max(placement, c.End())
			}
		}
		placement += DuplicateGap

		group := byTrack[trackID]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Start < group[j].Start })

		for _, original := range group {
			dup := original.Clone()
			dup.ID = model.NewID()
			dup.Start = placement
			clips[dup.ID] = dup
			appended[trackID] = append(appended[trackID], dup.ID)
			selection = append(selection, dup.ID)
			placement += original.Duration
		}
	}

	state.Timeline.Clips = clips
	state.Timeline.Tracks = mapTracks(state.Timeline.Tracks, func(tr model.Track) model.Track {
		if ids, ok := appended[tr.ID]; ok {
			tr.Clips = append(appendCopy(tr.Clips), ids...)
		}
		return tr
	})
	state.Selection = model.SelectionState{Clips: selection}
	return state
}

func copyClipMap(in map[string]model.Clip) map[string]model.Clip {
	out := make(map[string]model.Clip, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func mapTracks(in []model.Track, f func(model.Track) model.Track) []model.Track {
	out := make([]model.Track, len(in))
	for i, tr := range in {
		out[i] = f(tr)
	}
	return out
}

func appendCopy(in []string, more ...string) []string {
	out := make([]string, 0, len(in)+len(more))
	out = append(out, in...)
	out = append(out, more...)
	return out
}

func removeID(in []string, id string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
