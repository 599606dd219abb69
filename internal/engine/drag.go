package engine

import "math"

// DragKind discriminates the three pointer interactions on a clip.
type DragKind int

const (
	DragMove DragKind = iota
	DragResizeLeft
	DragResizeRight
)

// MinClipDuration is the smallest duration a resize may leave behind.
const MinClipDuration = 0.1

// ClipDrag is the per-clip drag/resize state machine: idle until Begin,
// then streaming transient updates on every Update, committed as a single
// history entry on End. While a drag is in flight the intermediate states
// carry the skipHistory flag, so the undo stack ends up with one clean
// before/after transition instead of the streamed positions.
type ClipDrag struct {
	store *Store

	active       bool
	kind         DragKind
	clipID       string
	origStart    float64
	origDuration float64
}

// NewClipDrag returns an idle drag machine bound to the store.
func NewClipDrag(store *Store) *ClipDrag {
	return &ClipDrag{store: store}
}

// Active reports whether a drag is in flight.
func (d *ClipDrag) Active() bool { return d.active }

// Begin starts a drag on the clip. Returns false if the clip does not exist
// or a drag is already in flight.
func (d *ClipDrag) Begin(clipID string, kind DragKind) bool {
	if d.active {
		return false
	}
	clip, ok := d.store.State().Timeline.Clip(clipID)
	if !ok {
		return false
	}
	d.active = true
	d.kind = kind
	d.clipID = clipID
	d.origStart = clip.Start
	d.origDuration = clip.Duration
	return true
}

// Update streams the pointer delta (in seconds) as a transient state update.
func (d *ClipDrag) Update(deltaSeconds float64) {
	if !d.active {
		return
	}
	start, duration := d.apply(deltaSeconds)
	d.store.DispatchTransient(UpdateClip{
		ClipID:  d.clipID,
		Updates: ClipUpdate{Start: &start, Duration: &duration},
	})
}

// End commits the drag. The pre-drag geometry is re-applied transiently
// first so the tracked update records exactly one before/after transition.
func (d *ClipDrag) End(deltaSeconds float64) {
	if !d.active {
		return
	}
	start, duration := d.apply(deltaSeconds)
	d.active = false

	origStart, origDuration := d.origStart, d.origDuration
	d.store.DispatchTransient(UpdateClip{
		ClipID:  d.clipID,
		Updates: ClipUpdate{Start: &origStart, Duration: &origDuration},
	})
	d.store.Dispatch(UpdateClip{
		ClipID:  d.clipID,
		Updates: ClipUpdate{Start: &start, Duration: &duration},
	})
}

// Cancel abandons the drag and restores the pre-drag geometry without
// touching history.
func (d *ClipDrag) Cancel() {
	if !d.active {
		return
	}
	d.active = false
	start, duration := d.origStart, d.origDuration
	d.store.DispatchTransient(UpdateClip{
		ClipID:  d.clipID,
		Updates: ClipUpdate{Start: &start, Duration: &duration},
	})
}

func (d *ClipDrag) apply(delta float64) (start, duration float64) {
	switch d.kind {
	case DragResizeLeft:
		end := d.origStart + d.origDuration
		start = math.Max(0, math.Min(d.origStart+delta, end-MinClipDuration))
		return start, end - start
	case DragResizeRight:
		return d.origStart, math.Max(MinClipDuration, d.origDuration+delta)
	default:
		return math.Max(0, d.origStart+delta), d.origDuration
	}
}
