package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reelcraft/api/internal/audioengine"
	"github.com/reelcraft/api/internal/engine"
	"github.com/reelcraft/api/internal/media"
	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/playback"
	"github.com/reelcraft/api/internal/render"
	"github.com/reelcraft/api/internal/websocket"
)

// frameStreamInterval paces the per-project preview stream. Coarser than
// the clock tick: PNG frames go over the websocket, not a shared canvas.
const frameStreamInterval = 100 * time.Millisecond

// PlaybackService runs a live playback session per open project: the clock
// drives the playhead, the audio engine keeps elements in sync, and the
// render loop streams composited frames to project subscribers. Sessions
// are created lazily on the first playback command and torn down when the
// project is deleted or explicitly stopped.
type PlaybackService struct {
	projects *ProjectService
	hub      *websocket.Hub
	factory  media.Factory
	fonts    *render.FontRegistry
	size     render.CanvasSize

	mu       sync.Mutex
	sessions map[string]*playbackSession
}

func NewPlaybackService(projects *ProjectService, hub *websocket.Hub, runtime *media.Runtime, fonts *render.FontRegistry, width, height int) *PlaybackService {
	s := &PlaybackService{
		projects: projects,
		hub:      hub,
		factory:  runtime.NewElement,
		fonts:    fonts,
		size: render.CanvasSize{
			Width:     width,
			Height:    height,
			CSSWidth:  float64(width),
			CSSHeight: float64(height),
		},
		sessions: make(map[string]*playbackSession),
	}
	projects.OnDelete(s.Close)
	return s
}

// Play starts the project's clock.
func (s *PlaybackService) Play(ctx context.Context, projectID string) (model.PlaybackState, error) {
	return s.command(ctx, projectID, func(sess *playbackSession) { sess.clock.Play() })
}

// Pause stops the project's clock.
func (s *PlaybackService) Pause(ctx context.Context, projectID string) (model.PlaybackState, error) {
	return s.command(ctx, projectID, func(sess *playbackSession) { sess.clock.Pause() })
}

// Toggle flips playback, restarting from zero when the playhead sits at
// the end.
func (s *PlaybackService) Toggle(ctx context.Context, projectID string) (model.PlaybackState, error) {
	return s.command(ctx, projectID, func(sess *playbackSession) { sess.clock.TogglePlay() })
}

// Seek moves the playhead, clamped to the timeline.
func (s *PlaybackService) Seek(ctx context.Context, projectID string, t float64) (model.PlaybackState, error) {
	return s.command(ctx, projectID, func(sess *playbackSession) { sess.clock.Seek(t) })
}

// Forward skips ahead by the clock's skip step.
func (s *PlaybackService) Forward(ctx context.Context, projectID string) (model.PlaybackState, error) {
	return s.command(ctx, projectID, func(sess *playbackSession) { sess.clock.Forward() })
}

// Rewind skips back by the clock's skip step.
func (s *PlaybackService) Rewind(ctx context.Context, projectID string) (model.PlaybackState, error) {
	return s.command(ctx, projectID, func(sess *playbackSession) { sess.clock.Rewind() })
}

// Close tears down the project's playback session, releasing all pooled
// media. Safe to call for projects without one.
func (s *PlaybackService) Close(projectID string) {
	s.mu.Lock()
	sess, ok := s.sessions[projectID]
	delete(s.sessions, projectID)
	s.mu.Unlock()
	if ok {
		sess.close()
	}
}

func (s *PlaybackService) command(ctx context.Context, projectID string, cmd func(*playbackSession)) (model.PlaybackState, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return model.PlaybackState{}, err
	}
	cmd(sess)
	return sess.store.State().Playback, nil
}

func (s *PlaybackService) session(ctx context.Context, projectID string) (*playbackSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[projectID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	store, err := s.projects.Store(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sess = newPlaybackSession(projectID, store, s.factory, s.fonts, s.size, s.hub)

	s.mu.Lock()
	if existing, ok := s.sessions[projectID]; ok {
		s.mu.Unlock()
		sess.close()
		return existing, nil
	}
	s.sessions[projectID] = sess
	s.mu.Unlock()
	return sess, nil
}

// playbackSession binds one project store to the playback engines. Its
// store listener keeps the element pool and audio engine reconciled with
// every state change; the render loop streams frames while playing.
type playbackSession struct {
	projectID string
	store     *engine.Store
	pool      *media.Pool
	clock     *playback.Clock
	loop      *render.Loop
	audio     *audioengine.Engine
	hub       *websocket.Hub

	mu           sync.Mutex
	closed       bool
	acquired     map[string]struct{}
	lastPlayback model.PlaybackState
}

func newPlaybackSession(projectID string, store *engine.Store, factory media.Factory, fonts *render.FontRegistry, size render.CanvasSize, hub *websocket.Hub) *playbackSession {
	pool := media.NewPool(factory)
	sess := &playbackSession{
		projectID: projectID,
		store:     store,
		pool:      pool,
		audio:     audioengine.NewEngine(pool),
		hub:       hub,
		acquired:  make(map[string]struct{}),
	}
	sess.clock = playback.NewClock(store, 0)
	sess.loop = render.NewLoop(store, render.NewCompositor(pool, fonts), size, frameStreamInterval, sess.pushFrame)

	store.Subscribe(sess.onState)
	sess.onState(store.State())
	return sess
}

func (s *playbackSession) onState(state model.EditorState) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	playbackChanged := state.Playback != s.lastPlayback
	s.lastPlayback = state.Playback
	s.mu.Unlock()

	s.syncAssets(state)
	s.audio.Sync(state)

	if playbackChanged {
		if state.Playback.IsPlaying {
			s.loop.Start()
		} else {
			s.loop.Stop()
		}
		if s.hub != nil {
			s.hub.BroadcastState(s.projectID, state, s.store.CanUndo(), s.store.CanRedo())
		}
	}
}

// syncAssets reconciles the pool with the project asset list: one
// reference held per media asset, released when the asset goes away.
func (s *playbackSession) syncAssets(state model.EditorState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	want := make(map[string]model.Asset, len(state.ProjectAssets))
	for _, asset := range state.ProjectAssets {
		if asset.Type == model.AssetTypeText {
			continue
		}
		want[asset.ID] = asset
	}

	for id := range s.acquired {
		if _, ok := want[id]; !ok {
			s.pool.Release(id)
			delete(s.acquired, id)
		}
	}
	for id, asset := range want {
		if _, ok := s.acquired[id]; ok {
			continue
		}
		if _, err := s.pool.Acquire(asset); err != nil {
			log.Warn().Err(err).Str("asset", id).Msg("failed to open media element")
			continue
		}
		s.acquired[id] = struct{}{}
	}
}

func (s *playbackSession) pushFrame(frame *image.RGBA) {
	if s.hub == nil {
		return
	}
	state := s.store.State()

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		log.Warn().Err(err).Str("project", s.projectID).Msg("failed to encode preview frame")
		return
	}
	s.hub.BroadcastFrame(s.projectID, state.Playback.CurrentTime, buf.Bytes())
}

func (s *playbackSession) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.clock.Close()
	s.loop.Stop()
	s.pool.Close()
}
