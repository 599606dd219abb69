package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reelcraft/api/internal/engine"
	"github.com/reelcraft/api/internal/model"
	"github.com/reelcraft/api/internal/websocket"
)

const (
	projectKeyPrefix = "project:"
	projectIndexKey  = "projects"
	projectTTL       = 30 * 24 * time.Hour
)

var ErrProjectNotFound = fmt.Errorf("project not found")

// ProjectService owns editor sessions. Each open project is backed by a live
// store holding the full undo history; snapshots of the present state are
// persisted to Redis on every tracked change so a session survives restarts
// (history does not, it is rebuilt empty on reload).
type ProjectService struct {
	redis *redis.Client
	hub   *websocket.Hub

	mu       sync.Mutex
	sessions map[string]*session
	onDelete []func(projectID string)
}

type session struct {
	store     *engine.Store
	name      string
	createdAt time.Time
}

func NewProjectService(redisClient *redis.Client, hub *websocket.Hub) *ProjectService {
	return &ProjectService{
		redis:    redisClient,
		hub:      hub,
		sessions: make(map[string]*session),
	}
}

// Create opens a new project with a fresh editor state.
func (s *ProjectService) Create(ctx context.Context, req *model.ProjectCreateRequest) (*model.ProjectResponse, error) {
	id := model.NewID()
	now := time.Now()

	sess := &session{
		store:     engine.NewStore(),
		name:      req.Name,
		createdAt: now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if err := s.persist(ctx, id, sess); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return s.response(id, sess), nil
}

// Get returns the project's live state, loading the persisted snapshot into a
// fresh session when no live one exists.
func (s *ProjectService) Get(ctx context.Context, projectID string) (*model.ProjectResponse, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.response(projectID, sess), nil
}

// List returns summaries of all persisted projects.
func (s *ProjectService) List(ctx context.Context) ([]model.ProjectSummary, error) {
	ids, err := s.redis.SMembers(ctx, projectIndexKey).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		proj, err := s.load(ctx, id)
		if err != nil {
			continue // expired snapshot, index entry is stale
		}
		summaries = append(summaries, model.ProjectSummary{
			ID:        proj.ID,
			Name:      proj.Name,
			CreatedAt: proj.CreatedAt,
			UpdatedAt: proj.UpdatedAt,
		})
	}
	return summaries, nil
}

// OnDelete registers a hook run after a project is deleted, for dependent
// services to tear down their per-project resources.
func (s *ProjectService) OnDelete(hook func(projectID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDelete = append(s.onDelete, hook)
}

// Delete removes the project's session and persisted snapshot.
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	s.mu.Lock()
	delete(s.sessions, projectID)
	hooks := s.onDelete
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(projectID)
	}

	if err := s.redis.Del(ctx, projectKeyPrefix+projectID).Err(); err != nil {
		return err
	}
	return s.redis.SRem(ctx, projectIndexKey, projectID).Err()
}

// Dispatch decodes and applies a batch of actions in order. Decoding errors
// reject the whole batch before any action is applied.
func (s *ProjectService) Dispatch(ctx context.Context, projectID string, req *model.DispatchRequest) (*model.ProjectResponse, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return nil, err
	}

	decoded := make([]struct {
		action engine.Action
		meta   model.ActionMeta
	}, 0, len(req.Actions))
	for i, env := range req.Actions {
		action, err := engine.DecodeAction(env)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		decoded = append(decoded, struct {
			action engine.Action
			meta   model.ActionMeta
		}{action, env.Meta})
	}

	for _, d := range decoded {
		sess.store.DispatchMeta(d.action, d.meta)
	}

	if err := s.persist(ctx, projectID, sess); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.broadcast(projectID, sess)
	return s.response(projectID, sess), nil
}

// Undo steps the project back one checkpoint.
func (s *ProjectService) Undo(ctx context.Context, projectID string) (*model.ProjectResponse, error) {
	return s.timeTravel(ctx, projectID, (*engine.Store).Undo)
}

// Redo steps the project forward one checkpoint.
func (s *ProjectService) Redo(ctx context.Context, projectID string) (*model.ProjectResponse, error) {
	return s.timeTravel(ctx, projectID, (*engine.Store).Redo)
}

func (s *ProjectService) timeTravel(ctx context.Context, projectID string, step func(*engine.Store)) (*model.ProjectResponse, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return nil, err
	}

	step(sess.store)

	if err := s.persist(ctx, projectID, sess); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.broadcast(projectID, sess)
	return s.response(projectID, sess), nil
}

// Mutate runs fn against the project's live store, then persists and
// broadcasts the result. Used by services that dispatch actions directly.
func (s *ProjectService) Mutate(ctx context.Context, projectID string, fn func(*engine.Store)) (*model.ProjectResponse, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return nil, err
	}

	fn(sess.store)

	if err := s.persist(ctx, projectID, sess); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.broadcast(projectID, sess)
	return s.response(projectID, sess), nil
}

// Store exposes the live store of a loaded project, for the playback clock
// and render loop wiring.
func (s *ProjectService) Store(ctx context.Context, projectID string) (*engine.Store, error) {
	sess, err := s.session(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return sess.store, nil
}

// session returns the live session, reviving it from Redis if needed.
func (s *ProjectService) session(ctx context.Context, projectID string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[projectID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	sess = &session{
		store:     engine.NewStoreWith(proj.State),
		name:      proj.Name,
		createdAt: proj.CreatedAt,
	}

	s.mu.Lock()
	// Another request may have revived it first.
	if existing, ok := s.sessions[projectID]; ok {
		sess = existing
	} else {
		s.sessions[projectID] = sess
	}
	s.mu.Unlock()

	return sess, nil
}

func (s *ProjectService) load(ctx context.Context, projectID string) (*model.Project, error) {
	data, err := s.redis.Get(ctx, projectKeyPrefix+projectID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	var proj model.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

func (s *ProjectService) persist(ctx context.Context, projectID string, sess *session) error {
	proj := model.Project{
		ID:        projectID,
		Name:      sess.name,
		State:     sess.store.State(),
		CreatedAt: sess.createdAt,
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(proj)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, projectKeyPrefix+projectID, data, projectTTL).Err(); err != nil {
		return err
	}
	return s.redis.SAdd(ctx, projectIndexKey, projectID).Err()
}

func (s *ProjectService) broadcast(projectID string, sess *session) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastState(projectID, sess.store.State(), sess.store.CanUndo(), sess.store.CanRedo())
}

func (s *ProjectService) response(projectID string, sess *session) *model.ProjectResponse {
	return &model.ProjectResponse{
		ID:        projectID,
		Name:      sess.name,
		State:     sess.store.State(),
		CanUndo:   sess.store.CanUndo(),
		CanRedo:   sess.store.CanRedo(),
		UpdatedAt: time.Now(),
	}
}
