// Package sync reconciles the in-memory workspace snapshots with the
// configured store. Edits settle locally first; after a debounce window the
// whole snapshot is pushed as a last-write-wins replace. The local snapshot
// stays the source of truth whether or not the push lands.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/storage"
)

// DefaultDebounce is how long edits must settle before an outward push.
const DefaultDebounce = 700 * time.Millisecond

const pushTimeout = 10 * time.Second

type Syncer struct {
	repo     storage.WorkspaceRepository
	logger   internal.Logger
	debounce time.Duration

	mu        sync.Mutex
	snapshots map[string]internal.Workspace
	timers    map[string]*time.Timer
	notices   map[string]string
	closed    bool
}

func NewSyncer(repo storage.WorkspaceRepository, logger internal.Logger, debounce time.Duration) *Syncer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Syncer{
		repo:      repo,
		logger:    logger,
		debounce:  debounce,
		snapshots: make(map[string]internal.Workspace),
		timers:    make(map[string]*time.Timer),
		notices:   make(map[string]string),
	}
}

// Pull hydrates the user's snapshot from the store, replacing whatever is
// held locally. Called on login and session restore.
func (s *Syncer) Pull(ctx context.Context, userID string) (internal.Workspace, error) {
	if s.repo == nil {
		return internal.DefaultWorkspace(), internal.ConfigurationError("no workspace store configured")
	}
	if userID == "" {
		return internal.DefaultWorkspace(), internal.AuthenticationError("missing user identity")
	}
	ws, err := s.repo.LoadWorkspace(ctx, userID)
	if err != nil {
		return internal.DefaultWorkspace(), internal.SyncError("failed to load workspace: " + err.Error())
	}
	s.mu.Lock()
	s.snapshots[userID] = ws
	s.mu.Unlock()
	return ws, nil
}

// Workspace returns the current local snapshot, loading from the store on
// first access.
func (s *Syncer) Workspace(ctx context.Context, userID string) (internal.Workspace, error) {
	s.mu.Lock()
	ws, ok := s.snapshots[userID]
	s.mu.Unlock()
	if ok {
		return ws, nil
	}
	return s.Pull(ctx, userID)
}

// Apply replaces the user's snapshot with update(current) and schedules a
// debounced push. Updates are whole-field functional replacements; update
// must not retain or mutate its argument's slices and maps in place.
func (s *Syncer) Apply(ctx context.Context, userID string, update func(internal.Workspace) internal.Workspace) (internal.Workspace, error) {
	current, err := s.Workspace(ctx, userID)
	if err != nil {
		return current, err
	}
	next := update(current)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[userID] = next
	if !s.closed {
		s.schedulePush(userID)
	}
	return next, nil
}

// schedulePush resets or creates the user's debounce timer. Caller holds mu.
func (s *Syncer) schedulePush(userID string) {
	if timer, ok := s.timers[userID]; ok {
		timer.Reset(s.debounce)
		return
	}
	s.timers[userID] = time.AfterFunc(s.debounce, func() {
		s.push(userID)
	})
}

// push mirrors the current snapshot to the store. Failures become transient
// notices; a later successful push clears them. There is no retry loop: the
// next edit schedules the next attempt.
func (s *Syncer) push(userID string) {
	s.mu.Lock()
	ws, ok := s.snapshots[userID]
	delete(s.timers, userID)
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := s.repo.ReplaceWorkspace(ctx, userID, ws); err != nil {
		s.logger.Warnf("sync: push failed for user %s: %v", userID, err)
		s.mu.Lock()
		s.notices[userID] = "Changes are saved locally but could not sync. They will sync on the next edit."
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	delete(s.notices, userID)
	s.mu.Unlock()
}

// Notice reports the user's pending sync warning, if any.
func (s *Syncer) Notice(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notices[userID]
}

// Flush pushes every snapshot with a pending debounce timer synchronously.
// Used at shutdown so settled edits are not lost.
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	pending := make([]string, 0, len(s.timers))
	for userID, timer := range s.timers {
		timer.Stop()
		pending = append(pending, userID)
	}
	s.timers = make(map[string]*time.Timer)
	snapshots := make(map[string]internal.Workspace, len(pending))
	for _, userID := range pending {
		snapshots[userID] = s.snapshots[userID]
	}
	s.mu.Unlock()

	var firstErr error
	for userID, ws := range snapshots {
		if err := s.repo.ReplaceWorkspace(ctx, userID, ws); err != nil {
			s.logger.Errorf("sync: flush failed for user %s: %v", userID, err)
			if firstErr == nil {
				firstErr = internal.SyncError("flush failed: " + err.Error())
			}
		}
	}
	return firstErr
}
