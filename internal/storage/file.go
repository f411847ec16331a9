package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/itsalphin/ai-study-companion/internal"
)

// FileStorage keeps everything in memory and mirrors it to JSON files with a
// short write debounce, so a burst of edits coalesces into one disk write.
type FileStorage struct {
	users      map[string]*internal.User      // id -> user
	byEmail    map[string]string              // email -> id
	byUsername map[string]string              // username -> id
	workspaces map[string]internal.Workspace  // userID -> snapshot
	profiles   map[string]*internal.Profile   // userID -> profile
	mu         sync.RWMutex

	usersFile      string
	workspacesFile string
	profilesFile   string

	saveUsersChan      chan struct{}
	saveWorkspacesChan chan struct{}
	shutdownChan       chan struct{}
	saveDelay          time.Duration
	logger             internal.Logger
}

func NewFileStorage(usersFile, workspacesFile, profilesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:              make(map[string]*internal.User),
		byEmail:            make(map[string]string),
		byUsername:         make(map[string]string),
		workspaces:         make(map[string]internal.Workspace),
		profiles:           make(map[string]*internal.Profile),
		usersFile:          usersFile,
		workspacesFile:     workspacesFile,
		profilesFile:       profilesFile,
		saveUsersChan:      make(chan struct{}, 1),
		saveWorkspacesChan: make(chan struct{}, 1),
		shutdownChan:       make(chan struct{}),
		saveDelay:          500 * time.Millisecond,
		logger:             logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadWorkspaces(); err != nil {
		logger.Errorf("storage: failed to load workspaces: %v", err)
		return nil, err
	}
	if err := s.loadProfiles(); err != nil {
		logger.Errorf("storage: failed to load profiles: %v", err)
		return nil, err
	}

	go s.saveUsersWorker()
	go s.saveWorkspacesWorker()

	return s, nil
}

func decodeFile(path string, target interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	var users []*internal.User
	if err := decodeFile(s.usersFile, &users); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
		s.byEmail[u.Email] = u.ID
		s.byUsername[u.Username] = u.ID
	}
	return nil
}

func (s *FileStorage) loadWorkspaces() error {
	var workspaces map[string]internal.Workspace
	if err := decodeFile(s.workspacesFile, &workspaces); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, ws := range workspaces {
		s.workspaces[userID] = ws
	}
	return nil
}

func (s *FileStorage) loadProfiles() error {
	var profiles []*internal.Profile
	if err := decodeFile(s.profilesFile, &profiles); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	profiles := make([]*internal.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	s.mu.RUnlock()

	if err := atomicWriteFileJSON(s.usersFile, users); err != nil {
		return err
	}
	return atomicWriteFileJSON(s.profilesFile, profiles)
}

func (s *FileStorage) saveWorkspaces() error {
	s.mu.RLock()
	workspaces := make(map[string]internal.Workspace, len(s.workspaces))
	for userID, ws := range s.workspaces {
		workspaces[userID] = ws
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.workspacesFile, workspaces)
}

func (s *FileStorage) saveUsersWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveUsersChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveUsers(); err != nil {
				s.logger.Errorf("storage: error saving users: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) saveWorkspacesWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveWorkspacesChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveWorkspaces(); err != nil {
				s.logger.Errorf("storage: error saving workspaces: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signalUsers() {
	select {
	case s.saveUsersChan <- struct{}{}:
	default:
	}
}

func (s *FileStorage) signalWorkspaces() {
	select {
	case s.saveWorkspacesChan <- struct{}{}:
	default:
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	return s.saveWorkspaces()
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[user.Email]; exists {
		return errors.New("storage: email already registered")
	}
	if _, exists := s.byUsername[user.Username]; exists {
		return errors.New("storage: username already taken")
	}
	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID
	s.byUsername[user.Username] = user.ID
	s.signalUsers()
	return nil
}

func (s *FileStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *FileStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *FileStorage) ResolveEmail(ctx context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return "", ErrUserNotFound
	}
	return s.users[id].Email, nil
}

// --- WorkspaceRepository ---

func (s *FileStorage) LoadWorkspace(ctx context.Context, userID string) (internal.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[userID]
	if !ok {
		return internal.DefaultWorkspace(), nil
	}
	return ws, nil
}

func (s *FileStorage) ReplaceWorkspace(ctx context.Context, userID string, ws internal.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[userID] = ws
	p, ok := s.profiles[userID]
	if !ok {
		p = &internal.Profile{UserID: userID, ExamMode: ws.ExamMode, Theme: "light"}
		if u, known := s.users[userID]; known {
			p.Username = u.Username
		}
		s.profiles[userID] = p
	}
	p.ExamMode = ws.ExamMode
	p.ActiveTimer = ws.ActiveTimer
	s.signalUsers()
	s.signalWorkspaces()
	return nil
}

func (s *FileStorage) GetProfile(ctx context.Context, userID string) (*internal.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (s *FileStorage) UpsertProfile(ctx context.Context, profile *internal.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	s.signalUsers()
	return nil
}

// --- Compile-time assertions ---
var _ WorkspaceRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
