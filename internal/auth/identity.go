package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/storage"
)

// IdentityResolver turns a login identifier (email or username) into the
// email authentication actually runs against. Resolved usernames are cached
// so repeat logins skip the store lookup.
type IdentityResolver struct {
	users  storage.UserRepository
	logger internal.Logger

	mu    sync.RWMutex
	cache map[string]string // username -> email
}

func NewIdentityResolver(users storage.UserRepository, logger internal.Logger) *IdentityResolver {
	return &IdentityResolver{
		users:  users,
		logger: logger,
		cache:  make(map[string]string),
	}
}

func NormalizeUsername(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ResolveEmail accepts either form. Identifiers containing "@" are treated
// as emails directly; anything else resolves as a username via the cache,
// then the user store.
func (r *IdentityResolver) ResolveEmail(ctx context.Context, identifier string) (string, error) {
	value := strings.TrimSpace(identifier)
	if value == "" {
		return "", internal.ValidationError("email or username is required")
	}
	if strings.Contains(value, "@") {
		return NormalizeEmail(value), nil
	}

	username := NormalizeUsername(value)
	r.mu.RLock()
	email, ok := r.cache[username]
	r.mu.RUnlock()
	if ok {
		return email, nil
	}

	email, err := r.users.ResolveEmail(ctx, username)
	if err != nil {
		r.logger.Warnf("auth: could not resolve username %q", username)
		return "", internal.AuthenticationError("invalid credentials")
	}
	r.Remember(username, email)
	return NormalizeEmail(email), nil
}

// Remember seeds the cache; called after signup and successful logins.
func (r *IdentityResolver) Remember(username, email string) {
	username = NormalizeUsername(username)
	email = NormalizeEmail(email)
	if username == "" || email == "" {
		return
	}
	r.mu.Lock()
	r.cache[username] = email
	r.mu.Unlock()
}
