// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/pharmacy-pos/internal/config"
)

// SessionStore persists register sessions in Redis so the active cart
// survives page reloads and short outages without touching the database.
type SessionStore struct {
	redisClient *redis.Client
	config      *config.Config
}

// NewSessionStore creates a new session store
func NewSessionStore(redisClient *redis.Client, cfg *config.Config) *SessionStore {
	return &SessionStore{
		redisClient: redisClient,
		config:      cfg,
	}
}

// Get retrieves the session for a terminal, returning a fresh empty session
// if none exists yet.
func (st *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	key := st.key(sessionID)
	data, err := st.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &Session{
			ID:        sessionID,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load register session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode register session: %w", err)
	}

	return &session, nil
}

// Save writes the session back with the configured TTL.
func (st *SessionStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode register session: %w", err)
	}

	return st.redisClient.Set(ctx, st.key(session.ID), data, st.config.Redis.SessionTTL).Err()
}

// Delete removes the session entirely.
func (st *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return st.redisClient.Del(ctx, st.key(sessionID)).Err()
}

func (st *SessionStore) key(sessionID string) string {
	return fmt.Sprintf("register:session:%s", sessionID)
}
