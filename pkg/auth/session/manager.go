package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/C00lPIXER/aperture/pkg/config"
	redisclient "github.com/C00lPIXER/aperture/pkg/redis"
	"github.com/google/uuid"
)

const refreshTokenBytes = 32

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// Session is what Redis keeps per access token id. Only a digest of the
// refresh token is stored.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"token_hash"`
}

// Manager handles refresh token creation, storage, and rotation.
type Manager struct {
	store sessionStore
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.RefreshTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("refresh token ttl must be positive")
	}
	if accessTTL := cfg.AccessTokenTTL(); ttl <= accessTTL {
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", ttl, accessTTL)
	}
	return &Manager{store: client, ttl: ttl}, nil
}

// Generate creates a refresh token bound to accessID and userID.
func (m *Manager) Generate(ctx context.Context, accessID string, userID uuid.UUID) (string, error) {
	if strings.TrimSpace(accessID) == "" {
		return "", fmt.Errorf("access id is required")
	}
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}
	token, err := generateRefreshToken()
	if err != nil {
		return "", err
	}
	if err := m.save(ctx, accessID, Session{UserID: userID, TokenHash: digest(token)}); err != nil {
		return "", err
	}
	return token, nil
}

// Rotate validates the refresh token presented for oldAccessID, drops that
// session and issues a new access id and refresh token for the same user.
func (m *Manager) Rotate(ctx context.Context, oldAccessID, provided string) (uuid.UUID, string, string, error) {
	if strings.TrimSpace(oldAccessID) == "" || strings.TrimSpace(provided) == "" {
		return uuid.Nil, "", "", ErrInvalidRefreshToken
	}

	current, err := m.load(ctx, oldAccessID)
	if err != nil {
		return uuid.Nil, "", "", err
	}
	if subtle.ConstantTimeCompare([]byte(current.TokenHash), []byte(digest(provided))) != 1 {
		return uuid.Nil, "", "", ErrInvalidRefreshToken
	}

	newAccessID := NewAccessID()
	newToken, err := m.Generate(ctx, newAccessID, current.UserID)
	if err != nil {
		return uuid.Nil, "", "", err
	}
	if err := m.store.Del(ctx, m.store.AccessSessionKey(oldAccessID)); err != nil {
		return uuid.Nil, "", "", err
	}
	return current.UserID, newAccessID, newToken, nil
}

// Revoke deletes the refresh session tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.store.AccessSessionKey(accessID))
}

// HasSession reports whether the provided access ID still has an active refresh session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if _, err := m.load(ctx, accessID); err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewAccessID produces the identifier used as the JWT jti and Redis key.
func NewAccessID() string {
	return uuid.NewString()
}

func (m *Manager) save(ctx context.Context, accessID string, s Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return m.store.Set(ctx, m.store.AccessSessionKey(accessID), string(payload), m.ttl)
}

func (m *Manager) load(ctx context.Context, accessID string) (Session, error) {
	raw, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if err != nil {
		if redisclient.IsNil(err) {
			return Session{}, ErrInvalidRefreshToken
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, ErrInvalidRefreshToken
	}
	return s, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
