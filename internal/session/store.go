package session

import (
	"context"       // Context for Redis operations
	"crypto/rand"   // Random token generation
	"encoding/hex"  // Token encoding
	"encoding/json" // Session payload encoding
	"errors"
	"time" // Session TTL

	"github.com/redis/go-redis/v9" // Redis client
)

// CookieName is the cookie that carries the opaque session token
const CookieName = "cafe_session"

// CSRFHeader is the header cookie-authenticated mutations must carry
const CSRFHeader = "X-CSRF-Token"

const keyPrefix = "session:"

// ErrNoSession is returned when the token is unknown or expired
var ErrNoSession = errors.New("no such session")

// Data is what a session holds: the logged-in user's identifier and the
// CSRF token issued alongside it. Never any user data beyond the id.
type Data struct {
	UserID    uint   `json:"user_id"`    // Logged-in user's identifier
	CSRFToken string `json:"csrf_token"` // Per-session CSRF token
}

// Store persists sessions in Redis keyed by an opaque random token
type Store struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Session lifetime
}

// NewStore creates a session store with the given lifetime
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// newToken returns a 128-bit random hex token
func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create opens a session for the user and returns its token and data
func (s *Store) Create(ctx context.Context, userID uint) (string, *Data, error) {
	token, err := newToken()
	if err != nil {
		return "", nil, err
	}
	csrf, err := newToken()
	if err != nil {
		return "", nil, err
	}
	data := Data{UserID: userID, CSRFToken: csrf}
	b, err := json.Marshal(data)
	if err != nil {
		return "", nil, err
	}
	if err := s.rdb.Set(ctx, keyPrefix+token, b, s.ttl).Err(); err != nil {
		return "", nil, err
	}
	return token, &data, nil
}

// Get resolves a token to its session data, refreshing the TTL
func (s *Store) Get(ctx context.Context, token string) (*Data, error) {
	val, err := s.rdb.GetEx(ctx, keyPrefix+token, s.ttl).Result()
	if err == redis.Nil {
		return nil, ErrNoSession
	} else if err != nil {
		return nil, err
	}
	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Delete removes a session. Deleting a missing session is a no-op, so
// logout stays idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
