package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Fixed keys for the session-scoped state carried between customer screens.
const (
	KeyOrderDetails = "orderDetails"
	KeyLastOrder    = "lastOrder"
)

var ErrNotFound = errors.New("session: key not found")

// Store keeps small JSON-serialized values scoped to a customer session,
// with a TTL standing in for "cleared on tab close".
type Store interface {
	Save(ctx context.Context, sessionID, key string, value any) error
	// Load unmarshals the stored value into dest, returning ErrNotFound when
	// the key was never saved or has expired.
	Load(ctx context.Context, sessionID, key string, dest any) error
	Delete(ctx context.Context, sessionID, key string) error
}

// MemoryStore is the single-instance fallback used when Redis is not
// configured, and the implementation tests run against.
type MemoryStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	expires map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		values:  make(map[string][]byte),
		expires: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

func storeKey(sessionID, key string) string {
	return sessionID + ":" + key
}

func (s *MemoryStore) Save(_ context.Context, sessionID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey(sessionID, key)
	s.values[k] = data
	s.expires[k] = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID, key string, dest any) error {
	s.mu.Lock()
	k := storeKey(sessionID, key)
	data, ok := s.values[k]
	if ok && s.now().After(s.expires[k]) {
		delete(s.values, k)
		delete(s.expires, k)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey(sessionID, key)
	delete(s.values, k)
	delete(s.expires, k)
	return nil
}

type ctxKey struct{}

const CookieName = "cafe_session"

// Middleware assigns each customer a session id cookie and puts the id on the
// request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// FromContext returns the session id set by Middleware, or "" outside of it.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
