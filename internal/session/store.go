package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names of the browser session. Each cookie expires independently:
// username and access-token share the access-token TTL, refresh-token
// carries its own longer TTL.
const (
	KeyUsername     = "username"
	KeyAccessToken  = "access-token"
	KeyRefreshToken = "refresh-token"
)

// Store abstracts the session cookie jar so token flows can be tested
// without a live request.
type Store interface {
	Get(key string) (string, bool)
	// Set writes a value with an absolute expiry of now+ttl. A zero ttl
	// yields a session-lifetime cookie.
	Set(key, value, path string, ttl time.Duration)
	Clear(key string)
}

// CookieStore writes HTTP-only, SameSite=Lax cookies on the current gin
// request. Secure is set in production.
type CookieStore struct {
	c      *gin.Context
	domain string
	secure bool
}

func NewCookieStore(c *gin.Context, domain string, secure bool) *CookieStore {
	return &CookieStore{c: c, domain: domain, secure: secure}
}

func (s *CookieStore) Get(key string) (string, bool) {
	value, err := s.c.Cookie(key)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (s *CookieStore) Set(key, value, path string, ttl time.Duration) {
	maxAge := 0
	if ttl > 0 {
		maxAge = int(ttl / time.Second)
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, maxAge, path, s.domain, s.secure, true)
}

func (s *CookieStore) Clear(key string) {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, "", -1, "/", s.domain, s.secure, true)
}

// ClearAll drops the whole session, i.e. logout.
func ClearAll(s Store) {
	s.Clear(KeyAccessToken)
	s.Clear(KeyRefreshToken)
	s.Clear(KeyUsername)
}

// MemStore is a map-backed Store honoring expiries, used in tests.
type MemStore struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", false
	}
	if exp, hasExp := s.expires[key]; hasExp && time.Now().After(exp) {
		delete(s.values, key)
		delete(s.expires, key)
		return "", false
	}
	return value, true
}

func (s *MemStore) Set(key, value, path string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	if ttl > 0 {
		s.expires[key] = time.Now().Add(ttl)
	} else {
		delete(s.expires, key)
	}
}

func (s *MemStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.expires, key)
}
