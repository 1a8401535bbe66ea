package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName carries the session token between requests.
const CookieName = "blogue_session"

// SessionStore maps opaque tokens to the username claim of a logged-in
// operator. A session exists from successful login until explicit logout or
// process restart; there is no expiry at this layer.
type SessionStore struct {
	mutex    sync.RWMutex
	sessions map[string]string
}

// NewSessionStore creates an empty SessionStore
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

// New registers a session for username and returns its token
func (s *SessionStore) New(username string) string {
	token := uuid.New().String()
	s.mutex.Lock()
	s.sessions[token] = username
	s.mutex.Unlock()
	return token
}

// Get returns the username claim for a token
func (s *SessionStore) Get(token string) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	username, ok := s.sessions[token]
	return username, ok
}

// Destroy removes a session. Unknown tokens are ignored.
func (s *SessionStore) Destroy(token string) {
	s.mutex.Lock()
	delete(s.sessions, token)
	s.mutex.Unlock()
}

// CurrentUser resolves the request's session cookie to a username claim
func (s *SessionStore) CurrentUser(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return s.Get(cookie.Value)
}

// SetCookie attaches the session token to the response
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
	})
}

// ClearCookie removes the session cookie from the client
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
