package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blogue/app/auth"

	"github.com/stretchr/testify/assert"
)

func TestRequireLogin(t *testing.T) {
	sessions := auth.NewSessionStore()
	var reached bool
	handler := RequireLogin(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous request is redirected to login", func(t *testing.T) {
		reached = false
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("authenticated request passes through", func(t *testing.T) {
		reached = false
		token := sessions.New("mandis")
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("destroyed session is anonymous again", func(t *testing.T) {
		reached = false
		token := sessions.New("mandis")
		sessions.Destroy(token)

		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
