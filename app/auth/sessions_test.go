package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	t.Run("new session carries the username claim", func(t *testing.T) {
		token := store.New("mandis")
		require.NotEmpty(t, token)

		username, ok := store.Get(token)
		assert.True(t, ok)
		assert.Equal(t, "mandis", username)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		assert.NotEqual(t, store.New("mandis"), store.New("mandis"))
	})

	t.Run("destroy ends the session", func(t *testing.T) {
		token := store.New("mandis")
		store.Destroy(token)

		_, ok := store.Get(token)
		assert.False(t, ok)

		// Destroying an unknown token is harmless.
		store.Destroy("no-such-token")
	})

	t.Run("unknown token is anonymous", func(t *testing.T) {
		_, ok := store.Get("bogus")
		assert.False(t, ok)
	})
}

func TestSessionCookies(t *testing.T) {
	store := NewSessionStore()
	token := store.New("mandis")

	w := httptest.NewRecorder()
	SetCookie(w, token)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range w.Result().Cookies() {
		r.AddCookie(cookie)
	}

	username, ok := store.CurrentUser(r)
	assert.True(t, ok)
	assert.Equal(t, "mandis", username)

	t.Run("no cookie means anonymous", func(t *testing.T) {
		_, ok := store.CurrentUser(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
	})

	t.Run("clear cookie expires it", func(t *testing.T) {
		w := httptest.NewRecorder()
		ClearCookie(w)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})
}
