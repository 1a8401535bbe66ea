package routes

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"blogue/app/auth"
	"blogue/app/repositories"
	"blogue/app/services"
	"blogue/app/uploads"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	server  *httptest.Server
	content *services.ContentService
	client  *http.Client // carries the session cookie, does not follow redirects
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	opts := badger.DefaultOptions(filepath.Join(t.TempDir(), "badger")).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	contentService := services.NewContentService(repositories.NewBadgerPostRepository(db))
	authService := services.NewAuthService(repositories.NewBadgerUserRepository(db))
	sessions := auth.NewSessionStore()

	require.NoError(t, authService.EnsureDefaultAdmin("mandis", "s3cret"))

	saver, err := uploads.NewSaver(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	// Tests run from routes/, so the real views live one level up.
	router := SetupRoutes(contentService, authService, sessions, saver, "..")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		server:  server,
		content: contentService,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (app *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := app.client.Get(app.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (app *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := app.client.PostForm(app.server.URL+path, form)
	require.NoError(t, err)
	return resp
}

func (app *testApp) login(t *testing.T) {
	t.Helper()
	resp := app.postForm(t, "/login", url.Values{"username": {"mandis"}, "password": {"s3cret"}})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestSessionGate(t *testing.T) {
	app := newTestApp(t)

	t.Run("dashboard requires login", func(t *testing.T) {
		resp := app.get(t, "/dashboard")
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("bad credentials re-render the login form", func(t *testing.T) {
		resp := app.postForm(t, "/login", url.Values{"username": {"mandis"}, "password": {"wrong"}})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body(t, resp), "Invalid username or password")
	})

	t.Run("login then logout", func(t *testing.T) {
		app.login(t)

		resp := app.get(t, "/dashboard")
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = app.get(t, "/logout")
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp = app.get(t, "/dashboard")
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})
}

func TestPostLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	// Create.
	resp := app.postForm(t, "/dashboard", url.Values{"title": {"Hello"}, "content": {"World"}})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	posts, err := app.content.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	post := posts[0]
	assert.Equal(t, "Hello", post.Title)

	// It shows up on the public site and on its own page.
	assert.Contains(t, body(t, app.get(t, "/")), "Hello")
	assert.Contains(t, body(t, app.get(t, "/post/"+post.ID)), "World")

	// Anyone can comment.
	resp = app.postForm(t, "/post/"+post.ID+"/comment", url.Values{"comment": {"nice post"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/post/"+post.ID, resp.Header.Get("Location"))

	got, err := app.content.GetPost(post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "nice post", got.Comments[0].Text)

	// Edit keeps the comment.
	resp = app.postForm(t, "/dashboard/edit/"+post.ID, url.Values{"title": {"Hello again"}, "content": {"Wider World"}})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	got, err = app.content.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello again", got.Title)
	require.Len(t, got.Comments, 1)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	// Delete the comment, then the post.
	resp = app.postForm(t, "/post/"+post.ID+"/comment/0/delete", url.Values{})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	got, err = app.content.GetPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)

	resp = app.postForm(t, "/dashboard/delete/"+post.ID, url.Values{})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// The post page now falls back to the home page.
	resp = app.get(t, "/post/"+post.ID)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestCommentDeletionIsGated(t *testing.T) {
	app := newTestApp(t)

	post, err := app.content.CreatePost("Guarded", "post", nil)
	require.NoError(t, err)
	_, err = app.content.AddComment(post.ID, "stay put")
	require.NoError(t, err)

	resp := app.postForm(t, "/post/"+post.ID+"/comment/0/delete", url.Values{})
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	got, err := app.content.GetPost(post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Comments, 1)
}

func TestEditUnknownPostRedirects(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	resp := app.postForm(t, "/dashboard/edit/no-such-id", url.Values{"title": {"x"}, "content": {"y"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	posts, err := app.content.ListPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreateWithAttachment(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "With file"))
	require.NoError(t, writer.WriteField("content", "see attachment"))
	part, err := writer.CreateFormFile("file", "note.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello from the attachment"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/dashboard", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	posts, err := app.content.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].FileURL)
	assert.True(t, strings.HasPrefix(*posts[0].FileURL, "/uploads/"))

	// The attachment is served back at its public path.
	assert.Equal(t, "hello from the attachment", body(t, app.get(t, *posts[0].FileURL)))
}

func TestCreateValidationFailureRerendersForm(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	resp := app.postForm(t, "/dashboard", url.Values{"title": {""}, "content": {"no title"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Title and content are required")

	posts, err := app.content.ListPosts()
	require.NoError(t, err)
	assert.Empty(t, posts, "no partial write on validation failure")
}
