package controllers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"blogue/app/auth"
	"blogue/app/models"
	"blogue/app/repositories"
	"blogue/app/services"
	"blogue/app/uploads"

	"github.com/gorilla/mux"
)

// PostController handles the public reading surface and the operator
// dashboard. Failures never escape as errors: reads fall back to empty
// results, writes log and redirect to a safe default.
type PostController struct {
	content   *services.ContentService
	sessions  *auth.SessionStore
	saver     *uploads.Saver
	templates map[string]*template.Template
}

// NewPostController creates a new PostController
func NewPostController(content *services.ContentService, sessions *auth.SessionStore, saver *uploads.Saver, basePath string) *PostController {
	return &PostController{
		content:   content,
		sessions:  sessions,
		saver:     saver,
		templates: loadTemplates(basePath, "index", "post", "dashboard", "edit"),
	}
}

// loadTemplates parses each named view together with the shared layout
func loadTemplates(basePath string, names ...string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	for _, name := range names {
		templates[name] = template.Must(template.ParseFiles(
			filepath.Join(basePath, "app/views/layout.html"),
			filepath.Join(basePath, "app/views/"+name+".html"),
		))
	}
	return templates
}

// Index lists all posts for visitors
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.content.ListPosts()
	if err != nil {
		log.Printf("failed to load posts: %v", err)
		posts = []*models.Post{}
	}

	_, loggedIn := pc.sessions.CurrentUser(r)
	pc.render(w, "index", struct {
		Posts    []*models.Post
		LoggedIn bool
	}{posts, loggedIn})
}

// Show displays a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.content.GetPost(mux.Vars(r)["id"])
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("failed to load post: %v", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, loggedIn := pc.sessions.CurrentUser(r)
	pc.render(w, "post", struct {
		Post     *models.Post
		LoggedIn bool
	}{post, loggedIn})
}

// Dashboard shows the operator's post list and creation form
func (pc *PostController) Dashboard(w http.ResponseWriter, r *http.Request) {
	pc.renderDashboard(w, "")
}

// Create handles the dashboard creation form, including an optional single
// file attachment.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		pc.renderDashboard(w, "Could not read the submitted form")
		return
	}

	var fileURL *string
	if r.MultipartForm != nil {
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			url, err := pc.saver.Save(file, header)
			if err != nil {
				log.Printf("failed to store upload: %v", err)
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			fileURL = &url
		}
	}

	_, err := pc.content.CreatePost(r.FormValue("title"), r.FormValue("content"), fileURL)
	if err != nil {
		if errors.Is(err, services.ErrInvalid) {
			pc.renderDashboard(w, "Title and content are required")
			return
		}
		log.Printf("failed to create post: %v", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// EditForm shows the edit form for a post
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	post, err := pc.content.GetPost(mux.Vars(r)["id"])
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("failed to load post for edit: %v", err)
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	pc.render(w, "edit", struct {
		Post  *models.Post
		Error string
	}{post, ""})
}

// Edit applies the edit form to a post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	id := mux.Vars(r)["id"]
	_, err := pc.content.UpdatePost(id, r.FormValue("title"), r.FormValue("content"))
	if err != nil && errors.Is(err, services.ErrInvalid) {
		// Re-render the form with what the operator typed.
		pc.render(w, "edit", struct {
			Post  *models.Post
			Error string
		}{&models.Post{ID: id, Title: r.FormValue("title"), Content: r.FormValue("content")}, "Title and content are required"})
		return
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("failed to update post: %v", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Delete removes a post. Unknown ids are a no-op.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.content.DeletePost(mux.Vars(r)["id"]); err != nil {
		log.Printf("failed to delete post: %v", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (pc *PostController) renderDashboard(w http.ResponseWriter, errMsg string) {
	posts, err := pc.content.ListPosts()
	if err != nil {
		log.Printf("failed to load posts: %v", err)
		posts = []*models.Post{}
	}

	pc.render(w, "dashboard", struct {
		Posts []*models.Post
		Error string
	}{posts, errMsg})
}

func (pc *PostController) render(w http.ResponseWriter, name string, data interface{}) {
	if err := pc.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("template error: %v", err)
	}
}
