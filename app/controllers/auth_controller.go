package controllers

import (
	"html/template"
	"log"
	"net/http"

	"blogue/app/auth"
	"blogue/app/services"
)

// AuthController handles login and logout for the single operator account.
type AuthController struct {
	auth      *services.AuthService
	sessions  *auth.SessionStore
	templates map[string]*template.Template
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, sessions *auth.SessionStore, basePath string) *AuthController {
	return &AuthController{
		auth:      authService,
		sessions:  sessions,
		templates: loadTemplates(basePath, "login"),
	}
}

// LoginForm renders the login page
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.renderLogin(w, "")
}

// Login checks credentials and opens a session. The failure message never
// reveals whether the username or the password was wrong.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.renderLogin(w, "Could not read the submitted form")
		return
	}

	username := r.FormValue("username")
	if !ac.auth.Verify(username, r.FormValue("password")) {
		ac.renderLogin(w, "Invalid username or password")
		return
	}

	auth.SetCookie(w, ac.sessions.New(username))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout destroys the session and returns to the public site
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		ac.sessions.Destroy(cookie.Value)
	}
	auth.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) renderLogin(w http.ResponseWriter, errMsg string) {
	data := struct{ Error string }{errMsg}
	if err := ac.templates["login"].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("template error: %v", err)
	}
}
