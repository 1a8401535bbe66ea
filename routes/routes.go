package routes

import (
	"net/http"

	"blogue/app/auth"
	"blogue/app/controllers"
	"blogue/app/middleware"
	"blogue/app/services"
	"blogue/app/uploads"

	"github.com/gorilla/mux"
)

// SetupRoutes wires the blog's routes and returns the router. basePath is
// prepended to template paths so tests can point at a fixture directory.
func SetupRoutes(content *services.ContentService, authService *services.AuthService, sessions *auth.SessionStore, saver *uploads.Saver, basePath string) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	postController := controllers.NewPostController(content, sessions, saver, basePath)
	commentController := controllers.NewCommentController(content)
	authController := controllers.NewAuthController(authService, sessions, basePath)

	// Static files and uploaded attachments
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(saver.Dir()))))

	// Public routes
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/post/{id}", postController.Show).Methods("GET")
	router.HandleFunc("/post/{id}/comment", commentController.Create).Methods("POST")

	// Session routes
	router.HandleFunc("/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")

	// Privileged routes behind the session gate
	requireLogin := middleware.RequireLogin(sessions)

	dashboard := router.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(requireLogin)
	dashboard.HandleFunc("", postController.Dashboard).Methods("GET")
	dashboard.HandleFunc("", postController.Create).Methods("POST")
	dashboard.HandleFunc("/edit/{id}", postController.EditForm).Methods("GET")
	dashboard.HandleFunc("/edit/{id}", postController.Edit).Methods("POST")
	dashboard.HandleFunc("/delete/{id}", postController.Delete).Methods("POST")

	router.Handle("/post/{id}/comment/{index:[0-9]+}/delete",
		requireLogin(http.HandlerFunc(commentController.Delete))).Methods("POST")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
