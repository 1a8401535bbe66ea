package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"blogue/app/repositories"
	"blogue/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles appending and removing comments. Comments are
// addressed by their current position in the post's sequence.
type CommentController struct {
	content *services.ContentService
}

// NewCommentController creates a new CommentController
func NewCommentController(content *services.ContentService) *CommentController {
	return &CommentController{content: content}
}

// Create appends a visitor comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/post/"+id, http.StatusSeeOther)
		return
	}

	_, err := cc.content.AddComment(id, r.FormValue("comment"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if !errors.Is(err, services.ErrInvalid) {
			log.Printf("failed to add comment: %v", err)
		}
	}
	http.Redirect(w, r, "/post/"+id, http.StatusSeeOther)
}

// Delete removes the comment at the given position. Out-of-range positions
// are a silent no-op.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Redirect(w, r, "/post/"+id, http.StatusSeeOther)
		return
	}

	if _, err := cc.content.RemoveCommentAt(id, index); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		log.Printf("failed to delete comment: %v", err)
	}
	http.Redirect(w, r, "/post/"+id, http.StatusSeeOther)
}
