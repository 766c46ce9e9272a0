package handlers

import (
	"net/http"
	"strings"

	"blog/models"

	"github.com/gin-gonic/gin"
)

type CommentRequest struct {
	Text string `form:"text"`
}

// AddComment stores the comment of the logged in user. A GET or an invalid form shows the post again
func AddComment(c *gin.Context, user *models.User) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	form := NewForm()
	if c.Request.Method != http.MethodPost {
		renderPost(c, http.StatusOK, &post, form)
		return
	}
	var r CommentRequest
	form.bindForm(c, &r)
	r.Text = strings.TrimSpace(r.Text)
	form.Set("text", r.Text)
	if r.Text == "" {
		form.AddError("text", errRequired)
	}
	if !form.IsValid() {
		renderPost(c, http.StatusOK, &post, form)
		return
	}
	if _, err := models.CommentCreate(&post, user, r.Text); err != nil {
		serverError(c, err)
		return
	}
	redirect(c, postURL(post.Author.Username, post.ID))
}
