package handlers

import (
	"errors"
	"net/http"
	"strings"

	"blog/models"

	"github.com/gin-gonic/gin"
)

type GroupCreateRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Slug        string `form:"slug" binding:"required,max=50"`
	Description string `form:"description" binding:"required"`
}

// GroupNew lets administrators create groups
func GroupNew(c *gin.Context, user *models.User) {
	form := NewForm()
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, templateGroupNew, gin.H{"form": form})
		return
	}
	var r GroupCreateRequest
	form.bindForm(c, &r)
	r.Slug = strings.TrimSpace(r.Slug)
	form.Set("title", r.Title)
	form.Set("slug", r.Slug)
	form.Set("description", r.Description)
	if !form.IsValid() {
		render(c, http.StatusOK, templateGroupNew, gin.H{"form": form})
		return
	}
	group, err := models.GroupCreate(r.Title, r.Slug, r.Description)
	if errors.Is(err, models.ErrSlugTaken) || errors.Is(err, models.ErrSlugInvalid) {
		form.AddError("slug", err.Error())
		render(c, http.StatusOK, templateGroupNew, gin.H{"form": form})
		return
	} else if err != nil {
		serverError(c, err)
		return
	}
	redirect(c, "/group/"+group.Slug+"/")
}
