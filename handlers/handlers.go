package handlers

import (
	"log"
	"net/http"
	"strconv"

	"blog/auth"

	"github.com/gin-gonic/gin"
)

const (
	templateIndex      = "index.tmpl"
	templateGroup      = "group.tmpl"
	templateGroupNew   = "group_new.tmpl"
	templateProfile    = "profile.tmpl"
	templatePost       = "post.tmpl"
	templateNewPost    = "new_post.tmpl"
	templateFollow     = "follow.tmpl"
	templateLogin      = "login.tmpl"
	templateSignup     = "signup.tmpl"
	templateLoggedOut  = "logged_out.tmpl"
	templateNotFound   = "404.tmpl"
	templateForbidden  = "403.tmpl"
	templateServerErr  = "500.tmpl"
	fragmentPostList   = "post_list"
	fragmentIndexCache = "index_page"
)

// render adds the data every page needs (the current user) and renders the template
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = auth.CurrentUser(c)
	c.HTML(status, name, data)
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, templateNotFound, gin.H{"path": c.Request.URL.Path})
}

func serverError(c *gin.Context, err error) {
	log.Printf("Error serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	render(c, http.StatusInternalServerError, templateServerErr, nil)
}

// NoRoute renders the custom 404 page
func NoRoute(c *gin.Context) {
	notFound(c)
}

// Forbidden is rendered for logged in users without the required permission
func Forbidden(c *gin.Context) {
	render(c, http.StatusForbidden, templateForbidden, nil)
}

// Recovery renders the custom 500 page after a panic
func Recovery(c *gin.Context, recovered any) {
	log.Printf("Panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	c.HTML(http.StatusInternalServerError, templateServerErr, gin.H{})
	c.Abort()
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func profileURL(username string) string {
	return "/" + username + "/"
}

func postURL(username string, postID uint64) string {
	return "/" + username + "/" + strconv.FormatUint(postID, 10) + "/"
}
