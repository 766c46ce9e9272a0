package auth

import (
	"net/http"

	"blog/models"
	"blog/utils"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/auth/login/"

type Permission uint8

const (
	PermissionNone  Permission = 0
	PermissionAdmin Permission = 1
)

// User is authenticated and posseses the required permissions
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds login checks + User pre-loading.
// Anonymous users are redirected to the login page, which brings them back afterwards
type Router struct {
	Base gin.IRouter
	// Rendered when a logged in user lacks a permission
	Forbidden gin.HandlerFunc
}

func hasPermissions(user *models.User, required []Permission) bool {
	for _, p := range required {
		if p == PermissionAdmin && !user.IsAdmin {
			return false
		}
	}
	return true
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []Permission) {
	user := CurrentUser(c)
	if user.ID == 0 {
		c.Redirect(http.StatusFound, utils.LoginURL(LoginPath, c.Request.URL.RequestURI()))
		c.Abort()
		return
	}
	if !hasPermissions(user, required) {
		if cr.Forbidden != nil {
			cr.Forbidden(c)
		} else {
			c.String(http.StatusForbidden, "access denied")
		}
		c.Abort()
		return
	}
	handler(c, user)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...Permission) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...Permission) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

// Form registers the handler for both GET (show the form) and POST (submit it)
func (cr *Router) Form(path string, handler HandlerFunc, required ...Permission) {
	cr.GET(path, handler, required...)
	cr.POST(path, handler, required...)
}
