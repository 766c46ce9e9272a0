package handlers

import (
	"strings"

	"blog/storage"

	"github.com/gin-gonic/gin"
)

// MediaServe serves uploaded images from the configured storage
func MediaServe(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("filepath"), "/")
	if path == "" || strings.Contains(path, "..") {
		notFound(c)
		return
	}
	storage.Default().Serve(path, c.Request, c.Writer)
}
