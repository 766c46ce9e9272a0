package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const robots = `User-agent: *
Disallow: /auth/
Disallow: /new/
Disallow: /follow/
Disallow: /ws/
`

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, robots)
}
