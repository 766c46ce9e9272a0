package server

import (
	"strings"
	"time"

	"blog/auth"
	"blog/config"
	"blog/db"
	"blog/handlers"
	"blog/notify"
	"blog/utils"
	"blog/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "sessionid"

// NewRouter wires middleware and all routes, db.Instance must be initialised
func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(handlers.Recovery))
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	if config.CORS_ORIGINS != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Split(config.CORS_ORIGINS, ","),
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           30 * 24 * time.Hour,
		}))
	}

	// HTML templates
	router.SetHTMLTemplate(web.Templates())

	sessionStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	sessionStore.Options(sessions.Options{Path: "/", MaxAge: config.SESSION_MAX_AGE, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, sessionStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/", "/ws/"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // Pages depend on the session, media overrides this
	// Custom Auth Router
	authRouter := &auth.Router{Base: router, Forbidden: handlers.Forbidden}

	// Accounts
	router.GET("/auth/login/", handlers.UserLogin)
	router.POST("/auth/login/", handlers.UserLogin)
	router.GET("/auth/logout/", handlers.UserLogout)
	router.POST("/auth/logout/", handlers.UserLogout)
	router.GET("/auth/signup/", handlers.UserSignup)
	router.POST("/auth/signup/", handlers.UserSignup)
	// Posts
	router.GET("/", handlers.Index)
	authRouter.Form("/new/", handlers.NewPost)
	authRouter.GET("/follow/", handlers.FollowIndex)
	// Groups
	authRouter.Form("/group/new/", handlers.GroupNew, auth.PermissionAdmin)
	router.GET("/group/:slug/", handlers.GroupPosts)
	// Notifications about new posts of followed authors
	authRouter.GET("/ws/", notify.Default.WebSocket)
	// Media and misc
	router.GET("/media/*filepath", (&utils.CacheRouter{CacheTime: utils.CacheOneDay, Public: true}).Handler(), handlers.MediaServe)
	router.GET("/robots.txt", web.DisallowRobots)
	// Profiles and posts, keep these last: :username matches any top level path
	router.GET("/:username/", handlers.Profile)
	authRouter.Form("/:username/follow/", handlers.ProfileFollow)
	authRouter.Form("/:username/unfollow/", handlers.ProfileUnfollow)
	router.GET("/:username/:post_id/", handlers.PostView)
	router.GET("/:username/:post_id/edit/", handlers.PostEdit)
	router.POST("/:username/:post_id/edit/", handlers.PostEdit)
	authRouter.Form("/:username/:post_id/comment/", handlers.AddComment)

	router.NoRoute(handlers.NoRoute)
	return router
}
