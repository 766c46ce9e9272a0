package handlers

import (
	"errors"
	"net/http"

	"blog/auth"
	"blog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadAuthor renders 404 for unknown usernames
func loadAuthor(c *gin.Context) (author models.User, ok bool) {
	author, err := models.UserByUsername(c.Param("username"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}
	return author, true
}

func Profile(c *gin.Context) {
	author, ok := loadAuthor(c)
	if !ok {
		return
	}
	page, posts, err := models.PostsPage(c.Query("page"), models.PostsByAuthor(author.ID))
	if err != nil {
		serverError(c, err)
		return
	}
	followers, err := models.FollowerCount(author.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	following, err := models.FollowingCount(author.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	user := auth.CurrentUser(c)
	render(c, http.StatusOK, templateProfile, gin.H{
		"title":          author.DisplayName(),
		"author":         author,
		"page":           page,
		"posts":          posts,
		"followerCount":  followers,
		"followingCount": following,
		"isFollowing":    auth.IsAuthenticated(c) && models.IsFollowing(user.ID, author.ID),
		"canFollow":      auth.IsAuthenticated(c) && user.ID != author.ID,
	})
}

// FollowIndex is the feed of the authors the user follows
func FollowIndex(c *gin.Context, user *models.User) {
	page, posts, err := models.PostsPage(c.Query("page"), models.PostsFollowedBy(user.ID))
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, templateFollow, gin.H{
		"page":  page,
		"posts": posts,
	})
}

// ProfileFollow is a no-op when following yourself or someone already followed
func ProfileFollow(c *gin.Context, user *models.User) {
	author, ok := loadAuthor(c)
	if !ok {
		return
	}
	if author.ID != user.ID {
		if _, err := models.FollowCreate(user.ID, author.ID); err != nil {
			serverError(c, err)
			return
		}
	}
	redirect(c, profileURL(author.Username))
}

func ProfileUnfollow(c *gin.Context, user *models.User) {
	author, ok := loadAuthor(c)
	if !ok {
		return
	}
	if err := models.FollowDelete(user.ID, author.ID); err != nil {
		serverError(c, err)
		return
	}
	redirect(c, profileURL(author.Username))
}
