package auth

import (
	"blog/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIdKey      = "id"
	contextUserKey = "user"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Clear()
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

func (s *Session) UserID() uint64 {
	id, _ := s.Get(userIdKey).(uint64)
	return id
}

func (s *Session) User() (user models.User) {
	id := s.UserID()
	if id == 0 {
		return
	}
	user, err := models.UserByID(id)
	if err != nil {
		user.ID = 0
	}
	return
}

// CurrentUser returns the logged in user or an anonymous one (ID == 0).
// The user is loaded once per request
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(contextUserKey); ok {
		return v.(*models.User)
	}
	user := LoadSession(c).User()
	c.Set(contextUserKey, &user)
	return &user
}

func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c).ID != 0
}

// Logout ends the session, the rest of the request sees an anonymous user
func Logout(c *gin.Context) {
	LoadSession(c).LogoutUser()
	c.Set(contextUserKey, &models.User{})
}
