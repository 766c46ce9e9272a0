package handlers

import (
	"errors"
	"net/http"
	"strings"

	"blog/auth"
	"blog/models"
	"blog/utils"

	"github.com/gin-gonic/gin"
)

type UserLoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type UserSignupRequest struct {
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Username  string `form:"username" binding:"required,max=150"`
	Email     string `form:"email" binding:"omitempty,email,max=254"`
	Password  string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password"`
}

func UserLogin(c *gin.Context) {
	form := NewForm()
	form.Set("next", c.Query("next"))
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, templateLogin, gin.H{"form": form})
		return
	}
	var r UserLoginRequest
	form.bindForm(c, &r)
	form.Set("username", r.Username)
	if r.Next != "" {
		form.Set("next", r.Next)
	}
	if !form.IsValid() {
		render(c, http.StatusOK, templateLogin, gin.H{"form": form})
		return
	}
	user, err := models.UserLogin(r.Username, r.Password)
	if err != nil {
		form.AddError(nonFieldErrors, err.Error())
		render(c, http.StatusOK, templateLogin, gin.H{"form": form})
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		serverError(c, err)
		return
	}
	redirect(c, utils.SafeRedirect(form.Value("next"), "/"))
}

func UserLogout(c *gin.Context) {
	auth.Logout(c)
	render(c, http.StatusOK, templateLoggedOut, nil)
}

func UserSignup(c *gin.Context) {
	form := NewForm()
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, templateSignup, gin.H{"form": form})
		return
	}
	var r UserSignupRequest
	form.bindForm(c, &r)
	r.Username = strings.TrimSpace(r.Username)
	form.Set("first_name", r.FirstName)
	form.Set("last_name", r.LastName)
	form.Set("username", r.Username)
	form.Set("email", r.Email)
	if !form.IsValid() {
		render(c, http.StatusOK, templateSignup, gin.H{"form": form})
		return
	}
	user, err := models.UserCreate(r.Username, r.Email, r.Password)
	if errors.Is(err, models.ErrUsernameTaken) || errors.Is(err, models.ErrUsernameInvalid) || errors.Is(err, models.ErrUsernameReserved) {
		form.AddError("username", err.Error())
		render(c, http.StatusOK, templateSignup, gin.H{"form": form})
		return
	} else if err != nil {
		serverError(c, err)
		return
	}
	if r.FirstName != "" || r.LastName != "" {
		user.FirstName, user.LastName = r.FirstName, r.LastName
		if err = user.SaveNames(); err != nil {
			serverError(c, err)
			return
		}
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		serverError(c, err)
		return
	}
	redirect(c, "/")
}
