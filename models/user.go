package models

import (
	"errors"
	"regexp"
	"strings"

	"blog/db"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Username  string `gorm:"type:varchar(150);uniqueIndex"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	Email     string `gorm:"type:varchar(254)"`
	Password  string `gorm:"type:varchar(128)"`
	IsAdmin   bool   `gorm:"not null;default:false"`
}

var (
	ErrInvalidCredentials = errors.New("please enter a correct username and password")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrUsernameInvalid    = errors.New("enter a valid username: letters, digits and @/./+/-/_ only")
	ErrUsernameReserved   = errors.New("this username is reserved")

	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

	// Top level URL segments that would shadow a profile page
	reservedUsernames = map[string]bool{
		"auth": true, "group": true, "new": true, "follow": true,
		"media": true, "ws": true, "static": true,
		"robots.txt": true,
	}
)

func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return ErrUsernameInvalid
	}
	if reservedUsernames[strings.ToLower(username)] {
		return ErrUsernameReserved
	}
	return nil
}

func UserCreate(username, email, plainTextPassword string) (u User, err error) {
	if err = ValidateUsername(username); err != nil {
		return
	}
	if _, err = UserByUsername(username); err == nil {
		return u, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	u.Username = username
	u.Email = email
	if err = u.SetPassword(plainTextPassword); err != nil {
		return
	}
	return u, db.Instance.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func UserLogin(username, plainTextPassword string) (u User, err error) {
	result := db.Instance.First(&u, "username = ?", username)
	if result.Error != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func UserByUsername(username string) (u User, err error) {
	err = db.Instance.First(&u, "username = ?", username).Error
	return
}

func UserByID(id uint64) (u User, err error) {
	err = db.Instance.First(&u, id).Error
	return
}

// DisplayName is the full name if there is one, the username otherwise
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// EnsureAdmin creates (or promotes) the configured admin account
func EnsureAdmin(username, password string) error {
	u, err := UserByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if u, err = UserCreate(username, "", password); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if u.IsAdmin {
		return nil
	}
	return db.Instance.Model(&u).Update("is_admin", true).Error
}

func (u *User) SaveNames() error {
	return db.Instance.Model(u).Updates(map[string]interface{}{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}).Error
}
