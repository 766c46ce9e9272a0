package models

import (
	"errors"
	"regexp"

	"blog/db"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Title       string `gorm:"type:varchar(200)"`
	Slug        string `gorm:"type:varchar(50);uniqueIndex"`
	Description string `gorm:"type:text"`
}

var (
	ErrSlugTaken   = errors.New("a group with this slug already exists")
	ErrSlugInvalid = errors.New("enter a valid slug consisting of letters, numbers, underscores or hyphens")

	slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func (g Group) String() string {
	return g.Title
}

func GroupCreate(title, slug, description string) (g Group, err error) {
	if !slugRe.MatchString(slug) || slug == "new" {
		return g, ErrSlugInvalid
	}
	if _, err = GroupBySlug(slug); err == nil {
		return g, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	g = Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	return g, db.Instance.Create(&g).Error
}

func GroupBySlug(slug string) (g Group, err error) {
	err = db.Instance.First(&g, "slug = ?", slug).Error
	return
}

func GroupByID(id uint64) (g Group, err error) {
	err = db.Instance.First(&g, id).Error
	return
}

// GroupList returns all groups, used for the group select of the post form
func GroupList() (groups []Group, err error) {
	err = db.Instance.Order("title ASC").Find(&groups).Error
	return
}

// GroupDelete removes the group, its posts stay without a group (ON DELETE SET NULL)
func GroupDelete(id uint64) error {
	return db.Instance.Delete(&Group{}, id).Error
}
