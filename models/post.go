package models

import (
	"blog/db"
	"blog/storage"
	"blog/utils"

	"gorm.io/gorm"
)

type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	PubDate  int64  `gorm:"autoCreateTime;index"`
	AuthorID *uint64
	Author   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID  *uint64
	Group    *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text     string `gorm:"type:text"`
	PostImage `gorm:"embedded"`
}

// PostImage holds the paths in the media storage and the thumbnail size
type PostImage struct {
	Image       string `gorm:"type:varchar(300)"`
	Thumb       string `gorm:"type:varchar(300)"`
	ThumbWidth  uint16 `gorm:"not null;default:0"`
	ThumbHeight uint16 `gorm:"not null;default:0"`
}

// PostScope narrows down the posts query, see PostsByGroup, PostsByAuthor and PostsFollowedBy
type PostScope func(*gorm.DB) *gorm.DB

const postsOrder = "posts.pub_date DESC, posts.id DESC"

func (p Post) String() string {
	return p.Text
}

func (p Post) ImageURL() string {
	if p.Thumb != "" {
		return storage.URL(p.Thumb)
	}
	if p.Image != "" {
		return storage.URL(p.Image)
	}
	return ""
}

func (p Post) AuthorUsername() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Username
}

func (p *Post) IsAuthor(user *User) bool {
	return user != nil && user.ID != 0 && p.AuthorID != nil && *p.AuthorID == user.ID
}

func PostsByGroup(groupID uint64) PostScope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.group_id = ?", groupID)
	}
}

func PostsByAuthor(authorID uint64) PostScope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.author_id = ?", authorID)
	}
}

// PostsFollowedBy selects the posts of all authors followed by userID
func PostsFollowedBy(userID uint64) PostScope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.author_id IN (?)",
			db.Instance.Model(&Follow{}).Select("author_id").Where("user_id = ?", userID))
	}
}

func postsQuery(scopes []PostScope) *gorm.DB {
	tx := db.Instance.Model(&Post{})
	for _, scope := range scopes {
		tx = scope(tx)
	}
	return tx
}

// PostsPaginate counts the posts and resolves the requested page number.
// The posts themselves are loaded by PostsInPage
func PostsPaginate(rawPage string, scopes ...PostScope) (page utils.Page, err error) {
	paginator := utils.Paginator{PerPage: postsPerPage()}
	if err = postsQuery(scopes).Count(&paginator.Count).Error; err != nil {
		return
	}
	return paginator.GetPage(rawPage), nil
}

// PostsInPage loads the posts of the page, newest first
func PostsInPage(page utils.Page, scopes ...PostScope) (posts []Post, err error) {
	err = postsQuery(scopes).
		Preload("Author").
		Preload("Group").
		Order(postsOrder).
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&posts).Error
	return
}

// PostsPage returns the requested page of posts together with the page info
func PostsPage(rawPage string, scopes ...PostScope) (page utils.Page, posts []Post, err error) {
	if page, err = PostsPaginate(rawPage, scopes...); err != nil {
		return
	}
	posts, err = PostsInPage(page, scopes...)
	return
}

func PostCreate(author *User, text string, groupID *uint64, image PostImage) (p Post, err error) {
	p = Post{
		AuthorID:  &author.ID,
		Author:    author,
		GroupID:   groupID,
		Text:      text,
		PostImage: image,
	}
	err = db.Instance.Omit("Author", "Group").Create(&p).Error
	return
}

// Save updates the editable fields of an existing post
func (p *Post) Save() error {
	return db.Instance.Model(p).Updates(map[string]interface{}{
		"text":         p.Text,
		"group_id":     p.GroupID,
		"image":        p.Image,
		"thumb":        p.Thumb,
		"thumb_width":  p.ThumbWidth,
		"thumb_height": p.ThumbHeight,
	}).Error
}

// PostByAuthor loads the post only if it was written by username
func PostByAuthor(username string, postID uint64) (p Post, err error) {
	err = db.Instance.
		Preload("Author").
		Preload("Group").
		Where("posts.id = ? AND posts.author_id = (?)", postID,
			db.Instance.Model(&User{}).Select("id").Where("username = ?", username)).
		First(&p).Error
	return
}

func PostByID(postID uint64) (p Post, err error) {
	err = db.Instance.Preload("Author").Preload("Group").First(&p, postID).Error
	return
}

func PostCountByAuthor(authorID uint64) (count int64, err error) {
	err = db.Instance.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return
}
