package models

import "blog/db"

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index"`
	PostID    uint64 `gorm:"index;not null"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text"`
}

func CommentCreate(post *Post, author *User, text string) (c Comment, err error) {
	c = Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     text,
	}
	err = db.Instance.Omit("Post", "Author").Create(&c).Error
	c.Author = *author
	return
}

// CommentsForPost returns the comments newest first
func CommentsForPost(postID uint64) (comments []Comment, err error) {
	err = db.Instance.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return
}
