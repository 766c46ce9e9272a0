package models

import (
	"errors"

	"blog/db"
)

// Follow is a directed edge: User follows Author
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UserID    uint64 `gorm:"index:uniq_u_a,priority:1,unique;not null"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"index:uniq_u_a,priority:2,unique;index:idx_author;not null"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

var ErrSelfFollow = errors.New("users cannot follow themselves")

// FollowCreate is a get-or-create, following twice keeps a single edge
func FollowCreate(userID, authorID uint64) (f Follow, err error) {
	if userID == authorID {
		return f, ErrSelfFollow
	}
	err = db.Instance.
		Where(Follow{UserID: userID, AuthorID: authorID}).
		Omit("User", "Author").
		FirstOrCreate(&f).Error
	return
}

func FollowDelete(userID, authorID uint64) error {
	return db.Instance.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&Follow{}).Error
}

func IsFollowing(userID, authorID uint64) bool {
	var count int64
	if db.Instance.Model(&Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error != nil {
		return false
	}
	return count > 0
}

// FollowerCount is the number of users following authorID
func FollowerCount(authorID uint64) (count int64, err error) {
	err = db.Instance.Model(&Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return
}

// FollowingCount is the number of authors userID follows
func FollowingCount(userID uint64) (count int64, err error) {
	err = db.Instance.Model(&Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return
}

func FollowerIDs(authorID uint64) (ids []uint64, err error) {
	err = db.Instance.Model(&Follow{}).Where("author_id = ?", authorID).Pluck("user_id", &ids).Error
	return
}
