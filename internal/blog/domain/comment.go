package domain

import "time"

// Comment is owned content attached to a post. Deleting the post cascades
// to its comments; deleting the author is restricted while their comments
// exist (schema-level, see the migrations).
type Comment struct {
	ID        int64 `gorm:"primaryKey"`
	Content   string
	PostID    int64
	UserID    int64
	CreatedAt time.Time

	// Eager-fetched relations; zero value outside detail queries.
	User *User `gorm:"foreignKey:UserID"`
	Post *Post `gorm:"foreignKey:PostID"`
}

func (Comment) TableName() string { return "comments" }

func (c Comment) PrimaryKey() int64 { return c.ID }
