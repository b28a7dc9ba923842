package domain

import "time"

// Post is owned content. UserID references the owning user; deleting the
// owner cascades to their posts (enforced by the schema, not here).
type Post struct {
	ID        int64 `gorm:"primaryKey"`
	Title     string
	Content   string
	ImagePath *string
	UserID    int64
	CreatedAt time.Time
	// UpdatedAt stays nil until the first successful update. Managed by
	// the service layer, not the ORM.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`

	// Eager-fetched relations (Posts.GetWithDetails); zero value elsewhere.
	User     *User     `gorm:"foreignKey:UserID"`
	Comments []Comment `gorm:"foreignKey:PostID"`
}

func (Post) TableName() string { return "posts" }

func (p Post) PrimaryKey() int64 { return p.ID }
