package domain

import "time"

// User is an identity record. The password hash is opaque to everything
// except pkg/cryptox and must never leave the process in any serialized
// form, hence the json:"-" tag as a second line of enforcement behind
// PublicUser.
type User struct {
	ID               int64  `gorm:"primaryKey"`
	Username         string // unique, 3-50 chars
	Email            string // unique
	PasswordHash     string `json:"-"`
	DisplayName      string
	ProfileImagePath *string
	CreatedAt        time.Time

	// Posts owned by this user. Populated only by eager-fetch queries
	// (Users.GetWithPosts); zero value everywhere else.
	Posts []Post `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

func (u User) PrimaryKey() int64 { return u.ID }

// Public returns the externally visible view of the user. The password
// hash is excluded unconditionally.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		DisplayName:      u.DisplayName,
		ProfileImagePath: u.ProfileImagePath,
		CreatedAt:        u.CreatedAt,
	}
}

// PublicUser is the serializable account view returned by the API.
type PublicUser struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	ProfileImagePath *string   `json:"profile_image_path,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// AuthResult is what register/login hand back to the boundary.
type AuthResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      PublicUser `json:"user"`
}
