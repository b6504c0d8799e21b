package models

import "time"

// User represents an account known to the review engine. Reviewer capability
// is a flag on the user, matching the conference committee model where any
// registered member can be promoted to reviewer.
type User struct {
	UserID           int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email            string     `gorm:"column:email" json:"email"`
	FirstName        string     `gorm:"column:first_name" json:"first_name"`
	LastName         string     `gorm:"column:last_name" json:"last_name"`
	IsAdmin          bool       `gorm:"column:is_admin" json:"is_admin"`
	IsReviewer       bool       `gorm:"column:is_reviewer" json:"is_reviewer"`
	IsActive         bool       `gorm:"column:is_active" json:"is_active"`
	IsActivated      bool       `gorm:"column:is_activated" json:"is_activated"`
	SpecialitesCodes string     `gorm:"column:specialites_codes" json:"specialites_codes"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// FullName returns the display name, falling back to the email address.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// CanReview reports whether the user is an eligible reviewer.
func (u *User) CanReview() bool {
	return u.IsReviewer && u.IsActive && u.IsActivated && u.DeleteAt == nil
}
