package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"alice"`
	Email     string    `json:"email" db:"email" example:"alice@tu.ac.tz"`
	Password  string    `json:"-" db:"password"` // bcrypt hash
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Profile is the one-to-one extension of a user created at registration.
// University, campus and course never change after creation.
type Profile struct {
	ID             int64   `db:"id"`
	UserID         int64   `db:"user_id"`
	PhoneNumber    string  `db:"phone_number"`
	ProfilePicture *string `db:"profile_picture"`
	UniversityID   int64   `db:"university_id"`
	CampusID       int64   `db:"campus_id"`
	CourseID       int64   `db:"course_id"`

	// Joined columns
	Username       string
	Email          string
	UniversityName string
	CampusName     string
	CourseName     string
}

// AuthToken is a server side record of an issued bearer token.
type AuthToken struct {
	TokenID   string     `db:"token_id"`
	UserID    int64      `db:"user_id"`
	ExpiresAt *time.Time `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// OTP is the single active password reset code of a user.
type OTP struct {
	UserID    int64     `db:"user_id"`
	Code      string    `db:"code"`
	Verified  bool      `db:"verified"`
	CreatedAt time.Time `db:"created_at"`
}

// UserSummary is the id/username pair used in listings.
type UserSummary struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
}
