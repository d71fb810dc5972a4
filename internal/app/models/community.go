package models

import "time"

// Community owns groups.
type Community struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	AdminID     int64     `db:"admin_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// Group belongs to a community. FollowerCount is derived from group_followers.
type Group struct {
	ID                int64             `db:"id"`
	CommunityID       int64             `db:"community_id"`
	AdminID           int64             `db:"admin_id"`
	Name              string            `db:"name"`
	Description       string            `db:"description"`
	ProfilePicture    *string           `db:"profile_picture"`
	InteractionPolicy InteractionPolicy `db:"interaction_policy"`
	CreatedAt         time.Time         `db:"created_at"`

	AdminUsername string
	FollowerCount int
}

// Membership is an explicit join of a user to a group. (user, group) is unique.
type Membership struct {
	ID       int64     `db:"id"`
	UserID   int64     `db:"user_id"`
	GroupID  int64     `db:"group_id"`
	IsAdmin  bool      `db:"is_admin"`
	JoinedAt time.Time `db:"joined_at"`
}

// FollowState is the result of a follow toggle.
type FollowState struct {
	IsFollowing   bool
	FollowerCount int
}
