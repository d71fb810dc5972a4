package dto

import "time"

// CreateCommunityRequest represents data for creating a new community
type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// CommunityResponse represents a community; Admin is the creator's user id
type CommunityResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Admin       int64  `json:"admin"`
}

// CreateGroupRequest is the multipart form of a new group. The picture
// travels as the "profile_picture" part.
type CreateGroupRequest struct {
	CommunityID       int64  `form:"community" binding:"required,min=1"`
	Name              string `form:"name" binding:"required,max=255"`
	Description       string `form:"description"`
	InteractionPolicy string `form:"interaction_policy" binding:"omitempty,interaction_policy"`
}

// GroupResponse represents a group with its derived follower count
type GroupResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ProfilePicture    *string   `json:"profile_picture"`
	Community         int64     `json:"community"`
	CreatedAt         time.Time `json:"created_at"`
	Admin             int64     `json:"admin"`
	FollowerCount     int       `json:"follower_count"`
	Username          string    `json:"username"`
	InteractionPolicy string    `json:"interaction_policy"`
}

// FollowRequest names the follower when the request is anonymous
type FollowRequest struct {
	UserID *int64 `json:"userID" binding:"omitempty,min=1"`
}

// FollowResponse reports the state after a follow toggle
type FollowResponse struct {
	Message       string `json:"message"`
	FollowerCount int    `json:"follower_count"`
	IsFollowing   bool   `json:"is_following"`
}

// MembershipResponse represents a user's membership in a group
type MembershipResponse struct {
	ID      int64 `json:"id"`
	User    int64 `json:"user"`
	Group   int64 `json:"group"`
	IsAdmin bool  `json:"is_admin"`
}
