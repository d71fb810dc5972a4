package dto

import "time"

// SendGroupMessageRequest is the body of a group message. UserID may be
// omitted when the request is authenticated.
type SendGroupMessageRequest struct {
	UserID   *int64 `json:"userID" binding:"omitempty,min=1"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

// GroupMessageResponse represents a message posted to a group
type GroupMessageResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	Group     int64     `json:"group"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Username  string    `json:"username"`
}

// SendDirectMessageRequest is the body of a direct message
type SendDirectMessageRequest struct {
	Recipient int64  `json:"recipient"`
	Content   string `json:"content"`
}

// DirectMessageResponse represents a direct message
type DirectMessageResponse struct {
	ID                int64     `json:"id"`
	Sender            int64     `json:"sender"`
	Recipient         int64     `json:"recipient"`
	Content           string    `json:"content"`
	Timestamp         time.Time `json:"timestamp"`
	RecipientUsername string    `json:"recipient_username"`
	SenderUsername    string    `json:"sender_username"`
}

// ChatPartnerResponse is a counterpart in a user's direct messages
type ChatPartnerResponse struct {
	Recipient int64  `json:"recipient"`
	Username  string `json:"username"`
}

// ChatUsersResponse lists the chat partners of a user
type ChatUsersResponse struct {
	Users []ChatPartnerResponse `json:"users"`
}

// BlockRequest names the target of a block, unblock or status check
type BlockRequest struct {
	UserID int64 `json:"user_id" binding:"required,min=1"`
}

// BlockStatusResponse reports whether the caller blocks the target
type BlockStatusResponse struct {
	Blocked bool `json:"blocked"`
}
