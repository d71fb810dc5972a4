package models

import "time"

// GroupMessage is a broadcast message posted to a group by a follower.
type GroupMessage struct {
	ID        int64     `db:"id"`
	GroupID   int64     `db:"group_id"`
	SenderID  int64     `db:"sender_id"`
	Username  string    `db:"username"`
	Content   string    `db:"content"`
	Read      bool      `db:"read"`
	Timestamp time.Time `db:"timestamp"`
}

// DirectMessage is a one-to-one message. SenderID never equals RecipientID.
type DirectMessage struct {
	ID          int64     `db:"id"`
	SenderID    int64     `db:"sender_id"`
	RecipientID int64     `db:"recipient_id"`
	Content     string    `db:"content"`
	Timestamp   time.Time `db:"timestamp"`

	SenderUsername    string
	RecipientUsername string
}

// BlockedUser is a directed block edge.
type BlockedUser struct {
	ID        int64     `db:"id"`
	BlockerID int64     `db:"blocker_id"`
	BlockedID int64     `db:"blocked_id"`
	CreatedAt time.Time `db:"created_at"`
}

// ChatPartner is a counterpart of a user's direct messages.
type ChatPartner struct {
	UserID   int64
	Username string
}
