package models

import "time"

// Material is a study file scoped to a course.
type Material struct {
	ID           int64        `db:"id"`
	UniversityID int64        `db:"university_id"`
	CampusID     int64        `db:"campus_id"`
	CourseID     int64        `db:"course_id"`
	MaterialType MaterialType `db:"material_type"`
	Title        *string      `db:"title"`
	Subtitle     *string      `db:"subtitle"`
	File         string       `db:"file"`
	CreatedAt    time.Time    `db:"created_at"`
}

// Event is a university scoped announcement with an optional image.
type Event struct {
	ID             int64     `db:"id"`
	UserID         *int64    `db:"user_id"`
	UniversityID   int64     `db:"university_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Time           string    `db:"time"` // HH:MM[:SS]
	Date           time.Time `db:"date"`
	Image          *string   `db:"image"`
	IsBreakingNews bool      `db:"is_breaking_news"`
	CreatedAt      time.Time `db:"created_at"`

	Username *string
}

// Blog is an authored post; breaking news posts form a separate feed.
type Blog struct {
	ID             int64     `db:"id"`
	AuthorID       int64     `db:"author_id"`
	UniversityID   *int64    `db:"university_id"`
	Title          string    `db:"title"`
	Content        string    `db:"content"`
	Date           time.Time `db:"date"`
	Image          *string   `db:"image"`
	IsBreakingNews bool      `db:"is_breaking_news"`
	CreatedAt      time.Time `db:"created_at"`

	AuthorUsername string
}

// BlogComment is a comment on a blog; ParentID marks a reply.
type BlogComment struct {
	ID        int64     `db:"id"`
	BlogID    int64     `db:"blog_id"`
	UserID    *int64    `db:"user_id"`
	ParentID  *int64    `db:"parent_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`

	Username   *string
	TotalLikes int
	ReplyCount int
}

// Leader is a student leader shown per university campus.
type Leader struct {
	ID           int64     `db:"id"`
	UniversityID int64     `db:"university_id"`
	CampusID     int64     `db:"campus_id"`
	Names        string    `db:"names"`
	Title        string    `db:"title"`
	Image        *string   `db:"image"`
	CreatedAt    time.Time `db:"created_at"`
}

// Notification is a broadcast notice.
type Notification struct {
	ID      int64     `db:"id"`
	Title   string    `db:"title"`
	Content string    `db:"content"`
	Time    time.Time `db:"time"`
	Read    bool      `db:"read"`
}
