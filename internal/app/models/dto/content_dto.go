package dto

import "time"

// CreateMaterialRequest is the multipart form of a new material. The file
// travels as the "file" part.
type CreateMaterialRequest struct {
	UniversityID int64  `form:"university_id" binding:"required,min=1"`
	CampusID     int64  `form:"campus_id" binding:"required,min=1"`
	CourseID     int64  `form:"course_id" binding:"required,min=1"`
	MaterialType string `form:"material_type" binding:"required,material_type" example:"past_paper"`
	Title        string `form:"title" binding:"max=255"`
	Subtitle     string `form:"subtitle" binding:"max=255"`
}

// MaterialResponse represents a material with the absolute URL of its file
type MaterialResponse struct {
	ID           int64   `json:"id"`
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	MaterialType string  `json:"material_type"`
	FileURL      string  `json:"file_url"`
}

// CreateEventRequest is the multipart form of a new event
type CreateEventRequest struct {
	UniversityID   int64  `form:"university_id" binding:"required,min=1"`
	Title          string `form:"title" binding:"required,max=255"`
	Description    string `form:"description"`
	Time           string `form:"time" binding:"required,clock" example:"14:30"`
	Date           string `form:"date" binding:"required,datetime=2006-01-02" example:"2025-05-01"`
	IsBreakingNews bool   `form:"is_breaking_news"`
}

// EventResponse represents an event
type EventResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Time           string  `json:"time"`
	Date           string  `json:"date"`
	ImageURL       *string `json:"image_url"`
	IsBreakingNews bool    `json:"is_breaking_news"`
	UniversityID   int64   `json:"university_id"`
	User           *int64  `json:"user"`
	UserID         *int64  `json:"user_id"`
	Username       *string `json:"username"`
}

// CreateBlogRequest is the multipart form of a new blog post
type CreateBlogRequest struct {
	UniversityID   *int64 `form:"university_id" binding:"omitempty,min=1"`
	Title          string `form:"title" binding:"required,max=255"`
	Content        string `form:"content" binding:"required"`
	Date           string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	IsBreakingNews bool   `form:"is_breaking_news"`
}

// BlogResponse represents a blog post
type BlogResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Date           string  `json:"date"`
	ImageURL       *string `json:"image_url"`
	IsBreakingNews bool    `json:"is_breaking_news"`
	UniversityID   *int64  `json:"university_id"`
	AuthorID       int64   `json:"author_id"`
	Author         string  `json:"author"`
}

// CreateCommentRequest is the body of a new comment or reply
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse represents a blog comment
type CommentResponse struct {
	ID            int64     `json:"id"`
	Blog          int64     `json:"blog"`
	User          *int64    `json:"user"`
	Username      *string   `json:"username"`
	ParentComment *int64    `json:"parent_comment"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	TotalLikes    int       `json:"total_likes"`
	ReplyCount    int       `json:"reply_count"`
}

// LikeToggleResponse reports the outcome of a like toggle
type LikeToggleResponse struct {
	Action     string `json:"action" enums:"liked,unliked"`
	TotalLikes int    `json:"total_likes"`
}

// CreateLeaderRequest is the multipart form of a new leader entry
type CreateLeaderRequest struct {
	UniversityID int64  `form:"university_id" binding:"required,min=1"`
	CampusID     int64  `form:"campus_id" binding:"required,min=1"`
	Names        string `form:"names" binding:"required,max=255"`
	Title        string `form:"title" binding:"required,max=255"`
}

// LeaderResponse represents a student leader
type LeaderResponse struct {
	ID    int64   `json:"id"`
	Names string  `json:"names"`
	Title string  `json:"title"`
	Image *string `json:"image"`
}

// NotificationResponse represents a notification
type NotificationResponse struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
	Read    bool      `json:"read"`
}
