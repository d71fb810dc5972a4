package dto

// ProfileResponse is the serialized profile of a user
type ProfileResponse struct {
	UserID         int64   `json:"user_id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	University     string  `json:"university"`
	UniversityID   int64   `json:"university_id"`
	Campus         string  `json:"campus"`
	CampusID       int64   `json:"campus_id"`
	Course         string  `json:"course"`
	CourseID       int64   `json:"course_id"`
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateProfileRequest is a partial multipart update of a profile. The
// picture travels as the "profile_picture" file part.
type UpdateProfileRequest struct {
	Username    *string `form:"username" binding:"omitempty,max=150,username"`
	PhoneNumber *string `form:"phone_number" binding:"omitempty,phone"`
}

// UserSummaryResponse is the id/username pair used in user listings
type UserSummaryResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
