package dto

// UniversityResponse represents a university
type UniversityResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"University of Dar es Salaam"`
}

// CampusResponse represents a campus; University is the parent id
type CampusResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	University int64  `json:"university"`
}

// CourseResponse represents a course with its parents rendered by name
type CourseResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	University string `json:"university"`
	Campus     string `json:"campus"`
}
