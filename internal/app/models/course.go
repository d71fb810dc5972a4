package models

// University is the root of the directory hierarchy.
type University struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Campus belongs to a university.
type Campus struct {
	ID             int64  `db:"id"`
	UniversityID   int64  `db:"university_id"`
	Name           string `db:"name"`
	UniversityName string
}

// Course belongs to a campus and, redundantly, to the campus' university.
type Course struct {
	ID             int64  `db:"id"`
	UniversityID   int64  `db:"university_id"`
	CampusID       int64  `db:"campus_id"`
	Name           string `db:"name"`
	UniversityName string
	CampusName     string
}
