package certificate

import "time"

type Certificate struct {
	ID       int       `json:"id" db:"certificate_id"`
	UserID   int       `json:"userId" db:"user_id"`
	CourseID int       `json:"courseId" db:"course_id"`
	Token    string    `json:"token" db:"token"`
	IssuedAt time.Time `json:"issuedAt" db:"issued_at"`
}

// UserCertificate is a certificate joined with the metadata of the
// course it was earned on, for user-facing listings.
type UserCertificate struct {
	Certificate
	CourseTitle string `json:"courseTitle" db:"course_title"`
	Instructor  string `json:"instructor" db:"instructor"`
	Category    string `json:"category" db:"category"`
}
