package certificate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cursoshub/elearning/database"
	"github.com/jmoiron/sqlx"
)

func Fetch(ctx context.Context, db sqlx.ExtContext, userID int, courseID int) (Certificate, error) {
	const q = `SELECT * FROM certificates WHERE user_id = $1 AND course_id = $2`

	var c Certificate
	if err := sqlx.GetContext(ctx, db, &c, q, userID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Certificate{}, database.ErrNotFound
		}
		return Certificate{}, fmt.Errorf("fetching certificate of user[%d] course[%d]: %w", userID, courseID, err)
	}

	return c, nil
}

func ListByUser(ctx context.Context, db sqlx.ExtContext, userID int) ([]UserCertificate, error) {
	const q = `
	SELECT ce.*, co.title AS course_title, co.instructor, co.category
	FROM certificates AS ce
	JOIN courses AS co ON co.course_id = ce.course_id
	WHERE ce.user_id = $1
	ORDER BY ce.issued_at DESC`

	cs := []UserCertificate{}
	if err := sqlx.SelectContext(ctx, db, &cs, q, userID); err != nil {
		return nil, fmt.Errorf("listing certificates of user[%d]: %w", userID, err)
	}

	return cs, nil
}

// Create inserts the certificate row. The (user_id, course_id)
// unique constraint turns a concurrent double-issue into
// database.ErrUniqueViolation.
func Create(ctx context.Context, tx sqlx.ExtContext, userID int, courseID int, token string, now time.Time) (Certificate, error) {
	const q = `
	INSERT INTO certificates (user_id, course_id, token, issued_at)
	VALUES ($1, $2, $3, $4)
	RETURNING certificate_id`

	var id int
	if err := sqlx.GetContext(ctx, tx, &id, q, userID, courseID, token, now); err != nil {
		if database.IsUniqueViolation(err, "certificates_user_course_key") {
			return Certificate{}, database.ErrUniqueViolation
		}
		return Certificate{}, fmt.Errorf("inserting certificate of user[%d] course[%d]: %w", userID, courseID, err)
	}

	return Certificate{ID: id, UserID: userID, CourseID: courseID, Token: token, IssuedAt: now}, nil
}
