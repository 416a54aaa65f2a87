package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cursoshub/elearning/database"
	"github.com/jmoiron/sqlx"
)

// Create inserts the enrollment row. The (user_id, course_id) unique
// constraint rejects concurrent duplicate enrollments.
func Create(ctx context.Context, tx sqlx.ExtContext, e Enrollment) (Enrollment, error) {
	const q = `
	INSERT INTO purchases (user_id, course_id, price_paid, status, payment_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING purchase_id`

	var id int
	err := sqlx.GetContext(ctx, tx, &id, q, e.UserID, e.CourseID, e.PricePaid, e.Status, e.PaymentID, e.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "purchases_user_course_key") {
			return Enrollment{}, database.ErrUniqueViolation
		}
		return Enrollment{}, fmt.Errorf("inserting enrollment of user[%d] course[%d]: %w", e.UserID, e.CourseID, err)
	}

	e.ID = id
	return e, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, userID int, courseID int) (Enrollment, error) {
	const q = `SELECT * FROM purchases WHERE user_id = $1 AND course_id = $2`

	var e Enrollment
	if err := sqlx.GetContext(ctx, db, &e, q, userID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enrollment{}, database.ErrNotFound
		}
		return Enrollment{}, fmt.Errorf("fetching enrollment of user[%d] course[%d]: %w", userID, courseID, err)
	}

	return e, nil
}

func ListByUser(ctx context.Context, db sqlx.ExtContext, userID int, offset int, limit int) ([]Enrollment, error) {
	const q = `
	SELECT * FROM purchases
	WHERE user_id = $1
	ORDER BY created_at DESC, purchase_id DESC
	OFFSET $2 LIMIT $3`

	es := []Enrollment{}
	if err := sqlx.SelectContext(ctx, db, &es, q, userID, offset, limit); err != nil {
		return nil, fmt.Errorf("listing enrollments of user[%d]: %w", userID, err)
	}

	return es, nil
}

func CountByUser(ctx context.Context, db sqlx.ExtContext, userID int) (int, error) {
	const q = `SELECT COUNT(*) FROM purchases WHERE user_id = $1`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, userID); err != nil {
		return 0, fmt.Errorf("counting enrollments of user[%d]: %w", userID, err)
	}

	return n, nil
}
