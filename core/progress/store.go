package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cursoshub/elearning/database"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Create inserts the progress snapshot for a fresh enrollment. It
// runs in the same transaction that creates the purchase.
func Create(ctx context.Context, tx sqlx.ExtContext, userID int, courseID int, totalLessons int) (Progress, error) {
	const q = `
	INSERT INTO progress (user_id, course_id, total_lessons, completed_lesson_ids)
	VALUES ($1, $2, $3, '{}')
	RETURNING progress_id`

	var id int
	if err := sqlx.GetContext(ctx, tx, &id, q, userID, courseID, totalLessons); err != nil {
		return Progress{}, fmt.Errorf("inserting progress of user[%d] course[%d]: %w", userID, courseID, err)
	}

	return Progress{
		ID:                 id,
		UserID:             userID,
		CourseID:           courseID,
		TotalLessons:       totalLessons,
		CompletedLessonIDs: pq.Int64Array{},
	}, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, userID int, courseID int) (Progress, error) {
	const q = `SELECT * FROM progress WHERE user_id = $1 AND course_id = $2`
	return fetch(ctx, db, q, userID, courseID)
}

// FetchForUpdate locks the progress row for the rest of the
// transaction, serializing concurrent toggles on the same key.
func FetchForUpdate(ctx context.Context, tx sqlx.ExtContext, userID int, courseID int) (Progress, error) {
	const q = `SELECT * FROM progress WHERE user_id = $1 AND course_id = $2 FOR UPDATE`
	return fetch(ctx, tx, q, userID, courseID)
}

func fetch(ctx context.Context, db sqlx.ExtContext, q string, userID int, courseID int) (Progress, error) {
	var p Progress
	if err := sqlx.GetContext(ctx, db, &p, q, userID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Progress{}, database.ErrNotFound
		}
		return Progress{}, fmt.Errorf("fetching progress of user[%d] course[%d]: %w", userID, courseID, err)
	}

	return p, nil
}

// lessonInCourse reports whether the lesson belongs to the course's
// current catalog.
func lessonInCourse(ctx context.Context, db sqlx.ExtContext, courseID int, lessonID int) (bool, error) {
	const q = `
	SELECT EXISTS (
		SELECT 1 FROM lessons AS l
		JOIN modules AS m ON m.module_id = l.module_id
		WHERE m.course_id = $1 AND l.lesson_id = $2
	)`

	var ok bool
	if err := sqlx.GetContext(ctx, db, &ok, q, courseID, lessonID); err != nil {
		return false, fmt.Errorf("checking lesson[%d] of course[%d]: %w", lessonID, courseID, err)
	}

	return ok, nil
}

func ListByUser(ctx context.Context, db sqlx.ExtContext, userID int) ([]Progress, error) {
	const q = `SELECT * FROM progress WHERE user_id = $1`

	ps := []Progress{}
	if err := sqlx.SelectContext(ctx, db, &ps, q, userID); err != nil {
		return nil, fmt.Errorf("listing progress of user[%d]: %w", userID, err)
	}

	return ps, nil
}

func UpdateCompleted(ctx context.Context, tx sqlx.ExtContext, progressID int, completed pq.Int64Array) error {
	const q = `UPDATE progress SET completed_lesson_ids = $2 WHERE progress_id = $1`

	if _, err := tx.ExecContext(ctx, q, progressID, completed); err != nil {
		return fmt.Errorf("updating completed lessons of progress[%d]: %w", progressID, err)
	}

	return nil
}

// Resync rewrites the lesson-count snapshot of every progress row of
// the course after a catalog edit, and drops completed ids that no
// longer exist in the catalog. Without the prune a stale id would
// keep counting towards completion of the edited course.
func Resync(ctx context.Context, tx sqlx.ExtContext, courseID int, totalLessons int) error {
	const q = `
	UPDATE progress SET
		total_lessons = $2,
		completed_lesson_ids = ARRAY(
			SELECT x FROM unnest(completed_lesson_ids) AS x
			WHERE x IN (
				SELECT l.lesson_id FROM lessons AS l
				JOIN modules AS m ON m.module_id = l.module_id
				WHERE m.course_id = $1
			)
		)
	WHERE course_id = $1`

	if _, err := tx.ExecContext(ctx, q, courseID, totalLessons); err != nil {
		return fmt.Errorf("resyncing progress of course[%d]: %w", courseID, err)
	}

	return nil
}
