package progress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cursoshub/elearning/api/web"
	"github.com/cursoshub/elearning/api/weberr"
	"github.com/cursoshub/elearning/core/certificate"
	"github.com/cursoshub/elearning/database"
	"github.com/cursoshub/elearning/validate"
	"github.com/jmoiron/sqlx"
)

// ErrCourseCompleted is returned when a toggle targets a course the
// user already holds a certificate for. Completed courses are frozen.
var ErrCourseCompleted = errors.New("the course was already completed")

// ToggleResult is the outcome of a lesson toggle: the updated
// progress plus the certificate when this toggle reached completion.
type ToggleResult struct {
	Progress    Progress                 `json:"progress"`
	Certificate *certificate.Certificate `json:"certificate,omitempty"`
}

// Toggle flips the lesson in the user's completed set and, when the
// flip fills the set, issues the certificate within the same
// transaction. Lessons outside the course's current catalog are
// rejected. The progress row lock serializes concurrent toggles on
// the same (user, course) key.
func Toggle(ctx context.Context, db *sqlx.DB, userID int, courseID int, lessonID int, now time.Time) (ToggleResult, error) {
	var res ToggleResult

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		p, err := FetchForUpdate(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}

		ok, err := lessonInCourse(ctx, tx, courseID, lessonID)
		if err != nil {
			return err
		}
		if !ok {
			return database.ErrNotFound
		}

		if _, err := certificate.Fetch(ctx, tx, userID, courseID); err == nil {
			return ErrCourseCompleted
		} else if !errors.Is(err, database.ErrNotFound) {
			return err
		}

		p.CompletedLessonIDs = p.Flip(lessonID)
		if err := UpdateCompleted(ctx, tx, p.ID, p.CompletedLessonIDs); err != nil {
			return err
		}

		res.Progress = p

		cert, _, err := certificate.IssueIfComplete(ctx, tx, userID, courseID, len(p.CompletedLessonIDs), p.TotalLessons, now)
		if err != nil {
			return err
		}
		if cert.Token != "" {
			res.Certificate = &cert
		}

		return nil
	})

	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggling lesson[%d] of user[%d] course[%d]: %w", lessonID, userID, courseID, err)
	}

	return res, nil
}

func HandleToggle(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		userID, err := validate.CheckIntID(web.Param(r, "user_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		courseID, err := validate.CheckIntID(web.Param(r, "course_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		lessonID, err := validate.CheckIntID(web.Param(r, "lesson_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		res, err := Toggle(ctx, db, userID, courseID, lessonID, time.Now().UTC())
		if err != nil {
			if errors.Is(err, ErrCourseCompleted) {
				return weberr.UnprocessableEntity(ErrCourseCompleted)
			}
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}
