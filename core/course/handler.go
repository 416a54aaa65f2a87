package course

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cursoshub/elearning/api/web"
	"github.com/cursoshub/elearning/api/weberr"
	"github.com/cursoshub/elearning/core/progress"
	"github.com/cursoshub/elearning/database"
	"github.com/cursoshub/elearning/validate"
	"github.com/jmoiron/sqlx"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cn CourseNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding course: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var full Full
		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			var err error
			full, err = Create(ctx, tx, cn, time.Now().UTC())
			return err
		})
		if err != nil {
			return fmt.Errorf("creating course: %w", err)
		}

		return web.Respond(ctx, w, full, http.StatusCreated)
	}
}

// HandleUpdate replaces the course content and resyncs every
// enrollment's progress in the same transaction: the total-lessons
// snapshot is rewritten and completed ids of replaced lessons are
// dropped, keeping flags and percentages consistent with the new
// catalog.
func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID, err := validate.CheckIntID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var cn CourseNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding course: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var full Full
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			var err error
			full, err = Update(ctx, tx, courseID, cn, time.Now().UTC())
			if err != nil {
				return err
			}

			return progress.Resync(ctx, tx, courseID, cn.TotalLessons())
		})
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("updating course[%d]: %w", courseID, err)
		}

		return web.Respond(ctx, w, full, http.StatusOK)
	}
}

func HandleDeactivate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID, err := validate.CheckIntID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		if err := Deactivate(ctx, db, courseID, time.Now().UTC()); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleReactivate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID, err := validate.CheckIntID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		if err := Reactivate(ctx, db, courseID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cs, err := List(ctx, db)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, cs, http.StatusOK)
	}
}

func HandleListActive(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cs, err := ListActive(ctx, db)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, cs, http.StatusOK)
	}
}

func HandleListAvailable(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		userID, err := validate.CheckIntID(web.Param(r, "user_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		cs, err := ListAvailable(ctx, db, userID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, cs, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID, err := validate.CheckIntID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		full, err := FetchFull(ctx, db, courseID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, full, http.StatusOK)
	}
}
