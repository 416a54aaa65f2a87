package comment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cursoshub/elearning/api/web"
	"github.com/cursoshub/elearning/api/weberr"
	"github.com/cursoshub/elearning/database"
	"github.com/cursoshub/elearning/validate"
	"github.com/jmoiron/sqlx"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		lessonID, err := validate.CheckIntID(web.Param(r, "lesson_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var cn CommentNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding comment: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c, err := Create(ctx, db, lessonID, cn, time.Now().UTC())
		if err != nil {
			if errors.Is(err, ErrTooDeep) {
				return weberr.UnprocessableEntity(ErrTooDeep)
			}
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, c, http.StatusCreated)
	}
}

func HandleListByLesson(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		lessonID, err := validate.CheckIntID(web.Param(r, "lesson_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		cs, err := ListByLesson(ctx, db, lessonID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, cs, http.StatusOK)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		commentID, err := validate.CheckIntID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var cu CommentUp
		if err := web.Decode(w, r, &cu); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding comment: %w", err))
		}

		if err := validate.Check(cu); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c, err := Update(ctx, db, commentID, cu, time.Now().UTC())
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		commentID, err := validate.CheckIntID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		if err := Delete(ctx, db, commentID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
