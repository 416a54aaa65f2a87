package dashboard

import (
	"context"
	"net/http"

	"github.com/cursoshub/elearning/api/web"
	"github.com/cursoshub/elearning/api/weberr"
	"github.com/cursoshub/elearning/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		userID, err := validate.CheckIntID(web.Param(r, "user_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		d, err := Fetch(ctx, db, userID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, d, http.StatusOK)
	}
}
