package courseview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/cursoshub/elearning/api/web"
	"github.com/cursoshub/elearning/api/weberr"
	"github.com/cursoshub/elearning/core/certificate"
	"github.com/cursoshub/elearning/core/course"
	"github.com/cursoshub/elearning/core/enrollment"
	"github.com/cursoshub/elearning/core/progress"
	"github.com/cursoshub/elearning/database"
	"github.com/cursoshub/elearning/validate"
	"github.com/jmoiron/sqlx"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type OwnerListing struct {
	Courses    []OwnerCourse `json:"courses"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func fetchOwner(ctx context.Context, db *sqlx.DB, e enrollment.Enrollment) (OwnerCourse, error) {
	full, err := course.FetchFull(ctx, db, e.CourseID)
	if err != nil {
		return OwnerCourse{}, err
	}

	p, err := progress.Fetch(ctx, db, e.UserID, e.CourseID)
	if err != nil {
		return OwnerCourse{}, err
	}

	var cert *certificate.Certificate
	c, err := certificate.Fetch(ctx, db, e.UserID, e.CourseID)
	switch {
	case err == nil:
		cert = &c
	case !errors.Is(err, database.ErrNotFound):
		return OwnerCourse{}, err
	}

	return ProjectOwner(full, e, p, cert), nil
}

// HandleMyCourses lists the viewer's purchased courses, newest
// purchase first, with progress and certificate state attached.
func HandleMyCourses(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		userID, err := validate.CheckIntID(web.Param(r, "user_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		page := queryInt(r, "page", defaultPage)
		limit := queryInt(r, "limit", defaultLimit)

		total, err := enrollment.CountByUser(ctx, db, userID)
		if err != nil {
			return err
		}

		es, err := enrollment.ListByUser(ctx, db, userID, (page-1)*limit, limit)
		if err != nil {
			return err
		}

		courses := make([]OwnerCourse, 0, len(es))
		for _, e := range es {
			oc, err := fetchOwner(ctx, db, e)
			if err != nil {
				return fmt.Errorf("assembling course[%d] for user[%d]: %w", e.CourseID, userID, err)
			}
			courses = append(courses, oc)
		}

		listing := OwnerListing{
			Courses:    courses,
			Total:      total,
			Page:       page,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		}

		return web.Respond(ctx, w, listing, http.StatusOK)
	}
}

func HandleMyCourse(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		userID, err := validate.CheckIntID(web.Param(r, "user_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		courseID, err := validate.CheckIntID(web.Param(r, "course_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		e, err := enrollment.Fetch(ctx, db, userID, courseID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(errors.New("course not found or not purchased"))
			}
			return err
		}

		oc, err := fetchOwner(ctx, db, e)
		if err != nil {
			return fmt.Errorf("assembling course[%d] for user[%d]: %w", courseID, userID, err)
		}

		return web.Respond(ctx, w, oc, http.StatusOK)
	}
}

// HandlePreview shows an active course to a prospective buyer. A
// user id of 0 means an anonymous visitor; a known user who already
// owns the course is redirected to the owner view by a conflict.
func HandlePreview(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID, err := validate.CheckIntID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		userID := 0
		if raw := web.Param(r, "user_id"); raw != "0" {
			userID, err = validate.CheckIntID(raw)
			if err != nil {
				return weberr.BadRequest(err)
			}
		}

		if userID != 0 {
			_, err := enrollment.Fetch(ctx, db, userID, courseID)
			if err == nil {
				return weberr.Conflict(errors.New("user is already enrolled in this course"))
			}
			if !errors.Is(err, database.ErrNotFound) {
				return err
			}
		}

		c, err := course.FetchActive(ctx, db, courseID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		mods, err := course.FetchContent(ctx, db, courseID)
		if err != nil {
			return err
		}

		pv := ProjectPreview(course.Full{Course: c, Modules: mods})

		return web.Respond(ctx, w, pv, http.StatusOK)
	}
}
