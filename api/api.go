package api

import (
	"context"
	"net/http"

	"github.com/cursoshub/elearning/api/middleware"
	"github.com/cursoshub/elearning/api/web"
	"github.com/cursoshub/elearning/core/certificate"
	"github.com/cursoshub/elearning/core/comment"
	"github.com/cursoshub/elearning/core/course"
	"github.com/cursoshub/elearning/core/courseview"
	"github.com/cursoshub/elearning/core/dashboard"
	"github.com/cursoshub/elearning/core/enrollment"
	"github.com/cursoshub/elearning/core/progress"
	"github.com/cursoshub/elearning/core/user"
	"github.com/cursoshub/elearning/rate"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Limiter    *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	a.Handle(http.MethodPost, "/users", user.HandleCreate(cfg.DB))
	a.Handle(http.MethodGet, "/users/{id}", user.HandleShow(cfg.DB))

	a.Handle(http.MethodGet, "/users/{user_id}/courses/available", course.HandleListAvailable(cfg.DB))
	a.Handle(http.MethodGet, "/users/{user_id}/courses/{course_id}", courseview.HandleMyCourse(cfg.DB))
	a.Handle(http.MethodGet, "/users/{user_id}/courses", courseview.HandleMyCourses(cfg.DB))
	a.Handle(http.MethodPut, "/users/{user_id}/courses/{course_id}/lessons/{lesson_id}/complete", progress.HandleToggle(cfg.DB))
	a.Handle(http.MethodGet, "/users/{user_id}/certificates", certificate.HandleListByUser(cfg.DB))
	a.Handle(http.MethodGet, "/users/{user_id}/dashboard", dashboard.HandleShow(cfg.DB))

	a.Handle(http.MethodGet, "/courses/active", course.HandleListActive(cfg.DB))
	a.Handle(http.MethodGet, "/courses/{id}/purchase/{user_id}", courseview.HandlePreview(cfg.DB))
	a.Handle(http.MethodGet, "/courses/{id}", course.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/courses", course.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/courses", course.HandleCreate(cfg.DB))
	a.Handle(http.MethodPut, "/courses/{id}/deactivate", course.HandleDeactivate(cfg.DB))
	a.Handle(http.MethodPut, "/courses/{id}/reactivate", course.HandleReactivate(cfg.DB))
	a.Handle(http.MethodPut, "/courses/{id}", course.HandleUpdate(cfg.DB))

	a.Handle(http.MethodPost, "/courses/{course_id}/enroll", enrollment.HandleEnroll(cfg.DB))
	a.Handle(http.MethodPost, "/courses/{course_id}/gift", enrollment.HandleGift(cfg.DB))
	a.Handle(http.MethodPost, "/purchases", enrollment.HandleFakePayment(cfg.DB))

	a.Handle(http.MethodGet, "/lessons/{lesson_id}/comments", comment.HandleListByLesson(cfg.DB))
	a.Handle(http.MethodPost, "/lessons/{lesson_id}/comments", comment.HandleCreate(cfg.DB))
	a.Handle(http.MethodPut, "/comments/{id}", comment.HandleUpdate(cfg.DB))
	a.Handle(http.MethodDelete, "/comments/{id}", comment.HandleDelete(cfg.DB))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
