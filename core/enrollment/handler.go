package enrollment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cursoshub/elearning/api/web"
	"github.com/cursoshub/elearning/api/weberr"
	"github.com/cursoshub/elearning/core/course"
	"github.com/cursoshub/elearning/core/progress"
	"github.com/cursoshub/elearning/core/user"
	"github.com/cursoshub/elearning/database"
	"github.com/cursoshub/elearning/validate"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrAlreadyEnrolled is returned on a duplicate enroll attempt
	// for the same (user, course).
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")

	// ErrPriceMismatch is returned when the price paid does not match
	// the course's current price.
	ErrPriceMismatch = errors.New("the price paid does not match the course price")
)

// Enroll creates the enrollment and its progress snapshot in a
// single transaction. Under Purchase mode the price paid must match
// the course's current price exactly; Gift forces the price to 0 and
// skips the check.
func Enroll(ctx context.Context, db *sqlx.DB, userID int, courseID int, pricePaid float64, mode Mode, paymentID *string, now time.Time) (Enrollment, error) {
	c, err := course.Fetch(ctx, db, courseID)
	if err != nil {
		return Enrollment{}, err
	}

	switch mode {
	case Purchase:
		if pricePaid == 0 && c.Price > 0 {
			return Enrollment{}, ErrPriceMismatch
		}
		if pricePaid > 0 && pricePaid != c.Price {
			return Enrollment{}, ErrPriceMismatch
		}
	case Gift:
		pricePaid = 0
	}

	e := Enrollment{
		UserID:    userID,
		CourseID:  courseID,
		PricePaid: pricePaid,
		Status:    StatusPaid,
		PaymentID: paymentID,
		CreatedAt: now,
	}

	err = database.Transaction(db, func(tx sqlx.ExtContext) error {
		created, err := Create(ctx, tx, e)
		if err != nil {
			if errors.Is(err, database.ErrUniqueViolation) {
				return ErrAlreadyEnrolled
			}
			return err
		}
		e = created

		total, err := course.LessonCount(ctx, tx, courseID)
		if err != nil {
			return err
		}

		if _, err := progress.Create(ctx, tx, userID, courseID, total); err != nil {
			return err
		}

		// Gifted students count as enrolled students too.
		if err := course.IncrementStudents(ctx, tx, courseID); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return Enrollment{}, fmt.Errorf("enrolling user[%d] in course[%d]: %w", userID, courseID, err)
	}

	return e, nil
}

func respondEnrollError(err error) error {
	switch {
	case errors.Is(err, ErrAlreadyEnrolled):
		return weberr.Conflict(ErrAlreadyEnrolled)
	case errors.Is(err, ErrPriceMismatch):
		return weberr.UnprocessableEntity(ErrPriceMismatch)
	case errors.Is(err, database.ErrNotFound):
		return weberr.NotFound(err)
	}
	return err
}

func HandleEnroll(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID, err := validate.CheckIntID(web.Param(r, "course_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var en EnrollNew
		if err := web.Decode(w, r, &en); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding enrollment: %w", err))
		}

		if err := validate.Check(en); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		e, err := Enroll(ctx, db, en.UserID, courseID, en.PricePaid, Purchase, nil, time.Now().UTC())
		if err != nil {
			return respondEnrollError(err)
		}

		return web.Respond(ctx, w, e, http.StatusCreated)
	}
}

func HandleGift(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID, err := validate.CheckIntID(web.Param(r, "course_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var gn GiftNew
		if err := web.Decode(w, r, &gn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding gift: %w", err))
		}

		if err := validate.Check(gn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		e, err := Enroll(ctx, db, gn.UserID, courseID, 0, Gift, nil, time.Now().UTC())
		if err != nil {
			return respondEnrollError(err)
		}

		return web.Respond(ctx, w, e, http.StatusCreated)
	}
}

// HandleFakePayment simulates an instantaneous successful payment:
// the user is enrolled at the course's current price and the
// enrollment is stamped with an opaque payment id.
func HandleFakePayment(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn PaymentNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding payment: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if _, err := user.Fetch(ctx, db, pn.UserID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		c, err := course.Fetch(ctx, db, pn.CourseID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		paymentID := validate.GeneratePaymentID()
		e, err := Enroll(ctx, db, pn.UserID, pn.CourseID, c.Price, Purchase, &paymentID, time.Now().UTC())
		if err != nil {
			return respondEnrollError(err)
		}

		return web.Respond(ctx, w, e, http.StatusCreated)
	}
}
