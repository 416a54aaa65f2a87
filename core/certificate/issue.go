package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cursoshub/elearning/database"
	"github.com/cursoshub/elearning/random"
	"github.com/jmoiron/sqlx"
)

// tokenLength over the 62-symbol charset gives well above the
// 128 bits of entropy a verification token needs.
const tokenLength = 32

// IssueIfComplete issues the certificate when the progress has
// reached full completion and none exists yet for (user, course).
// Safe to call repeatedly: a lost race against a concurrent issue
// returns the winner's certificate instead of an error. The second
// return reports whether the certificate was created by this call.
func IssueIfComplete(ctx context.Context, tx sqlx.ExtContext, userID int, courseID int, completedLessons int, totalLessons int, now time.Time) (Certificate, bool, error) {
	if totalLessons == 0 || completedLessons != totalLessons {
		return Certificate{}, false, nil
	}

	token, err := random.StringSecure(tokenLength)
	if err != nil {
		return Certificate{}, false, fmt.Errorf("generating verification token: %w", err)
	}

	cert, err := Create(ctx, tx, userID, courseID, token, now)
	if err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			existing, ferr := Fetch(ctx, tx, userID, courseID)
			if ferr != nil {
				return Certificate{}, false, fmt.Errorf("fetching concurrently issued certificate: %w", ferr)
			}
			return existing, false, nil
		}
		return Certificate{}, false, err
	}

	return cert, true, nil
}
