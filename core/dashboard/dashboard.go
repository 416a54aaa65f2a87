// Package dashboard aggregates a user's learning activity into the
// read-only counters shown on the landing page.
package dashboard

import (
	"context"
	"fmt"

	"github.com/cursoshub/elearning/core/progress"
	"github.com/jmoiron/sqlx"
)

type Dashboard struct {
	TotalCourses     int `json:"totalCourses"`
	CompletedCourses int `json:"completedCourses"`
	TotalLessons     int `json:"totalLessons"`
	Certificates     int `json:"certificates"`
}

func Fetch(ctx context.Context, db sqlx.ExtContext, userID int) (Dashboard, error) {
	var d Dashboard

	const qc = `SELECT COUNT(*) FROM courses`
	if err := sqlx.GetContext(ctx, db, &d.TotalCourses, qc); err != nil {
		return Dashboard{}, fmt.Errorf("counting courses: %w", err)
	}

	ps, err := progress.ListByUser(ctx, db, userID)
	if err != nil {
		return Dashboard{}, err
	}

	for _, p := range ps {
		d.TotalLessons += p.TotalLessons
		if p.IsComplete() {
			d.CompletedCourses++
		}
	}

	const qcert = `SELECT COUNT(*) FROM certificates WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, db, &d.Certificates, qcert, userID); err != nil {
		return Dashboard{}, fmt.Errorf("counting certificates of user[%d]: %w", userID, err)
	}

	return d, nil
}
