package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cursoshub/elearning/database"
	"github.com/jmoiron/sqlx"
)

func Fetch(ctx context.Context, db sqlx.ExtContext, courseID int) (Course, error) {
	const q = `SELECT * FROM courses WHERE course_id = $1`

	var c Course
	if err := sqlx.GetContext(ctx, db, &c, q, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, database.ErrNotFound
		}
		return Course{}, fmt.Errorf("fetching course[%d]: %w", courseID, err)
	}

	return c, nil
}

func FetchActive(ctx context.Context, db sqlx.ExtContext, courseID int) (Course, error) {
	const q = `SELECT * FROM courses WHERE course_id = $1 AND deactivated_at IS NULL`

	var c Course
	if err := sqlx.GetContext(ctx, db, &c, q, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, database.ErrNotFound
		}
		return Course{}, fmt.Errorf("fetching active course[%d]: %w", courseID, err)
	}

	return c, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Course, error) {
	const q = `SELECT * FROM courses ORDER BY created_at DESC`

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q); err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	return cs, nil
}

func ListActive(ctx context.Context, db sqlx.ExtContext) ([]Course, error) {
	const q = `SELECT * FROM courses WHERE deactivated_at IS NULL ORDER BY created_at DESC`

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q); err != nil {
		return nil, fmt.Errorf("listing active courses: %w", err)
	}

	return cs, nil
}

// ListAvailable returns active courses the user has not purchased yet.
func ListAvailable(ctx context.Context, db sqlx.ExtContext, userID int) ([]Course, error) {
	const q = `
	SELECT * FROM courses
	WHERE deactivated_at IS NULL
	AND course_id NOT IN (SELECT course_id FROM purchases WHERE user_id = $1)
	ORDER BY created_at DESC`

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q, userID); err != nil {
		return nil, fmt.Errorf("listing courses available to user[%d]: %w", userID, err)
	}

	return cs, nil
}

// FetchContent returns the course's modules with their lessons, both
// ordered by their display order with the id as tie-break.
func FetchContent(ctx context.Context, db sqlx.ExtContext, courseID int) ([]Module, error) {
	const qm = `
	SELECT module_id, course_id, title, "order" FROM modules
	WHERE course_id = $1
	ORDER BY "order" ASC, module_id ASC`

	mods := []Module{}
	if err := sqlx.SelectContext(ctx, db, &mods, qm, courseID); err != nil {
		return nil, fmt.Errorf("fetching modules of course[%d]: %w", courseID, err)
	}

	const ql = `
	SELECT l.lesson_id, l.module_id, l.title, l.video_url, l.pdf_url, l."order"
	FROM lessons AS l
	JOIN modules AS m ON m.module_id = l.module_id
	WHERE m.course_id = $1
	ORDER BY l."order" ASC, l.lesson_id ASC`

	lessons := []Lesson{}
	if err := sqlx.SelectContext(ctx, db, &lessons, ql, courseID); err != nil {
		return nil, fmt.Errorf("fetching lessons of course[%d]: %w", courseID, err)
	}

	byModule := make(map[int]int, len(mods))
	for i := range mods {
		mods[i].Lessons = []Lesson{}
		byModule[mods[i].ID] = i
	}

	for _, l := range lessons {
		i := byModule[l.ModuleID]
		mods[i].Lessons = append(mods[i].Lessons, l)
	}

	return mods, nil
}

func FetchFull(ctx context.Context, db sqlx.ExtContext, courseID int) (Full, error) {
	c, err := Fetch(ctx, db, courseID)
	if err != nil {
		return Full{}, err
	}

	mods, err := FetchContent(ctx, db, courseID)
	if err != nil {
		return Full{}, err
	}

	return Full{Course: c, Modules: mods}, nil
}

// Create inserts the course and its whole content tree. It must run
// inside a transaction.
func Create(ctx context.Context, tx sqlx.ExtContext, cn CourseNew, now time.Time) (Full, error) {
	const q = `
	INSERT INTO courses (title, description, price, thumbnail_url, instructor, category, rating, students_count, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $8)
	RETURNING course_id`

	var courseID int
	err := sqlx.GetContext(ctx, tx, &courseID, q,
		cn.Title, cn.Description, cn.Price, cn.ThumbnailURL, cn.Instructor, cn.Category, cn.Rating, now)
	if err != nil {
		return Full{}, fmt.Errorf("inserting course: %w", err)
	}

	mods, err := createContent(ctx, tx, courseID, cn.Modules)
	if err != nil {
		return Full{}, err
	}

	c, err := Fetch(ctx, tx, courseID)
	if err != nil {
		return Full{}, err
	}

	return Full{Course: c, Modules: mods}, nil
}

// Update replaces the course's scalar fields and its whole content
// tree. It must run inside a transaction; the caller is responsible
// for resyncing progress snapshots afterwards.
func Update(ctx context.Context, tx sqlx.ExtContext, courseID int, cn CourseNew, now time.Time) (Full, error) {
	const q = `
	UPDATE courses
	SET title = $2, description = $3, price = $4, thumbnail_url = $5, instructor = $6, category = $7, rating = $8, updated_at = $9
	WHERE course_id = $1`

	res, err := tx.ExecContext(ctx, q,
		courseID, cn.Title, cn.Description, cn.Price, cn.ThumbnailURL, cn.Instructor, cn.Category, cn.Rating, now)
	if err != nil {
		return Full{}, fmt.Errorf("updating course[%d]: %w", courseID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Full{}, database.ErrNotFound
	}

	const qd = `DELETE FROM modules WHERE course_id = $1`
	if _, err := tx.ExecContext(ctx, qd, courseID); err != nil {
		return Full{}, fmt.Errorf("clearing content of course[%d]: %w", courseID, err)
	}

	mods, err := createContent(ctx, tx, courseID, cn.Modules)
	if err != nil {
		return Full{}, err
	}

	c, err := Fetch(ctx, tx, courseID)
	if err != nil {
		return Full{}, err
	}

	return Full{Course: c, Modules: mods}, nil
}

func createContent(ctx context.Context, tx sqlx.ExtContext, courseID int, mods []ModuleNew) ([]Module, error) {
	const qm = `INSERT INTO modules (course_id, title, "order") VALUES ($1, $2, $3) RETURNING module_id`
	const ql = `INSERT INTO lessons (module_id, title, video_url, pdf_url, "order") VALUES ($1, $2, $3, $4, $5) RETURNING lesson_id`

	out := make([]Module, 0, len(mods))
	for _, mn := range mods {
		var moduleID int
		if err := sqlx.GetContext(ctx, tx, &moduleID, qm, courseID, mn.Title, mn.Order); err != nil {
			return nil, fmt.Errorf("inserting module: %w", err)
		}

		m := Module{ID: moduleID, CourseID: courseID, Title: mn.Title, Order: mn.Order, Lessons: []Lesson{}}
		for _, ln := range mn.Lessons {
			var lessonID int
			if err := sqlx.GetContext(ctx, tx, &lessonID, ql, moduleID, ln.Title, ln.VideoURL, ln.PDFURL, ln.Order); err != nil {
				return nil, fmt.Errorf("inserting lesson: %w", err)
			}

			m.Lessons = append(m.Lessons, Lesson{
				ID:       lessonID,
				ModuleID: moduleID,
				Title:    ln.Title,
				VideoURL: ln.VideoURL,
				PDFURL:   ln.PDFURL,
				Order:    ln.Order,
			})
		}

		out = append(out, m)
	}

	return out, nil
}

func Deactivate(ctx context.Context, db sqlx.ExtContext, courseID int, now time.Time) error {
	return setDeactivated(ctx, db, courseID, &now)
}

func Reactivate(ctx context.Context, db sqlx.ExtContext, courseID int) error {
	return setDeactivated(ctx, db, courseID, nil)
}

func setDeactivated(ctx context.Context, db sqlx.ExtContext, courseID int, at *time.Time) error {
	const q = `UPDATE courses SET deactivated_at = $2 WHERE course_id = $1`

	res, err := db.ExecContext(ctx, q, courseID, at)
	if err != nil {
		return fmt.Errorf("flagging course[%d]: %w", courseID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return database.ErrNotFound
	}

	return nil
}

// IncrementStudents bumps the enrolled-students counter.
func IncrementStudents(ctx context.Context, tx sqlx.ExtContext, courseID int) error {
	const q = `UPDATE courses SET students_count = students_count + 1 WHERE course_id = $1`

	if _, err := tx.ExecContext(ctx, q, courseID); err != nil {
		return fmt.Errorf("incrementing students of course[%d]: %w", courseID, err)
	}

	return nil
}

// LessonCount counts the lessons currently in the course's catalog.
func LessonCount(ctx context.Context, db sqlx.ExtContext, courseID int) (int, error) {
	const q = `
	SELECT COUNT(*) FROM lessons AS l
	JOIN modules AS m ON m.module_id = l.module_id
	WHERE m.course_id = $1`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, courseID); err != nil {
		return 0, fmt.Errorf("counting lessons of course[%d]: %w", courseID, err)
	}

	return n, nil
}
