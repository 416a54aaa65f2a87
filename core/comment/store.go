package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cursoshub/elearning/database"
	"github.com/jmoiron/sqlx"
)

// ErrTooDeep is returned when a reply would exceed the thread depth cap.
var ErrTooDeep = errors.New("maximum comment depth reached")

func Fetch(ctx context.Context, db sqlx.ExtContext, commentID int) (Comment, error) {
	const q = `
	SELECT c.*, u.name AS user_name, u.role AS user_role
	FROM comments AS c
	JOIN users AS u ON u.user_id = c.user_id
	WHERE c.comment_id = $1`

	var c Comment
	if err := sqlx.GetContext(ctx, db, &c, q, commentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Comment{}, database.ErrNotFound
		}
		return Comment{}, fmt.Errorf("fetching comment[%d]: %w", commentID, err)
	}

	return c, nil
}

// Create inserts a comment after checking the thread depth of its
// parent chain.
func Create(ctx context.Context, db sqlx.ExtContext, lessonID int, cn CommentNew, now time.Time) (Comment, error) {
	if cn.ParentID != nil {
		depth, err := chainDepth(ctx, db, *cn.ParentID)
		if err != nil {
			return Comment{}, err
		}
		if depth+1 > maxDepth {
			return Comment{}, ErrTooDeep
		}
	}

	const q = `
	INSERT INTO comments (lesson_id, user_id, parent_id, content, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	RETURNING comment_id`

	var id int
	if err := sqlx.GetContext(ctx, db, &id, q, lessonID, cn.UserID, cn.ParentID, cn.Content, now); err != nil {
		return Comment{}, fmt.Errorf("inserting comment on lesson[%d]: %w", lessonID, err)
	}

	return Fetch(ctx, db, id)
}

func chainDepth(ctx context.Context, db sqlx.ExtContext, commentID int) (int, error) {
	depth := 0
	id := commentID
	for {
		parent, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) && depth == 0 {
				return 0, fmt.Errorf("parent comment[%d]: %w", commentID, err)
			}
			return 0, err
		}

		if parent.ParentID == nil {
			return depth, nil
		}

		depth++
		if depth > maxDepth {
			return depth, nil
		}
		id = *parent.ParentID
	}
}

// ListByLesson returns the lesson's top-level comments with their
// reply threads nested.
func ListByLesson(ctx context.Context, db sqlx.ExtContext, lessonID int) ([]Comment, error) {
	const q = `
	SELECT c.*, u.name AS user_name, u.role AS user_role
	FROM comments AS c
	JOIN users AS u ON u.user_id = c.user_id
	WHERE c.lesson_id = $1
	ORDER BY c.created_at ASC, c.comment_id ASC`

	all := []Comment{}
	if err := sqlx.SelectContext(ctx, db, &all, q, lessonID); err != nil {
		return nil, fmt.Errorf("listing comments of lesson[%d]: %w", lessonID, err)
	}

	byID := make(map[int]Comment, len(all))
	children := make(map[int][]int)
	topIDs := []int{}
	for _, c := range all {
		byID[c.ID] = c
		if c.ParentID == nil {
			topIDs = append(topIDs, c.ID)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c.ID)
	}

	var build func(id int) Comment
	build = func(id int) Comment {
		c := byID[id]
		c.Replies = []Comment{}
		for _, childID := range children[id] {
			c.Replies = append(c.Replies, build(childID))
		}
		return c
	}

	top := make([]Comment, 0, len(topIDs))
	for _, id := range topIDs {
		top = append(top, build(id))
	}

	return top, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, commentID int, cu CommentUp, now time.Time) (Comment, error) {
	const q = `UPDATE comments SET content = $2, updated_at = $3 WHERE comment_id = $1`

	res, err := db.ExecContext(ctx, q, commentID, cu.Content, now)
	if err != nil {
		return Comment{}, fmt.Errorf("updating comment[%d]: %w", commentID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Comment{}, database.ErrNotFound
	}

	return Fetch(ctx, db, commentID)
}

func Delete(ctx context.Context, db sqlx.ExtContext, commentID int) error {
	const q = `DELETE FROM comments WHERE comment_id = $1`

	res, err := db.ExecContext(ctx, q, commentID)
	if err != nil {
		return fmt.Errorf("deleting comment[%d]: %w", commentID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return database.ErrNotFound
	}

	return nil
}
