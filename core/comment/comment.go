package comment

import "time"

// maxDepth caps comment threading: a top-level comment, a reply, and
// a reply to that reply. Deeper nesting is rejected.
const maxDepth = 2

type Comment struct {
	ID        int       `json:"id" db:"comment_id"`
	LessonID  int       `json:"lessonId" db:"lesson_id"`
	UserID    int       `json:"userId" db:"user_id"`
	ParentID  *int      `json:"parentId" db:"parent_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	UserName string `json:"userName" db:"user_name"`
	UserRole string `json:"userRole" db:"user_role"`

	Replies []Comment `json:"replies" db:"-"`
}

type CommentNew struct {
	UserID   int    `json:"userId" validate:"required,gte=1"`
	Content  string `json:"content" validate:"required"`
	ParentID *int   `json:"parentId" validate:"omitempty,gte=1"`
}

type CommentUp struct {
	Content string `json:"content" validate:"required"`
}
