package progress

import (
	"math"

	"github.com/lib/pq"
)

type Progress struct {
	ID                 int           `json:"-" db:"progress_id"`
	UserID             int           `json:"userId" db:"user_id"`
	CourseID           int           `json:"courseId" db:"course_id"`
	TotalLessons       int           `json:"totalLessons" db:"total_lessons"`
	CompletedLessonIDs pq.Int64Array `json:"completedLessonIds" db:"completed_lesson_ids"`
}

// Summary is the compact progress shape embedded in course views.
type Summary struct {
	CompletedLessons int `json:"completedLessons"`
	TotalLessons     int `json:"totalLessons"`
	Percentage       int `json:"percentage"`
}

func (p Progress) Summarize() Summary {
	return Summary{
		CompletedLessons: len(p.CompletedLessonIDs),
		TotalLessons:     p.TotalLessons,
		Percentage:       p.Percentage(),
	}
}

// HasLesson reports whether the lesson is in the completed set.
func (p Progress) HasLesson(lessonID int) bool {
	for _, id := range p.CompletedLessonIDs {
		if int(id) == lessonID {
			return true
		}
	}
	return false
}

// Flip returns the completed set with the lesson added if absent or
// removed if present. Applying it twice restores the original set.
func (p Progress) Flip(lessonID int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(p.CompletedLessonIDs)+1)
	found := false
	for _, id := range p.CompletedLessonIDs {
		if int(id) == lessonID {
			found = true
			continue
		}
		out = append(out, id)
	}

	if !found {
		out = append(out, int64(lessonID))
	}

	return out
}

func (p Progress) IsComplete() bool {
	return p.TotalLessons > 0 && len(p.CompletedLessonIDs) == p.TotalLessons
}

// Percentage is the completion ratio as an integer percent, rounded
// half-up. Courses without lessons are always at 0.
func (p Progress) Percentage() int {
	if p.TotalLessons == 0 {
		return 0
	}
	return int(math.Round(float64(len(p.CompletedLessonIDs)) / float64(p.TotalLessons) * 100))
}
