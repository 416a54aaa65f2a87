package course

import "time"

type Course struct {
	ID            int        `json:"id" db:"course_id"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	Price         float64    `json:"price" db:"price"`
	ThumbnailURL  string     `json:"thumbnailUrl" db:"thumbnail_url"`
	Instructor    string     `json:"instructor" db:"instructor"`
	Category      string     `json:"category" db:"category"`
	Rating        float64    `json:"rating" db:"rating"`
	StudentsCount int        `json:"studentsCount" db:"students_count"`
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty" db:"deactivated_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

type Module struct {
	ID       int      `json:"id" db:"module_id"`
	CourseID int      `json:"-" db:"course_id"`
	Title    string   `json:"title" db:"title"`
	Order    int      `json:"order" db:"order"`
	Lessons  []Lesson `json:"lessons" db:"-"`
}

type Lesson struct {
	ID       int     `json:"id" db:"lesson_id"`
	ModuleID int     `json:"-" db:"module_id"`
	Title    string  `json:"title" db:"title"`
	VideoURL string  `json:"videoUrl,omitempty" db:"video_url"`
	PDFURL   *string `json:"pdfUrl" db:"pdf_url"`
	Order    int     `json:"order" db:"order"`
}

// Full is a course together with its ordered content tree.
type Full struct {
	Course
	Modules []Module `json:"modules"`
}

type LessonNew struct {
	Title    string  `json:"title" validate:"required"`
	VideoURL string  `json:"videoUrl" validate:"required,url"`
	PDFURL   *string `json:"pdfUrl" validate:"omitempty,url"`
	Order    int     `json:"order" validate:"gte=0"`
}

type ModuleNew struct {
	Title   string      `json:"title" validate:"required"`
	Order   int         `json:"order" validate:"gte=0"`
	Lessons []LessonNew `json:"lessons" validate:"dive"`
}

type CourseNew struct {
	Title        string      `json:"title" validate:"required"`
	Description  string      `json:"description" validate:"required"`
	Price        float64     `json:"price" validate:"gte=0"`
	ThumbnailURL string      `json:"thumbnailUrl" validate:"omitempty,url"`
	Instructor   string      `json:"instructor" validate:"required"`
	Category     string      `json:"category" validate:"required"`
	Rating       float64     `json:"rating" validate:"gte=0,lte=5"`
	Modules      []ModuleNew `json:"modules" validate:"dive"`
}

// TotalLessons counts the lessons across all modules of the payload.
func (cn CourseNew) TotalLessons() int {
	var n int
	for _, m := range cn.Modules {
		n += len(m.Lessons)
	}
	return n
}
