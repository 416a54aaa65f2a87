// Package courseview assembles catalog, enrollment, progress and
// certificate state into the user-facing course shapes: the owner
// view with per-lesson completion flags, and the purchase preview
// with its redaction window for unpurchased paid courses.
package courseview

import (
	"time"

	"github.com/cursoshub/elearning/core/certificate"
	"github.com/cursoshub/elearning/core/course"
	"github.com/cursoshub/elearning/core/enrollment"
	"github.com/cursoshub/elearning/core/progress"
)

const (
	statusCompleted  = "Completed"
	statusInProgress = "In Progress"

	// redactionMarker replaces the titles of content outside the
	// preview window.
	redactionMarker = "***"

	// Preview reveals the first previewModules modules and the first
	// previewLessons lessons of each.
	previewModules = 2
	previewLessons = 2
)

type OwnerLesson struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	VideoURL  string  `json:"videoUrl"`
	PDFURL    *string `json:"pdfUrl"`
	Order     int     `json:"order"`
	Completed bool    `json:"completed"`
}

type OwnerModule struct {
	ID      int           `json:"id"`
	Title   string        `json:"title"`
	Order   int           `json:"order"`
	Lessons []OwnerLesson `json:"lessons"`
}

type CertificateSummary struct {
	ID       int       `json:"id"`
	IssuedAt time.Time `json:"issuedAt"`
}

type OwnerCourse struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	ThumbnailURL  string              `json:"thumbnailUrl"`
	Instructor    string              `json:"instructor"`
	Category      string              `json:"category"`
	Price         float64             `json:"price"`
	PricePaid     float64             `json:"pricePaid"`
	PurchaseDate  string              `json:"purchaseDate"`
	Status        string              `json:"status"`
	Progress      progress.Summary    `json:"progress"`
	Modules       []OwnerModule       `json:"modules"`
	Certificate   *CertificateSummary `json:"certificate"`
	Rating        float64             `json:"rating"`
	StudentsCount int                 `json:"studentsCount"`
}

type PreviewLesson struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	PDFURL *string `json:"pdfUrl"`
	Order  int     `json:"order"`
}

type PreviewModule struct {
	ID      int             `json:"id"`
	Title   string          `json:"title"`
	Order   int             `json:"order"`
	Lessons []PreviewLesson `json:"lessons"`
}

type PreviewCourse struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ThumbnailURL  string          `json:"thumbnailUrl"`
	Instructor    string          `json:"instructor"`
	Category      string          `json:"category"`
	Price         float64         `json:"price"`
	Rating        float64         `json:"rating"`
	StudentsCount int             `json:"studentsCount"`
	Modules       []PreviewModule `json:"modules"`
}

// ProjectOwner shapes a purchased course for its owner. Lesson
// completion is derived by exact membership in the completed set.
func ProjectOwner(full course.Full, e enrollment.Enrollment, p progress.Progress, cert *certificate.Certificate) OwnerCourse {
	status := statusInProgress
	if p.IsComplete() {
		status = statusCompleted
	}

	mods := make([]OwnerModule, 0, len(full.Modules))
	for _, m := range full.Modules {
		om := OwnerModule{
			ID:      m.ID,
			Title:   m.Title,
			Order:   m.Order,
			Lessons: make([]OwnerLesson, 0, len(m.Lessons)),
		}

		for _, l := range m.Lessons {
			om.Lessons = append(om.Lessons, OwnerLesson{
				ID:        l.ID,
				Title:     l.Title,
				VideoURL:  l.VideoURL,
				PDFURL:    l.PDFURL,
				Order:     l.Order,
				Completed: p.HasLesson(l.ID),
			})
		}

		mods = append(mods, om)
	}

	oc := OwnerCourse{
		ID:            full.ID,
		Title:         full.Title,
		Description:   full.Description,
		ThumbnailURL:  full.ThumbnailURL,
		Instructor:    full.Instructor,
		Category:      full.Category,
		Price:         full.Price,
		PricePaid:     e.PricePaid,
		PurchaseDate:  e.CreatedAt.Format("2006-01-02"),
		Status:        status,
		Progress:      p.Summarize(),
		Modules:       mods,
		Rating:        full.Rating,
		StudentsCount: full.StudentsCount,
	}

	if cert != nil {
		oc.Certificate = &CertificateSummary{ID: cert.ID, IssuedAt: cert.IssuedAt}
	}

	return oc
}

// ProjectPreview shapes a course for a prospective buyer. Video URLs
// are never included. On priced courses only the first
// previewModules×previewLessons window keeps its titles and
// documents; everything beyond it is redacted. Free courses are
// shown in full.
func ProjectPreview(full course.Full) PreviewCourse {
	redact := full.Price > 0

	mods := make([]PreviewModule, 0, len(full.Modules))
	for mi, m := range full.Modules {
		pm := PreviewModule{
			ID:      m.ID,
			Title:   m.Title,
			Order:   m.Order,
			Lessons: make([]PreviewLesson, 0, len(m.Lessons)),
		}

		if redact && mi >= previewModules {
			pm.Title = redactionMarker
		}

		for li, l := range m.Lessons {
			pl := PreviewLesson{
				ID:     l.ID,
				Title:  l.Title,
				PDFURL: l.PDFURL,
				Order:  l.Order,
			}

			if redact && (mi >= previewModules || li >= previewLessons) {
				pl.Title = redactionMarker
				pl.PDFURL = nil
			}

			pm.Lessons = append(pm.Lessons, pl)
		}

		mods = append(mods, pm)
	}

	return PreviewCourse{
		ID:            full.ID,
		Title:         full.Title,
		Description:   full.Description,
		ThumbnailURL:  full.ThumbnailURL,
		Instructor:    full.Instructor,
		Category:      full.Category,
		Price:         full.Price,
		Rating:        full.Rating,
		StudentsCount: full.StudentsCount,
		Modules:       mods,
	}
}
