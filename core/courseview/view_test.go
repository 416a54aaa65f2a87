package courseview

import (
	"testing"
	"time"

	"github.com/cursoshub/elearning/core/certificate"
	"github.com/cursoshub/elearning/core/course"
	"github.com/cursoshub/elearning/core/enrollment"
	"github.com/cursoshub/elearning/core/progress"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
)

func contentFixture(price float64) course.Full {
	lessonID := 0
	mods := make([]course.Module, 0, 3)
	for m := 1; m <= 3; m++ {
		mod := course.Module{ID: m, Title: "Module", Order: m}
		for l := 1; l <= 3; l++ {
			lessonID++
			pdf := "doc.pdf"
			mod.Lessons = append(mod.Lessons, course.Lesson{
				ID:       lessonID,
				Title:    "Lesson",
				VideoURL: "https://videos/v",
				PDFURL:   &pdf,
				Order:    l,
			})
		}
		mods = append(mods, mod)
	}

	return course.Full{
		Course:  course.Course{ID: 1, Title: "Course", Price: price},
		Modules: mods,
	}
}

func TestProjectPreviewWindow(t *testing.T) {
	pv := ProjectPreview(contentFixture(49.90))

	for mi, m := range pv.Modules {
		if mi < 2 && m.Title == "***" {
			t.Fatalf("module %d should keep its title", mi)
		}
		if mi >= 2 && m.Title != "***" {
			t.Fatalf("module %d should be masked, got %q", mi, m.Title)
		}

		for li, l := range m.Lessons {
			open := mi < 2 && li < 2
			if open && (l.Title == "***" || l.PDFURL == nil) {
				t.Fatalf("lesson %d.%d should be visible: %+v", mi, li, l)
			}
			if !open && (l.Title != "***" || l.PDFURL != nil) {
				t.Fatalf("lesson %d.%d should be masked: %+v", mi, li, l)
			}
		}
	}
}

func TestProjectPreviewFree(t *testing.T) {
	full := contentFixture(0)

	pv := ProjectPreview(full)

	for mi, m := range pv.Modules {
		want := make([]PreviewLesson, 0, len(full.Modules[mi].Lessons))
		for _, l := range full.Modules[mi].Lessons {
			want = append(want, PreviewLesson{ID: l.ID, Title: l.Title, PDFURL: l.PDFURL, Order: l.Order})
		}

		if m.Title != full.Modules[mi].Title {
			t.Fatalf("module %d title altered: %q", mi, m.Title)
		}
		if diff := cmp.Diff(want, m.Lessons); diff != "" {
			t.Fatalf("module %d lessons altered: %s", mi, diff)
		}
	}
}

func TestProjectOwnerCompletion(t *testing.T) {
	full := contentFixture(0)

	e := enrollment.Enrollment{
		UserID:    7,
		CourseID:  1,
		PricePaid: 0,
		CreatedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}

	p := progress.Progress{
		TotalLessons:       9,
		CompletedLessonIDs: pq.Int64Array{1, 5},
	}

	oc := ProjectOwner(full, e, p, nil)

	if oc.Status != "In Progress" {
		t.Fatalf("got status %q", oc.Status)
	}
	if oc.PurchaseDate != "2026-03-15" {
		t.Fatalf("got purchase date %q", oc.PurchaseDate)
	}

	want := progress.Summary{CompletedLessons: 2, TotalLessons: 9, Percentage: 22}
	if diff := cmp.Diff(want, oc.Progress); diff != "" {
		t.Fatalf("progress summary: %s", diff)
	}

	// Completion flags follow exact membership, not count or position.
	for _, m := range oc.Modules {
		for _, l := range m.Lessons {
			want := l.ID == 1 || l.ID == 5
			if l.Completed != want {
				t.Fatalf("lesson %d completed flag: got %v, want %v", l.ID, l.Completed, want)
			}
		}
	}
}

func TestProjectOwnerCompleted(t *testing.T) {
	full := contentFixture(0)

	ids := make(pq.Int64Array, 9)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	p := progress.Progress{TotalLessons: 9, CompletedLessonIDs: ids}

	cert := &certificate.Certificate{ID: 3, IssuedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}

	oc := ProjectOwner(full, enrollment.Enrollment{}, p, cert)

	if oc.Status != "Completed" {
		t.Fatalf("got status %q", oc.Status)
	}
	if oc.Certificate == nil || oc.Certificate.ID != 3 {
		t.Fatalf("certificate summary missing: %+v", oc.Certificate)
	}
	if oc.Progress.Percentage != 100 {
		t.Fatalf("got %d%%", oc.Progress.Percentage)
	}
}
