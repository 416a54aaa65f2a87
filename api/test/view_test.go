package test

import (
	"fmt"
	"net/http"
	"testing"
)

type rawLesson map[string]any

type rawModule struct {
	Title   string      `json:"title"`
	Lessons []rawLesson `json:"lessons"`
}

type rawPreview struct {
	Title   string      `json:"title"`
	Price   float64     `json:"price"`
	Modules []rawModule `json:"modules"`
}

func (te *TestEnv) preview(t *testing.T, courseID, userID int) (rawPreview, int) {
	t.Helper()

	var pv rawPreview
	path := fmt.Sprintf("/courses/%d/purchase/%d", courseID, userID)
	code := te.request(t, http.MethodGet, path, nil, &pv)
	return pv, code
}

func TestPreviewRedaction(t *testing.T) {
	env, err := NewTestEnv(t, "preview_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	full := env.createCourseOK(t, courseFixture("Paid Preview", 59.90))

	pv, code := env.preview(t, full.ID, 0)
	if code != http.StatusOK {
		t.Fatalf("anonymous preview: status code %d", code)
	}

	if len(pv.Modules) != 3 {
		t.Fatalf("expected all 3 modules listed, got %d", len(pv.Modules))
	}

	// The first 2 modules keep their titles, the rest are masked.
	for mi, m := range pv.Modules {
		wantTitle := fmt.Sprintf("Module %d", mi+1)
		if mi >= 2 {
			wantTitle = "***"
		}
		if m.Title != wantTitle {
			t.Fatalf("module %d title: got %q, want %q", mi, m.Title, wantTitle)
		}

		// Within a visible module only the first 2 lessons are open.
		for li, l := range m.Lessons {
			title, _ := l["title"].(string)
			open := mi < 2 && li < 2

			if open && title == "***" {
				t.Fatalf("lesson %d.%d should be visible", mi, li)
			}
			if !open && title != "***" {
				t.Fatalf("lesson %d.%d should be masked, got %q", mi, li, title)
			}
			if !open && l["pdfUrl"] != nil {
				t.Fatalf("lesson %d.%d should not expose its document", mi, li)
			}

			// Previews never carry the video stream.
			if _, ok := l["videoUrl"]; ok {
				t.Fatalf("lesson %d.%d exposes a video url in preview", mi, li)
			}
		}
	}

	// Free courses are previewed in full.
	free := env.createCourseOK(t, courseFixture("Free Preview", 0))

	pv, code = env.preview(t, free.ID, 0)
	if code != http.StatusOK {
		t.Fatalf("free preview: status code %d", code)
	}
	for mi, m := range pv.Modules {
		if m.Title == "***" {
			t.Fatalf("module %d masked on a free course", mi)
		}
		for li, l := range m.Lessons {
			if title, _ := l["title"].(string); title == "***" {
				t.Fatalf("lesson %d.%d masked on a free course", mi, li)
			}
		}
	}

	// An owner is bounced to the owner view instead.
	frank := env.createUserOK(t, "frank")
	giftPath := fmt.Sprintf("/courses/%d/gift", full.ID)
	if code := env.request(t, http.MethodPost, giftPath, map[string]any{"userId": frank}, nil); code != http.StatusCreated {
		t.Fatalf("gifting: status code %d", code)
	}
	if _, code := env.preview(t, full.ID, frank); code != http.StatusConflict {
		t.Fatalf("preview as owner: status code %d", code)
	}

	// Deactivated courses disappear from previews.
	deactivatePath := fmt.Sprintf("/courses/%d/deactivate", free.ID)
	if code := env.request(t, http.MethodPut, deactivatePath, nil, nil); code != http.StatusNoContent {
		t.Fatalf("deactivating course: status code %d", code)
	}
	if _, code := env.preview(t, free.ID, 0); code != http.StatusNotFound {
		t.Fatalf("preview of deactivated course: status code %d", code)
	}
}
