package test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cursoshub/elearning/core/comment"
	"github.com/cursoshub/elearning/core/dashboard"
)

func TestComments(t *testing.T) {
	env, err := NewTestEnv(t, "comment_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	grace := env.createUserOK(t, "grace")
	heidi := env.createUserOK(t, "heidi")
	full := env.createCourseOK(t, courseFixture("Commented Course", 0))

	lesson := full.Modules[0].Lessons[0]
	path := fmt.Sprintf("/lessons/%d/comments", lesson.ID)

	var root comment.Comment
	body := map[string]any{"userId": grace, "content": "Great lesson!"}
	if code := env.request(t, http.MethodPost, path, body, &root); code != http.StatusCreated {
		t.Fatalf("creating comment: status code %d", code)
	}
	if root.UserName == "" {
		t.Fatal("expected the author name on the comment")
	}

	var reply comment.Comment
	body = map[string]any{"userId": heidi, "content": "Agreed.", "parentId": root.ID}
	if code := env.request(t, http.MethodPost, path, body, &reply); code != http.StatusCreated {
		t.Fatalf("creating reply: status code %d", code)
	}

	var deep comment.Comment
	body = map[string]any{"userId": grace, "content": "Thanks!", "parentId": reply.ID}
	if code := env.request(t, http.MethodPost, path, body, &deep); code != http.StatusCreated {
		t.Fatalf("creating second-level reply: status code %d", code)
	}

	// A third nesting level is rejected.
	body = map[string]any{"userId": heidi, "content": "Too deep.", "parentId": deep.ID}
	if code := env.request(t, http.MethodPost, path, body, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("third-level reply: status code %d", code)
	}

	// Replies to unknown parents are rejected too.
	body = map[string]any{"userId": heidi, "content": "Orphan.", "parentId": 999999}
	if code := env.request(t, http.MethodPost, path, body, nil); code != http.StatusNotFound {
		t.Fatalf("reply to missing parent: status code %d", code)
	}

	var thread []comment.Comment
	if code := env.request(t, http.MethodGet, path, nil, &thread); code != http.StatusOK {
		t.Fatalf("listing comments: status code %d", code)
	}
	if len(thread) != 1 {
		t.Fatalf("expected 1 top-level comment, got %d", len(thread))
	}
	if len(thread[0].Replies) != 1 || len(thread[0].Replies[0].Replies) != 1 {
		t.Fatalf("unexpected thread shape: %+v", thread[0])
	}

	var updated comment.Comment
	editPath := fmt.Sprintf("/comments/%d", root.ID)
	if code := env.request(t, http.MethodPut, editPath, map[string]any{"content": "Edited!"}, &updated); code != http.StatusOK {
		t.Fatalf("updating comment: status code %d", code)
	}
	if updated.Content != "Edited!" {
		t.Fatalf("content not updated: %q", updated.Content)
	}

	deletePath := fmt.Sprintf("/comments/%d", deep.ID)
	if code := env.request(t, http.MethodDelete, deletePath, nil, nil); code != http.StatusNoContent {
		t.Fatalf("deleting comment: status code %d", code)
	}
	if code := env.request(t, http.MethodDelete, deletePath, nil, nil); code != http.StatusNotFound {
		t.Fatalf("deleting twice: status code %d", code)
	}
}

func TestDashboard(t *testing.T) {
	env, err := NewTestEnv(t, "dashboard_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ivan := env.createUserOK(t, "ivan")

	cn := courseFixture("Dash One", 0)
	cn.Modules = cn.Modules[:1] // 3 lessons
	one := env.createCourseOK(t, cn)
	two := env.createCourseOK(t, courseFixture("Dash Two", 0))

	for _, id := range []int{one.ID, two.ID} {
		path := fmt.Sprintf("/courses/%d/enroll", id)
		body := map[string]any{"userId": ivan, "pricePaid": 0}
		if code := env.request(t, http.MethodPost, path, body, nil); code != http.StatusCreated {
			t.Fatalf("enrolling in course %d: status code %d", id, code)
		}
	}

	for _, l := range one.Modules[0].Lessons {
		if _, code := env.toggle(t, ivan, one.ID, l.ID); code != http.StatusOK {
			t.Fatalf("toggling lesson %d: status code %d", l.ID, code)
		}
	}

	var d dashboard.Dashboard
	path := fmt.Sprintf("/users/%d/dashboard", ivan)
	if code := env.request(t, http.MethodGet, path, nil, &d); code != http.StatusOK {
		t.Fatalf("fetching dashboard: status code %d", code)
	}

	want := dashboard.Dashboard{
		TotalCourses:     2,
		CompletedCourses: 1,
		TotalLessons:     11,
		Certificates:     1,
	}
	if d != want {
		t.Fatalf("dashboard mismatch: got %+v, want %+v", d, want)
	}
}
