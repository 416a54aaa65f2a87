package progress

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
)

func TestFlip(t *testing.T) {
	p := Progress{CompletedLessonIDs: pq.Int64Array{1, 3}}

	got := p.Flip(2)
	if diff := cmp.Diff(pq.Int64Array{1, 3, 2}, got); diff != "" {
		t.Fatalf("adding a lesson: %s", diff)
	}

	p.CompletedLessonIDs = got
	got = p.Flip(2)
	if diff := cmp.Diff(pq.Int64Array{1, 3}, got); diff != "" {
		t.Fatalf("removing the same lesson: %s", diff)
	}

	got = p.Flip(3)
	if diff := cmp.Diff(pq.Int64Array{1, 2}, got); diff != "" {
		t.Fatalf("removing from the middle: %s", diff)
	}
}

func TestFlipSelfInverse(t *testing.T) {
	p := Progress{CompletedLessonIDs: pq.Int64Array{5, 7, 9}}

	for _, id := range []int{5, 6, 9} {
		once := Progress{CompletedLessonIDs: p.Flip(id)}
		twice := once.Flip(id)

		want := append(pq.Int64Array{}, p.CompletedLessonIDs...)
		if diff := cmp.Diff(sorted(want), sorted(twice)); diff != "" {
			t.Fatalf("flip(%d) twice changed the set: %s", id, diff)
		}
	}
}

func sorted(a pq.Int64Array) pq.Int64Array {
	out := append(pq.Int64Array{}, a...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		want      int
	}{
		{0, 0, 0},
		{0, 8, 0},
		{1, 8, 13},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{8, 8, 100},
	}

	for _, tt := range tests {
		ids := make(pq.Int64Array, tt.completed)
		for i := range ids {
			ids[i] = int64(i + 1)
		}

		p := Progress{TotalLessons: tt.total, CompletedLessonIDs: ids}
		if got := p.Percentage(); got != tt.want {
			t.Errorf("%d/%d: got %d%%, want %d%%", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want bool
	}{
		{"empty course", Progress{TotalLessons: 0}, false},
		{"partial", Progress{TotalLessons: 3, CompletedLessonIDs: pq.Int64Array{1, 2}}, false},
		{"full", Progress{TotalLessons: 2, CompletedLessonIDs: pq.Int64Array{1, 2}}, true},
	}

	for _, tt := range tests {
		if got := tt.p.IsComplete(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHasLesson(t *testing.T) {
	p := Progress{CompletedLessonIDs: pq.Int64Array{4, 8}}

	if !p.HasLesson(4) || !p.HasLesson(8) {
		t.Fatal("expected membership for completed lessons")
	}
	if p.HasLesson(5) {
		t.Fatal("unexpected membership for an untouched lesson")
	}
}
