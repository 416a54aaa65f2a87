package rate

import (
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	interval := 20 * time.Millisecond
	l := NewLimiter(1, 100, Every(interval))

	if !l.Check("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if l.Check("10.0.0.1") {
		t.Fatal("immediate second request should be limited")
	}

	// Other clients have their own bucket.
	if !l.Check("10.0.0.2") {
		t.Fatal("a different client should pass")
	}

	time.Sleep(interval + 5*time.Millisecond)
	if !l.Check("10.0.0.1") {
		t.Fatal("request after the refill interval should pass")
	}
}

func TestLimiterBurst(t *testing.T) {
	burst := 5
	l := NewLimiter(burst, 100, Every(time.Second))

	for i := 0; i < burst; i++ {
		if !l.Check("10.0.0.1") {
			t.Fatalf("request %d within the burst should pass", i)
		}
	}

	if l.Check("10.0.0.1") {
		t.Fatal("request beyond the burst should be limited")
	}
}
