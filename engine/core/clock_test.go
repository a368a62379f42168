package core

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	if c.Elapsed() != 0 {
		t.Fatalf("not started: have %s, want 0", c.Elapsed())
	}

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	first := c.Elapsed()
	if first < 5*time.Millisecond {
		t.Errorf("elapsed: have %s, want >= 5ms", first)
	}

	c.Stop()
	time.Sleep(2 * time.Millisecond)
	c.Update()
	if c.Elapsed() != first {
		t.Errorf("stopped clock moved: have %s, want %s", c.Elapsed(), first)
	}

	c.Start()
	if c.Elapsed() != 0 {
		t.Errorf("restart: have %s, want 0", c.Elapsed())
	}
}
