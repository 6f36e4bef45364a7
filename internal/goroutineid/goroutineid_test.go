package goroutineid

import "testing"

func TestGet_StableWithinGoroutine(t *testing.T) {
	a, b := Get(), Get()
	if a == 0 {
		t.Fatal("Get() returned 0")
	}
	if a != b {
		t.Errorf("Get() changed within a goroutine: %d then %d", a, b)
	}
}

func TestGet_DiffersAcrossGoroutines(t *testing.T) {
	mine := Get()
	ch := make(chan uint64)
	go func() { ch <- Get() }()
	if other := <-ch; other == mine {
		t.Errorf("two goroutines reported the same ID %d", mine)
	}
}
