package toast

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestCounter(t *testing.T) {
	c := NewCounter()

	for _, want := range []ID{"1", "2", "3"} {
		if got := c.NextID(); got != want {
			t.Errorf("NextID() = %q, want %q", got, want)
		}
	}
}

func TestCounterConcurrent(t *testing.T) {
	c := NewCounter()

	var (
		mu   sync.Mutex
		seen = make(map[ID]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := c.NextID()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != 100 {
		t.Errorf("got %d distinct ids, want 100", len(seen))
	}
}

func TestUUIDGenerator(t *testing.T) {
	var g UUIDGenerator

	a, b := g.NextID(), g.NextID()
	if a == b {
		t.Fatalf("duplicate ids %q", a)
	}
	if _, err := uuid.Parse(string(a)); err != nil {
		t.Errorf("NextID() = %q is not a UUID: %v", a, err)
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindDefault, KindSuccess, KindError, KindInfo, KindWarning, KindLoading} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("fatal").Valid() || Kind("").Valid() {
		t.Error("unknown kinds should be invalid")
	}
}
