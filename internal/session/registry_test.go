package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGenerateOverwritesPriorMapping(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	first := r.Generate("session-1")
	second := r.Generate("session-1")

	if first == second {
		t.Fatalf("expected distinct route ids, got %q twice", first)
	}

	got, ok := r.Lookup("session-1")
	if !ok {
		t.Fatal("expected a mapping for session-1")
	}
	if got != second {
		t.Errorf("Lookup returned %q, want the most recent id %q", got, second)
	}
}

func TestLookupUnknownSession(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	if id, ok := r.Lookup("never-seen"); ok {
		t.Errorf("expected no mapping, got %q", id)
	}
}

func TestLookupExpiredEntry(t *testing.T) {
	r := NewRegistry(10 * time.Millisecond)
	defer r.Close()

	r.Generate("session-1")
	time.Sleep(20 * time.Millisecond)

	if id, ok := r.Lookup("session-1"); ok {
		t.Errorf("expected expired entry to be gone, got %q", id)
	}
	if n := r.Len(); n != 0 {
		t.Errorf("expected expired entry removed on lookup, have %d entries", n)
	}
}

func TestConcurrentGenerateAndLookup(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		sessionID := fmt.Sprintf("session-%d", i%5)
		go func() {
			defer wg.Done()
			r.Generate(sessionID)
		}()
		go func() {
			defer wg.Done()
			r.Lookup(sessionID)
		}()
	}
	wg.Wait()

	if n := r.Len(); n != 5 {
		t.Errorf("expected 5 session entries, got %d", n)
	}
}
