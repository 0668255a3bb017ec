package resolver

import (
	"sync"
	"testing"
)

func TestSequencer_LatestWins(t *testing.T) {
	var s Sequencer

	first := s.Next("session/current")
	second := s.Next("session/current")

	if s.IsLatest("session/current", first) {
		t.Error("superseded token reported as latest")
	}
	if !s.IsLatest("session/current", second) {
		t.Error("newest token not reported as latest")
	}
}

func TestSequencer_KeysAreIndependent(t *testing.T) {
	s := NewSequencer()

	a := s.Next("a")
	b := s.Next("b")

	if !s.IsLatest("a", a) || !s.IsLatest("b", b) {
		t.Error("tokens for different keys interfered")
	}
	if s.IsLatest("a", b) {
		t.Error("token of key b accepted for key a")
	}
	if s.IsLatest("unknown", a) {
		t.Error("unknown key accepted a token")
	}
}

func TestSequencer_ForgetPrefix(t *testing.T) {
	s := NewSequencer()
	s.Next("s1/current")
	s.Next("s1/slot/1")
	keep := s.Next("s2/current")

	if n := s.ForgetPrefix("s1/"); n != 2 {
		t.Errorf("ForgetPrefix = %d, want 2", n)
	}
	if s.Len() != 1 || !s.IsLatest("s2/current", keep) {
		t.Errorf("remaining keys wrong, len = %d", s.Len())
	}
}

func TestSequencer_ConcurrentNextIsUnique(t *testing.T) {
	s := NewSequencer()

	const workers = 16
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[Token]bool)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				tok := s.Next("shared")
				mu.Lock()
				if seen[tok] {
					t.Errorf("token %d issued twice", tok)
				}
				seen[tok] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("issued %d tokens, want %d", len(seen), workers*perWorker)
	}
}
