package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/colorix/api/datastore"
)

type stubRepo struct {
	datastore.SessionRepository

	mu      sync.Mutex
	cutoffs []time.Time
	ids     []string
	err     error
}

func (s *stubRepo) DeleteIdleSince(cutoff time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cutoffs = append(s.cutoffs, cutoff)
	ids := s.ids
	s.ids = nil
	return ids, s.err
}

func (s *stubRepo) Count() int { return 0 }

func (s *stubRepo) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cutoffs)
}

func TestJanitor_Sweep(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{ids: []string{"a", "b"}}

	j := NewJanitor(repo, 30*time.Minute, time.Minute, nil)
	j.now = func() time.Time { return now }

	var expired []string
	j.OnExpired = func(ids []string) { expired = ids }

	n, err := j.Sweep()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || len(expired) != 2 {
		t.Errorf("Sweep = %d, expired = %v", n, expired)
	}
	if !repo.cutoffs[0].Equal(now.Add(-30 * time.Minute)) {
		t.Errorf("cutoff = %v", repo.cutoffs[0])
	}

	expired = nil
	if n, _ := j.Sweep(); n != 0 || expired != nil {
		t.Errorf("second sweep = %d, expired = %v", n, expired)
	}
}

func TestJanitor_SweepError(t *testing.T) {
	repo := &stubRepo{err: errors.New("boom")}
	j := NewJanitor(repo, time.Minute, time.Minute, nil)

	if _, err := j.Sweep(); err == nil {
		t.Error("expected error")
	}
}

func TestJanitor_SweepsRealRepository(t *testing.T) {
	repo := datastore.NewSessionMemory()
	s, _ := repo.Create()

	j := NewJanitor(repo, time.Hour, time.Minute, nil)
	j.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	n, err := j.Sweep()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Sweep = %d, want 1", n)
	}
	var nf datastore.NotFoundError
	if _, err := repo.Get(s.ID); !errors.As(err, &nf) {
		t.Errorf("session still present: %v", err)
	}
}

func TestJanitor_StartStop(t *testing.T) {
	repo := &stubRepo{}
	j := NewJanitor(repo, time.Minute, 5*time.Millisecond, nil)

	j.Start()
	deadline := time.Now().Add(2 * time.Second)
	for repo.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	j.Stop()
	j.Stop()

	if repo.calls() == 0 {
		t.Error("janitor never swept")
	}
}

func TestNewJanitor_NonPositiveDurations(t *testing.T) {
	repo := &stubRepo{}

	for _, d := range []time.Duration{0, -time.Minute} {
		j := NewJanitor(repo, d, d, nil)
		if j.IdleTimeout != DefaultIdleTimeout || j.Interval != DefaultSweepInterval {
			t.Errorf("NewJanitor(%v) = idle %v, interval %v", d, j.IdleTimeout, j.Interval)
		}

		j.Start()
		j.Stop()
	}
}
