package resolver

import (
	"strings"
	"sync"
)

// Token orders lookups issued for the same key.
type Token uint64

// Sequencer guards against stale lookups: a caller takes a token before
// starting a lookup and applies the answer only if IsLatest still reports
// true for that token. The zero value is ready to use.
type Sequencer struct {
	mu     sync.Mutex
	last   Token
	latest map[string]Token
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next issues a token for key that supersedes every earlier one.
func (s *Sequencer) Next(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		s.latest = make(map[string]Token)
	}
	s.last++
	s.latest[key] = s.last
	return s.last
}

func (s *Sequencer) IsLatest(key string, t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest, ok := s.latest[key]
	return ok && latest == t
}

// ForgetPrefix drops every key starting with prefix and returns how many
// were dropped.
func (s *Sequencer) ForgetPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.latest {
		if strings.HasPrefix(key, prefix) {
			delete(s.latest, key)
			n++
		}
	}
	return n
}

func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.latest)
}
