package memory

import (
	"context"
	"sync"

	"wordduel/internal/model"
	"wordduel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. It is
// the default backend: a single in-memory authority with no persistence
// across restarts.
//
// Matches are stored and returned as deep copies. A match handed to a
// caller is private to it; the redis backend gives the same isolation
// through its JSON round-trip.
type Storage struct {
	mu sync.RWMutex

	matches map[model.MatchID]*model.Match

	// openOrder lists waiting matches in creation order so lobby queries
	// are stable without re-sorting.
	openOrder []model.MatchID

	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches: make(map[model.MatchID]*model.Match),
	}
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.matches[match.ID]
	s.matches[match.ID] = match.Clone()

	if match.Status == model.StatusWaiting {
		if !existed || !s.inOpenOrder(match.ID) {
			s.openOrder = append(s.openOrder, match.ID)
		}
	} else {
		s.removeFromOpenOrder(match.ID)
	}
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match.Clone(), nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	s.removeFromOpenOrder(id)
	return nil
}

func (s *Storage) MatchExists(ctx context.Context, id model.MatchID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.matches[id]
	return ok, nil
}

func (s *Storage) ListOpenMatches(ctx context.Context) ([]model.OpenMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	open := make([]model.OpenMatch, 0, len(s.openOrder))
	for _, id := range s.openOrder {
		match, ok := s.matches[id]
		if !ok {
			continue
		}
		open = append(open, model.OpenMatch{ID: match.ID, CreatedAt: match.CreatedAt})
	}
	return open, nil
}

func (s *Storage) inOpenOrder(id model.MatchID) bool {
	for _, existing := range s.openOrder {
		if existing == id {
			return true
		}
	}
	return false
}

func (s *Storage) removeFromOpenOrder(id model.MatchID) {
	for i, existing := range s.openOrder {
		if existing == id {
			s.openOrder = append(s.openOrder[:i], s.openOrder[i+1:]...)
			return
		}
	}
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
