package dictionary

import (
	"bufio"
	"context"
	_ "embed"
	"os"
	"strings"
	"sync"

	"wordduel/internal/model"
	"wordduel/internal/storage"
)

//go:embed words.txt
var defaultWords string

// Service validates submitted words against a fixed in-memory set of
// accepted five-letter words.
type Service struct {
	storage storage.Storage

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new dictionary Service
func New(store storage.Storage) *Service {
	return &Service{
		storage: store,
		words:   make(map[string]struct{}),
	}
}

// LoadDefault loads the embedded word list and caches it in storage
func (s *Service) LoadDefault(ctx context.Context) error {
	words := splitWords(defaultWords)
	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads words from a file (one word per line) and caches them
// in storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromStorage loads previously cached words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if len(word) != model.WordLength {
			continue
		}
		s.words[word] = struct{}{}
	}
	s.loaded = true
	return nil
}

// IsValid reports whether a word is an accepted five-letter dictionary
// word. It fails to false for empty, wrong-length, or unknown input and
// never panics. Lookup is case-insensitive.
func (s *Service) IsValid(word string) bool {
	word = Normalize(word)
	if len(word) != model.WordLength {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[word]
	return ok
}

// IsLoaded returns whether a word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of accepted words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Normalize lowercases and trims a submitted word to canonical form
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func splitWords(raw string) []string {
	var words []string
	for _, line := range strings.Split(raw, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

// Validator is the lookup interface the match controller depends on
type Validator interface {
	IsValid(word string) bool
}

var _ Validator = (*Service)(nil)
