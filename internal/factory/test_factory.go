package factory

import (
	"time"

	"wordduel/internal/dependencies/mocks"
	"wordduel/internal/storage/memory"
	"wordduel/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.Clock
	MockIDs   *mocks.IDs
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewIDs()

	app := newWithDependencies(store, mockClock, mockIDs, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}

// LoadTestDictionary loads a small word list for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		"about", "apple", "beach", "brave", "bread", "brick", "charm",
		"chase", "crane", "crate", "eagle", "early", "earth", "geese",
		"ghost", "grape", "great", "house", "label", "lemon", "light",
		"mango", "night", "ocean", "peach", "plant", "query", "quiet",
		"react", "river", "slate", "smile", "snake", "stone", "storm",
		"table", "tiger", "torch", "trace", "track", "train", "whale",
		"wheat", "world", "yacht", "zebra",
	}
	return t.DictionaryService.LoadWords(words)
}
