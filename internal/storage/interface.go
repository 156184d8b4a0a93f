package storage

import (
	"context"

	"wordduel/internal/model"
)

// Storage defines the interface for match and dictionary persistence.
//
// Implementations must keep the open-match index derived from each match's
// status: saving a match in waiting status adds it to the index, saving it
// in any other status removes it, and deleting a match removes it. The
// index can therefore never diverge from the status field.
type Storage interface {
	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	MatchExists(ctx context.Context, id model.MatchID) (bool, error)

	// ListOpenMatches returns matches in waiting status, ordered by
	// creation time, oldest first.
	ListOpenMatches(ctx context.Context) ([]model.OpenMatch, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
