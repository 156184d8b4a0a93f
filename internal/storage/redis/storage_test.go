package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"wordduel/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.MatchTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newMatch(id model.MatchID, status model.MatchStatus, createdAt time.Time) *model.Match {
	return &model.Match{
		ID:           id,
		Status:       status,
		Participants: map[model.ConnID]model.Role{"conn-1": model.RoleA},
		Secrets:      make(map[model.Role]string),
		Guesses:      make(map[model.Role][]model.Guess),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func (s *StorageSuite) TestSaveAndGetMatch() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	match := s.newMatch("match-1", model.StatusWaiting, now)
	match.Secrets[model.RoleA] = "apple"

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	got, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(match.ID, got.ID)
	s.Equal(model.StatusWaiting, got.Status)
	s.Equal("apple", got.Secrets[model.RoleA])
	s.Equal(model.RoleA, got.Participants["conn-1"])
}

func (s *StorageSuite) TestGetMissingMatch() {
	_, err := s.storage.GetMatch(s.ctx, "nope")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestMatchExists() {
	exists, err := s.storage.MatchExists(s.ctx, "match-1")
	s.Require().NoError(err)
	s.False(exists)

	err = s.storage.SaveMatch(s.ctx, s.newMatch("match-1", model.StatusWaiting, time.Now()))
	s.Require().NoError(err)

	exists, err = s.storage.MatchExists(s.ctx, "match-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteMatchClearsOpenIndex() {
	err := s.storage.SaveMatch(s.ctx, s.newMatch("match-1", model.StatusWaiting, time.Now()))
	s.Require().NoError(err)

	err = s.storage.DeleteMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "match-1")
	s.ErrorIs(err, model.ErrMatchNotFound)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}

func (s *StorageSuite) TestOpenMatchesOrderedByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := s.storage.SaveMatch(s.ctx, s.newMatch("second", model.StatusWaiting, base.Add(time.Minute)))
	s.Require().NoError(err)
	err = s.storage.SaveMatch(s.ctx, s.newMatch("first", model.StatusWaiting, base))
	s.Require().NoError(err)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(open, 2)
	s.Equal(model.MatchID("first"), open[0].ID)
	s.Equal(model.MatchID("second"), open[1].ID)
}

func (s *StorageSuite) TestMatchLeavesOpenListWhenStatusAdvances() {
	match := s.newMatch("match-1", model.StatusWaiting, time.Now())
	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	match.Status = model.StatusGuessing
	err = s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)

	got, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(model.StatusGuessing, got.Status)
}

func (s *StorageSuite) TestExpiredMatchSkippedInOpenList() {
	match := s.newMatch("match-1", model.StatusWaiting, time.Now())
	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	// Expire the match document but leave the index entry behind
	s.mini.FastForward(2 * time.Hour)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}

func (s *StorageSuite) TestDictionaryWords() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)

	err = s.storage.SaveDictionaryWords(s.ctx, []string{"apple", "crane"})
	s.Require().NoError(err)

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"apple", "crane"}, words)
}
