package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"wordduel/internal/dependencies/mocks"
	"wordduel/internal/model"
	"wordduel/internal/services/dictionary"
	"wordduel/internal/services/registry"
	"wordduel/internal/services/scoring"
	"wordduel/internal/storage/memory"
	"wordduel/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.Clock
	registry   *registry.Controller
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	dict := dictionary.New(s.storage)
	err := dict.LoadWords([]string{"apple", "crane", "crate", "react", "slate", "stone"})
	s.Require().NoError(err)

	logger := testutil.NopLogger()
	s.registry = registry.NewController(s.storage, s.clock, mocks.NewIDs(), logger)
	s.controller = NewController(s.storage, dict, scoring.New(), s.clock, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) createMatch(creator model.ConnID) model.MatchID {
	match, err := s.registry.Create(s.ctx, creator)
	s.Require().NoError(err)
	return match.ID
}

// createGuessingMatch sets up a full match with both secrets in place.
// Role A holds "apple", role B holds "crane", and it is A's turn.
func (s *ControllerSuite) createGuessingMatch() model.MatchID {
	id := s.createMatch("conn-a")

	_, _, err := s.controller.Join(s.ctx, id, "conn-b")
	s.Require().NoError(err)

	_, err = s.controller.SetSecret(s.ctx, id, "conn-a", "apple")
	s.Require().NoError(err)
	_, err = s.controller.SetSecret(s.ctx, id, "conn-b", "crane")
	s.Require().NoError(err)

	return id
}

// Join

func (s *ControllerSuite) TestJoin() {
	id := s.createMatch("conn-a")

	m, role, err := s.controller.Join(s.ctx, id, "conn-b")
	s.Require().NoError(err)

	s.Equal(model.RoleB, role)
	s.Equal(model.StatusAwaitingSecrets, m.Status)
	s.Equal(model.RoleA, m.Participants["conn-a"])
	s.Equal(model.RoleB, m.Participants["conn-b"])
}

func (s *ControllerSuite) TestJoinMissingMatch() {
	_, _, err := s.controller.Join(s.ctx, "nope", "conn-b")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestJoinFullMatchLeavesStateUntouched() {
	id := s.createMatch("conn-a")

	_, _, err := s.controller.Join(s.ctx, id, "conn-b")
	s.Require().NoError(err)

	_, _, err = s.controller.Join(s.ctx, id, "conn-c")
	s.ErrorIs(err, model.ErrMatchFull)

	m, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)
	s.Len(m.Participants, 2)
	s.NotContains(m.Participants, model.ConnID("conn-c"))
	s.Equal(model.StatusAwaitingSecrets, m.Status)
}

func (s *ControllerSuite) TestSimultaneousJoinsAdmitExactlyOne() {
	id := s.createMatch("conn-a")

	// Two connections race for the open slot; the per-match lock decides
	// the winner and the loser sees a full match.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, conn := range []model.ConnID{"conn-b", "conn-c"} {
		conn := conn
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.controller.Join(s.ctx, id, conn)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var admitted, rejected int
	for err := range results {
		if err == nil {
			admitted++
		} else {
			s.ErrorIs(err, model.ErrMatchFull)
			rejected++
		}
	}
	s.Equal(1, admitted)
	s.Equal(1, rejected)

	m, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)
	s.Len(m.Participants, 2)
	s.Equal(model.StatusAwaitingSecrets, m.Status)
}

func (s *ControllerSuite) TestCreatorCannotJoinOwnMatch() {
	id := s.createMatch("conn-a")

	_, _, err := s.controller.Join(s.ctx, id, "conn-a")
	s.ErrorIs(err, model.ErrAlreadyInMatch)
}

func (s *ControllerSuite) TestJoinedMatchLeavesOpenList() {
	id := s.createMatch("conn-a")

	_, _, err := s.controller.Join(s.ctx, id, "conn-b")
	s.Require().NoError(err)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}

// SetSecret

func (s *ControllerSuite) TestSetSecretBeforeOpponentJoins() {
	id := s.createMatch("conn-a")

	m, err := s.controller.SetSecret(s.ctx, id, "conn-a", "apple")
	s.Require().NoError(err)

	s.Equal("apple", m.Secrets[model.RoleA])
	s.Equal(model.StatusWaiting, m.Status)
	s.Empty(m.Turn)
}

func (s *ControllerSuite) TestBothSecretsStartGuessing() {
	id := s.createMatch("conn-a")
	_, _, err := s.controller.Join(s.ctx, id, "conn-b")
	s.Require().NoError(err)

	m, err := s.controller.SetSecret(s.ctx, id, "conn-a", "apple")
	s.Require().NoError(err)
	s.Equal(model.StatusAwaitingSecrets, m.Status)

	m, err = s.controller.SetSecret(s.ctx, id, "conn-b", "crane")
	s.Require().NoError(err)
	s.Equal(model.StatusGuessing, m.Status)
	s.Equal(model.RoleA, m.Turn)
	s.Equal(s.clock.Current, m.TurnStartedAt)
}

func (s *ControllerSuite) TestSecretIsNormalized() {
	id := s.createMatch("conn-a")

	m, err := s.controller.SetSecret(s.ctx, id, "conn-a", "  APPLE ")
	s.Require().NoError(err)
	s.Equal("apple", m.Secrets[model.RoleA])
}

func (s *ControllerSuite) TestSetSecretRejectsInvalidWord() {
	id := s.createMatch("conn-a")

	_, err := s.controller.SetSecret(s.ctx, id, "conn-a", "zzzzz")
	s.ErrorIs(err, model.ErrInvalidWord)

	_, err = s.controller.SetSecret(s.ctx, id, "conn-a", "cat")
	s.ErrorIs(err, model.ErrInvalidWord)
}

func (s *ControllerSuite) TestSecretCannotBeReplaced() {
	id := s.createMatch("conn-a")

	_, err := s.controller.SetSecret(s.ctx, id, "conn-a", "apple")
	s.Require().NoError(err)

	_, err = s.controller.SetSecret(s.ctx, id, "conn-a", "crane")
	s.ErrorIs(err, model.ErrSecretAlreadySet)

	m, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("apple", m.Secrets[model.RoleA])
}

func (s *ControllerSuite) TestSetSecretAfterGuessingStarted() {
	id := s.createGuessingMatch()

	_, err := s.controller.SetSecret(s.ctx, id, "conn-a", "slate")
	s.ErrorIs(err, model.ErrSecretAlreadySet)
}

func (s *ControllerSuite) TestSetSecretFromStranger() {
	id := s.createMatch("conn-a")

	_, err := s.controller.SetSecret(s.ctx, id, "conn-x", "apple")
	s.ErrorIs(err, model.ErrUnknownParticipant)
}

// SubmitGuess

func (s *ControllerSuite) TestGuessIsScoredAgainstOpponentSecret() {
	id := s.createGuessingMatch()

	// A guesses against B's secret "crane"
	m, err := s.controller.SubmitGuess(s.ctx, id, "conn-a", "crate")
	s.Require().NoError(err)

	s.Require().Len(m.Guesses[model.RoleA], 1)
	guess := m.Guesses[model.RoleA][0]
	s.Equal("crate", guess.Word)
	s.Equal([]model.Mark{
		model.MarkCorrect, model.MarkCorrect, model.MarkCorrect,
		model.MarkAbsent, model.MarkCorrect,
	}, guess.Feedback)
}

func (s *ControllerSuite) TestTurnsAlternate() {
	id := s.createGuessingMatch()

	m, err := s.controller.SubmitGuess(s.ctx, id, "conn-a", "slate")
	s.Require().NoError(err)
	s.Equal(model.RoleB, m.Turn)

	m, err = s.controller.SubmitGuess(s.ctx, id, "conn-b", "stone")
	s.Require().NoError(err)
	s.Equal(model.RoleA, m.Turn)
}

func (s *ControllerSuite) TestGuessOutOfTurn() {
	id := s.createGuessingMatch()

	_, err := s.controller.SubmitGuess(s.ctx, id, "conn-b", "slate")
	s.ErrorIs(err, model.ErrNotYourTurn)

	// The rejected guess changes nothing
	m, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(m.Guesses[model.RoleB])
	s.Equal(model.RoleA, m.Turn)
}

func (s *ControllerSuite) TestGuessBeforeGuessingPhase() {
	id := s.createMatch("conn-a")
	_, _, err := s.controller.Join(s.ctx, id, "conn-b")
	s.Require().NoError(err)

	_, err = s.controller.SubmitGuess(s.ctx, id, "conn-a", "slate")
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestInvalidGuessDoesNotConsumeTurn() {
	id := s.createGuessingMatch()

	_, err := s.controller.SubmitGuess(s.ctx, id, "conn-a", "zzzzz")
	s.ErrorIs(err, model.ErrInvalidWord)

	m, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.RoleA, m.Turn)
	s.Empty(m.Guesses[model.RoleA])
}

func (s *ControllerSuite) TestWinningGuessFinishesAndRetiresMatch() {
	id := s.createGuessingMatch()

	// A guesses B's secret exactly
	m, err := s.controller.SubmitGuess(s.ctx, id, "conn-a", "crane")
	s.Require().NoError(err)

	s.Equal(model.StatusFinished, m.Status)
	s.Equal(model.RoleA, m.Winner)
	s.False(m.Abandoned)
	s.True(model.AllCorrect(m.Guesses[model.RoleA][0].Feedback))

	// The match is gone from storage
	_, err = s.storage.GetMatch(s.ctx, id)
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestGuessAfterFinishFailsWithNotFound() {
	id := s.createGuessingMatch()

	_, err := s.controller.SubmitGuess(s.ctx, id, "conn-a", "crane")
	s.Require().NoError(err)

	_, err = s.controller.SubmitGuess(s.ctx, id, "conn-b", "apple")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestReturnedMatchIsSafeToReadConcurrently() {
	id := s.createGuessingMatch()

	// Both participants hammer the match and build snapshots from whatever
	// the controller hands back, the way the gateway does after the match
	// lock is released. Returned matches are copies, so reading one while
	// the opponent's command mutates stored state must be race-free.
	bad := make(chan string, 2)
	var wg sync.WaitGroup
	for _, p := range []struct {
		conn model.ConnID
		role model.Role
		word string
	}{
		{"conn-a", model.RoleA, "slate"},
		{"conn-b", model.RoleB, "stone"},
	} {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				m, err := s.controller.SubmitGuess(s.ctx, id, p.conn, p.word)
				if err != nil {
					continue // out of turn
				}
				snap := m.SnapshotFor(p.role)
				for _, g := range snap.YourGuesses {
					if len(g.Feedback) != len(g.Word) {
						bad <- g.Word
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(bad)

	for word := range bad {
		s.Failf("torn snapshot", "guess %q delivered without full feedback", word)
	}
}

func (s *ControllerSuite) TestGuessFromStranger() {
	id := s.createGuessingMatch()

	_, err := s.controller.SubmitGuess(s.ctx, id, "conn-x", "slate")
	s.ErrorIs(err, model.ErrUnknownParticipant)
}

// HandleDisconnect

func (s *ControllerSuite) TestDisconnectForfeitsToOpponent() {
	id := s.createGuessingMatch()

	m, err := s.controller.HandleDisconnect(s.ctx, id, "conn-a")
	s.Require().NoError(err)

	s.Equal(model.StatusFinished, m.Status)
	s.True(m.Abandoned)
	s.Equal(model.RoleB, m.Winner)

	_, err = s.storage.GetMatch(s.ctx, id)
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestDisconnectFromWaitingMatchHasNoWinner() {
	id := s.createMatch("conn-a")

	m, err := s.controller.HandleDisconnect(s.ctx, id, "conn-a")
	s.Require().NoError(err)

	s.Equal(model.StatusFinished, m.Status)
	s.True(m.Abandoned)
	s.Empty(m.Winner)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}

func (s *ControllerSuite) TestDisconnectOfStranger() {
	id := s.createMatch("conn-a")

	_, err := s.controller.HandleDisconnect(s.ctx, id, "conn-x")
	s.ErrorIs(err, model.ErrUnknownParticipant)

	// Match unaffected
	m, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.StatusWaiting, m.Status)
}

// Snapshots

func (s *ControllerSuite) TestSnapshotHidesOpponentInformation() {
	id := s.createGuessingMatch()

	_, err := s.controller.SubmitGuess(s.ctx, id, "conn-a", "crate")
	s.Require().NoError(err)

	m, err := s.storage.GetMatch(s.ctx, id)
	s.Require().NoError(err)

	snapshot := m.SnapshotFor(model.RoleB)
	s.Equal(model.RoleB, snapshot.You)
	s.Equal("crane", snapshot.YourSecret)
	s.Empty(snapshot.OpponentSecret)

	// B sees A's guess words but not the feedback
	s.Require().Len(snapshot.OpponentGuesses, 1)
	s.Equal("crate", snapshot.OpponentGuesses[0])
	s.Empty(snapshot.YourGuesses)
}

func (s *ControllerSuite) TestFinishedSnapshotRevealsOpponentSecret() {
	id := s.createGuessingMatch()

	m, err := s.controller.SubmitGuess(s.ctx, id, "conn-a", "crane")
	s.Require().NoError(err)

	snapshot := m.SnapshotFor(model.RoleB)
	s.Equal(model.StatusFinished, snapshot.Status)
	s.Equal(model.RoleA, snapshot.Winner)
	s.Equal("apple", snapshot.OpponentSecret)
}
