package match

import (
	"context"
	"log/slog"
	"sync"

	"wordduel/internal/dependencies/clock"
	"wordduel/internal/model"
	"wordduel/internal/services/dictionary"
	"wordduel/internal/services/scoring"
	"wordduel/internal/storage"
)

// Controller runs the match state machine: joining, secret submission,
// guess scoring, and termination. Commands against the same match are
// serialized by a per-match lock; different matches proceed in parallel
// since they share no mutable state.
type Controller struct {
	storage    storage.Storage
	dictionary dictionary.Validator
	scoring    scoring.Scorer
	clock      clock.Clock
	logger     *slog.Logger

	mu    sync.Mutex
	locks map[model.MatchID]*sync.Mutex
}

// NewController creates a new match Controller
func NewController(
	store storage.Storage,
	dict dictionary.Validator,
	scorer scoring.Scorer,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    store,
		dictionary: dict,
		scoring:    scorer,
		clock:      clk,
		logger:     logger,
		locks:      make(map[model.MatchID]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing commands for one match
func (c *Controller) lockFor(id model.MatchID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	return lock
}

func (c *Controller) releaseLock(id model.MatchID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, id)
}

// Join adds a connection as the second participant. The first command to
// acquire the match lock wins a join race; the loser sees the filled match
// and is rejected.
func (c *Controller) Join(ctx context.Context, id model.MatchID, conn model.ConnID) (*model.Match, model.Role, error) {
	lock := c.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if _, ok := m.RoleOf(conn); ok {
		return nil, "", model.ErrAlreadyInMatch
	}
	if m.Status != model.StatusWaiting || m.IsFull() {
		return nil, "", model.ErrMatchFull
	}

	m.Participants[conn] = model.RoleB
	m.Status = model.StatusAwaitingSecrets
	m.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, "", err
	}

	c.logger.Info("participant joined",
		slog.String("match_id", string(id)),
		slog.String("role", string(model.RoleB)),
	)

	return m, model.RoleB, nil
}

// SetSecret records a participant's secret word. A secret, once accepted,
// is never overwritten, and none may be set after guessing starts. When
// both secrets are present the match advances to guessing with the turn
// given to role A.
func (c *Controller) SetSecret(ctx context.Context, id model.MatchID, conn model.ConnID, word string) (*model.Match, error) {
	lock := c.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	role, ok := m.RoleOf(conn)
	if !ok {
		return nil, model.ErrUnknownParticipant
	}
	if m.IsFinished() {
		return nil, model.ErrMatchFinished
	}
	if m.Status == model.StatusGuessing {
		return nil, model.ErrSecretAlreadySet
	}
	if _, set := m.Secrets[role]; set {
		return nil, model.ErrSecretAlreadySet
	}

	secret := dictionary.Normalize(word)
	if !c.dictionary.IsValid(secret) {
		return nil, model.ErrInvalidWord
	}

	now := c.clock.Now()
	m.Secrets[role] = secret
	m.UpdatedAt = now

	if m.IsFull() && m.BothSecretsSet() {
		m.Status = model.StatusGuessing
		m.Turn = model.RoleA
		m.TurnStartedAt = now
		c.logger.Info("guessing started", slog.String("match_id", string(id)))
	}

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SubmitGuess validates and scores a guess against the opponent's secret.
// A winning guess finishes the match and retires it from storage; any
// other accepted guess flips the turn.
func (c *Controller) SubmitGuess(ctx context.Context, id model.MatchID, conn model.ConnID, word string) (*model.Match, error) {
	lock := c.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	role, ok := m.RoleOf(conn)
	if !ok {
		return nil, model.ErrUnknownParticipant
	}
	if m.IsFinished() {
		return nil, model.ErrMatchFinished
	}
	if m.Status != model.StatusGuessing || m.Turn != role {
		return nil, model.ErrNotYourTurn
	}

	guess := dictionary.Normalize(word)
	if !c.dictionary.IsValid(guess) {
		return nil, model.ErrInvalidWord
	}

	secret, ok := m.Secrets[role.Opponent()]
	if !ok {
		return nil, model.ErrOpponentSecretMissing
	}

	feedback, err := c.scoring.Score(guess, secret)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	m.Guesses[role] = append(m.Guesses[role], model.Guess{Word: guess, Feedback: feedback})
	m.UpdatedAt = now

	if guess == secret {
		m.Status = model.StatusFinished
		m.Winner = role

		// Finished matches are retired immediately; the returned value
		// carries the final state for snapshot delivery.
		if err := c.storage.DeleteMatch(ctx, id); err != nil {
			return nil, err
		}
		c.releaseLock(id)

		c.logger.Info("match won",
			slog.String("match_id", string(id)),
			slog.String("winner", string(role)),
			slog.Int("guesses", len(m.Guesses[role])),
		)
		return m, nil
	}

	m.Turn = role.Opponent()
	m.TurnStartedAt = now

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// HandleDisconnect terminates a match because one participant dropped.
// There is no grace period: the remaining participant, if any, is the
// winner by forfeit. The match is removed from storage; the returned
// value carries the terminal state for notifying the survivor.
func (c *Controller) HandleDisconnect(ctx context.Context, id model.MatchID, conn model.ConnID) (*model.Match, error) {
	lock := c.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	role, ok := m.RoleOf(conn)
	if !ok {
		return nil, model.ErrUnknownParticipant
	}

	m.Status = model.StatusFinished
	m.Abandoned = true
	m.UpdatedAt = c.clock.Now()
	if _, hasOpponent := m.ConnOf(role.Opponent()); hasOpponent {
		m.Winner = role.Opponent()
	}

	if err := c.storage.DeleteMatch(ctx, id); err != nil {
		return nil, err
	}
	c.releaseLock(id)

	c.logger.Info("match abandoned",
		slog.String("match_id", string(id)),
		slog.String("left", string(role)),
	)
	return m, nil
}

// ControllerInterface allows the gateway to take the match controller by
// interface
type ControllerInterface interface {
	Join(ctx context.Context, id model.MatchID, conn model.ConnID) (*model.Match, model.Role, error)
	SetSecret(ctx context.Context, id model.MatchID, conn model.ConnID, word string) (*model.Match, error)
	SubmitGuess(ctx context.Context, id model.MatchID, conn model.ConnID, word string) (*model.Match, error)
	HandleDisconnect(ctx context.Context, id model.MatchID, conn model.ConnID) (*model.Match, error)
}

var _ ControllerInterface = (*Controller)(nil)
