package registry

import (
	"context"
	"log/slog"

	"wordduel/internal/dependencies/clock"
	"wordduel/internal/dependencies/ids"
	"wordduel/internal/model"
	"wordduel/internal/storage"
)

// Controller creates, indexes, and retires matches. It exclusively owns
// all matches; matches never reference the registry.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Source
	logger  *slog.Logger
}

// NewController creates a new registry Controller
func NewController(store storage.Storage, clk clock.Clock, src ids.Source, logger *slog.Logger) *Controller {
	return &Controller{
		storage: store,
		clock:   clk,
		ids:     src,
		logger:  logger,
	}
}

// Create makes a new match with the creator joined as role A and adds it
// to the open list.
func (c *Controller) Create(ctx context.Context, creator model.ConnID) (*model.Match, error) {
	now := c.clock.Now()

	// Generated IDs are collision-free in practice, but stay defensive
	// against a misbehaving source.
	var id model.MatchID
	for {
		id = c.ids.MatchID()
		exists, err := c.storage.MatchExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	match := &model.Match{
		ID:     id,
		Status: model.StatusWaiting,
		Participants: map[model.ConnID]model.Role{
			creator: model.RoleA,
		},
		Secrets:       make(map[model.Role]string),
		Guesses:       make(map[model.Role][]model.Guess),
		CreatedAt:     now,
		UpdatedAt:     now,
		TurnStartedAt: now,
	}

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	c.logger.Info("match created", slog.String("match_id", string(id)))
	return match, nil
}

// Get retrieves a match by identifier
func (c *Controller) Get(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, id)
}

// ListOpen returns matches awaiting a second participant, oldest first
func (c *Controller) ListOpen(ctx context.Context) ([]model.OpenMatch, error) {
	return c.storage.ListOpenMatches(ctx)
}

// Remove retires a match from the registry
func (c *Controller) Remove(ctx context.Context, id model.MatchID) error {
	if err := c.storage.DeleteMatch(ctx, id); err != nil {
		return err
	}
	c.logger.Info("match removed", slog.String("match_id", string(id)))
	return nil
}

// ControllerInterface allows the gateway to take a registry by interface
type ControllerInterface interface {
	Create(ctx context.Context, creator model.ConnID) (*model.Match, error)
	Get(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListOpen(ctx context.Context) ([]model.OpenMatch, error)
	Remove(ctx context.Context, id model.MatchID) error
}

var _ ControllerInterface = (*Controller)(nil)
