package ids

import (
	"github.com/google/uuid"

	"wordduel/internal/model"
)

// Source generates the opaque identifiers the server hands out. Mockable
// for deterministic tests.
type Source interface {
	// MatchID returns a fresh match identifier, collision-free for
	// practical purposes.
	MatchID() model.MatchID

	// ConnID returns a fresh connection handle.
	ConnID() model.ConnID
}

// UUIDSource implements Source with random UUIDs
type UUIDSource struct{}

// New returns a UUID-backed Source
func New() *UUIDSource {
	return &UUIDSource{}
}

// MatchID returns a new random match identifier
func (UUIDSource) MatchID() model.MatchID {
	return model.MatchID(uuid.NewString())
}

// ConnID returns a new random connection handle
func (UUIDSource) ConnID() model.ConnID {
	return model.ConnID(uuid.NewString())
}
