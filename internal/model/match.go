package model

import "time"

// WordLength is the fixed length of every secret and guess
const WordLength = 5

// MatchID uniquely identifies a match
type MatchID string

// ConnID is the ephemeral handle of a connected participant
type ConnID string

// Role identifies a participant within a match, assigned in arrival order
type Role string

const (
	RoleA Role = "A" // creator / first joiner
	RoleB Role = "B" // second joiner
)

// Opponent returns the other role
func (r Role) Opponent() Role {
	if r == RoleA {
		return RoleB
	}
	return RoleA
}

// MatchStatus represents the current phase of a match
type MatchStatus string

const (
	StatusWaiting         MatchStatus = "waiting"          // one participant, open for a second
	StatusAwaitingSecrets MatchStatus = "awaiting_secrets" // both joined, secrets being submitted
	StatusGuessing        MatchStatus = "guessing"         // alternating guesses
	StatusFinished        MatchStatus = "finished"         // terminal
)

// Guess is a single guess with its per-position feedback.
// Feedback always has the same length as Word.
type Guess struct {
	Word     string `json:"word"`
	Feedback []Mark `json:"feedback"`
}

// Match holds all state for one pairing of two participants.
// It is mutated only through the match controller, which serializes
// access per match.
type Match struct {
	ID     MatchID     `json:"id"`
	Status MatchStatus `json:"status"`

	// Participants maps connection handles to roles. At most two entries;
	// once full no further entries are added.
	Participants map[ConnID]Role `json:"participants"`

	// Secrets maps roles to secret words; each entry is set once and
	// never overwritten within the match.
	Secrets map[Role]string `json:"secrets"`

	// Guesses maps roles to their append-only guess history.
	Guesses map[Role][]Guess `json:"guesses"`

	// Turn is the role permitted to submit the next guess; empty before
	// both secrets are set.
	Turn Role `json:"turn"`

	// Winner is set exactly once, on transition to finished.
	Winner Role `json:"winner"`

	// Abandoned marks a match terminated by disconnect rather than a
	// winning guess.
	Abandoned bool `json:"abandoned"`

	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	TurnStartedAt time.Time `json:"turn_started_at"`
}

// RoleOf returns the role for a connection, or false if the connection is
// not a participant.
func (m *Match) RoleOf(conn ConnID) (Role, bool) {
	role, ok := m.Participants[conn]
	return role, ok
}

// ConnOf returns the connection holding the given role, or false if that
// role has not been filled.
func (m *Match) ConnOf(role Role) (ConnID, bool) {
	for conn, r := range m.Participants {
		if r == role {
			return conn, true
		}
	}
	return "", false
}

// IsFull returns true once both roles are filled
func (m *Match) IsFull() bool {
	return len(m.Participants) >= 2
}

// BothSecretsSet returns true when both roles have a secret recorded
func (m *Match) BothSecretsSet() bool {
	_, a := m.Secrets[RoleA]
	_, b := m.Secrets[RoleB]
	return a && b
}

// IsFinished reports whether the match has reached its terminal state
func (m *Match) IsFinished() bool {
	return m.Status == StatusFinished
}

// Clone returns a deep copy of the match, sharing no maps or slices with
// the receiver.
func (m *Match) Clone() *Match {
	c := *m

	c.Participants = make(map[ConnID]Role, len(m.Participants))
	for conn, role := range m.Participants {
		c.Participants[conn] = role
	}

	c.Secrets = make(map[Role]string, len(m.Secrets))
	for role, secret := range m.Secrets {
		c.Secrets[role] = secret
	}

	c.Guesses = make(map[Role][]Guess, len(m.Guesses))
	for role, guesses := range m.Guesses {
		copied := make([]Guess, len(guesses))
		for i, g := range guesses {
			copied[i] = Guess{Word: g.Word, Feedback: append([]Mark(nil), g.Feedback...)}
		}
		c.Guesses[role] = copied
	}

	return &c
}

// OpenMatch is a lobby listing entry for a match awaiting a second
// participant.
type OpenMatch struct {
	ID        MatchID   `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
