package model

// Snapshot is the role-scoped projection of a match sent to one
// participant. It never exposes the opponent's secret before the match
// finishes.
type Snapshot struct {
	MatchID   MatchID     `json:"match_id"`
	Status    MatchStatus `json:"status"`
	You       Role        `json:"you"`
	Turn      Role        `json:"turn,omitempty"`
	Winner    Role        `json:"winner,omitempty"`
	Abandoned bool        `json:"abandoned,omitempty"`

	// SecretSet acknowledges that this participant's own secret has been
	// accepted; the secret itself is echoed back once guessing starts.
	SecretSet  bool   `json:"secret_set"`
	YourSecret string `json:"your_secret,omitempty"`

	// YourGuesses is this participant's own history with feedback.
	YourGuesses []Guess `json:"your_guesses"`

	// OpponentGuesses lists the opponent's guess words only.
	OpponentGuesses []string `json:"opponent_guesses"`

	// OpponentSecret is revealed only on a finished match.
	OpponentSecret string `json:"opponent_secret,omitempty"`
}

// SnapshotFor builds the view of the match for the given role.
func (m *Match) SnapshotFor(role Role) *Snapshot {
	snap := &Snapshot{
		MatchID:         m.ID,
		Status:          m.Status,
		You:             role,
		Turn:            m.Turn,
		Winner:          m.Winner,
		Abandoned:       m.Abandoned,
		YourGuesses:     []Guess{},
		OpponentGuesses: []string{},
	}

	secret, ok := m.Secrets[role]
	snap.SecretSet = ok
	if ok && m.Status != StatusWaiting && m.Status != StatusAwaitingSecrets {
		snap.YourSecret = secret
	}

	snap.YourGuesses = append(snap.YourGuesses, m.Guesses[role]...)
	for _, g := range m.Guesses[role.Opponent()] {
		snap.OpponentGuesses = append(snap.OpponentGuesses, g.Word)
	}

	if m.Status == StatusFinished {
		snap.OpponentSecret = m.Secrets[role.Opponent()]
	}

	return snap
}
