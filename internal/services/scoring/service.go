package scoring

import (
	"wordduel/internal/model"
)

// Service computes per-position feedback for a guess against a secret
// word. Scoring is a pure function of its inputs.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// Score marks each guess position as correct, present, or absent using the
// standard two-pass algorithm. Both inputs must already be normalized to
// lowercase and have equal length; a length mismatch is a caller contract
// violation and returns ErrLengthMismatch.
//
// Pass 1 marks exact matches and consumes those secret letters. Pass 2
// resolves the remaining positions against the unconsumed secret letters,
// consuming one occurrence per present mark. A letter appearing twice in
// the guess but once in the secret therefore yields exactly one non-absent
// mark.
func (s *Service) Score(guess, secret string) ([]model.Mark, error) {
	if len(guess) != len(secret) {
		return nil, model.ErrLengthMismatch
	}

	n := len(guess)
	marks := make([]model.Mark, n)
	remaining := make(map[byte]int, n)

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			marks[i] = model.MarkCorrect
		} else {
			remaining[secret[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if marks[i] == model.MarkCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			marks[i] = model.MarkPresent
			remaining[guess[i]]--
		} else {
			marks[i] = model.MarkAbsent
		}
	}

	return marks, nil
}

// Scorer is the interface the match controller depends on
type Scorer interface {
	Score(guess, secret string) ([]model.Mark, error)
}

var _ Scorer = (*Service)(nil)
