package mocks

import (
	"fmt"

	"wordduel/internal/dependencies/ids"
	"wordduel/internal/model"
)

// IDs is a deterministic ids.Source for tests. Queued values are returned
// first; once exhausted it falls back to sequential identifiers.
type IDs struct {
	matchQueue []model.MatchID
	connQueue  []model.ConnID
	matchSeq   int
	connSeq    int
}

var _ ids.Source = (*IDs)(nil)

// NewIDs creates an empty deterministic Source
func NewIDs() *IDs {
	return &IDs{}
}

// QueueMatchID queues match identifiers to hand out
func (s *IDs) QueueMatchID(ids ...model.MatchID) {
	s.matchQueue = append(s.matchQueue, ids...)
}

// QueueConnID queues connection handles to hand out
func (s *IDs) QueueConnID(ids ...model.ConnID) {
	s.connQueue = append(s.connQueue, ids...)
}

// MatchID returns the next queued or sequential match identifier
func (s *IDs) MatchID() model.MatchID {
	if len(s.matchQueue) > 0 {
		id := s.matchQueue[0]
		s.matchQueue = s.matchQueue[1:]
		return id
	}
	s.matchSeq++
	return model.MatchID(fmt.Sprintf("match-%d", s.matchSeq))
}

// ConnID returns the next queued or sequential connection handle
func (s *IDs) ConnID() model.ConnID {
	if len(s.connQueue) > 0 {
		id := s.connQueue[0]
		s.connQueue = s.connQueue[1:]
		return id
	}
	s.connSeq++
	return model.ConnID(fmt.Sprintf("conn-%d", s.connSeq))
}
