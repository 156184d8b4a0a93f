package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"wordduel/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func (s *ServiceSuite) TestExactMatch() {
	feedback, err := s.service.Score("apple", "apple")
	s.Require().NoError(err)

	s.Equal([]model.Mark{
		model.MarkCorrect, model.MarkCorrect, model.MarkCorrect,
		model.MarkCorrect, model.MarkCorrect,
	}, feedback)
	s.True(model.AllCorrect(feedback))
}

func (s *ServiceSuite) TestNoLettersShared() {
	feedback, err := s.service.Score("crate", "lying")
	s.Require().NoError(err)

	s.Equal([]model.Mark{
		model.MarkAbsent, model.MarkAbsent, model.MarkAbsent,
		model.MarkAbsent, model.MarkAbsent,
	}, feedback)
}

func (s *ServiceSuite) TestAnagram() {
	// Every letter of "crate" occurs in "react"; only the 'a' is in place
	feedback, err := s.service.Score("crate", "react")
	s.Require().NoError(err)

	s.Equal([]model.Mark{
		model.MarkPresent, model.MarkPresent, model.MarkCorrect,
		model.MarkPresent, model.MarkPresent,
	}, feedback)
	s.False(model.AllCorrect(feedback))
}

func (s *ServiceSuite) TestMiddleLetterFixed() {
	feedback, err := s.service.Score("abcde", "edcba")
	s.Require().NoError(err)

	s.Equal([]model.Mark{
		model.MarkPresent, model.MarkPresent, model.MarkCorrect,
		model.MarkPresent, model.MarkPresent,
	}, feedback)
}

func (s *ServiceSuite) TestRepeatedGuessLetterNotDoubleCounted() {
	// "geese" has three e's, "eagle" only two. The correct 'e' at
	// position 2 consumes one; only one of the remaining e's may be
	// marked present.
	feedback, err := s.service.Score("geese", "eagle")
	s.Require().NoError(err)

	s.Equal(model.MarkPresent, feedback[0]) // g
	s.Equal(model.MarkPresent, feedback[1]) // e
	s.Equal(model.MarkAbsent, feedback[2])  // e, both e's consumed
	s.Equal(model.MarkAbsent, feedback[3])  // s
	s.Equal(model.MarkCorrect, feedback[4]) // e
}

func (s *ServiceSuite) TestCorrectPositionConsumesBeforePresent() {
	// Secret "abbey" has two b's. Guess "babes": the 'b' at position 2
	// is correct and consumes one; the leading 'b' takes the other as
	// present.
	feedback, err := s.service.Score("babes", "abbey")
	s.Require().NoError(err)

	s.Equal(model.MarkPresent, feedback[0]) // b
	s.Equal(model.MarkPresent, feedback[1]) // a
	s.Equal(model.MarkCorrect, feedback[2]) // b
	s.Equal(model.MarkCorrect, feedback[3]) // e
	s.Equal(model.MarkAbsent, feedback[4])  // s
}

func (s *ServiceSuite) TestLengthMismatch() {
	_, err := s.service.Score("cat", "apple")
	s.ErrorIs(err, model.ErrLengthMismatch)

	_, err = s.service.Score("apple", "cat")
	s.ErrorIs(err, model.ErrLengthMismatch)
}

func (s *ServiceSuite) TestFeedbackLengthMatchesGuess() {
	feedback, err := s.service.Score("slate", "crane")
	s.Require().NoError(err)
	s.Len(feedback, len("slate"))
}
