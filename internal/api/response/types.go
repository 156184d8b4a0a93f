package response

import (
	"time"

	"wordduel/internal/model"
)

// ErrorResponse carries an error message
type ErrorResponse struct {
	Error string `json:"error"`
}

// OpenMatch represents a joinable match in API responses
type OpenMatch struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenMatchFromModel converts a model.OpenMatch to a response OpenMatch
func OpenMatchFromModel(m model.OpenMatch) OpenMatch {
	return OpenMatch{
		ID:        string(m.ID),
		CreatedAt: m.CreatedAt,
	}
}

// OpenMatchList is the response for listing open matches
type OpenMatchList struct {
	Matches []OpenMatch `json:"matches"`
}

// OpenMatchListFromModel converts a slice of model.OpenMatch
func OpenMatchListFromModel(matches []model.OpenMatch) OpenMatchList {
	out := make([]OpenMatch, len(matches))
	for i, m := range matches {
		out[i] = OpenMatchFromModel(m)
	}
	return OpenMatchList{Matches: out}
}
