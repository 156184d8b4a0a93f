package redis

import "wordduel/internal/model"

const keyPrefix = "wordduel:"

func matchKey(id model.MatchID) string {
	return keyPrefix + "match:" + string(id)
}

// openMatchesKey is a sorted set of waiting match IDs scored by creation
// time, so lobby queries come back oldest first.
func openMatchesKey() string {
	return keyPrefix + "matches:open"
}

func dictionaryKey() string {
	return keyPrefix + "dictionary"
}
