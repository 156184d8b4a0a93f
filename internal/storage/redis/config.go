package redis

import "time"

// Config holds Redis connection and retention settings
type Config struct {
	// URL is a redis connection URL (redis://...)
	URL string

	PoolSize     int
	MinIdleConns int

	// MatchTTL bounds how long a match document may linger; matches are
	// deleted explicitly when they finish, so this only cleans up after
	// crashes.
	MatchTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis storage
func DefaultConfig() Config {
	return Config{
		PoolSize:     10,
		MinIdleConns: 2,
		MatchTTL:     24 * time.Hour,
	}
}
