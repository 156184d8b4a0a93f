package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"wordduel/internal/model"
	"wordduel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	// The open index is written in the same pipeline as the match document
	// so it tracks the status field exactly.
	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL)
	if match.Status == model.StatusWaiting {
		pipe.ZAdd(ctx, openMatchesKey(), redis.Z{
			Score:  float64(match.CreatedAt.UnixNano()),
			Member: string(match.ID),
		})
	} else {
		pipe.ZRem(ctx, openMatchesKey(), string(match.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchKey(id))
	pipe.ZRem(ctx, openMatchesKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) MatchExists(ctx context.Context, id model.MatchID) (bool, error) {
	exists, err := s.client.Exists(ctx, matchKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListOpenMatches(ctx context.Context) ([]model.OpenMatch, error) {
	// Scores are creation timestamps, so an ascending range is already
	// oldest first.
	ids, err := s.client.ZRange(ctx, openMatchesKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []model.OpenMatch{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = matchKey(model.MatchID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	open := make([]model.OpenMatch, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // match may have expired
		}
		var match model.Match
		if err := json.Unmarshal([]byte(val.(string)), &match); err != nil {
			continue
		}
		open = append(open, model.OpenMatch{ID: match.ID, CreatedAt: match.CreatedAt})
	}
	return open, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	exists, err := s.client.Exists(ctx, dictionaryKey()).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	return s.client.SMembers(ctx, dictionaryKey()).Result()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}

	members := make([]interface{}, len(words))
	for i, w := range words {
		members[i] = w
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, dictionaryKey())
	pipe.SAdd(ctx, dictionaryKey(), members...)
	_, err := pipe.Exec(ctx)
	return err
}
