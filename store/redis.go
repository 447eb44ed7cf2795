package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed correction store. Exact lookups are plain
// keys; fuzzy lookups go through an inverted index of salient terms,
// one set per term holding JSON-encoded examples.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379")
	KeyPrefix string // Prefix for all keys (default: "xliffai:")
}

// redisMatch is the stored form of an exact-lookup value.
type redisMatch struct {
	Target     string  `json:"target"`
	Confidence float64 `json:"confidence"`
}

// redisExample is the stored form of a term-index member.
type redisExample struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewRedis creates a new Redis store with the given configuration.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisFromClient creates a Redis store from an existing client.
func NewRedisFromClient(client *redis.Client, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = "xliffai:"
	}
	return &Redis{client: client, keyPrefix: keyPrefix}
}

// Add stores one correction and indexes its salient terms.
func (r *Redis) Add(ctx context.Context, source, target, lang string, confidence float64) error {
	match, err := json.Marshal(redisMatch{Target: target, Confidence: confidence})
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.exactKey(source, lang), match, 0).Err(); err != nil {
		return err
	}

	member, err := json.Marshal(redisExample{Source: source, Target: target})
	if err != nil {
		return err
	}
	for _, term := range SalientTerms(source) {
		if err := r.client.SAdd(ctx, r.termKey(lang, term), member).Err(); err != nil {
			return err
		}
	}
	return nil
}

// ExactLookup returns the stored correction for a text, or nil on miss.
// Connection errors degrade to a miss so the caller's flow proceeds.
func (r *Redis) ExactLookup(ctx context.Context, text, lang string) (*Match, error) {
	val, err := r.client.Get(ctx, r.exactKey(text, lang)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, nil
	}

	var m redisMatch
	if err := json.Unmarshal([]byte(val), &m); err != nil {
		return nil, nil
	}
	return &Match{Target: m.Target, Confidence: m.Confidence}, nil
}

// FuzzyLookup unions the term-index sets for the text's salient terms.
func (r *Redis) FuzzyLookup(ctx context.Context, text, lang string) ([]Example, error) {
	var examples []Example
	for _, term := range SalientTerms(text) {
		members, err := r.client.SMembers(ctx, r.termKey(lang, term)).Result()
		if err != nil {
			continue
		}
		for _, member := range members {
			var ex redisExample
			if err := json.Unmarshal([]byte(member), &ex); err != nil {
				continue
			}
			examples = append(examples, Example{Source: ex.Source, Target: ex.Target})
		}
	}
	sort.Slice(examples, func(i, j int) bool { return examples[i].Source < examples[j].Source })
	return dedupeBySource(examples), nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Ping tests the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) exactKey(text, lang string) string {
	return r.keyPrefix + "rec:" + Key(text, lang)
}

func (r *Redis) termKey(lang, term string) string {
	return r.keyPrefix + "term:" + termKey(lang, term)
}

// Verify Redis implements Store
var _ Store = (*Redis)(nil)
