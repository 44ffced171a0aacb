package resultssessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "scrim:session:"

// collectScript appends to the image list only while the session exists and
// refreshes both keys' expiry.
var collectScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
local n = redis.call('RPUSH', KEYS[2], ARGV[1])
if tonumber(ARGV[2]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
	redis.call('PEXPIRE', KEYS[2], ARGV[2])
end
return n
`)

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// between replicas. Each session is a hash plus a list of image URLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// HealthCheck pings Redis.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func keys(channelID string) (meta, images string) {
	return keyPrefix + channelID, keyPrefix + channelID + ":images"
}

func (s *RedisStore) Begin(ctx context.Context, channelID string, session resultsdomain.MatchSession) error {
	metaKey, imagesKey := keys(channelID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, metaKey, imagesKey)
		pipe.HSet(ctx, metaKey,
			"scrim_id", session.ScrimID,
			"game", session.Game,
			"started_at", session.StartedAt.UTC().Format(time.RFC3339Nano),
		)
		if len(session.Images) > 0 {
			values := make([]any, len(session.Images))
			for i, img := range session.Images {
				values[i] = img
			}
			pipe.RPush(ctx, imagesKey, values...)
		}
		if s.ttl > 0 {
			pipe.PExpire(ctx, metaKey, s.ttl)
			pipe.PExpire(ctx, imagesKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return nil
}

func (s *RedisStore) Collect(ctx context.Context, channelID, imageURL string) (int, error) {
	metaKey, imagesKey := keys(channelID)

	n, err := collectScript.Run(ctx, s.client, []string{metaKey, imagesKey}, imageURL, s.ttl.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("collect image: %w", err)
	}
	if n < 0 {
		return 0, resultsdomain.ErrNoSession
	}
	return n, nil
}

func (s *RedisStore) Finish(ctx context.Context, channelID string) (resultsdomain.MatchSession, error) {
	metaKey, imagesKey := keys(channelID)

	var (
		metaCmd   *redis.MapStringStringCmd
		imagesCmd *redis.StringSliceCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		metaCmd = pipe.HGetAll(ctx, metaKey)
		imagesCmd = pipe.LRange(ctx, imagesKey, 0, -1)
		pipe.Del(ctx, metaKey, imagesKey)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return resultsdomain.MatchSession{}, fmt.Errorf("finish session: %w", err)
	}

	meta := metaCmd.Val()
	if len(meta) == 0 {
		return resultsdomain.MatchSession{}, resultsdomain.ErrNoSession
	}

	game, err := strconv.Atoi(meta["game"])
	if err != nil {
		return resultsdomain.MatchSession{}, fmt.Errorf("finish session: corrupt game %q", meta["game"])
	}
	startedAt, _ := time.Parse(time.RFC3339Nano, meta["started_at"])

	images := imagesCmd.Val()
	if images == nil {
		images = []string{}
	}

	return resultsdomain.MatchSession{
		ScrimID:   meta["scrim_id"],
		Game:      game,
		Images:    images,
		StartedAt: startedAt,
	}, nil
}
