package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Chative-core-poc-v1/querychart/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/querychart/internal/core/error"
	logx "github.com/Chative-core-poc-v1/querychart/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	artifactKeyPrefix = "chart:artifact:"
	recentKey         = "chart:artifacts"
)

type RedisArtifactRepository struct {
	rdb       redis.Cmdable
	ttl       time.Duration
	maxRecent int
}

func NewRedisArtifactRepository(rdb redis.Cmdable, cfg model.ArtifactConfig) *RedisArtifactRepository {
	return &RedisArtifactRepository{rdb: rdb, ttl: cfg.TTL, maxRecent: cfg.MaxRecent}
}

func artifactKey(filename string) string {
	return artifactKeyPrefix + filename
}

func (r *RedisArtifactRepository) Record(ctx context.Context, rec model.ArtifactRecord) error {
	if rec.Filename == "" {
		return fmt.Errorf("artifact filename is empty")
	}
	b, err := json.Marshal(rec)
	if err != nil {
		logx.Error().Err(err).Str("filename", rec.Filename).Msg("failed to marshal artifact record")
		return fmt.Errorf("marshal artifact: %w", err)
	}
	key := artifactKey(rec.Filename)

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, b, r.ttl)
		pipe.LPush(ctx, recentKey, rec.Filename)
		if r.maxRecent > 0 {
			pipe.LTrim(ctx, recentKey, 0, int64(r.maxRecent-1))
		}
		// extend TTL on touch
		if r.ttl > 0 {
			pipe.Expire(ctx, recentKey, r.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to record artifact in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisArtifactRepository) Get(ctx context.Context, filename string) (*model.ArtifactRecord, error) {
	key := artifactKey(filename)
	s, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Error().Err(err).Str("key", key).Msg("failed to load artifact from redis")
		}
		return nil, errx.WrapRedis(err)
	}
	var rec model.ArtifactRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal artifact record")
		return nil, fmt.Errorf("unmarshal artifact %s: %w", filename, err)
	}
	return &rec, nil
}

func (r *RedisArtifactRepository) ListRecent(ctx context.Context, limit int) ([]model.ArtifactRecord, error) {
	if limit <= 0 {
		return []model.ArtifactRecord{}, nil
	}
	names, err := r.rdb.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.ArtifactRecord{}, nil
		}
		logx.Error().Err(err).Str("key", recentKey).Msg("failed to list recent artifacts")
		return nil, errx.WrapRedis(err)
	}
	if len(names) == 0 {
		return []model.ArtifactRecord{}, nil
	}

	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = artifactKey(n)
	}
	rows, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		logx.Error().Err(err).Int("keys", len(keys)).Msg("failed to load artifacts from redis")
		return nil, errx.WrapRedis(err)
	}

	out := make([]model.ArtifactRecord, 0, len(rows))
	for i, row := range rows {
		s, ok := row.(string)
		if !ok {
			// record expired before the list entry was trimmed
			continue
		}
		var rec model.ArtifactRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logx.Warn().Err(err).Str("key", keys[i]).Msg("skipping unreadable artifact record")
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *RedisArtifactRepository) Count(ctx context.Context) (int, error) {
	n, err := r.rdb.LLen(ctx, recentKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", recentKey).Msg("failed to count artifacts")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.ArtifactRepository = (*RedisArtifactRepository)(nil)
