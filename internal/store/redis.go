package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync/atomic"
	"time"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/types"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps resumes and analyses in Redis.
//
// Layout under the key prefix:
//
//	resume:<id>          resume JSON
//	resume:seq           upload counter
//	resumes              sorted set of resume IDs scored by upload counter
//	analyses             list of analysis JSON in save order
//	analysis:<resumeID>  latest analysis JSON
type RedisStore struct {
	client *redis.Client
	prefix string
	now    Clock
	logger *errors.Logger

	warnedUnavailable atomic.Bool
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, logger *errors.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	if logger != nil {
		logger.Info("Connected to Redis", "addr", cfg.Addr, "db", cfg.DB, "key_prefix", cfg.KeyPrefix)
	}
	return NewRedisStoreFromClient(client, cfg.KeyPrefix, logger), nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client, prefix string, logger *errors.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    systemClock,
		logger: logger,
	}
}

func (r *RedisStore) key(parts ...string) string {
	k := r.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

func (r *RedisStore) resumeKey(id string) string { return r.key("resume", id) }

func (r *RedisStore) analysisKey(resumeID string) string { return r.key("analysis", resumeID) }

// warnUnavailableOnce logs the first connection failure only
func (r *RedisStore) warnUnavailableOnce(err error) {
	if r.logger == nil || err == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("Redis command failed", "error", err.Error())
	}
}

func (r *RedisStore) fail(op string, err error) error {
	r.warnUnavailableOnce(err)
	return fmt.Errorf("redis %s: %w", op, err)
}

func (r *RedisStore) SaveResume(ctx context.Context, fileName, content string) (types.Resume, error) {
	resume := newResume(r.now, fileName, content)
	payload, err := json.Marshal(resume)
	if err != nil {
		return types.Resume{}, err
	}

	seq, err := r.client.Incr(ctx, r.key("resume", "seq")).Result()
	if err != nil {
		return types.Resume{}, r.fail("save resume", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.resumeKey(resume.ID), payload, 0)
		pipe.ZAdd(ctx, r.key("resumes"), redis.Z{Score: float64(seq), Member: resume.ID})
		return nil
	})
	if err != nil {
		return types.Resume{}, r.fail("save resume", err)
	}
	return resume, nil
}

func (r *RedisStore) GetResume(ctx context.Context, id string) (types.Resume, error) {
	var resume types.Resume
	if err := r.getJSON(ctx, r.resumeKey(id), &resume); err != nil {
		return types.Resume{}, err
	}
	return resume, nil
}

func (r *RedisStore) ListResumes(ctx context.Context, limit int) ([]types.Resume, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := r.client.ZRevRange(ctx, r.key("resumes"), 0, stop).Result()
	if err != nil {
		return nil, r.fail("list resumes", err)
	}
	out := make([]types.Resume, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.resumeKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, r.fail("list resumes", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // removed between ZREVRANGE and MGET
		}
		var resume types.Resume
		if err := json.Unmarshal([]byte(raw), &resume); err != nil {
			return nil, fmt.Errorf("decode resume: %w", err)
		}
		out = append(out, resume)
	}
	return out, nil
}

func (r *RedisStore) UpdateResume(ctx context.Context, resume types.Resume) error {
	payload, err := json.Marshal(resume)
	if err != nil {
		return err
	}
	updated, err := r.client.SetXX(ctx, r.resumeKey(resume.ID), payload, 0).Result()
	if err != nil {
		return r.fail("update resume", err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) SaveAnalysis(ctx context.Context, result types.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, r.key("analyses"), payload)
		pipe.Set(ctx, r.analysisKey(result.ResumeID), payload, 0)
		return nil
	})
	if err != nil {
		return r.fail("save analysis", err)
	}
	return nil
}

func (r *RedisStore) GetAnalysis(ctx context.Context, resumeID string) (types.AnalysisResult, error) {
	var result types.AnalysisResult
	if err := r.getJSON(ctx, r.analysisKey(resumeID), &result); err != nil {
		return types.AnalysisResult{}, err
	}
	return result, nil
}

func (r *RedisStore) ListAnalyses(ctx context.Context) ([]types.AnalysisResult, error) {
	values, err := r.client.LRange(ctx, r.key("analyses"), 0, -1).Result()
	if err != nil {
		return nil, r.fail("list analyses", err)
	}
	out := make([]types.AnalysisResult, 0, len(values))
	for _, raw := range values {
		var result types.AnalysisResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		out = append(out, result)
	}
	return out, nil
}

func (r *RedisStore) getJSON(ctx context.Context, key string, out any) error {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return r.fail("get "+key, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
