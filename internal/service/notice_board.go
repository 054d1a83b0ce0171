package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"doctor-admin-dashboard/internal/dashboard"

	"github.com/redis/go-redis/v9"
)

// RedisNoticeKeyPrefix namespaces dashboard notices in Redis
const RedisNoticeKeyPrefix = "dashboard:notice:"

// RedisNoticeBoard stores one notice per key and lets Redis expire it.
type RedisNoticeBoard struct {
	redisClient *redis.Client
}

func NewRedisNoticeBoard(redisClient *redis.Client) *RedisNoticeBoard {
	return &RedisNoticeBoard{redisClient: redisClient}
}

func (b *RedisNoticeBoard) Post(ctx context.Context, key string, notice dashboard.Notice, ttl time.Duration) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	if err := b.redisClient.Set(ctx, RedisNoticeKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store notice %s: %w", key, err)
	}
	return nil
}

func (b *RedisNoticeBoard) Current(ctx context.Context, key string) (*dashboard.Notice, error) {
	payload, err := b.redisClient.Get(ctx, RedisNoticeKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load notice %s: %w", key, err)
	}

	var notice dashboard.Notice
	if err := json.Unmarshal(payload, &notice); err != nil {
		return nil, fmt.Errorf("unmarshal notice %s: %w", key, err)
	}
	return &notice, nil
}

// MemoryNoticeBoard is the in-process board used when Redis is not configured.
type MemoryNoticeBoard struct {
	mu      sync.Mutex
	notices map[string]dashboard.Notice
	now     func() time.Time
}

func NewMemoryNoticeBoard(now func() time.Time) *MemoryNoticeBoard {
	if now == nil {
		now = time.Now
	}
	return &MemoryNoticeBoard{
		notices: make(map[string]dashboard.Notice),
		now:     now,
	}
}

func (b *MemoryNoticeBoard) Post(_ context.Context, key string, notice dashboard.Notice, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	notice.ExpiresAt = b.now().Add(ttl)
	b.notices[key] = notice
	return nil
}

func (b *MemoryNoticeBoard) Current(_ context.Context, key string) (*dashboard.Notice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	notice, ok := b.notices[key]
	if !ok {
		return nil, nil
	}
	if !b.now().Before(notice.ExpiresAt) {
		delete(b.notices, key)
		return nil, nil
	}
	return &notice, nil
}
