package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/models"
)

const (
	// Ключи зеркала документов
	AnalysisKey = "wellsfug:analysis"
	KeyStatsKey = "wellsfug:keystats"

	// Зеркало живет дольше интервала между запусками, чтобы слой
	// отображения переживал один пропущенный батч
	MirrorTTL = 6 * time.Hour
)

// RedisRepository зеркало последних публикуемых документов в Redis для
// слоя отображения. Авторитетным хранилищем остается FileStore.
type RedisRepository struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedisRepository создает новый Redis репозиторий
func NewRedisRepository(cfg *config.RedisConfig, logger *logrus.Logger) (*RedisRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	opt.DB = cfg.DB
	opt.PoolSize = cfg.PoolSize
	opt.MinIdleConns = cfg.MinIdleConns
	opt.DialTimeout = 10 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return &RedisRepository{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

// Ping проверяет соединение с Redis
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close закрывает соединение с Redis
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// MirrorAnalysis записывает документ анализа в зеркало
func (r *RedisRepository) MirrorAnalysis(ctx context.Context, doc *models.AnalysisDocument) error {
	return r.mirror(ctx, AnalysisKey, doc)
}

// MirrorKeyStats записывает документ статистики в зеркало
func (r *RedisRepository) MirrorKeyStats(ctx context.Context, stats *models.KeyStats) error {
	return r.mirror(ctx, KeyStatsKey, stats)
}

// mirror сериализует документ и кладет его под ключ с TTL
func (r *RedisRepository) mirror(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, MirrorTTL).Err(); err != nil {
		return fmt.Errorf("failed to mirror %s: %w", key, err)
	}
	r.logger.WithField("key", key).Debug("Document mirrored to Redis")
	return nil
}
