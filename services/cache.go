package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"backend_dispatch/models"
)

// CacheService кэширует счетчики дашборда в Redis. При недоступном Redis
// все операции тихо пропускаются: кэш — ускорение, а не источник истины.
type CacheService struct {
	redis  *redis.Client
	logger *log.Logger
}

// NewCacheService создает новый экземпляр CacheService
func NewCacheService(redisClient *redis.Client, logger *log.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// TTL кэша счетчиков: классификация зависит от текущей даты,
// долго хранить значения нельзя
const alertCountsTTL = 5 * time.Minute

const alertCountsVersionKey = "alerts:counts:ver"

// alertCountsKey строит ключ счетчиков для конкретного пользователя, даты и
// окна классификации. В ключ входит номер версии: инвалидация — это инкремент
// версии, после которого старые ключи истекают по TTL.
func (cs *CacheService) alertCountsKey(ctx context.Context, viewer models.Viewer, asOf time.Time, horizonDays int) (string, error) {
	ver, err := cs.redis.Get(ctx, alertCountsVersionKey).Int64()
	if err == redis.Nil {
		ver = 0
	} else if err != nil {
		return "", err
	}

	scope := viewer.Identity
	if viewer.CanSeeAll() {
		scope = "*managers*"
	}
	return fmt.Sprintf("alerts:counts:%d:%s:%s:%d", ver, scope, asOf.Format("20060102"), horizonDays), nil
}

// GetAlertCounts читает счетчики из кэша
func (cs *CacheService) GetAlertCounts(ctx context.Context, viewer models.Viewer, asOf time.Time, horizonDays int) (AlertCounts, bool) {
	if cs.redis == nil {
		return AlertCounts{}, false
	}

	key, err := cs.alertCountsKey(ctx, viewer, asOf, horizonDays)
	if err != nil {
		return AlertCounts{}, false
	}

	val, err := cs.redis.Get(ctx, key).Result()
	if err != nil {
		return AlertCounts{}, false
	}

	var counts AlertCounts
	if err := json.Unmarshal([]byte(val), &counts); err != nil {
		if cs.logger != nil {
			cs.logger.Printf("Некорректное значение в кэше %s: %v", key, err)
		}
		return AlertCounts{}, false
	}
	return counts, true
}

// SetAlertCounts сохраняет счетчики в кэш
func (cs *CacheService) SetAlertCounts(ctx context.Context, viewer models.Viewer, asOf time.Time, horizonDays int, counts AlertCounts) error {
	if cs.redis == nil {
		return nil
	}

	key, err := cs.alertCountsKey(ctx, viewer, asOf, horizonDays)
	if err != nil {
		return err
	}

	data, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("ошибка сериализации счетчиков: %w", err)
	}
	return cs.redis.Set(ctx, key, data, alertCountsTTL).Err()
}

// InvalidateAlertCounts сбрасывает все кэшированные счетчики после записи,
// влияющей на классификацию
func (cs *CacheService) InvalidateAlertCounts(ctx context.Context) error {
	if cs.redis == nil {
		return nil
	}
	return cs.redis.Incr(ctx, alertCountsVersionKey).Err()
}
