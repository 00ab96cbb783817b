package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// redisClient 定義了 NewRedisClient 內部使用的必要方法，便於測試時替換。
type redisClient interface {
	Cache
	Ping(ctx context.Context) *redis.StatusCmd
}

// redisNewClient 用來建立 redis client，測試可覆寫此變數。
var redisNewClient = func(opt *redis.Options) redisClient {
	return redis.NewClient(opt)
}

var backoffBase = 500 * time.Millisecond

// NewRedisClient 建立並回傳 *redis.Client，直接實作 Cache
// addr: Redis 位址；password: 密碼，可空；db: 資料庫編號
// Ping 失敗時以指數退避重試最多 retries 次
func NewRedisClient(ctx context.Context, addr string, password string, db int, retries uint64) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	b := retry.WithMaxRetries(retries, retry.NewExponential(backoffBase))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
