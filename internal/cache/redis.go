package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// InitRedis 初始化Redis连接
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// 测试连接
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb = nil
		return fmt.Errorf("Redis连接失败: %v", err)
	}

	log.Printf("Redis连接成功: %s", addr)
	return nil
}

// Enabled Redis是否可用
func Enabled() bool {
	return rdb != nil
}

// Set 设置缓存
func Set(key string, value interface{}, expiration time.Duration) error {
	if rdb == nil {
		return fmt.Errorf("Redis未初始化")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return rdb.Set(ctx, key, data, expiration).Err()
}

// Get 获取缓存
func Get(key string, dest interface{}) error {
	if rdb == nil {
		return fmt.Errorf("Redis未初始化")
	}

	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Delete 删除缓存
func Delete(key string) error {
	if rdb == nil {
		return fmt.Errorf("Redis未初始化")
	}

	return rdb.Del(ctx, key).Err()
}

// Close 关闭Redis连接
func Close() error {
	if rdb != nil {
		return rdb.Close()
	}
	return nil
}
