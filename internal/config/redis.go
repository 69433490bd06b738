package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to the Redis instance used for the profile cache.
// Redis is optional; when REDIS_ADDR is unset the server runs without a cache.
func ConnectRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis at %s: %w", addr, err)
	}

	log.Println("Successfully connected to Redis!")
	return client, nil
}
