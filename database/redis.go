package database

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"skillswap-service/config"

	"github.com/redis/go-redis/v9"
)

// Redis clients keyed by database number: 0 holds refresh-token sessions,
// 1 backs the socket.io adapter.
var Redis = make(map[int]*redis.Client)

func RedisConnect() error {
	for _, db := range strings.Split(config.Config("REDIS_DB"), ",") {
		dbNumber, err := strconv.Atoi(strings.TrimSpace(db))
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB entry %q: %w", db, err)
		}

		options := &redis.Options{
			Addr: fmt.Sprintf(
				"%s:%s",
				config.Config("REDIS_HOST"),
				config.Config("REDIS_PORT"),
			),
			Password: config.Config("REDIS_PASSWORD"),
			DB:       dbNumber,
		}

		Redis[dbNumber] = redis.NewClient(options)
	}

	slog.Info("Connections opened to Redis", "databases", len(Redis))
	return nil
}

func RedisClose() {
	for _, client := range Redis {
		_ = client.Close()
	}
}
