package redis

import (
	"context"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/redis/go-redis/v9"
)

func ConnectToRedis(ctx context.Context, conf config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
