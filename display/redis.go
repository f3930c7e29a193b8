package display

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/config"
	"github.com/theoremus-urban-solutions/mbta-board/formatter"
)

// redisClient is the part of *redis.Client the sink uses
type redisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisSink publishes each board's JSON payload on a pub/sub channel
type RedisSink struct {
	cfg    config.RedisConfig
	client redisClient
	dial   func() redisClient
	now    func() time.Time
}

// NewRedisSink publishes to cfg.Channel on cfg.Addr
func NewRedisSink(cfg config.RedisConfig) *RedisSink {
	return &RedisSink{
		cfg: cfg,
		dial: func() redisClient {
			return redis.NewClient(&redis.Options{
				Addr:     cfg.Addr,
				Password: cfg.Password,
				DB:       cfg.DB,
			})
		},
		now: time.Now,
	}
}

// Open connects and pings the server
func (s *RedisSink) Open() error {
	c := s.dial()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis %s: %w", s.cfg.Addr, err)
	}
	s.client = c
	log.Printf("Redis connected: %s channel=%s", s.cfg.Addr, s.cfg.Channel)
	return nil
}

// Write publishes the board payload
func (s *RedisSink) Write(ctx context.Context, b arrivals.Board) error {
	if s.client == nil {
		return errors.New("redis sink not open")
	}
	payload, err := formatter.BuildJSON(b, s.now())
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.cfg.Channel, payload).Err()
}

// Close closes the client
func (s *RedisSink) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
