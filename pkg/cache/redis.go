// Package cache keeps the short-lived attempt-start timestamps in Redis.
// Nothing derived from Score rows is ever cached here; dashboards always
// read the database directly.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// attemptTTL bounds how long a started attempt stays open. A submission
// after expiry is still graded, it just loses its elapsed-time figure.
const attemptTTL = 6 * time.Hour

type RedisAttemptStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisAttemptStore(addr string) *RedisAttemptStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisAttemptStore{
		client: client,
		ctx:    context.Background(),
	}
}

func attemptKey(userID, quizID uint) string {
	return fmt.Sprintf("attempt:%d:quiz:%d", userID, quizID)
}

func (c *RedisAttemptStore) StartAttempt(userID, quizID uint, startedAt time.Time) error {
	key := attemptKey(userID, quizID)
	return c.client.Set(c.ctx, key, startedAt.UTC().Format(time.RFC3339Nano), attemptTTL).Err()
}

// AttemptStart returns the recorded start time, or false when no attempt is
// open for this user and quiz.
func (c *RedisAttemptStore) AttemptStart(userID, quizID uint) (time.Time, bool, error) {
	key := attemptKey(userID, quizID)
	raw, err := c.client.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	startedAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return startedAt, true, nil
}

func (c *RedisAttemptStore) ClearAttempt(userID, quizID uint) error {
	return c.client.Del(c.ctx, attemptKey(userID, quizID)).Err()
}
