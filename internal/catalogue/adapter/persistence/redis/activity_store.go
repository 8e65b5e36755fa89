package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// RedisActivityStore keeps per-user activity feeds as capped Redis lists,
// newest entry first.
type RedisActivityStore struct {
	client *redis.Client
	cap    int64
	logger logger.Logger
}

// NewRedisActivityStore creates an activity store capping each feed at cap
// entries.
func NewRedisActivityStore(client *redis.Client, cap int, log logger.Logger) *RedisActivityStore {
	return &RedisActivityStore{
		client: client,
		cap:    int64(cap),
		logger: log,
	}
}

func activityKey(userID string) string {
	return fmt.Sprintf("activity:%s", userID)
}

// Append pushes an entry onto the user's feed and trims it to the cap.
func (s *RedisActivityStore) Append(ctx context.Context, userID string, entry *model.ActivityEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize activity entry: %w", err)
	}

	key := activityKey(userID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, s.cap-1)
		return nil
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"verb":    entry.Verb,
		}).Errorf("Failed to append activity entry: %v", err)
		return err
	}

	return nil
}

// List returns up to limit entries of the user's feed, newest first. Entries
// that no longer parse are skipped.
func (s *RedisActivityStore) List(ctx context.Context, userID string, limit int) ([]*model.ActivityEntry, error) {
	if limit <= 0 {
		return []*model.ActivityEntry{}, nil
	}

	raw, err := s.client.LRange(ctx, activityKey(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.ActivityEntry, 0, len(raw))
	for _, item := range raw {
		var entry model.ActivityEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"user_id": userID,
			}).Warnf("Skipping unparsable activity entry: %v", err)
			continue
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

var _ repository.ActivityStore = (*RedisActivityStore)(nil)
