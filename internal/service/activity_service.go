package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/persistence"
)

const activityFeedKey = "activity:recent"

// ActivityService maintains a capped feed of recent domain events in Redis.
// Redis being unreachable degrades to a warning, never a request failure.
type ActivityService struct {
	redis      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
	limit      int64
}

// NewActivityService builds the service.
func NewActivityService(redis *persistence.Redis, dispatcher events.Dispatcher, logger *zap.Logger, limit int64) *ActivityService {
	if limit <= 0 {
		limit = 100
	}
	return &ActivityService{redis: redis, dispatcher: dispatcher, logger: logger, limit: limit}
}

// RegisterHandlers subscribes the feed to every domain event.
func (s *ActivityService) RegisterHandlers() {
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventTodoCreated,
		events.EventTodoCompleted,
		events.EventTodoAssigned,
		events.EventTodoDeleted,
	} {
		s.dispatcher.Subscribe(eventType, s.record)
	}
}

func (s *ActivityService) record(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	client := s.redis.Client
	if client == nil {
		return nil
	}
	pipe := client.TxPipeline()
	pipe.LPush(ctx, activityFeedKey, payload)
	pipe.LTrim(ctx, activityFeedKey, 0, s.limit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("activity feed write failed", zap.Error(err))
	}
	return nil
}

// Recent returns up to n of the newest feed entries.
func (s *ActivityService) Recent(ctx context.Context, n int64) ([]events.Event, error) {
	if n <= 0 || n > s.limit {
		n = s.limit
	}
	client := s.redis.Client
	if client == nil {
		return nil, nil
	}

	raw, err := client.LRange(ctx, activityFeedKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	result := make([]events.Event, 0, len(raw))
	for _, entry := range raw {
		var event events.Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			continue
		}
		result = append(result, event)
	}
	return result, nil
}
