package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const evaluationKeyPrefix = "evaluation:"

var ErrEvaluationNotFound = errors.New("evaluation not found")

// EvaluationRepository caches finished searches so a position is only solved once.
type EvaluationRepository interface {
	Save(ctx context.Context, key string, best entity.Best) error
	GetByKey(ctx context.Context, key string) (entity.Best, error)
	DeleteByKey(ctx context.Context, key string) error
}

type dbEvaluation struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEvaluationRepository stores evaluations in Redis. A zero ttl keeps them forever.
func NewEvaluationRepository(client *redis.Client, ttl time.Duration) EvaluationRepository {
	return &dbEvaluation{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbEvaluation) Save(ctx context.Context, key string, best entity.Best) error {
	bestJSON, err := json.Marshal(best)
	if err != nil {
		return fmt.Errorf("could not marshal evaluation: %w", err)
	}

	if err = that.client.Set(ctx, evaluationKeyPrefix+key, bestJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set evaluation: %w", err)
	}

	return nil
}

func (that *dbEvaluation) GetByKey(ctx context.Context, key string) (entity.Best, error) {
	response, err := that.client.Get(ctx, evaluationKeyPrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Best{}, ErrEvaluationNotFound
	}

	if err != nil {
		return entity.Best{}, fmt.Errorf("failed to get evaluation by key: %w", err)
	}

	var best entity.Best
	if err = json.Unmarshal([]byte(response), &best); err != nil {
		return entity.Best{}, fmt.Errorf("failed to unmarshal evaluation: %w", err)
	}

	return best, nil
}

func (that *dbEvaluation) DeleteByKey(ctx context.Context, key string) error {
	deleted, err := that.client.Del(ctx, evaluationKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete evaluation by key: %w", err)
	}

	if deleted == 0 {
		return ErrEvaluationNotFound
	}

	return nil
}

type nopEvaluation struct{}

// NewNopEvaluationRepository never remembers anything; it stands in when Redis is disabled.
func NewNopEvaluationRepository() EvaluationRepository {
	return nopEvaluation{}
}

func (nopEvaluation) Save(context.Context, string, entity.Best) error {
	return nil
}

func (nopEvaluation) GetByKey(context.Context, string) (entity.Best, error) {
	return entity.Best{}, ErrEvaluationNotFound
}

func (nopEvaluation) DeleteByKey(context.Context, string) error {
	return ErrEvaluationNotFound
}
