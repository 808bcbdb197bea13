package querycache

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Source is the store a QueryClient reads through to. Repositories satisfy it.
type Source[T any] interface {
	FindMany(ctx context.Context, args *requests.FindArgs) ([]T, error)
	Count(ctx context.Context, args *requests.FindArgs) (int, error)
	FindFirst(ctx context.Context, args *requests.FindArgs) (*T, error)
}

type Config struct {
	Prefix string
	TTL    time.Duration
}

// QueryClient wraps a Source with a Redis read-through cache. Every entry key
// embeds the entity generation, so Invalidate retires all entries at once and
// the old ones age out through their TTL.
type QueryClient[T any] struct {
	redis  contracts.RedisRepository
	source Source[T]
	log    *zap.Logger
	config Config
	entity string
	model  string
}

// NewQueryClient builds a client for entity (the table name) whose hooks are
// named after model, e.g. "MedicalRecord".
func NewQueryClient[T any](redis contracts.RedisRepository, source Source[T], logger *zap.Logger, config Config, entity, model string) *QueryClient[T] {
	if config.Prefix == "" {
		config.Prefix = constvars.RedisKeyCachePrefix
	}
	return &QueryClient[T]{
		redis:  redis,
		source: source,
		log:    logger,
		config: config,
		entity: entity,
		model:  model,
	}
}

func (c *QueryClient[T]) FindMany(ctx context.Context, args *requests.FindArgs, options *QueryOptions[[]T]) ([]T, error) {
	if data, disabled := options.disabledResult(); disabled {
		if data == nil {
			return nil, nil
		}
		return *data, nil
	}

	return readThrough(ctx, c, OperationFindMany, args, func() ([]T, error) {
		return c.source.FindMany(ctx, args)
	})
}

func (c *QueryClient[T]) Count(ctx context.Context, args *requests.FindArgs, options *QueryOptions[int]) (int, error) {
	if data, disabled := options.disabledResult(); disabled {
		if data == nil {
			return 0, nil
		}
		return *data, nil
	}

	return readThrough(ctx, c, OperationCount, args, func() (int, error) {
		return c.source.Count(ctx, args)
	})
}

// FindManyWithCount returns one page together with the total number of rows
// matching the filter regardless of paging.
func (c *QueryClient[T]) FindManyWithCount(ctx context.Context, args *requests.FindArgs, options *QueryOptions[responses.FindManyWithCount[T]]) (*responses.FindManyWithCount[T], error) {
	if data, disabled := options.disabledResult(); disabled {
		if data == nil {
			return &responses.FindManyWithCount[T]{Data: []T{}}, nil
		}
		return data, nil
	}

	result, err := readThrough(ctx, c, OperationFindManyWithCount, args, func() (responses.FindManyWithCount[T], error) {
		data, err := c.source.FindMany(ctx, args)
		if err != nil {
			return responses.FindManyWithCount[T]{}, err
		}
		count, err := c.source.Count(ctx, args.WithoutPaging())
		if err != nil {
			return responses.FindManyWithCount[T]{}, err
		}
		if data == nil {
			data = []T{}
		}
		return responses.FindManyWithCount[T]{Data: data, Count: count}, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindFirst returns nil when nothing matches. Misses are cached too.
func (c *QueryClient[T]) FindFirst(ctx context.Context, args *requests.FindArgs, options *QueryOptions[T]) (*T, error) {
	if data, disabled := options.disabledResult(); disabled {
		return data, nil
	}

	return readThrough(ctx, c, OperationFindFirst, args, func() (*T, error) {
		return c.source.FindFirst(ctx, args)
	})
}

// FindByIDs loads the records with the given ids, ignoring blanks and duplicates.
func (c *QueryClient[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}
	slices.Sort(unique)
	unique = slices.Compact(unique)

	return c.FindMany(ctx, &requests.FindArgs{Where: map[string]interface{}{"id": unique}}, nil)
}

// Invalidate retires every cached read of the entity.
func (c *QueryClient[T]) Invalidate(ctx context.Context) error {
	generation, err := c.redis.Increment(ctx, generationKey(c.config.Prefix, c.entity))
	if err != nil {
		c.log.Error("QueryClient.Invalidate error incrementing generation",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEntityKey, c.entity),
			zap.Error(err),
		)
		return err
	}

	c.log.Debug("QueryClient.Invalidate generation bumped",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEntityKey, c.entity),
		zap.Int64("generation", generation),
	)
	return nil
}

// PrimeFirst stores value as the FindFirst result for args in the current
// generation, so the next read after a write does not hit the source.
func (c *QueryClient[T]) PrimeFirst(ctx context.Context, args *requests.FindArgs, value *T) {
	key, ok := c.key(ctx, OperationFindFirst, args)
	if !ok {
		return
	}
	if err := c.redis.Set(ctx, key, value, c.config.TTL); err != nil {
		c.log.Warn("QueryClient.PrimeFirst error writing cache",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
	}
}

func (c *QueryClient[T]) generation(ctx context.Context) (int64, error) {
	raw, err := c.redis.Get(ctx, generationKey(c.config.Prefix, c.entity))
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// key builds the cache key for op. ok is false when the cache cannot be used.
func (c *QueryClient[T]) key(ctx context.Context, operation string, args *requests.FindArgs) (string, bool) {
	requestID := utils.GetRequestID(ctx)

	hookKey, err := HookKey(HookName(c.model, operation), args)
	if err != nil {
		c.log.Warn("QueryClient.key error encoding arguments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityKey, c.entity),
			zap.Error(err),
		)
		return "", false
	}

	generation, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("QueryClient.key error reading generation, bypassing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityKey, c.entity),
			zap.Error(err),
		)
		return "", false
	}

	return entryKey(c.config.Prefix, c.entity, generation, hookKey), true
}

// readThrough serves a read from the cache when possible and stores the
// source's answer otherwise. Cache failures degrade to a plain source read.
func readThrough[T any, R any](ctx context.Context, c *QueryClient[T], operation string, args *requests.FindArgs, load func() (R, error)) (R, error) {
	requestID := utils.GetRequestID(ctx)

	key, cacheable := c.key(ctx, operation, args)
	if cacheable {
		raw, err := c.redis.Get(ctx, key)
		if err != nil {
			c.log.Warn("QueryClient.readThrough error reading cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCacheKey, key),
				zap.Error(err),
			)
		} else if raw != "" {
			var cached R
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				c.log.Debug("QueryClient.readThrough cache hit",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingCacheKey, key),
				)
				return cached, nil
			}
			c.log.Warn("QueryClient.readThrough discarding undecodable cache entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCacheKey, key),
			)
		}
	}

	result, err := load()
	if err != nil {
		var zero R
		return zero, err
	}

	if cacheable {
		if err := c.redis.Set(ctx, key, result, c.config.TTL); err != nil {
			c.log.Warn("QueryClient.readThrough error writing cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCacheKey, key),
				zap.Error(err),
			)
		}
	}
	return result, nil
}
