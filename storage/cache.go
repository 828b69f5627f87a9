package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard-api/domain"
)

type backend interface {
	Get(ctx context.Context, id string) (domain.Task, bool, error)
	Put(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) (domain.Task, bool, error)
	List(ctx context.Context) ([]domain.Task, error)
}

// Cache wraps a task store with Redis-backed caching for read operations.
// Writes pass through to the backing store and evict the affected keys.
// Redis failures degrade silently to the backing store.
type Cache struct {
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
// A nil client or zero TTL disables caching while keeping the pass-through.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, id string) (domain.Task, bool, error) {
	if task, ok := c.loadTask(ctx, id); ok {
		return task, true, nil
	}
	task, found, err := c.base.Get(ctx, id)
	if err != nil || !found {
		return task, found, err
	}
	c.storeTask(ctx, task)
	return task, true, nil
}

func (c *Cache) Put(ctx context.Context, task domain.Task) error {
	if err := c.base.Put(ctx, task); err != nil {
		return err
	}
	c.evict(ctx, task.ID)
	return nil
}

func (c *Cache) Delete(ctx context.Context, id string) (domain.Task, bool, error) {
	task, found, err := c.base.Delete(ctx, id)
	if err != nil {
		return task, found, err
	}
	c.evict(ctx, id)
	return task, found, nil
}

func (c *Cache) List(ctx context.Context) ([]domain.Task, error) {
	if tasks, ok := c.loadList(ctx); ok {
		return tasks, nil
	}
	tasks, err := c.base.List(ctx)
	if err != nil {
		return nil, err
	}
	c.storeList(ctx, tasks)
	return tasks, nil
}

func (c *Cache) loadTask(ctx context.Context, id string) (domain.Task, bool) {
	if c.redis == nil {
		return domain.Task{}, false
	}
	data, err := c.redis.Get(ctx, taskCacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, taskCacheKey(id)).Err()
		}
		return domain.Task{}, false
	}
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		_ = c.redis.Del(ctx, taskCacheKey(id)).Err()
		return domain.Task{}, false
	}
	return task, true
}

func (c *Cache) loadList(ctx context.Context) ([]domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, taskListCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, taskListCacheKey).Err()
		}
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, taskListCacheKey).Err()
		return nil, false
	}
	return tasks, true
}

func (c *Cache) storeTask(ctx context.Context, task domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, taskCacheKey(task.ID), data, c.ttl).Err()
}

func (c *Cache) storeList(ctx context.Context, tasks []domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, taskListCacheKey, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, id string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, taskCacheKey(id), taskListCacheKey).Result()
}

const taskListCacheKey = "tasks:all"

func taskCacheKey(id string) string {
	return "task:" + id
}
