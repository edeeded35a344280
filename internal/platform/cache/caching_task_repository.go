// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Cache keys are namespaced per owner,
// so entries of one user are never served to another.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a task and invalidates the owner's cache entries.
func (c *CachingTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Create(ctx, task); err != nil {
		return err
	}
	c.invalidateOwner(ctx, task.OwnerID)
	return nil
}

// ListByOwner retrieves the owner's tasks, checking cache first then falling back to the database.
func (c *CachingTaskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	key := c.listKey(ownerID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID retrieves a single task, checking cache first then falling back to the database.
// Not-found results are never cached, so a foreign task probe always hits the database.
func (c *CachingTaskRepository) FindByID(ctx context.Context, ownerID, taskID uint) (*entity.Task, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, ownerID, taskID)
	}

	key := c.taskKey(ownerID, taskID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Save writes a task and invalidates the owner's cache entries.
func (c *CachingTaskRepository) Save(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Save(ctx, task); err != nil {
		return err
	}
	c.invalidateOwner(ctx, task.OwnerID)
	return nil
}

// Delete removes a task and invalidates the owner's cache entries.
func (c *CachingTaskRepository) Delete(ctx context.Context, ownerID, taskID uint) error {
	if err := c.inner.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}
	c.invalidateOwner(ctx, ownerID)
	return nil
}

// taskKey generates the cache key for a single task.
func (c *CachingTaskRepository) taskKey(ownerID, taskID uint) string {
	return fmt.Sprintf("%s:%d:%d", c.namespace, ownerID, taskID)
}

// listKey generates the cache key for an owner's task list.
func (c *CachingTaskRepository) listKey(ownerID uint) string {
	return fmt.Sprintf("%s:%d:list", c.namespace, ownerID)
}

// invalidateOwner deletes all cache entries of one owner, best effort.
func (c *CachingTaskRepository) invalidateOwner(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("%s:%d:*", c.namespace, ownerID)
	_ = c.deleteByPattern(ctx, pattern)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTaskRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
