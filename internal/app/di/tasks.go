package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/adapters"
	"task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/cache"
)

// taskCacheTTL is how long cached task reads stay valid.
const taskCacheTTL = 5 * time.Minute

// NewTaskRepository creates a TaskRepository implementation.
// If Redis is available, the database-backed repository is wrapped with a
// Redis caching decorator. Otherwise, the plain repository is returned.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB) usecase.TaskRepository {
	repo := adapters.NewTaskRepository(db)
	if rdb != nil {
		return cache.NewCachingTaskRepository(rdb, taskCacheTTL, repo, "tasks")
	}
	return repo
}
