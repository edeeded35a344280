// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// taskGorm はTaskRepositoryインターフェースのGORM実装です。
type taskGorm struct {
	db *gorm.DB
}

// taskGormがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskRepository は指定されたgorm.DB接続でtaskGormの新しいインスタンスを生成します。
func NewTaskRepository(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// Create はタスクをデータベースに追加します。
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByOwner は指定された所有者のタスクをID昇順（挿入順）で返します。
func (r *taskGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID はIDと所有者でタスクを取得します。
// クエリ自体をowner_idでスコープするため、他ユーザーのタスクは
// 存在しないタスクと区別できません（usecase.ErrTaskNotFound）。
func (r *taskGorm) FindByID(ctx context.Context, ownerID, taskID uint) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Save は既存タスクの全フィールドを書き込みます。
func (r *taskGorm) Save(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete は所有者スコープでタスクを削除します。
// 対象行がない場合（存在しない・他ユーザー所有・削除済み）はusecase.ErrTaskNotFoundを返します。
func (r *taskGorm) Delete(ctx context.Context, ownerID, taskID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&entity.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
