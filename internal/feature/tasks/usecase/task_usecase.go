// Package usecase はtasksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"

	"task_backend/internal/feature/tasks/domain/entity"
)

// minTitleLength はタイトルの最低文字数を定義します。
const minTitleLength = 3

// TaskRepository はタスクエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// 読み取り・更新・削除はすべてowner_idでスコープされ、他ユーザーのタスクは
// 存在しないタスクと同じくErrTaskNotFoundとして扱われます。
type TaskRepository interface {
	// Create は新しいタスクをストレージに永続化します。
	Create(ctx context.Context, task *entity.Task) error

	// ListByOwner は指定された所有者のタスクを作成順（ID昇順）で返します。
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error)

	// FindByID は所有者スコープでタスクを取得します。
	// タスクが存在しないか他ユーザーの所有の場合、ErrTaskNotFoundを返します。
	FindByID(ctx context.Context, ownerID, taskID uint) (*entity.Task, error)

	// Save は既存タスクの全フィールドを書き込みます。
	Save(ctx context.Context, task *entity.Task) error

	// Delete は所有者スコープでタスクを削除します。
	// 対象が存在しない場合、ErrTaskNotFoundを返します（暗黙の成功にしない）。
	Delete(ctx context.Context, ownerID, taskID uint) error
}

// TaskUpdates は部分更新で置き換えるフィールドを表します。
// nilのフィールドは変更されません。
type TaskUpdates struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskUsecase はタスクCRUDのビジネスロジックを提供します。
type TaskUsecase struct {
	repo TaskRepository
}

// NewTaskUsecase は指定されたリポジトリでTaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(repo TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

// validateTitle はタイトルが最低文字数を満たしているかチェックします。
func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) < minTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

// parseStatus は文字列のステータス値を検証して返します。
// 空文字列はデフォルト（pending）にフォールバックします。
func parseStatus(raw string) (entity.Status, error) {
	if raw == "" {
		return entity.StatusPending, nil
	}
	s := entity.Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Create は指定された所有者の新しいタスクを作成し、そのIDを返します。
func (u *TaskUsecase) Create(ctx context.Context, ownerID uint, title, description, status string) (uint, error) {
	if err := validateTitle(title); err != nil {
		return 0, err
	}
	st, err := parseStatus(status)
	if err != nil {
		return 0, err
	}
	task := &entity.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      st,
	}
	if err := u.repo.Create(ctx, task); err != nil {
		return 0, err
	}
	return task.ID, nil
}

// List は指定された所有者のタスク一覧を返します。
func (u *TaskUsecase) List(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

// Get は所有者スコープで単一のタスクを取得します。
func (u *TaskUsecase) Get(ctx context.Context, ownerID, taskID uint) (*entity.Task, error) {
	return u.repo.FindByID(ctx, ownerID, taskID)
}

// Update はタスクを部分更新します。nilでないフィールドのみ置き換えられ、
// その他のフィールドは変更されません。
// 同一タスクへの並行更新はlast-write-winsになります。
func (u *TaskUsecase) Update(ctx context.Context, ownerID, taskID uint, updates TaskUpdates) (*entity.Task, error) {
	task, err := u.repo.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if updates.Title != nil {
		if err := validateTitle(*updates.Title); err != nil {
			return nil, err
		}
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Status != nil {
		st := entity.Status(*updates.Status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = st
	}
	if err := u.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Replace はタスクの全フィールドを置き換えます（PUTセマンティクス）。
func (u *TaskUsecase) Replace(ctx context.Context, ownerID, taskID uint, title, description, status string) (*entity.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	task, err := u.repo.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	task.Title = title
	task.Description = description
	task.Status = st
	if err := u.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete は所有者スコープでタスクを削除します。
func (u *TaskUsecase) Delete(ctx context.Context, ownerID, taskID uint) error {
	return u.repo.Delete(ctx, ownerID, taskID)
}
