package dto

import "task_backend/internal/feature/tasks/domain/entity"

// TaskResp represents a single task in API responses.
type TaskResp struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// CreateTaskResp represents the success response for POST /tasks.
type CreateTaskResp struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// ErrorResp はエラーレスポンスの共通フォーマットです。
type ErrorResp struct {
	Error string `json:"error"`
}

// NewTaskResp converts a task entity into its response representation.
func NewTaskResp(t *entity.Task) TaskResp {
	return TaskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
}
