// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	Create(ctx context.Context, ownerID uint, title, description, status string) (uint, error)
	List(ctx context.Context, ownerID uint) ([]entity.Task, error)
	Get(ctx context.Context, ownerID, taskID uint) (*entity.Task, error)
	Update(ctx context.Context, ownerID, taskID uint, updates usecase.TaskUpdates) (*entity.Task, error)
	Replace(ctx context.Context, ownerID, taskID uint, title, description, status string) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, taskID uint) error
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
// 呼び出し元の識別は常にJWTミドルウェアがコンテキストに設定したユーザーIDを使い、
// クライアントが送信した識別情報は信用しません。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ownerID はミドルウェアが設定した認証済みユーザーIDをコンテキストから取り出します。
// 設定されていない場合はfalseを返します（認証ミドルウェアの適用漏れ）。
func ownerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// taskID はURLパラメータのタスクIDをパースします。
func taskID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// respondError はユースケースのエラーをHTTPステータスに変換します。
// ハンドラー層がエラー変換の唯一の箇所であり、内部エラーの詳細は漏洩させません。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResp{Error: "task not found"})
	case errors.Is(err, usecase.ErrInvalidTitle), errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: err.Error()})
	default:
		slog.Error("task operation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.ErrorResp{Error: "internal server error"})
	}
}

// Create はタスク作成APIエンドポイントを処理します。
// 成功時は201と生成されたIDを返します。
func (h *TaskHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResp{Error: "missing credentials"})
		return
	}
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create task validation failed", "error", err, "user_id", owner)
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: "invalid request"})
		return
	}
	id, err := h.tasks.Create(c.Request.Context(), owner, req.Title, req.Description, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("task created", "task_id", id, "user_id", owner)
	c.JSON(http.StatusCreated, dto.CreateTaskResp{ID: id, Message: "task created"})
}

// List は認証済みユーザーのタスク一覧APIエンドポイントを処理します。
func (h *TaskHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResp{Error: "missing credentials"})
		return
	}
	tasks, err := h.tasks.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.TaskResp, 0, len(tasks))
	for i := range tasks {
		out = append(out, dto.NewTaskResp(&tasks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は単一タスク取得APIエンドポイントを処理します。
// 他ユーザー所有のタスクは存在しないタスクと同様に404になります。
func (h *TaskHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResp{Error: "missing credentials"})
		return
	}
	id, err := taskID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResp{Error: "task not found"})
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResp(task))
}

// Update はタスク部分更新APIエンドポイント（PATCH）を処理します。
// リクエストに含まれるフィールドのみ置き換えられます。
func (h *TaskHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResp{Error: "missing credentials"})
		return
	}
	id, err := taskID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResp{Error: "task not found"})
		return
	}
	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update task validation failed", "error", err, "task_id", id, "user_id", owner)
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: "invalid request"})
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), owner, id, usecase.TaskUpdates{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("task updated", "task_id", id, "user_id", owner)
	c.JSON(http.StatusOK, dto.NewTaskResp(task))
}

// Replace はタスク全体置換APIエンドポイント（PUT）を処理します。
// 全フィールドが必須で、省略されたステータスはpendingになります。
func (h *TaskHandler) Replace(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResp{Error: "missing credentials"})
		return
	}
	id, err := taskID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResp{Error: "task not found"})
		return
	}
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("replace task validation failed", "error", err, "task_id", id, "user_id", owner)
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: "invalid request"})
		return
	}
	task, err := h.tasks.Replace(c.Request.Context(), owner, id, req.Title, req.Description, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("task replaced", "task_id", id, "user_id", owner)
	c.JSON(http.StatusOK, dto.NewTaskResp(task))
}

// Delete はタスク削除APIエンドポイントを処理します。
// 削除済み・他ユーザー所有のタスクは404になります（冪等な失敗）。
func (h *TaskHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResp{Error: "missing credentials"})
		return
	}
	id, err := taskID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResp{Error: "task not found"})
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}
	slog.Info("task deleted", "task_id", id, "user_id", owner)
	c.Status(http.StatusNoContent)
}
