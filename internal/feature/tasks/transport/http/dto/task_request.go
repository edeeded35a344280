// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

// CreateTaskReq represents the request body for POST /tasks and PUT /tasks/:id.
// Status is optional on create and defaults to "pending".
type CreateTaskReq struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
}

// UpdateTaskReq represents the request body for PATCH /tasks/:id.
// Pointer fields distinguish "absent" from "set to zero value";
// absent fields are left unchanged.
type UpdateTaskReq struct {
	Title       *string `json:"title" binding:"omitempty,min=3"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
}
