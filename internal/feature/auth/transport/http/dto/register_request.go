// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /register endpoint.
// It uses Gin's binding tags for validation (required, minimum lengths).
// The password complexity policy is enforced in the usecase layer.
type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterResp represents the success response for the /register endpoint.
type RegisterResp struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}
