package handler

import "github.com/state244/hub/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data,omitempty"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success   bool                   `json:"success" example:"false"`
	Error     string                 `json:"error" example:"alliance not found"`
	Code      string                 `json:"code" example:"ERR_NOT_FOUND"`
	RequestID string                 `json:"request_id" example:"5f0c3c1e-9d1b-4b36-8e57-5cc1b9f4a0de"`
	Details   []dto.ValidationDetail `json:"details,omitempty"`
}

// CountData represents count data in response
// @Description Count data
type CountData struct {
	Count int64 `json:"count"`
}
