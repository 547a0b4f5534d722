// Package dto provides Data Transfer Objects for console API requests/responses.
package dto

import "storeops/internal/domain"

// PageQuery contains pagination query parameters.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ToDomain converts the query to a normalized page request.
func (q PageQuery) ToDomain() domain.PageRequest {
	return domain.PageRequest{Page: q.Page, Limit: q.Limit}.Normalize()
}

// SuccessResponse is returned by actions without a body of their own.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DataResponse wraps a plain list.
type DataResponse[T any] struct {
	Data []T `json:"data"`
}

// NewDataResponse never renders a null list.
func NewDataResponse[T any](items []T) DataResponse[T] {
	if items == nil {
		items = []T{}
	}
	return DataResponse[T]{Data: items}
}
