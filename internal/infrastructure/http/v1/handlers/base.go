// Package handlers provides HTTP request handlers for the console API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/infrastructure/http/v1/dto"
	"storeops/internal/infrastructure/http/v1/middleware"
	"storeops/internal/infrastructure/session"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Session returns the authenticated session or registers an error.
func (h *BaseHandler) Session(c *gin.Context) (*appctx.Session, bool) {
	sess := appctx.GetSession(c.Request.Context())
	if sess == nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return nil, false
	}
	return sess, true
}

// Workspace returns the session workspace held for this request.
func (h *BaseHandler) Workspace(c *gin.Context) (*session.Workspace, bool) {
	ws, err := middleware.GetWorkspace(c)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return ws, true
}

// StockChanged invalidates the session's cached ledger and stock snapshot
// after an accepted write. Requests without a workspace are left alone.
func (h *BaseHandler) StockChanged(c *gin.Context) {
	if ws, err := middleware.GetWorkspace(c); err == nil {
		ws.StockChanged()
	}
}

// ParamRef parses a path parameter as a backend reference.
func (h *BaseHandler) ParamRef(c *gin.Context, name string) (id.Ref, bool) {
	ref, err := id.Parse(c.Param(name))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+name).WithDetail("field", name))
		return "", false
	}
	return ref, true
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Success sends success response.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}
