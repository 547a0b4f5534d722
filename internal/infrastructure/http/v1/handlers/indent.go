package handlers

import (
	"github.com/gin-gonic/gin"

	"storeops/internal/domain/indent"
	"storeops/internal/infrastructure/http/v1/dto"
)

// IndentHandler serves store indents with their display status.
type IndentHandler struct {
	*BaseHandler
	service *indent.Service
}

// NewIndentHandler creates an indent handler.
func NewIndentHandler(base *BaseHandler, service *indent.Service) *IndentHandler {
	return &IndentHandler{BaseHandler: base, service: service}
}

// List returns one page of indents.
// GET /api/v1/indents?status=&page=&limit=
func (h *IndentHandler) List(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var q dto.IndentListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.service.List(c.Request.Context(), sess, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, page)
}

// Get returns one indent.
// GET /api/v1/indents/:id
func (h *IndentHandler) Get(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	indentID, ok := h.ParamRef(c, "id")
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), sess, indentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}
