package handlers

import (
	"github.com/gin-gonic/gin"

	"storeops/internal/domain/stockin"
	"storeops/internal/infrastructure/http/v1/dto"
)

// StockInHandler validates and submits indent-linked and manual stock-ins.
type StockInHandler struct {
	*BaseHandler
	service *stockin.Service
}

// NewStockInHandler creates a stock-in handler.
func NewStockInHandler(base *BaseHandler, service *stockin.Service) *StockInHandler {
	return &StockInHandler{BaseHandler: base, service: service}
}

func (h *StockInHandler) bindIndent(c *gin.Context) (stockin.IndentInput, bool) {
	var in stockin.IndentInput
	indentID, ok := h.ParamRef(c, "id")
	if !ok {
		return in, false
	}
	if !h.BindJSON(c, &in) {
		return in, false
	}
	in.IndentID = indentID
	return in, true
}

// PreviewIndent validates an indent draft and reports clamped lines.
// POST /api/v1/stock-in/indents/:id/preview
func (h *StockInHandler) PreviewIndent(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	in, ok := h.bindIndent(c)
	if !ok {
		return
	}

	plan, err := h.service.PrepareIndent(c.Request.Context(), sess, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, plan)
}

// SubmitIndent submits an indent-linked stock-in.
// POST /api/v1/stock-in/indents/:id
func (h *StockInHandler) SubmitIndent(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	in, ok := h.bindIndent(c)
	if !ok {
		return
	}

	result, err := h.service.SubmitIndent(c.Request.Context(), sess, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.StockChanged(c)
	h.Created(c, result)
}

// PreviewManual validates a manual draft and reports clamped lines.
// POST /api/v1/stock-in/manual/preview
func (h *StockInHandler) PreviewManual(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var in stockin.ManualInput
	if !h.BindJSON(c, &in) {
		return
	}

	plan, err := h.service.PrepareManual(c.Request.Context(), sess, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, plan)
}

// SubmitManual submits a manual stock-in for the session store.
// POST /api/v1/stock-in/manual
func (h *StockInHandler) SubmitManual(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var in stockin.ManualInput
	if !h.BindJSON(c, &in) {
		return
	}

	result, err := h.service.SubmitManual(c.Request.Context(), sess, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.StockChanged(c)
	h.Created(c, result)
}

// ManualOptions returns the selectable products of each manual row.
// POST /api/v1/stock-in/manual/options
func (h *StockInHandler) ManualOptions(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var in stockin.ManualInput
	if !h.BindJSON(c, &in) {
		return
	}

	rows, err := h.service.ManualOptions(c.Request.Context(), sess, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewDataResponse(rows))
}

// Products lists the store product catalog.
// GET /api/v1/stock-in/products
func (h *StockInHandler) Products(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	products, err := h.service.Products(c.Request.Context(), sess)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewDataResponse(products))
}
