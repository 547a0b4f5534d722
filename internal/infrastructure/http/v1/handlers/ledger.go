package handlers

import (
	"github.com/gin-gonic/gin"

	"storeops/internal/infrastructure/http/v1/dto"
)

// LedgerHandler drives the session's ledger view: window, page, local
// filter and per-row drill-downs.
type LedgerHandler struct {
	*BaseHandler
}

// NewLedgerHandler creates a ledger handler.
func NewLedgerHandler(base *BaseHandler) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base}
}

// State renders the ledger, loading it on first use.
// GET /api/v1/ledger
func (h *LedgerHandler) State(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}

	if !ws.Ledger.Loaded() {
		if err := ws.Ledger.Refresh(c.Request.Context(), sess); err != nil {
			h.Error(c, err)
			return
		}
	}
	h.OK(c, ws.Ledger.State())
}

// Refresh refetches every model for the current window.
// POST /api/v1/ledger/refresh
func (h *LedgerHandler) Refresh(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}

	if err := ws.Ledger.Refresh(c.Request.Context(), sess); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ws.Ledger.State())
}

// SetWindow moves the ledger to a new date range.
// PUT /api/v1/ledger/window
func (h *LedgerHandler) SetWindow(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req dto.LedgerWindowRequest
	if !h.BindJSON(c, &req) {
		return
	}
	w, err := req.ToWindow()
	if err != nil {
		h.Error(c, err)
		return
	}

	state, err := ws.Ledger.SetWindow(c.Request.Context(), sess, w)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, state)
}

// SetPage changes the summary and audit page.
// PUT /api/v1/ledger/page
func (h *LedgerHandler) SetPage(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req dto.LedgerPageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	state, err := ws.Ledger.SetPage(c.Request.Context(), sess, req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, state)
}

// SetFilter replaces the local filter without contacting the backend.
// PUT /api/v1/ledger/filter
func (h *LedgerHandler) SetFilter(c *gin.Context) {
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req dto.LedgerFilterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.OK(c, ws.Ledger.SetFilter(req.ToFilter()))
}

// Expand opens the sales drill-down of a summary row.
// POST /api/v1/ledger/drilldown
func (h *LedgerHandler) Expand(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req dto.DrillDownRequest
	if !h.BindJSON(c, &req) {
		return
	}

	detail, err := ws.Ledger.Expand(c.Request.Context(), sess, req.Key)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DrillDownResponse{Key: req.Key, Detail: detail})
}

// Collapse closes the drill-down of a summary row.
// DELETE /api/v1/ledger/drilldown?key=
func (h *LedgerHandler) Collapse(c *gin.Context) {
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req dto.DrillDownRequest
	if !h.BindQuery(c, &req) {
		return
	}
	ws.Ledger.Collapse(req.Key)
	h.NoContent(c)
}
