package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storeops/internal/domain/transfer"
	"storeops/internal/infrastructure/http/v1/dto"
)

// TransferHandler serves stock transfers out of the session store.
type TransferHandler struct {
	*BaseHandler
}

// NewTransferHandler creates a transfer handler.
func NewTransferHandler(base *BaseHandler) *TransferHandler {
	return &TransferHandler{BaseHandler: base}
}

// Classify returns the advisory movement type towards a destination store.
// GET /api/v1/transfers/classify?toStoreId=
func (h *TransferHandler) Classify(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var q dto.ClassifyQuery
	if !h.BindQuery(c, &q) {
		return
	}

	cls, err := ws.Transfers.Preview(c.Request.Context(), sess, q.ToStoreID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cls)
}

// StockLevels returns the available stock snapshot. ?refresh=true reloads it.
// GET /api/v1/transfers/stock-levels
func (h *TransferHandler) StockLevels(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}

	load := ws.Transfers.Snapshot
	if c.Query("refresh") == "true" {
		load = ws.Transfers.RefreshSnapshot
	}
	snap, err := load(c.Request.Context(), sess)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.StockLevelsResponse{
		StoreID:  snap.StoreID,
		LoadedAt: snap.LoadedAt.UTC().Format(time.RFC3339),
		Levels:   transfer.SortedLevels(snap),
	})
}

// Create submits a transfer from the session store.
// POST /api/v1/transfers
func (h *TransferHandler) Create(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req dto.CreateTransferRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := ws.Transfers.Create(c.Request.Context(), sess, req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	ws.InvalidateLedger()
	h.Created(c, result)
}

// History returns one page of transfers.
// GET /api/v1/transfers?page=&limit=
func (h *TransferHandler) History(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	var q dto.PageQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := ws.Transfers.History(c.Request.Context(), sess, q.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, page)
}

// Detail returns one transfer.
// GET /api/v1/transfers/:id
func (h *TransferHandler) Detail(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	transferID, ok := h.ParamRef(c, "id")
	if !ok {
		return
	}

	t, err := ws.Transfers.Detail(c.Request.Context(), sess, transferID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

// Invoice streams the transfer invoice document.
// GET /api/v1/transfers/:id/invoice
func (h *TransferHandler) Invoice(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	ws, ok := h.Workspace(c)
	if !ok {
		return
	}
	transferID, ok := h.ParamRef(c, "id")
	if !ok {
		return
	}

	inv, err := ws.Transfers.Invoice(c.Request.Context(), sess, transferID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if inv.Filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+inv.Filename+`"`)
	}
	c.Data(http.StatusOK, inv.ContentType, inv.Body)
}
