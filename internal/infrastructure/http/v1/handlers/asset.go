package handlers

import (
	"github.com/gin-gonic/gin"

	"storeops/internal/domain/asset"
	"storeops/internal/infrastructure/http/v1/dto"
)

// AssetHandler serves store assets.
type AssetHandler struct {
	*BaseHandler
	service *asset.Service
}

// NewAssetHandler creates an asset handler.
func NewAssetHandler(base *BaseHandler, service *asset.Service) *AssetHandler {
	return &AssetHandler{BaseHandler: base, service: service}
}

// List returns one page of assets.
// GET /api/v1/assets
func (h *AssetHandler) List(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var q dto.PageQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.service.List(c.Request.Context(), sess, q.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, page)
}

// Get returns one asset.
// GET /api/v1/assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	assetID, ok := h.ParamRef(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), sess, assetID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}

// Create requests a new asset.
// POST /api/v1/assets
func (h *AssetHandler) Create(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var in asset.Input
	if !h.BindJSON(c, &in) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), sess, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, a)
}

// Update edits a pending asset.
// PUT /api/v1/assets/:id
func (h *AssetHandler) Update(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	assetID, ok := h.ParamRef(c, "id")
	if !ok {
		return
	}
	var in asset.Input
	if !h.BindJSON(c, &in) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), sess, assetID, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}

// Delete removes a pending asset.
// DELETE /api/v1/assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	assetID, ok := h.ParamRef(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), sess, assetID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// StockIn records a received quantity against a pending asset.
// POST /api/v1/assets/:id/stock-in
func (h *AssetHandler) StockIn(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	assetID, ok := h.ParamRef(c, "id")
	if !ok {
		return
	}
	var req asset.StockInRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.service.StockIn(c.Request.Context(), sess, assetID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.StockChanged(c)
	h.OK(c, a)
}
