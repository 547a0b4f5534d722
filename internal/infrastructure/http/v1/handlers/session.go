package handlers

import (
	"github.com/gin-gonic/gin"

	appctx "storeops/internal/core/context"
	"storeops/internal/domain/auth"
	"storeops/internal/domain/store"
	"storeops/internal/infrastructure/http/v1/dto"
)

// WorkspaceDropper discards a session's workspace.
type WorkspaceDropper interface {
	Drop(sess *appctx.Session)
}

// SessionHandler serves the current session and the store directory.
type SessionHandler struct {
	*BaseHandler
	auth       *auth.Service
	stores     *store.Directory
	workspaces WorkspaceDropper
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(base *BaseHandler, authService *auth.Service, stores *store.Directory, workspaces WorkspaceDropper) *SessionHandler {
	return &SessionHandler{BaseHandler: base, auth: authService, stores: stores, workspaces: workspaces}
}

// Me returns the current session.
// GET /api/v1/session
func (h *SessionHandler) Me(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	h.OK(c, dto.FromSession(sess))
}

// SwitchStore re-issues the session token for another store and drops the
// workspace of the old store.
// POST /api/v1/session/store
func (h *SessionHandler) SwitchStore(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var req dto.SwitchStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.auth.SwitchStore(c.Request.Context(), sess, req.StoreID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.workspaces.Drop(sess)
	h.OK(c, result)
}

// Stores lists the stores visible to the session.
// GET /api/v1/stores
func (h *SessionHandler) Stores(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	stores, err := h.stores.List(c.Request.Context(), sess)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewDataResponse(stores))
}

// RefreshStores drops the cached directory and reloads it.
// POST /api/v1/stores/refresh
func (h *SessionHandler) RefreshStores(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	h.stores.Invalidate(c.Request.Context(), sess)
	h.Stores(c)
}
