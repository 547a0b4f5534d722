package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/infrastructure/session"
)

const workspaceKey = "workspace"

var errNoWorkspace = errors.New("workspace middleware not installed")

// WorkspaceSource hands out per-session workspaces.
type WorkspaceSource interface {
	Acquire(sess *appctx.Session) (*session.Workspace, func())
}

// Workspace middleware holds the session's workspace for the duration of the request.
func Workspace(source WorkspaceSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := appctx.GetSession(c.Request.Context())
		if sess == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		ws, release := source.Acquire(sess)
		defer release()

		c.Set(workspaceKey, ws)
		c.Next()
	}
}

// GetWorkspace returns the workspace set by the Workspace middleware.
func GetWorkspace(c *gin.Context) (*session.Workspace, error) {
	if v, ok := c.Get(workspaceKey); ok {
		if ws, ok := v.(*session.Workspace); ok && ws != nil {
			return ws, nil
		}
	}
	return nil, apperror.NewInternal(errNoWorkspace)
}
