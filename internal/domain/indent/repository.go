package indent

import (
	"context"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
)

// Repository reads indents of the session's store.
type Repository interface {
	ListIndents(ctx context.Context, sess *appctx.Session, filter ListFilter) (*ListPage, error)
	GetIndent(ctx context.Context, sess *appctx.Session, indentID id.Ref) (*Indent, error)
}
