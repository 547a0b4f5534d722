package backend

import (
	"context"
	"net/url"
	"strconv"

	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
	"storeops/internal/domain/indent"
)

var _ indent.Repository = (*Client)(nil)

func pageQuery(p domain.PageRequest) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	return q
}

// ListIndents implements indent.Repository.
func (c *Client) ListIndents(ctx context.Context, sess *appctx.Session, filter indent.ListFilter) (*indent.ListPage, error) {
	q := pageQuery(filter.PageRequest)
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	var page indent.ListPage
	if err := c.getJSON(ctx, sess, "indents.list", storePath(sess, "indents"), q, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []indent.Indent{}
	}
	return &page, nil
}

// GetIndent implements indent.Repository.
func (c *Client) GetIndent(ctx context.Context, sess *appctx.Session, indentID id.Ref) (*indent.Indent, error) {
	var ind indent.Indent
	if err := c.getObject(ctx, sess, "indents.get", storePath(sess, "indents", indentID.String()), "indent", nil, &ind); err != nil {
		return nil, err
	}
	return &ind, nil
}
