package indent

import (
	"context"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
)

// View is an indent decorated with its display and affordances.
type View struct {
	Indent
	Display     Display     `json:"display"`
	Affordances Affordances `json:"affordances"`
}

// NewView decorates ind.
func NewView(ind Indent) View {
	return View{
		Indent:      ind,
		Display:     DisplayFor(ind.Status),
		Affordances: AffordancesFor(ind.Status),
	}
}

// ViewPage is one page of decorated indents.
type ViewPage struct {
	Items      []View            `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// Service provides read access to indents and the stock-in gate.
type Service struct {
	repo Repository
}

// NewService creates an indent service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of indents for the session's store.
func (s *Service) List(ctx context.Context, sess *appctx.Session, filter ListFilter) (*ViewPage, error) {
	filter.PageRequest = filter.PageRequest.Normalize()

	page, err := s.repo.ListIndents(ctx, sess, filter)
	if err != nil {
		return nil, err
	}

	out := &ViewPage{
		Items:      make([]View, 0, len(page.Items)),
		Pagination: page.Pagination,
	}
	for _, ind := range page.Items {
		out.Items = append(out.Items, NewView(ind))
	}
	return out, nil
}

// Get returns one decorated indent.
func (s *Service) Get(ctx context.Context, sess *appctx.Session, indentID id.Ref) (*View, error) {
	if id.IsNil(indentID) {
		return nil, apperror.NewValidation("indent id is required")
	}
	ind, err := s.repo.GetIndent(ctx, sess, indentID)
	if err != nil {
		return nil, err
	}
	v := NewView(*ind)
	return &v, nil
}

// ForStockIn fetches the indent and fails with INVALID_STATUS unless it is approved.
func (s *Service) ForStockIn(ctx context.Context, sess *appctx.Session, indentID id.Ref) (*Indent, error) {
	if id.IsNil(indentID) {
		return nil, apperror.NewValidation("indent id is required")
	}
	ind, err := s.repo.GetIndent(ctx, sess, indentID)
	if err != nil {
		return nil, err
	}
	if !CanStockIn(ind.Status) {
		return nil, apperror.NewInvalidStatus("indent", string(ind.Status), "stock in")
	}
	return ind, nil
}
