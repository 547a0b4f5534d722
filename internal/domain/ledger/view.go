package ledger

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	appctx "storeops/internal/core/context"
	"storeops/internal/domain"
	"storeops/pkg/logger"
)

// Model names one of the independently fetched ledger models.
type Model int

const (
	ModelSummary Model = iota
	ModelAudit
	ModelRollup
	modelCount
)

func (m Model) String() string {
	switch m {
	case ModelSummary:
		return "summary"
	case ModelAudit:
		return "audit"
	case ModelRollup:
		return "rollup"
	}
	return fmt.Sprintf("model(%d)", m)
}

// AllModels lists every ledger model.
var AllModels = []Model{ModelSummary, ModelAudit, ModelRollup}

// pagedModels depend on the page; the rollup depends on dates only.
var pagedModels = []Model{ModelSummary, ModelAudit}

// View is one session's windowed ledger. The three models are fetched
// concurrently; each fetch carries a per-model generation and its response
// is applied only if no newer fetch of that model was issued meanwhile.
// Drill-down details are fetched at most once per row key.
type View struct {
	repo Repository

	mu       sync.Mutex
	window   Window
	filter   Filter
	gen      [modelCount]uint64
	summary  *SummaryPage
	audit    *AuditPage
	rollup   *Rollup
	details  map[string]*SalesDetail
	expanded map[string]bool

	drill singleflight.Group
}

// NewView creates a view positioned on w. Nothing is fetched until Refresh.
func NewView(repo Repository, w Window) *View {
	w.PageRequest = w.PageRequest.Normalize()
	return &View{
		repo:     repo,
		window:   w,
		details:  make(map[string]*SalesDetail),
		expanded: make(map[string]bool),
	}
}

// Window returns the current window.
func (v *View) Window() Window {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.window
}

// SetWindow moves the view and fetches the affected models: all three when
// the dates change, the paged models when only the page changes. Models of
// the previous dates are dropped first, so a failed fetch leaves the model
// empty rather than showing another window's data.
func (v *View) SetWindow(ctx context.Context, sess *appctx.Session, w Window) (*State, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	w.PageRequest = w.PageRequest.Normalize()

	v.mu.Lock()
	models := AllModels
	if v.window.SameDates(w) && v.rollup != nil {
		models = pagedModels
	} else {
		v.summary, v.audit, v.rollup = nil, nil, nil
	}
	v.window = w
	v.mu.Unlock()

	if err := v.Refresh(ctx, sess, models...); err != nil {
		return nil, err
	}
	return v.State(), nil
}

// Invalidate drops every cached model and supersedes in-flight fetches, so
// the next read goes to the backend. Drill-down details are kept.
func (v *View) Invalidate() {
	v.mu.Lock()
	for _, m := range AllModels {
		v.gen[m]++
	}
	v.summary, v.audit, v.rollup = nil, nil, nil
	v.mu.Unlock()
}

// Loaded reports whether any model has been fetched yet.
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.summary != nil || v.audit != nil || v.rollup != nil
}

// SetPage changes the page of the current window.
func (v *View) SetPage(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*State, error) {
	w := v.Window()
	w.PageRequest = page
	return v.SetWindow(ctx, sess, w)
}

// SetFilter replaces the local filter. It never fetches.
func (v *View) SetFilter(f Filter) *State {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
	return v.State()
}

// Refresh fetches models for the current window. A failure of one model does
// not stop the others; the first error is returned.
func (v *View) Refresh(ctx context.Context, sess *appctx.Session, models ...Model) error {
	if len(models) == 0 {
		models = AllModels
	}

	v.mu.Lock()
	w := v.window
	gens := make([]uint64, len(models))
	for i, m := range models {
		v.gen[m]++
		gens[i] = v.gen[m]
	}
	v.mu.Unlock()

	var g errgroup.Group
	for i, m := range models {
		m := m
		gen := gens[i]
		g.Go(func() error {
			return v.fetch(ctx, sess, m, w, gen)
		})
	}
	return g.Wait()
}

func (v *View) fetch(ctx context.Context, sess *appctx.Session, m Model, w Window, gen uint64) error {
	var (
		apply func()
		err   error
	)
	switch m {
	case ModelSummary:
		var page *SummaryPage
		if page, err = v.repo.FetchSummary(ctx, sess, w); err == nil {
			apply = func() { v.summary = page }
			defer logViolations(ctx, page)
		}
	case ModelAudit:
		var page *AuditPage
		if page, err = v.repo.FetchAudit(ctx, sess, w); err == nil {
			apply = func() { v.audit = page }
		}
	case ModelRollup:
		var r *Rollup
		if r, err = v.repo.FetchRollup(ctx, sess, w); err == nil {
			apply = func() { v.rollup = r }
		}
	default:
		return fmt.Errorf("unknown ledger model %d", m)
	}

	v.mu.Lock()
	current := v.gen[m] == gen
	if current && err == nil {
		apply()
	}
	v.mu.Unlock()

	if !current {
		logger.Debug(ctx, "stale ledger response dropped", "model", m.String(), "generation", gen)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", m, err)
	}
	return nil
}

func logViolations(ctx context.Context, page *SummaryPage) {
	for _, vio := range CheckRows(page.Rows) {
		logger.Warn(ctx, "summary row breaks ledger identity",
			"row", vio.Key,
			"expected_closing", vio.Expected.String(),
			"closing", vio.Closing.String(),
		)
	}
}

// Expand returns the drill-down of the row with key and marks it expanded.
// The detail is fetched once per key for the life of the view; concurrent
// expands of the same key share one request.
func (v *View) Expand(ctx context.Context, sess *appctx.Session, key string) (*SalesDetail, error) {
	productID, date, err := ParseRowKey(key)
	if err != nil {
		return nil, err
	}

	res, err, _ := v.drill.Do(key, func() (any, error) {
		v.mu.Lock()
		d, ok := v.details[key]
		v.mu.Unlock()
		if ok {
			return d, nil
		}

		d, err := v.repo.FetchSalesDetail(ctx, sess, productID, date, date)
		if err != nil {
			return nil, err
		}
		v.mu.Lock()
		v.details[key] = d
		v.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch sales detail: %w", err)
	}

	v.mu.Lock()
	v.expanded[key] = true
	v.mu.Unlock()
	return res.(*SalesDetail), nil
}

// Collapse hides the drill-down of key. The cached detail is kept.
func (v *View) Collapse(key string) {
	v.mu.Lock()
	delete(v.expanded, key)
	v.mu.Unlock()
}

// State is the rendered view: filtered rows, both kinds of totals and expanded drill-downs.
type State struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Filter   Filter `json:"filter"`

	Summary           []SummaryRow       `json:"summary"`
	SummaryPagination *domain.Pagination `json:"summaryPagination,omitempty"`
	Audit             []BalancedRecord   `json:"audit"`
	AuditPagination   *domain.Pagination `json:"auditPagination,omitempty"`
	Rollup            *Rollup            `json:"rollup,omitempty"`

	VisibleTotals Totals  `json:"visibleTotals"`
	WindowTotals  *Totals `json:"windowTotals,omitempty"`

	Expanded map[string]*SalesDetail `json:"expanded"`
}

// State renders the view from cached models.
func (v *View) State() *State {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := &State{
		FromDate: v.window.FromDate(),
		ToDate:   v.window.ToDate(),
		Filter:   v.filter,
		Summary:  []SummaryRow{},
		Audit:    []BalancedRecord{},
		Rollup:   v.rollup,
		Expanded: make(map[string]*SalesDetail, len(v.expanded)),
	}

	if v.summary != nil {
		st.Summary = FilterSummary(v.summary.Rows, v.filter)
		p := v.summary.Pagination
		st.SummaryPagination = &p
		st.WindowTotals = v.summary.Totals
	}
	if st.WindowTotals == nil && v.rollup != nil {
		t := v.rollup.Totals
		st.WindowTotals = &t
	}
	st.VisibleTotals = VisibleTotals(st.Summary)

	if v.audit != nil {
		// balances run over the whole page so filtering never changes them
		balanced := RunningBalances(v.audit.Records, openingsFor(v.audit, v.rollup))
		nf := v.filter.Normalize()
		for _, b := range balanced {
			if nf.MatchAudit(b.AuditRecord) {
				st.Audit = append(st.Audit, b)
			}
		}
		p := v.audit.Pagination
		st.AuditPagination = &p
	}

	for key := range v.expanded {
		st.Expanded[key] = v.details[key]
	}
	return st
}
