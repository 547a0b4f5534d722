package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain"
	"storeops/internal/domain/indent"
	"storeops/internal/domain/ledger"
	"storeops/internal/domain/quantity"
	"storeops/internal/domain/stockin"
	"storeops/internal/domain/store"
	"storeops/internal/domain/transfer"
	"storeops/internal/infrastructure/http/v1/middleware"
	"storeops/internal/infrastructure/session"
)

var testSession = &appctx.Session{SessionID: "s1", UserID: "u1", StoreID: "1", StoreKind: "own", Token: "tok"}

// --- fakes ---

type fakeIndents struct {
	items map[id.Ref]*indent.Indent
}

func (f *fakeIndents) ListIndents(_ context.Context, _ *appctx.Session, filter indent.ListFilter) (*indent.ListPage, error) {
	page := &indent.ListPage{Pagination: domain.Pagination{Page: filter.Page, Limit: filter.Limit}}
	for _, ind := range f.items {
		if filter.Status == "" || ind.Status == filter.Status {
			page.Items = append(page.Items, *ind)
		}
	}
	page.Pagination.Total = len(page.Items)
	return page, nil
}

func (f *fakeIndents) GetIndent(_ context.Context, _ *appctx.Session, indentID id.Ref) (*indent.Indent, error) {
	ind, ok := f.items[indentID]
	if !ok {
		return nil, apperror.NewNotFound("indent", indentID)
	}
	cp := *ind
	return &cp, nil
}

type fakeStockIn struct {
	mu     sync.Mutex
	manual []stockin.ManualRequest
	linked []stockin.IndentRequest
}

func (f *fakeStockIn) SubmitIndentStockIn(_ context.Context, _ *appctx.Session, req stockin.IndentRequest, _ string) (*stockin.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linked = append(f.linked, req)
	return &stockin.Receipt{ID: "r1", Code: "SI-1", Status: "completed"}, nil
}

func (f *fakeStockIn) SubmitManualStockIn(_ context.Context, _ *appctx.Session, req stockin.ManualRequest, _ string) (*stockin.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manual = append(f.manual, req)
	return &stockin.Receipt{ID: "r2", Code: "SI-2", Status: "completed"}, nil
}

func (f *fakeStockIn) ListProducts(_ context.Context, _ *appctx.Session) ([]stockin.Product, error) {
	return []stockin.Product{{ID: "42", Name: "Rice", Unit: "kg"}, {ID: "43", Name: "Oil", Unit: "l"}}, nil
}

type fakeLedger struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeLedger) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLedger) FetchSummary(_ context.Context, _ *appctx.Session, w ledger.Window) (*ledger.SummaryPage, error) {
	f.hit()
	return &ledger.SummaryPage{
		Rows: []ledger.SummaryRow{
			{ProductID: "11", ProductName: "Rice", SKU: "RC-1", Date: w.FromDate(), Opening: types.NewQuantity(5), Closing: types.NewQuantity(5)},
			{ProductID: "12", ProductName: "Oil", SKU: "OL-1", Date: w.FromDate(), Opening: types.NewQuantity(2), Closing: types.NewQuantity(2)},
		},
		Pagination: domain.Pagination{Page: w.Page, Limit: w.Limit, Total: 2, TotalPages: 1},
	}, nil
}

func (f *fakeLedger) FetchAudit(_ context.Context, _ *appctx.Session, w ledger.Window) (*ledger.AuditPage, error) {
	f.hit()
	return &ledger.AuditPage{Pagination: domain.Pagination{Page: w.Page, Limit: w.Limit}}, nil
}

func (f *fakeLedger) FetchRollup(_ context.Context, _ *appctx.Session, _ ledger.Window) (*ledger.Rollup, error) {
	f.hit()
	return &ledger.Rollup{}, nil
}

func (f *fakeLedger) FetchSalesDetail(_ context.Context, _ *appctx.Session, _ id.Ref, _, _ string) (*ledger.SalesDetail, error) {
	f.hit()
	return &ledger.SalesDetail{}, nil
}

type fakeTransfers struct {
	levels     []transfer.StockLevel
	levelCalls int
	created    int
}

func (f *fakeTransfers) ListStockLevels(_ context.Context, _ *appctx.Session) ([]transfer.StockLevel, error) {
	f.levelCalls++
	return f.levels, nil
}

func (f *fakeTransfers) CreateTransfer(_ context.Context, _ *appctx.Session, req transfer.CreateRequest) (*transfer.Transfer, error) {
	f.created++
	return &transfer.Transfer{ID: "t1", TransferCode: "ST-1", FromStoreID: req.FromStoreID, ToStoreID: req.ToStoreID, MovementType: transfer.MovementSale}, nil
}

func (f *fakeTransfers) ListTransfers(_ context.Context, _ *appctx.Session, page domain.PageRequest) (*transfer.HistoryPage, error) {
	return &transfer.HistoryPage{Pagination: domain.Pagination{Page: page.Page, Limit: page.Limit}}, nil
}

func (f *fakeTransfers) GetTransfer(_ context.Context, _ *appctx.Session, transferID id.Ref) (*transfer.Transfer, error) {
	return &transfer.Transfer{ID: transferID, TransferCode: "ST-1"}, nil
}

func (f *fakeTransfers) GetTransferInvoice(_ context.Context, _ *appctx.Session, _ id.Ref) (*transfer.Invoice, error) {
	return &transfer.Invoice{Filename: "ST-1.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.4")}, nil
}

type fakeStores map[id.Ref]store.Kind

func (f fakeStores) Resolve(_ context.Context, _ *appctx.Session, storeID id.Ref) (store.Store, error) {
	kind, ok := f[storeID]
	if !ok {
		return store.Store{}, apperror.NewNotFound("store", storeID)
	}
	return store.Store{ID: storeID, Kind: kind}, nil
}

type fixedWorkspace struct{ ws *session.Workspace }

func (f fixedWorkspace) Acquire(_ *appctx.Session) (*session.Workspace, func()) {
	return f.ws, func() {}
}

// --- helpers ---

func newEngine(register func(rg *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(appctx.WithSession(c.Request.Context(), testSession))
		c.Next()
	})
	register(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// --- indents ---

func TestIndentHandler_GetDecoratesStatus(t *testing.T) {
	repo := &fakeIndents{items: map[id.Ref]*indent.Indent{
		"100": {ID: "100", Code: "IND-100", Status: indent.StatusApproved},
		"101": {ID: "101", Code: "IND-101", Status: indent.StatusProcessing},
	}}
	h := NewIndentHandler(NewBaseHandler(), indent.NewService(repo))
	r := newEngine(func(rg *gin.RouterGroup) {
		rg.GET("/indents/:id", h.Get)
	})

	tests := []struct {
		id        string
		label     string
		stockIn   bool
		attention bool
	}{
		{"100", "Approved", true, true},
		{"101", "Waiting for Stock", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/v1/indents/"+tt.id, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var view indent.View
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
			assert.Equal(t, tt.label, view.Display.Label)
			assert.Equal(t, tt.stockIn, view.Affordances.StockIn)
			assert.Equal(t, tt.attention, view.Affordances.AttentionRequired)
		})
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/indents/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- stock-in ---

func newStockInEngine(repo *fakeStockIn, indents *fakeIndents) *gin.Engine {
	svc := stockin.NewService(repo, indent.NewService(indents), quantity.DefaultLimits())
	h := NewStockInHandler(NewBaseHandler(), svc)
	ws := &session.Workspace{Ledger: ledger.NewView(&fakeLedger{}, ledger.DefaultWindow(time.Now()))}
	return newEngine(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Workspace(fixedWorkspace{ws}))
		rg.POST("/stock-in/indents/:id/preview", h.PreviewIndent)
		rg.POST("/stock-in/indents/:id", h.SubmitIndent)
		rg.POST("/stock-in/manual", h.SubmitManual)
		rg.POST("/stock-in/manual/options", h.ManualOptions)
	})
}

func TestStockInHandler_ManualDuplicateNeverSubmits(t *testing.T) {
	repo := &fakeStockIn{}
	r := newStockInEngine(repo, &fakeIndents{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/stock-in/manual", map[string]any{
		"rows": []map[string]any{
			{"productId": 42, "quantity": 1, "unit": "kg"},
			{"productId": "42", "quantity": 2, "unit": "kg"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeDuplicateProduct, errorCode(t, w))
	assert.Empty(t, repo.manual)
}

func TestStockInHandler_ManualSubmitUsesSessionStore(t *testing.T) {
	repo := &fakeStockIn{}
	r := newStockInEngine(repo, &fakeIndents{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/stock-in/manual", map[string]any{
		"rows": []map[string]any{{"productId": 42, "quantity": "2.5"}},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, repo.manual, 1)
	assert.Equal(t, id.Ref("1"), repo.manual[0].StoreID)
	assert.Equal(t, "kg", repo.manual[0].Items[0].Unit)

	var res stockin.ManualResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.IdempotencyKey)
	assert.Equal(t, "SI-2", res.Receipt.Code)
}

func TestStockInHandler_IndentGateAndClamp(t *testing.T) {
	indents := &fakeIndents{items: map[id.Ref]*indent.Indent{
		"100": {ID: "100", Status: indent.StatusApproved, Items: []indent.Item{
			{ProductID: "42", OrderedQuantity: types.NewQuantity(10), Unit: "kg"},
		}},
		"101": {ID: "101", Status: indent.StatusCompleted},
	}}
	repo := &fakeStockIn{}
	r := newStockInEngine(repo, indents)

	w := doJSON(t, r, http.MethodPost, "/api/v1/stock-in/indents/101", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeInvalidStatus, errorCode(t, w))

	w = doJSON(t, r, http.MethodPost, "/api/v1/stock-in/indents/100/preview", map[string]any{
		"damagedGoods": true,
		"items":        []map[string]any{{"productId": "42", "quantity": 5, "damagedQuantity": 8}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var plan stockin.IndentPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Len(t, plan.Request.Items, 1)
	require.NotNil(t, plan.Request.Items[0].DamagedQuantity)
	assert.Equal(t, types.NewQuantity(5), *plan.Request.Items[0].DamagedQuantity)
	assert.Len(t, plan.Notices, 1)
	assert.Empty(t, repo.linked)

	w = doJSON(t, r, http.MethodPost, "/api/v1/stock-in/indents/100", map[string]any{
		"items": []map[string]any{{"productId": "42", "quantity": 11}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidQuantity, errorCode(t, w))
	assert.Empty(t, repo.linked)
}

func TestStockInHandler_ManualOptionsExcludeOtherRows(t *testing.T) {
	r := newStockInEngine(&fakeStockIn{}, &fakeIndents{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/stock-in/manual/options", map[string]any{
		"rows": []map[string]any{{"productId": "42"}, {}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data []stockin.RowOptions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Len(t, body.Data[0].Options, 2)
	require.Len(t, body.Data[1].Options, 1)
	assert.Equal(t, id.Ref("43"), body.Data[1].Options[0].ID)
}

// --- attachments ---

func multipartBody(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(formFileField, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAttachmentHandler_Image(t *testing.T) {
	limits := quantity.DefaultLimits()
	h := NewAttachmentHandler(NewBaseHandler(), limits)
	r := newEngine(func(rg *gin.RouterGroup) {
		rg.POST("/attachments/images", h.Image)
	})

	tests := []struct {
		name     string
		content  []byte
		wantCode int
		errCode  string
	}{
		{"png", pngBytes(t), http.StatusOK, ""},
		{"text disguised as jpeg", []byte("just some notes"), http.StatusBadRequest, apperror.CodeUnsupportedMedia},
		{"too large", append(pngBytes(t), make([]byte, limits.ImageMaxBytes)...), http.StatusBadRequest, apperror.CodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, "photo.jpg", tt.content)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/attachments/images", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.errCode != "" {
				assert.Equal(t, tt.errCode, errorCode(t, w))
				return
			}
			var res struct {
				DataURL  string `json:"dataUrl"`
				MimeType string `json:"mimeType"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, "image/png", res.MimeType)
			assert.True(t, strings.HasPrefix(res.DataURL, "data:image/png;base64,"))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/attachments/images", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeValidation, errorCode(t, w))
	})
}

// --- ledger ---

func TestLedgerHandler_FilterIsLocal(t *testing.T) {
	repo := &fakeLedger{}
	ws := &session.Workspace{Ledger: ledger.NewView(repo, ledger.DefaultWindow(time.Now()))}
	h := NewLedgerHandler(NewBaseHandler())
	r := newEngine(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Workspace(fixedWorkspace{ws}))
		rg.GET("/ledger", h.State)
		rg.PUT("/ledger/filter", h.SetFilter)
		rg.PUT("/ledger/window", h.SetWindow)
	})

	w := doJSON(t, r, http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 3, repo.count())

	w = doJSON(t, r, http.MethodPut, "/api/v1/ledger/filter", map[string]any{"sku": "ol-"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, repo.count())

	var st ledger.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Len(t, st.Summary, 1)
	assert.Equal(t, id.Ref("12"), st.Summary[0].ProductID)
	assert.Equal(t, types.NewQuantity(2), st.VisibleTotals.Closing)

	w = doJSON(t, r, http.MethodPut, "/api/v1/ledger/window", map[string]any{"fromDate": "2024-03-10", "toDate": "2024-03-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 3, repo.count())
}

// --- transfers ---

func newTransferEngine(repo *fakeTransfers) *gin.Engine {
	ws := &session.Workspace{Transfers: transfer.NewLedger(repo, fakeStores{"1": store.KindOwn, "3": store.KindFranchise})}
	h := NewTransferHandler(NewBaseHandler())
	return newEngine(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Workspace(fixedWorkspace{ws}))
		rg.GET("/transfers/classify", h.Classify)
		rg.POST("/transfers", h.Create)
		rg.GET("/transfers/:id/invoice", h.Invoice)
	})
}

func TestTransferHandler_Classify(t *testing.T) {
	r := newTransferEngine(&fakeTransfers{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/transfers/classify?toStoreId=3", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cls transfer.Classification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cls))
	assert.Equal(t, transfer.MovementSale, cls.Advisory)

	w = doJSON(t, r, http.MethodGet, "/api/v1/transfers/classify?toStoreId=9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/transfers/classify", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransferHandler_CreateChecksSnapshot(t *testing.T) {
	repo := &fakeTransfers{levels: []transfer.StockLevel{{ProductID: "42", Available: types.NewQuantity(3)}}}
	r := newTransferEngine(repo)

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]any{
		"toStoreId": "3",
		"items":     []map[string]any{{"productId": "42", "quantity": 5}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeInsufficientStock, errorCode(t, w))
	assert.Zero(t, repo.created)

	w = doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]any{
		"toStoreId": "3",
		"items":     []map[string]any{{"productId": "42", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, repo.created)

	var res transfer.CreateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "ST-1", res.Transfer.TransferCode)
	assert.Equal(t, id.Ref("1"), res.Transfer.FromStoreID)
	assert.False(t, res.Classification.Mismatch)
}

func TestTransferHandler_Invoice(t *testing.T) {
	r := newTransferEngine(&fakeTransfers{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/transfers/t1/invoice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ST-1.pdf")
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

// --- writes and the ledger ---

func TestWritesForceLedgerRefetch(t *testing.T) {
	ledgerRepo := &fakeLedger{}
	transfers := &fakeTransfers{levels: []transfer.StockLevel{{ProductID: "42", Available: types.NewQuantity(3)}}}
	ws := &session.Workspace{
		Ledger:    ledger.NewView(ledgerRepo, ledger.DefaultWindow(time.Now())),
		Transfers: transfer.NewLedger(transfers, fakeStores{"1": store.KindOwn, "3": store.KindFranchise}),
	}
	stockIn := &fakeStockIn{}

	base := NewBaseHandler()
	lh := NewLedgerHandler(base)
	th := NewTransferHandler(base)
	sh := NewStockInHandler(base, stockin.NewService(stockIn, indent.NewService(&fakeIndents{}), quantity.DefaultLimits()))
	r := newEngine(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Workspace(fixedWorkspace{ws}))
		rg.GET("/ledger", lh.State)
		rg.POST("/transfers", th.Create)
		rg.GET("/transfers/stock-levels", th.StockLevels)
		rg.POST("/stock-in/manual", sh.SubmitManual)
	})

	w := doJSON(t, r, http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 3, ledgerRepo.count())

	w = doJSON(t, r, http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, ledgerRepo.count(), "cached between reads")

	w = doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]any{
		"toStoreId": "3",
		"items":     []map[string]any{{"productId": "42", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6, ledgerRepo.count(), "refetched after transfer")

	levelCalls := transfers.levelCalls
	w = doJSON(t, r, http.MethodPost, "/api/v1/stock-in/manual", map[string]any{
		"rows": []map[string]any{{"productId": 42, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, ledgerRepo.count(), "refetched after stock-in")

	w = doJSON(t, r, http.MethodGet, "/api/v1/transfers/stock-levels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, levelCalls+1, transfers.levelCalls, "snapshot reloaded after stock-in")
}

func TestRejectedWriteKeepsLedgerCache(t *testing.T) {
	ledgerRepo := &fakeLedger{}
	transfers := &fakeTransfers{levels: []transfer.StockLevel{{ProductID: "42", Available: types.NewQuantity(3)}}}
	ws := &session.Workspace{
		Ledger:    ledger.NewView(ledgerRepo, ledger.DefaultWindow(time.Now())),
		Transfers: transfer.NewLedger(transfers, fakeStores{"1": store.KindOwn, "3": store.KindFranchise}),
	}
	lh := NewLedgerHandler(NewBaseHandler())
	th := NewTransferHandler(NewBaseHandler())
	r := newEngine(func(rg *gin.RouterGroup) {
		rg.Use(middleware.Workspace(fixedWorkspace{ws}))
		rg.GET("/ledger", lh.State)
		rg.POST("/transfers", th.Create)
	})

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/v1/ledger", nil).Code)

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]any{
		"toStoreId": "3",
		"items":     []map[string]any{{"productId": "42", "quantity": 5}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/v1/ledger", nil).Code)
	assert.Equal(t, 3, ledgerRepo.count())
}
