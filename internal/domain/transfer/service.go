package transfer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
	"storeops/internal/domain"
	"storeops/pkg/logger"
)

// Ledger creates and lists stock transfers for one console session.
// It owns the session's available-stock snapshot, whose only mutator is a
// reload (on first use, after each accepted transfer and after a drop).
type Ledger struct {
	repo   Repository
	stores StoreResolver
	now    func() time.Time

	mu       sync.Mutex
	snapshot *Snapshot
}

// NewLedger creates a transfer ledger.
func NewLedger(repo Repository, stores StoreResolver) *Ledger {
	return &Ledger{
		repo:   repo,
		stores: stores,
		now:    time.Now,
	}
}

// Snapshot returns the cached available-stock snapshot, loading it on first use.
func (l *Ledger) Snapshot(ctx context.Context, sess *appctx.Session) (*Snapshot, error) {
	l.mu.Lock()
	snap := l.snapshot
	l.mu.Unlock()
	if snap != nil && snap.StoreID == id.Ref(sess.StoreID) {
		return snap, nil
	}
	return l.RefreshSnapshot(ctx, sess)
}

// RefreshSnapshot reloads available stock for the session's store.
func (l *Ledger) RefreshSnapshot(ctx context.Context, sess *appctx.Session) (*Snapshot, error) {
	levels, err := l.repo.ListStockLevels(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("load stock levels: %w", err)
	}
	snap := NewSnapshot(id.Ref(sess.StoreID), levels, l.now())

	l.mu.Lock()
	l.snapshot = snap
	l.mu.Unlock()
	return snap, nil
}

// DropSnapshot forgets the snapshot so the next use reloads it. Used after
// stock changed through another path, such as a stock-in.
func (l *Ledger) DropSnapshot() {
	l.mu.Lock()
	l.snapshot = nil
	l.mu.Unlock()
}

// Preview resolves the destination store and returns the advisory movement type.
func (l *Ledger) Preview(ctx context.Context, sess *appctx.Session, toStoreID id.Ref) (Classification, error) {
	if id.IsNil(toStoreID) {
		return Classification{}, apperror.NewValidation("destination store is required").
			WithDetail("field", "toStoreId")
	}
	source, err := l.stores.Resolve(ctx, sess, id.Ref(sess.StoreID))
	if err != nil {
		return Classification{}, err
	}
	dest, err := l.stores.Resolve(ctx, sess, toStoreID)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Advisory: Classify(source.Kind, dest.Kind)}, nil
}

// Create validates req against the snapshot and submits it to the backend.
// FromStoreID is always the session's store.
func (l *Ledger) Create(ctx context.Context, sess *appctx.Session, req CreateRequest) (*CreateResult, error) {
	req.FromStoreID = id.Ref(sess.StoreID)

	if err := validateShape(req); err != nil {
		return nil, err
	}

	snap, err := l.Snapshot(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := checkAvailability(req.Items, snap); err != nil {
		return nil, err
	}

	classification, err := l.Preview(ctx, sess, req.ToStoreID)
	if err != nil {
		return nil, err
	}

	created, err := l.repo.CreateTransfer(ctx, sess, req)
	if err != nil {
		return nil, err
	}

	classification.Confirmed = created.MovementType
	if created.MovementType != "" && created.MovementType != classification.Advisory {
		classification.Mismatch = true
		logger.Warn(ctx, "transfer classification differs from backend",
			"transfer_code", created.TransferCode,
			"advisory", classification.Advisory,
			"backend", created.MovementType,
		)
	}

	result := &CreateResult{Transfer: *created, Classification: classification}

	if _, err := l.RefreshSnapshot(ctx, sess); err != nil {
		result.SnapshotStale = true
		logger.Warn(ctx, "stock snapshot refresh after transfer failed", "error", err)
	}

	logger.Info(ctx, "stock transfer created",
		"transfer_code", created.TransferCode,
		"to_store_id", req.ToStoreID,
		"items", len(req.Items),
		"movement_type", classification.Effective(),
	)

	return result, nil
}

// History returns one page of transfers for the session's store.
func (l *Ledger) History(ctx context.Context, sess *appctx.Session, page domain.PageRequest) (*HistoryPage, error) {
	return l.repo.ListTransfers(ctx, sess, page.Normalize())
}

// Detail returns one transfer with its lines.
func (l *Ledger) Detail(ctx context.Context, sess *appctx.Session, transferID id.Ref) (*Transfer, error) {
	return l.repo.GetTransfer(ctx, sess, transferID)
}

// Invoice downloads the invoice document of a transfer.
func (l *Ledger) Invoice(ctx context.Context, sess *appctx.Session, transferID id.Ref) (*Invoice, error) {
	return l.repo.GetTransferInvoice(ctx, sess, transferID)
}

func validateShape(req CreateRequest) error {
	if id.IsNil(req.ToStoreID) {
		return apperror.NewValidation("destination store is required").
			WithDetail("field", "toStoreId")
	}
	if req.ToStoreID == req.FromStoreID {
		return apperror.NewValidation("destination must differ from source store").
			WithDetail("field", "toStoreId")
	}
	if len(req.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	seen := make(map[id.Ref]int, len(req.Items))
	for i, item := range req.Items {
		lineNo := i + 1
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "items").
				WithDetail("lineNo", lineNo)
		}
		if prev, dup := seen[item.ProductID]; dup {
			return apperror.NewDuplicateProduct(item.ProductID.String(), lineNo).
				WithDetail("firstRow", prev)
		}
		seen[item.ProductID] = lineNo
		if !item.Quantity.IsPositive() {
			return apperror.NewInvalidQuantity("must be positive").
				WithDetail("lineNo", lineNo)
		}
	}
	return nil
}

func checkAvailability(items []ItemRequest, snap *Snapshot) error {
	for i, item := range items {
		available := snap.Available(item.ProductID)
		if item.Quantity > available {
			return apperror.NewInsufficientStock(
				item.ProductID.String(),
				item.Quantity.Float64(),
				available.Float64(),
			).WithDetail("lineNo", i+1)
		}
	}
	return nil
}

// SortedLevels returns snapshot levels ordered by product name, for pickers.
func SortedLevels(snap *Snapshot) []StockLevel {
	levels := snap.Levels()
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].ProductName == levels[j].ProductName {
			return levels[i].ProductID < levels[j].ProductID
		}
		return levels[i].ProductName < levels[j].ProductName
	})
	return levels
}
