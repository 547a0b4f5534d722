package stockin

import (
	"strings"

	"storeops/internal/core/apperror"
	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain/quantity"
)

// ManualRow is one open-ended row of a manual draft.
type ManualRow struct {
	ProductID id.Ref
	Quantity  types.Quantity
	Unit      string
}

// ManualDraft captures a stock-in that is not linked to an indent.
// A product selected in one row is unavailable to every other row.
type ManualDraft struct {
	StoreID id.Ref
	rows    []ManualRow
	Damaged *DamagedGoods
}

// NewManualDraft creates an empty draft for storeID.
func NewManualDraft(storeID id.Ref, limits quantity.Limits) *ManualDraft {
	return &ManualDraft{StoreID: storeID, Damaged: NewDamagedGoods(limits)}
}

// Rows returns a copy of the rows.
func (d *ManualDraft) Rows() []ManualRow {
	return append([]ManualRow(nil), d.rows...)
}

// AddRow appends an empty row and returns its index.
func (d *ManualDraft) AddRow() int {
	d.rows = append(d.rows, ManualRow{})
	return len(d.rows) - 1
}

// RemoveRow deletes row i and its damaged entry.
func (d *ManualDraft) RemoveRow(i int) error {
	if err := d.checkRow(i); err != nil {
		return err
	}
	d.Damaged.Forget(d.rows[i].ProductID)
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
	return nil
}

func (d *ManualDraft) checkRow(i int) error {
	if i < 0 || i >= len(d.rows) {
		return apperror.NewValidation("row does not exist").WithDetail("row", i+1)
	}
	return nil
}

// rowOf returns the index of the row holding productID, or -1.
func (d *ManualDraft) rowOf(productID id.Ref) int {
	for i, r := range d.rows {
		if r.ProductID == productID {
			return i
		}
	}
	return -1
}

// SelectProduct assigns a product to row i. Selecting a product held by
// another row fails with DUPLICATE_PRODUCT.
func (d *ManualDraft) SelectProduct(i int, p Product) error {
	if err := d.checkRow(i); err != nil {
		return err
	}
	if id.IsNil(p.ID) {
		return apperror.NewValidation("product is required").WithDetail("row", i+1)
	}
	if other := d.rowOf(p.ID); other >= 0 && other != i {
		return apperror.NewDuplicateProduct(p.ID.String(), i+1).WithDetail("firstRow", other+1)
	}

	prev := d.rows[i].ProductID
	if prev != p.ID {
		d.Damaged.Forget(prev)
	}
	d.rows[i].ProductID = p.ID
	if d.rows[i].Unit == "" {
		d.rows[i].Unit = p.Unit
	}
	d.Damaged.Track(Seed{ProductID: p.ID, Bound: d.rows[i].Quantity})
	return nil
}

// SetQuantity sets the quantity of row i; the damaged bound follows it.
func (d *ManualDraft) SetQuantity(i int, q types.Quantity) error {
	if err := d.checkRow(i); err != nil {
		return err
	}
	d.rows[i].Quantity = q
	if !id.IsNil(d.rows[i].ProductID) {
		d.Damaged.SetBound(d.rows[i].ProductID, q)
	}
	return nil
}

// SetUnit sets the unit of row i.
func (d *ManualDraft) SetUnit(i int, unit string) error {
	if err := d.checkRow(i); err != nil {
		return err
	}
	d.rows[i].Unit = strings.TrimSpace(unit)
	return nil
}

// EnableDamaged seeds one damaged entry per row with a selected product.
func (d *ManualDraft) EnableDamaged() {
	seeds := make([]Seed, 0, len(d.rows))
	for _, r := range d.rows {
		if !id.IsNil(r.ProductID) {
			seeds = append(seeds, Seed{ProductID: r.ProductID, Bound: r.Quantity})
		}
	}
	d.Damaged.Enable(seeds)
}

// DisableDamaged discards all damaged entries.
func (d *ManualDraft) DisableDamaged() {
	d.Damaged.Disable()
}

// Option is one selectable product of a row.
type Option struct {
	Product
	Selected bool `json:"selected"`
}

// Options lists the products row i may choose: the catalog minus products
// chosen by other rows. The row's own selection stays listed and is marked.
func (d *ManualDraft) Options(i int, catalog []Product) ([]Option, error) {
	if err := d.checkRow(i); err != nil {
		return nil, err
	}
	taken := make(map[id.Ref]struct{}, len(d.rows))
	for j, r := range d.rows {
		if j != i && !id.IsNil(r.ProductID) {
			taken[r.ProductID] = struct{}{}
		}
	}

	out := make([]Option, 0, len(catalog))
	for _, p := range catalog {
		if _, ok := taken[p.ID]; ok {
			continue
		}
		out = append(out, Option{Product: p, Selected: p.ID == d.rows[i].ProductID})
	}
	return out, nil
}

// Apply loads console rows into an empty draft, in order. Catalog supplies
// product units; a product missing from the catalog is still accepted with the row's unit.
func (d *ManualDraft) Apply(in ManualInput, catalog map[id.Ref]Product) error {
	for _, li := range in.Rows {
		i := d.AddRow()
		if li.Quantity != nil {
			if err := d.SetQuantity(i, *li.Quantity); err != nil {
				return err
			}
		}
		if li.Unit != "" {
			if err := d.SetUnit(i, li.Unit); err != nil {
				return err
			}
		}
		if id.IsNil(li.ProductID) {
			continue
		}
		p, ok := catalog[li.ProductID]
		if !ok {
			p = Product{ID: li.ProductID}
		}
		if err := d.SelectProduct(i, p); err != nil {
			return err
		}
	}

	if !in.DamagedGoods {
		d.DisableDamaged()
		return nil
	}
	d.EnableDamaged()
	for _, li := range in.Rows {
		if id.IsNil(li.ProductID) {
			continue
		}
		if err := d.Damaged.apply(li); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every row and returns the first violation.
func (d *ManualDraft) Validate() error {
	if id.IsNil(d.StoreID) {
		return apperror.NewValidation("store is required")
	}
	if len(d.rows) == 0 {
		return apperror.NewValidation("at least one row is required").WithDetail("field", "items")
	}
	for i, r := range d.rows {
		row := i + 1
		if id.IsNil(r.ProductID) {
			return apperror.NewValidation("product is required").WithDetail("row", row)
		}
		if !r.Quantity.IsPositive() {
			return apperror.NewInvalidQuantity(quantity.BoundNotPositive).
				WithDetail("row", row).
				WithDetail("productId", r.ProductID.String())
		}
		if r.Unit == "" {
			return apperror.NewValidation("unit is required").WithDetail("row", row)
		}
	}
	return nil
}

// Build validates all rows and returns the submission.
func (d *ManualDraft) Build() (*ManualPlan, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	req := ManualRequest{
		StoreID:        d.StoreID,
		IsDamagedGoods: d.Damaged.Enabled(),
		Items:          make([]ManualItem, 0, len(d.rows)),
	}
	for _, r := range d.rows {
		damagedQty, image := d.Damaged.payload(r.ProductID)
		req.Items = append(req.Items, ManualItem{
			ProductID:          r.ProductID,
			Quantity:           r.Quantity,
			Unit:               r.Unit,
			DamagedQuantity:    damagedQty,
			DamagedImageBase64: image,
		})
	}

	return &ManualPlan{
		Request: req,
		Notices: d.Damaged.notices(func(p id.Ref) int { return d.rowOf(p) + 1 }),
	}, nil
}
