package stockin

import (
	"storeops/internal/core/apperror"
	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain/indent"
	"storeops/internal/domain/quantity"
)

// IndentLine is one editable line of an indent-linked draft.
type IndentLine struct {
	ProductID id.Ref
	Ordered   types.Quantity
	Received  types.Quantity
	Unit      string
}

// IndentDraft captures received and damaged quantities against one indent.
// Received defaults to ordered and may only be reduced.
type IndentDraft struct {
	IndentID id.Ref
	lines    []IndentLine
	index    map[id.Ref]int
	Damaged  *DamagedGoods
}

// NewIndentDraft seeds a draft from the indent's ordered lines.
func NewIndentDraft(ind *indent.Indent, limits quantity.Limits) *IndentDraft {
	d := &IndentDraft{
		IndentID: ind.ID,
		lines:    make([]IndentLine, 0, len(ind.Items)),
		index:    make(map[id.Ref]int, len(ind.Items)),
		Damaged:  NewDamagedGoods(limits),
	}
	for _, it := range ind.Items {
		if _, dup := d.index[it.ProductID]; dup {
			continue
		}
		d.index[it.ProductID] = len(d.lines)
		d.lines = append(d.lines, IndentLine{
			ProductID: it.ProductID,
			Ordered:   it.OrderedQuantity,
			Received:  it.OrderedQuantity,
			Unit:      it.Unit,
		})
	}
	return d
}

// Lines returns a copy of the draft lines.
func (d *IndentDraft) Lines() []IndentLine {
	return append([]IndentLine(nil), d.lines...)
}

// SetReceived stores received for productID and reports a bound violation
// for inline display. The value is kept even when invalid; Build rejects it.
// The damaged bound follows the received quantity.
func (d *IndentDraft) SetReceived(productID id.Ref, received types.Quantity) error {
	i, ok := d.index[productID]
	if !ok {
		return apperror.NewValidation("product is not part of the indent").
			WithDetail("productId", productID.String())
	}
	d.lines[i].Received = received
	d.Damaged.SetBound(productID, received)
	return quantity.ValidateReceivedQuantity(d.lines[i].Ordered, received)
}

// EnableDamaged turns damaged capture on with one entry per indent line.
func (d *IndentDraft) EnableDamaged() {
	seeds := make([]Seed, 0, len(d.lines))
	for _, l := range d.lines {
		seeds = append(seeds, Seed{ProductID: l.ProductID, Bound: l.Received})
	}
	d.Damaged.Enable(seeds)
}

// DisableDamaged discards all damaged entries.
func (d *IndentDraft) DisableDamaged() {
	d.Damaged.Disable()
}

// Apply loads console input into the draft. Line quantities are applied
// first so damaged values are clamped against the final received bounds.
func (d *IndentDraft) Apply(in IndentInput) error {
	for _, li := range in.Items {
		if _, ok := d.index[li.ProductID]; !ok {
			return apperror.NewValidation("product is not part of the indent").
				WithDetail("productId", li.ProductID.String())
		}
		if li.Quantity != nil {
			i := d.index[li.ProductID]
			d.lines[i].Received = *li.Quantity
		}
	}

	if !in.DamagedGoods {
		d.DisableDamaged()
		return nil
	}
	d.EnableDamaged()
	for _, li := range in.Items {
		if err := d.Damaged.apply(li); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every line and returns the first violation.
func (d *IndentDraft) Validate() error {
	if len(d.lines) == 0 {
		return apperror.NewValidation("indent has no items")
	}
	for i, l := range d.lines {
		if err := quantity.ValidateReceivedQuantity(l.Ordered, l.Received); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.
					WithDetail("lineNo", i+1).
					WithDetail("productId", l.ProductID.String())
			}
			return err
		}
	}
	return nil
}

// Build validates the whole draft and returns the submission. Nothing is
// returned unless every line passes.
func (d *IndentDraft) Build() (*IndentPlan, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	req := IndentRequest{
		IndentID: d.IndentID,
		Items:    make([]IndentItem, 0, len(d.lines)),
	}
	for _, l := range d.lines {
		damagedQty, image := d.Damaged.payload(l.ProductID)
		req.Items = append(req.Items, IndentItem{
			ProductID:          l.ProductID,
			ReceivedQuantity:   l.Received,
			DamagedQuantity:    damagedQty,
			DamagedImageBase64: image,
		})
	}

	return &IndentPlan{
		Request: req,
		Notices: d.Damaged.notices(func(p id.Ref) int { return d.index[p] + 1 }),
	}, nil
}
