package stockin

import (
	"storeops/internal/core/apperror"
	"storeops/internal/core/id"
	"storeops/internal/core/types"
	"storeops/internal/domain/quantity"
)

// DamagedEntry is the damaged sub-quantity captured for one product.
type DamagedEntry struct {
	ProductID id.Ref
	Bound     types.Quantity
	Quantity  quantity.Clamped
	Reason    string
	Image     string
}

// DamagedGoods holds damaged entries while the damaged toggle is on.
// Entries exist only while enabled; disabling discards them.
type DamagedGoods struct {
	limits  quantity.Limits
	enabled bool
	order   []id.Ref
	entries map[id.Ref]*DamagedEntry
}

// Seed names a selected product and the bound for its damaged quantity.
type Seed struct {
	ProductID id.Ref
	Bound     types.Quantity
}

// NewDamagedGoods creates a disabled damaged-goods capture.
func NewDamagedGoods(limits quantity.Limits) *DamagedGoods {
	return &DamagedGoods{limits: limits}
}

// Enabled reports whether damaged capture is on.
func (d *DamagedGoods) Enabled() bool { return d.enabled }

// Enable turns capture on and seeds one zero entry per selected product.
func (d *DamagedGoods) Enable(seeds []Seed) {
	d.enabled = true
	d.order = d.order[:0]
	d.entries = make(map[id.Ref]*DamagedEntry, len(seeds))
	for _, s := range seeds {
		d.add(s)
	}
}

// Disable turns capture off and discards every entry.
func (d *DamagedGoods) Disable() {
	d.enabled = false
	d.order = nil
	d.entries = nil
}

func (d *DamagedGoods) add(s Seed) {
	if id.IsNil(s.ProductID) {
		return
	}
	if _, ok := d.entries[s.ProductID]; ok {
		return
	}
	bound := s.Bound.Max(0)
	d.entries[s.ProductID] = &DamagedEntry{
		ProductID: s.ProductID,
		Bound:     bound,
		Quantity:  quantity.Clamp(0, bound),
	}
	d.order = append(d.order, s.ProductID)
}

// Track adds an entry for a product selected after capture was enabled. No-op when disabled.
func (d *DamagedGoods) Track(s Seed) {
	if d.enabled {
		d.add(s)
	}
}

// Forget drops the entry of a product that is no longer selected.
func (d *DamagedGoods) Forget(productID id.Ref) {
	if _, ok := d.entries[productID]; !ok {
		return
	}
	delete(d.entries, productID)
	for i, p := range d.order {
		if p == productID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Entry returns the entry of productID.
func (d *DamagedGoods) Entry(productID id.Ref) (*DamagedEntry, bool) {
	e, ok := d.entries[productID]
	return e, ok
}

// Entries returns entries in seeding order.
func (d *DamagedGoods) Entries() []DamagedEntry {
	out := make([]DamagedEntry, 0, len(d.order))
	for _, p := range d.order {
		out = append(out, *d.entries[p])
	}
	return out
}

func (d *DamagedGoods) entry(productID id.Ref) (*DamagedEntry, error) {
	if !d.enabled {
		return nil, apperror.NewValidation("damaged goods capture is off")
	}
	e, ok := d.entries[productID]
	if !ok {
		return nil, apperror.NewValidation("product has no damaged entry").
			WithDetail("productId", productID.String())
	}
	return e, nil
}

// SetQuantity clamps entered into [0, bound] and stores it.
func (d *DamagedGoods) SetQuantity(productID id.Ref, entered types.Quantity) (quantity.Clamped, error) {
	e, err := d.entry(productID)
	if err != nil {
		return quantity.Clamped{}, err
	}
	e.Quantity = quantity.Clamp(entered, e.Bound)
	return e.Quantity, nil
}

// SetBound changes the bound of an entry and re-clamps the current value.
// The originally entered value is kept so a raised bound restores it.
func (d *DamagedGoods) SetBound(productID id.Ref, bound types.Quantity) {
	e, ok := d.entries[productID]
	if !ok {
		return
	}
	e.Bound = bound.Max(0)
	e.Quantity = quantity.Clamp(e.Quantity.Entered, e.Bound)
}

// SetReason stores the damage reason.
func (d *DamagedGoods) SetReason(productID id.Ref, reason string) error {
	e, err := d.entry(productID)
	if err != nil {
		return err
	}
	e.Reason = reason
	return nil
}

// AttachImage validates raw image bytes and stores them as a data URL.
func (d *DamagedGoods) AttachImage(productID id.Ref, raw []byte) error {
	e, err := d.entry(productID)
	if err != nil {
		return err
	}
	dataURL, err := quantity.EncodeAttachment(raw, quantity.ImageMIMETypes, d.limits.ImageMaxBytes)
	if err != nil {
		return err
	}
	e.Image = dataURL
	return nil
}

// AttachEncodedImage validates an already encoded image data URL and stores it.
func (d *DamagedGoods) AttachEncodedImage(productID id.Ref, dataURL string) error {
	e, err := d.entry(productID)
	if err != nil {
		return err
	}
	if err := quantity.ValidateDataURL(dataURL, quantity.ImageMIMETypes, d.limits.ImageMaxBytes); err != nil {
		return err
	}
	e.Image = dataURL
	return nil
}

// ClearImage removes the image of an entry.
func (d *DamagedGoods) ClearImage(productID id.Ref) {
	if e, ok := d.entries[productID]; ok {
		e.Image = ""
	}
}

// apply copies damaged fields of a line input into the entry for that product.
func (d *DamagedGoods) apply(in LineInput) error {
	if in.DamagedQuantity == nil && in.DamagedImage == "" && in.DamagedReason == "" {
		return nil
	}
	if in.DamagedQuantity != nil {
		if _, err := d.SetQuantity(in.ProductID, *in.DamagedQuantity); err != nil {
			return err
		}
	}
	if in.DamagedReason != "" {
		if err := d.SetReason(in.ProductID, in.DamagedReason); err != nil {
			return err
		}
	}
	if in.DamagedImage != "" {
		if err := d.AttachEncodedImage(in.ProductID, in.DamagedImage); err != nil {
			return err
		}
	}
	return nil
}

// payload returns the damaged fields for productID, or zero values when there is nothing to send.
func (d *DamagedGoods) payload(productID id.Ref) (*types.Quantity, string) {
	if !d.enabled {
		return nil, ""
	}
	e, ok := d.entries[productID]
	if !ok {
		return nil, ""
	}
	if e.Quantity.Value.IsZero() && e.Image == "" {
		return nil, ""
	}
	q := e.Quantity.Value
	return &q, e.Image
}

// notices returns the adjusted entries keyed to their line numbers.
func (d *DamagedGoods) notices(lineOf func(id.Ref) int) []Notice {
	var out []Notice
	if !d.enabled {
		return out
	}
	for _, p := range d.order {
		e := d.entries[p]
		if e.Quantity.Adjusted {
			out = append(out, Notice{LineNo: lineOf(p), ProductID: p, Clamped: e.Quantity})
		}
	}
	return out
}
