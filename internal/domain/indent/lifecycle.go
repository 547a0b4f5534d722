package indent

// Marker is the visual emphasis attached to a status label.
type Marker string

const (
	MarkerNone      Marker = ""
	MarkerAttention Marker = "attention"
	MarkerSuccess   Marker = "success"
	MarkerDanger    Marker = "danger"
)

var labels = map[Status]string{
	StatusPending:    "Awaiting Approval",
	StatusApproved:   "Approved",
	StatusProcessing: "Waiting for Stock",
	StatusCompleted:  "Stocked In",
	StatusStockedIn:  "Stocked In",
	StatusRejected:   "Rejected",
}

var markers = map[Status]Marker{
	StatusApproved:   MarkerAttention,
	StatusProcessing: MarkerAttention,
	StatusCompleted:  MarkerSuccess,
	StatusStockedIn:  MarkerSuccess,
	StatusRejected:   MarkerDanger,
}

// Label maps a status onto console vocabulary. Unknown values pass through unchanged.
func Label(s Status) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Display is the label and marker rendered for a status.
type Display struct {
	Label  string `json:"label"`
	Marker Marker `json:"marker,omitempty"`
}

// DisplayFor returns the display of s.
func DisplayFor(s Status) Display {
	return Display{Label: Label(s), Marker: markers[s]}
}

// Affordances are the actions the console offers for an indent.
// Both are available only while the indent is approved.
type Affordances struct {
	StockIn           bool `json:"stockIn"`
	AttentionRequired bool `json:"attentionRequired"`
}

// AffordancesFor returns the affordances of s.
func AffordancesFor(s Status) Affordances {
	ok := s == StatusApproved
	return Affordances{StockIn: ok, AttentionRequired: ok}
}

// CanStockIn reports whether a stock-in may be submitted against an indent in status s.
func CanStockIn(s Status) bool {
	return s == StatusApproved
}
