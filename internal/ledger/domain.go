package ledger

import "time"

// MovementKind enumerates warehouse movements.
type MovementKind string

const (
	// KindLoad represents an inbound movement.
	KindLoad MovementKind = "load"
	// KindUnload represents a consumption movement.
	KindUnload MovementKind = "unload"
)

// Valid reports whether k is a known kind.
func (k MovementKind) Valid() bool {
	return k == KindLoad || k == KindUnload
}

// Sign maps the kind onto the stock delta direction.
func (k MovementKind) Sign() float64 {
	if k == KindUnload {
		return -1
	}
	return 1
}

// Movement is one append-only row of the warehouse log. Quantity is square
// meters of fabric and is always positive; the kind carries the direction.
type Movement struct {
	ID         int64        `json:"id"`
	Code       string       `json:"code"`
	MaterialID int64        `json:"material_id"`
	Kind       MovementKind `json:"kind"`
	Quantity   float64      `json:"quantity"`
	Timestamp  time.Time    `json:"timestamp"`
	Note       string       `json:"note"`
	// QuoteID links consumption back to the quote that caused it, 0 when the
	// movement was entered by hand.
	QuoteID int64 `json:"quote_id,omitempty"`
}

// Stock is the derived balance of one material. Initial is the stock level
// before the first logged movement, reconstructed from the cached on_hand.
type Stock struct {
	MaterialID int64
	Initial    float64
	Loaded     float64
	Unloaded   float64
	OnHand     float64
}

// ConsumptionRow aggregates the unloads of one material over a window.
type ConsumptionRow struct {
	MaterialID    int64
	MaterialName  string
	Consumed      float64
	SupplierPrice float64
	Spend         float64
}
