package catalog

// Material is a catalog entry for a composite fabric.
//
// Thickness is in millimeters, prices are per square meter, capacity and
// on-hand stock are in square meters. OnHand is a denormalized cache of the
// movement log and is mutated only by the inventory ledger.
type Material struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Thickness         float64 `json:"thickness"`
	UnitPrice         float64 `json:"unit_price"`
	SupplierName      string  `json:"supplier_name"`
	SupplierPrice     float64 `json:"supplier_price"`
	WarehouseCapacity float64 `json:"warehouse_capacity"`
	OnHand            float64 `json:"on_hand"`
}
