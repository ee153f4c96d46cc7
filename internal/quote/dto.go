package quote

// SaveQuoteRequest carries the user-editable fields of a quote. Derived
// totals are never accepted from the caller; they are recomputed on save.
type SaveQuoteRequest struct {
	ClientName  string `validate:"required,max=200"`
	OrderNumber string `validate:"max=100"`
	Description string `validate:"max=2000"`
	Code        string `validate:"max=100"`
	Measure     string `validate:"max=100"`
	Finish      string `validate:"max=100"`

	Layers []Layer `validate:"required,min=1,max=30"`

	AccessoriesCost float64 `validate:"gte=0"`
	Labor           LaborMinutes

	// ClientPrice overrides the computed final quote when positive and
	// different from it.
	ClientPrice float64 `validate:"gte=0"`
}
