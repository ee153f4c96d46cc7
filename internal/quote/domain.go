package quote

import (
	"errors"
	"time"
)

// MaxLayers bounds the layer list of a quote.
const MaxLayers = 30

// GeometryKind tags the cross-section model of a layer.
type GeometryKind string

const (
	// GeometryCylindrical is a constant-diameter layer.
	GeometryCylindrical GeometryKind = "cylindrical"
	// GeometryTapered is a layer built from ordered conical sections.
	GeometryTapered GeometryKind = "tapered"
)

// ConicalSection is one conical segment of a tapered layer. Length is in
// millimeters, as are both diameters.
type ConicalSection struct {
	Length int     `json:"length"`
	DStart float64 `json:"d_start"`
	DEnd   float64 `json:"d_end"`
}

// Layer is one wound ply of material. Geometric inputs feed the calculator;
// the derived block is only valid while Computed is true.
type Layer struct {
	DiameterIn     float64
	LengthTotal    float64
	Turns          int
	MaterialID     int64
	MaterialName   string
	Thickness      float64
	UnitPrice      float64
	ManualOverride float64
	Kind           GeometryKind
	Sections       []ConicalSection

	// Derived outputs.
	DiameterFinal float64
	Development   float64
	UsedArea      float64
	TotalCost     float64
	MarkedCost    float64
	Computed      bool
}

// Clone deep-copies the layer including its sections.
func (l Layer) Clone() Layer {
	out := l
	if l.Sections != nil {
		out.Sections = make([]ConicalSection, len(l.Sections))
		copy(out.Sections, l.Sections)
	}
	return out
}

// SetDiameterIn changes the inlet diameter; a manual development override
// does not survive a geometry change.
func (l *Layer) SetDiameterIn(d float64) {
	if l.DiameterIn != d {
		l.ManualOverride = 0
	}
	l.DiameterIn = d
}

// SetLength changes the total length for cylindrical layers.
func (l *Layer) SetLength(length float64) {
	if l.LengthTotal != length {
		l.ManualOverride = 0
	}
	l.LengthTotal = length
}

// SetTurns changes the winding count.
func (l *Layer) SetTurns(turns int) {
	if l.Turns != turns {
		l.ManualOverride = 0
	}
	l.Turns = turns
}

// SetMaterial binds the layer to a catalog entry.
func (l *Layer) SetMaterial(id int64, name string, thickness, unitPrice float64) {
	if l.MaterialID != id || l.Thickness != thickness || l.UnitPrice != unitPrice {
		l.ManualOverride = 0
	}
	l.MaterialID = id
	l.MaterialName = name
	l.Thickness = thickness
	l.UnitPrice = unitPrice
}

// SetKind switches between cylindrical and tapered mode.
func (l *Layer) SetKind(kind GeometryKind) {
	if l.Kind != kind {
		l.ManualOverride = 0
	}
	l.Kind = kind
}

// SetSections replaces the conical sections of a tapered layer.
func (l *Layer) SetSections(sections []ConicalSection) {
	l.ManualOverride = 0
	l.Sections = make([]ConicalSection, len(sections))
	copy(l.Sections, sections)
}

// SetManualDevelopment forces the developed length; 0 restores auto mode.
func (l *Layer) SetManualDevelopment(dev float64) {
	l.ManualOverride = dev
}

// HistoryEntry is one timestamped pre-image snapshot of a quote.
type HistoryEntry struct {
	Timestamp time.Time
	Data      Quote
}

// Quote aggregates an ordered list of layers with labor and accessories.
// OriginalQuoteID is 0 for a chain head.
type Quote struct {
	ID              int64
	CreatedAt       time.Time
	RevisionNumber  int
	OriginalQuoteID int64

	ClientName  string
	OrderNumber string
	Description string
	Code        string
	Measure     string
	Finish      string

	Layers []Layer

	MaterialsCost   float64
	AccessoriesCost float64
	CuttingMin      float64
	WindingMin      float64
	CleaningMin     float64
	GrindingMin     float64
	PackingMin      float64
	LaborTotalMin   float64
	Subtotal        float64
	Markup25        float64
	FinalQuote      float64
	ClientPrice     float64

	RevisionNote string
	History      []HistoryEntry
}

// Clone deep-copies the quote, its layers and its history snapshots.
func (q Quote) Clone() Quote {
	out := q
	out.Layers = make([]Layer, len(q.Layers))
	for i, l := range q.Layers {
		out.Layers[i] = l.Clone()
	}
	if q.History != nil {
		out.History = make([]HistoryEntry, len(q.History))
		for i, h := range q.History {
			entry := h
			entry.Data = h.Data.cloneShallowHistory()
			out.History[i] = entry
		}
	}
	return out
}

// cloneShallowHistory copies a quote without recursing into its own history,
// which snapshots never carry.
func (q Quote) cloneShallowHistory() Quote {
	out := q
	out.History = nil
	out.Layers = make([]Layer, len(q.Layers))
	for i, l := range q.Layers {
		out.Layers[i] = l.Clone()
	}
	return out
}

// ChainHeadID resolves the id of the revision chain head.
func (q Quote) ChainHeadID() int64 {
	if q.OriginalQuoteID != 0 {
		return q.OriginalQuoteID
	}
	return q.ID
}

// Computable reports whether every layer has valid derived outputs.
func (q Quote) Computable() bool {
	for _, l := range q.Layers {
		if !l.Computed {
			return false
		}
	}
	return true
}

// ErrLayerLimit is returned when adding beyond MaxLayers.
var ErrLayerLimit = errors.New("quote: layer limit reached")

// ErrLayerIndex is returned for an out-of-range layer index.
var ErrLayerIndex = errors.New("quote: layer index out of range")
