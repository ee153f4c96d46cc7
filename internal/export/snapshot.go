package export

import (
	"time"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/quote"
)

// Snapshot is a read-only projection of a quote for rendering and
// comparison. Building one never mutates the source.
type Snapshot struct {
	ID             int64
	RevisionNumber int
	CreatedAt      time.Time

	ClientName  string
	OrderNumber string
	Description string
	Code        string
	Measure     string
	Finish      string

	Layers []LayerView

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
}

// LayerView is the rendered form of one layer.
type LayerView struct {
	Position      int
	MaterialName  string
	Kind          string
	DiameterIn    float64
	DiameterFinal float64
	LengthTotal   float64
	Turns         int
	Thickness     float64
	Development   float64
	UsedArea      float64
	TotalCost     float64
	MarkedCost    float64
}

// FromQuote projects a quote into a Snapshot.
func FromQuote(q quote.Quote) Snapshot {
	snap := Snapshot{
		ID:             q.ID,
		RevisionNumber: q.RevisionNumber,
		CreatedAt:      q.CreatedAt,

		ClientName:  q.ClientName,
		OrderNumber: q.OrderNumber,
		Description: q.Description,
		Code:        q.Code,
		Measure:     q.Measure,
		Finish:      q.Finish,

		MaterialsCost:   q.MaterialsCost,
		AccessoriesCost: q.AccessoriesCost,
		CuttingMin:      q.CuttingMin,
		WindingMin:      q.WindingMin,
		CleaningMin:     q.CleaningMin,
		GrindingMin:     q.GrindingMin,
		PackingMin:      q.PackingMin,
		LaborTotalMin:   q.LaborTotalMin,
		Subtotal:        q.Subtotal,
		Markup25:        q.Markup25,
		FinalQuote:      q.FinalQuote,
		ClientPrice:     q.ClientPrice,
	}
	snap.Layers = make([]LayerView, len(q.Layers))
	for i, l := range q.Layers {
		snap.Layers[i] = LayerView{
			Position:      i + 1,
			MaterialName:  l.MaterialName,
			Kind:          string(l.Kind),
			DiameterIn:    l.DiameterIn,
			DiameterFinal: l.DiameterFinal,
			LengthTotal:   l.LengthTotal,
			Turns:         l.Turns,
			Thickness:     l.Thickness,
			Development:   l.Development,
			UsedArea:      l.UsedArea,
			TotalCost:     l.TotalCost,
			MarkedCost:    l.MarkedCost,
		}
	}
	return snap
}
