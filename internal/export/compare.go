package export

import (
	"fmt"
	"math"
)

// moneyTolerance absorbs rounding noise in recomputed monetary and
// geometric values.
const moneyTolerance = 0.01

// FieldDiff describes one differing field between two snapshots.
type FieldDiff struct {
	Field string
	A     string
	B     string
}

// Diff is the result of comparing two snapshots.
type Diff struct {
	Fields []FieldDiff
}

// Equal reports whether no differences were found.
func (d Diff) Equal() bool {
	return len(d.Fields) == 0
}

// Compare diffs two snapshots field by field. Strings and integers match
// exactly; floats match within moneyTolerance. Layers are compared
// positionally, a length mismatch is itself a difference.
func Compare(a, b Snapshot) Diff {
	var d Diff

	d.str("client_name", a.ClientName, b.ClientName)
	d.str("order_number", a.OrderNumber, b.OrderNumber)
	d.str("description", a.Description, b.Description)
	d.str("code", a.Code, b.Code)
	d.str("measure", a.Measure, b.Measure)
	d.str("finish", a.Finish, b.Finish)
	d.num("revision_number", float64(a.RevisionNumber), float64(b.RevisionNumber), 0)

	d.num("materials_cost", a.MaterialsCost, b.MaterialsCost, moneyTolerance)
	d.num("accessories_cost", a.AccessoriesCost, b.AccessoriesCost, moneyTolerance)
	d.num("cutting_min", a.CuttingMin, b.CuttingMin, moneyTolerance)
	d.num("winding_min", a.WindingMin, b.WindingMin, moneyTolerance)
	d.num("cleaning_min", a.CleaningMin, b.CleaningMin, moneyTolerance)
	d.num("grinding_min", a.GrindingMin, b.GrindingMin, moneyTolerance)
	d.num("packing_min", a.PackingMin, b.PackingMin, moneyTolerance)
	d.num("labor_total_min", a.LaborTotalMin, b.LaborTotalMin, moneyTolerance)
	d.num("subtotal", a.Subtotal, b.Subtotal, moneyTolerance)
	d.num("markup_25", a.Markup25, b.Markup25, moneyTolerance)
	d.num("final_quote", a.FinalQuote, b.FinalQuote, moneyTolerance)
	d.num("client_price", a.ClientPrice, b.ClientPrice, moneyTolerance)

	if len(a.Layers) != len(b.Layers) {
		d.Fields = append(d.Fields, FieldDiff{
			Field: "layers",
			A:     fmt.Sprintf("%d layers", len(a.Layers)),
			B:     fmt.Sprintf("%d layers", len(b.Layers)),
		})
	}
	n := len(a.Layers)
	if len(b.Layers) < n {
		n = len(b.Layers)
	}
	for i := 0; i < n; i++ {
		la, lb := a.Layers[i], b.Layers[i]
		prefix := fmt.Sprintf("layer_%d.", i+1)
		d.str(prefix+"material", la.MaterialName, lb.MaterialName)
		d.str(prefix+"kind", la.Kind, lb.Kind)
		d.num(prefix+"turns", float64(la.Turns), float64(lb.Turns), 0)
		d.num(prefix+"diameter_in", la.DiameterIn, lb.DiameterIn, moneyTolerance)
		d.num(prefix+"diameter_final", la.DiameterFinal, lb.DiameterFinal, moneyTolerance)
		d.num(prefix+"length_total", la.LengthTotal, lb.LengthTotal, moneyTolerance)
		d.num(prefix+"thickness", la.Thickness, lb.Thickness, moneyTolerance)
		d.num(prefix+"development", la.Development, lb.Development, moneyTolerance)
		d.num(prefix+"used_area", la.UsedArea, lb.UsedArea, moneyTolerance)
		d.num(prefix+"total_cost", la.TotalCost, lb.TotalCost, moneyTolerance)
		d.num(prefix+"marked_cost", la.MarkedCost, lb.MarkedCost, moneyTolerance)
	}
	return d
}

func (d *Diff) str(field, a, b string) {
	if a != b {
		d.Fields = append(d.Fields, FieldDiff{Field: field, A: a, B: b})
	}
}

func (d *Diff) num(field string, a, b, tolerance float64) {
	if math.Abs(a-b) > tolerance {
		d.Fields = append(d.Fields, FieldDiff{
			Field: field,
			A:     fmt.Sprintf("%g", a),
			B:     fmt.Sprintf("%g", b),
		})
	}
}
