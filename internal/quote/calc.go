package quote

// DefaultCircle is the circle constant used by the numerical model. The
// historical data set was produced with 3.14, so recomputing stored quotes
// with a higher-precision value would silently change every recorded cost.
const DefaultCircle = 3.14

// crossMargin is the fixed cross-machine margin in mm added to the
// developed width of every layer.
const crossMargin = 5.0

// Calculator evaluates the numerical model of a single layer.
type Calculator struct {
	circle float64
}

// NewCalculator builds a Calculator; a non-positive circle constant falls
// back to DefaultCircle.
func NewCalculator(circle float64) Calculator {
	if circle <= 0 {
		circle = DefaultCircle
	}
	return Calculator{circle: circle}
}

// Circle exposes the configured circle constant.
func (c Calculator) Circle() float64 {
	if c.circle <= 0 {
		return DefaultCircle
	}
	return c.circle
}

// Recompute derives the outputs of a layer from its inputs. It is pure and
// idempotent: the input value is not mutated, and recomputing the returned
// layer yields an identical result. A layer with invalid inputs comes back
// with Computed == false and zeroed outputs.
func (c Calculator) Recompute(l Layer) Layer {
	out := l.Clone()
	out.DiameterFinal = 0
	out.Development = 0
	out.UsedArea = 0
	out.TotalCost = 0
	out.MarkedCost = 0
	out.Computed = false

	if out.Turns < 1 || out.Thickness <= 0 {
		return out
	}

	pi := c.Circle()
	turns := float64(out.Turns)
	deposit := 2 * out.Thickness * turns

	switch out.Kind {
	case GeometryTapered:
		if len(out.Sections) == 0 {
			return out
		}
		var totalLen float64
		var rawArea float64
		for _, sec := range out.Sections {
			if sec.Length <= 0 || (sec.DStart <= 0 && sec.DEnd <= 0) || sec.DStart < 0 || sec.DEnd < 0 {
				return out
			}
			mean := (sec.DStart + sec.DEnd) / 2
			dev := ((mean + turns*out.Thickness) * pi) * turns
			rawArea += float64(sec.Length) * dev
			totalLen += float64(sec.Length)
		}
		totalArea := rawArea + crossMargin*totalLen
		out.LengthTotal = totalLen
		out.DiameterFinal = out.Sections[len(out.Sections)-1].DEnd + deposit
		if out.ManualOverride > 0 {
			out.Development = out.ManualOverride
			out.UsedArea = out.LengthTotal * out.ManualOverride / 1e6
		} else {
			out.Development = totalArea / totalLen
			out.UsedArea = totalArea / 1e6
		}
	default:
		if out.DiameterIn <= 0 || out.LengthTotal <= 0 {
			return out
		}
		out.DiameterFinal = out.DiameterIn + deposit
		if out.ManualOverride > 0 {
			out.Development = out.ManualOverride
		} else {
			out.Development = ((out.DiameterIn+turns*out.Thickness)*pi)*turns + crossMargin
		}
		out.UsedArea = out.LengthTotal * out.Development / 1e6
	}

	out.TotalCost = out.UsedArea * out.UnitPrice
	out.MarkedCost = out.TotalCost * 1.1
	out.Computed = true
	return out
}
