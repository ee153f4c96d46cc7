package quote

// Builder mutates a quote while keeping the layer chain and the aggregated
// totals consistent. Every mutation recomputes the affected suffix of the
// chain: layer j takes its inlet diameter from layer j-1's final diameter.
type Builder struct {
	calc  Calculator
	quote *Quote

	clientPriceManual bool
}

// NewBuilder wraps a quote for editing. The quote keeps its client price
// only when it no longer matches the computed final quote, which marks it
// as user-set.
func NewBuilder(calc Calculator, q *Quote) *Builder {
	b := &Builder{calc: calc, quote: q}
	if q.FinalQuote != 0 && !floatEq(q.ClientPrice, q.FinalQuote) {
		b.clientPriceManual = true
	}
	return b
}

// Quote exposes the quote under edit.
func (b *Builder) Quote() *Quote {
	return b.quote
}

// AddLayer appends a layer and cascades the chain. Fails with ErrLayerLimit
// beyond MaxLayers.
func (b *Builder) AddLayer(l Layer) error {
	if len(b.quote.Layers) >= MaxLayers {
		return ErrLayerLimit
	}
	b.quote.Layers = append(b.quote.Layers, l.Clone())
	b.cascadeFrom(len(b.quote.Layers) - 1)
	b.aggregate()
	return nil
}

// RemoveLayer deletes the layer at index. When index 0 is removed the new
// head's inlet diameter is reset to 0 and the chain cascades from there.
func (b *Builder) RemoveLayer(index int) error {
	if index < 0 || index >= len(b.quote.Layers) {
		return ErrLayerIndex
	}
	b.quote.Layers = append(b.quote.Layers[:index], b.quote.Layers[index+1:]...)
	if index == 0 && len(b.quote.Layers) > 0 {
		b.quote.Layers[0].SetDiameterIn(0)
	}
	b.cascadeFrom(index)
	b.aggregate()
	return nil
}

// ReplaceLayer swaps the layer at index and cascades downstream.
func (b *Builder) ReplaceLayer(index int, l Layer) error {
	if index < 0 || index >= len(b.quote.Layers) {
		return ErrLayerIndex
	}
	b.quote.Layers[index] = l.Clone()
	b.cascadeFrom(index)
	b.aggregate()
	return nil
}

// RecomputeAll rederives every layer and the aggregates from scratch.
func (b *Builder) RecomputeAll() {
	b.cascadeFrom(0)
	b.aggregate()
}

// LaborMinutes groups the labor inputs of a quote.
type LaborMinutes struct {
	Cutting  float64
	Winding  float64
	Cleaning float64
	Grinding float64
	Packing  float64
}

// SetLabor stores the labor minutes and refreshes the totals.
func (b *Builder) SetLabor(m LaborMinutes) {
	q := b.quote
	q.CuttingMin = m.Cutting
	q.WindingMin = m.Winding
	q.CleaningMin = m.Cleaning
	q.GrindingMin = m.Grinding
	q.PackingMin = m.Packing
	b.aggregate()
}

// SetAccessories stores the accessory cost and refreshes the totals.
func (b *Builder) SetAccessories(v float64) {
	b.quote.AccessoriesCost = v
	b.aggregate()
}

// SetClientPrice overrides the price quoted to the client. Once set it no
// longer follows the computed final quote.
func (b *Builder) SetClientPrice(v float64) {
	b.quote.ClientPrice = v
	b.clientPriceManual = true
}

// Snapshot returns a deep copy of the current quote state.
func (b *Builder) Snapshot() Quote {
	return b.quote.Clone()
}

// cascadeFrom recomputes layers[from:] top-down, feeding each layer's final
// diameter into the next one's inlet.
func (b *Builder) cascadeFrom(from int) {
	if from < 0 {
		from = 0
	}
	layers := b.quote.Layers
	for j := from; j < len(layers); j++ {
		if j > 0 {
			layers[j].SetDiameterIn(layers[j-1].DiameterFinal)
		}
		layers[j] = b.calc.Recompute(layers[j])
	}
}

// aggregate rolls the layer costs, accessories and labor minutes up into
// the quote totals. Non-computable layers are skipped so a partial result
// is still well-formed.
func (b *Builder) aggregate() {
	q := b.quote
	var materials float64
	for _, l := range q.Layers {
		if !l.Computed {
			continue
		}
		materials += l.MarkedCost
	}
	q.MaterialsCost = materials
	q.LaborTotalMin = q.CuttingMin + q.WindingMin + q.CleaningMin + q.GrindingMin + q.PackingMin
	// Labor minutes are summed into the subtotal as currency: one minute is
	// one currency unit in the recorded data.
	q.Subtotal = q.MaterialsCost + q.AccessoriesCost + q.LaborTotalMin
	q.Markup25 = 0.25 * q.Subtotal
	q.FinalQuote = q.Subtotal + q.Markup25
	if !b.clientPriceManual {
		q.ClientPrice = q.FinalQuote
	}
}

func floatEq(a, b float64) bool {
	d := a - b
	return d < 0.005 && d > -0.005
}
