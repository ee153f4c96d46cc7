package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		ID:             1,
		RevisionNumber: 1,
		ClientName:     "Cartiere Nord",
		OrderNumber:    "ORD-100",
		Code:           "Q-2024-001",
		Layers: []LayerView{
			{
				Position: 1, MaterialName: "HS300", Kind: "cylindrical",
				DiameterIn: 100, DiameterFinal: 101.2, LengthTotal: 1000,
				Turns: 2, Thickness: 0.3, Development: 636.768,
				UsedArea: 0.636768, TotalCost: 12.73536, MarkedCost: 14.008896,
			},
		},
		MaterialsCost: 14.008896,
		LaborTotalMin: 20,
		Subtotal:      34.008896,
		Markup25:      8.502224,
		FinalQuote:    42.51112,
		ClientPrice:   42.51112,
	}
}

func TestCompareEqualSnapshots(t *testing.T) {
	require.True(t, Compare(sampleSnapshot(), sampleSnapshot()).Equal())
}

func TestCompareToleratesRoundingNoise(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	b.FinalQuote += 0.009
	b.Layers[0].Development -= 0.005
	require.True(t, Compare(a, b).Equal())
}

func TestCompareFlagsRealDifferences(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	b.ClientName = "Cartiere Sud"
	b.FinalQuote += 5
	b.Layers[0].Turns = 3

	d := Compare(a, b)
	require.False(t, d.Equal())

	fields := make(map[string]FieldDiff, len(d.Fields))
	for _, f := range d.Fields {
		fields[f.Field] = f
	}
	require.Contains(t, fields, "client_name")
	require.Contains(t, fields, "final_quote")
	require.Contains(t, fields, "layer_1.turns")
	require.Equal(t, "Cartiere Nord", fields["client_name"].A)
	require.Equal(t, "Cartiere Sud", fields["client_name"].B)
}

func TestCompareLayerCountMismatch(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	b.Layers = append(b.Layers, LayerView{Position: 2, MaterialName: "CC200PL", Kind: "cylindrical"})

	d := Compare(a, b)
	require.False(t, d.Equal())
	var found bool
	for _, f := range d.Fields {
		if f.Field == "layers" {
			found = true
			require.Equal(t, "1 layers", f.A)
			require.Equal(t, "2 layers", f.B)
		}
	}
	require.True(t, found)
}
