package catalog

import "context"

// defaultMaterials is the factory catalog loaded on first initialization.
// Names, thicknesses (mm) and prices (per m²) are preserved verbatim from
// the historical price list; do not reorder or edit existing rows.
var defaultMaterials = []Material{
	{Name: "HS300", Thickness: 0.3, UnitPrice: 20.00},
	{Name: "HS150", Thickness: 0.15, UnitPrice: 15.00},
	{Name: "HM150/40J", Thickness: 0.15, UnitPrice: 42.00},
	{Name: "HM300/40J", Thickness: 0.3, UnitPrice: 52.00},
	{Name: "CC160", Thickness: 0.18, UnitPrice: 26.00},
	{Name: "CC200", Thickness: 0.25, UnitPrice: 28.00},
	{Name: "CC200PL", Thickness: 0.25, UnitPrice: 30.00},
	{Name: "CC245", Thickness: 0.3, UnitPrice: 32.00},
	{Name: "CC380", Thickness: 0.45, UnitPrice: 36.00},
	{Name: "KV170", Thickness: 0.2, UnitPrice: 48.00},
	{Name: "UNI300", Thickness: 0.3, UnitPrice: 25.00},
	{Name: "UNI600", Thickness: 0.6, UnitPrice: 34.00},
	{Name: "BX450", Thickness: 0.5, UnitPrice: 27.00},
	{Name: "BX600", Thickness: 0.65, UnitPrice: 31.00},
	{Name: "VE300", Thickness: 0.3, UnitPrice: 22.00},
	{Name: "VE450", Thickness: 0.45, UnitPrice: 24.00},
	{Name: "MAT300", Thickness: 0.35, UnitPrice: 12.00},
	{Name: "MAT450", Thickness: 0.5, UnitPrice: 14.00},
	{Name: "MAT600", Thickness: 0.65, UnitPrice: 16.00},
	{Name: "RT500", Thickness: 0.55, UnitPrice: 18.50},
	{Name: "RT800", Thickness: 0.85, UnitPrice: 21.00},
	{Name: "VV380", Thickness: 0.4, UnitPrice: 15.50},
	{Name: "VV770", Thickness: 0.75, UnitPrice: 18.00},
}

// Seed populates the catalog with the factory list when the table is empty.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, m := range defaultMaterials {
		if _, err := s.repo.Create(ctx, m); err != nil {
			return 0, err
		}
	}
	return len(defaultMaterials), nil
}

// DefaultMaterials exposes a copy of the factory list.
func DefaultMaterials() []Material {
	out := make([]Material, len(defaultMaterials))
	copy(out, defaultMaterials)
	return out
}
