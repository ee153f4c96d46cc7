package catalog

import (
	"strings"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

func validate(m Material) error {
	if strings.TrimSpace(m.Name) == "" {
		return shared.Validationf("catalog: material name is required")
	}
	if m.Thickness <= 0 {
		return shared.Validationf("catalog: thickness must be positive")
	}
	if m.UnitPrice < 0 {
		return shared.Validationf("catalog: unit price must be >= 0")
	}
	if m.SupplierPrice < 0 {
		return shared.Validationf("catalog: supplier price must be >= 0")
	}
	if m.WarehouseCapacity < 0 {
		return shared.Validationf("catalog: warehouse capacity must be >= 0")
	}
	return nil
}
