package infra

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
)

// LoadCatalog reads the voucher-partner catalog from a JSON file:
// [{"id": "...", "name": "...", "pricePerUnit": 18.00}, ...]
// A missing or malformed catalog is a startup error — the closing screen
// is useless without partner prices.
func LoadCatalog(path string) (*model.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler catálogo %s: %w", path, err)
	}

	var companies []model.CompanyConfig
	if err := json.Unmarshal(raw, &companies); err != nil {
		return nil, fmt.Errorf("catálogo %s malformado: %w", path, err)
	}
	if len(companies) == 0 {
		return nil, fmt.Errorf("catálogo %s vazio", path)
	}
	for i, c := range companies {
		if c.ID == "" {
			return nil, fmt.Errorf("catálogo %s: entrada %d sem id", path, i)
		}
		if c.PricePerUnit.IsNegative() {
			return nil, fmt.Errorf("catálogo %s: preço negativo para %q", path, c.ID)
		}
	}
	return model.NewCatalog(companies), nil
}
