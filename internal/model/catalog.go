package model

import "github.com/shopspring/decimal"

// CompanyConfig is one voucher partner: a company with a pre-negotiated
// per-unit price for meal credits redeemed through it.
type CompanyConfig struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}

// Catalog is the read-only set of voucher partners. It is injected
// configuration — loaded once at startup, never mutated afterwards.
type Catalog struct {
	companies []CompanyConfig
	byID      map[string]CompanyConfig
}

func NewCatalog(companies []CompanyConfig) *Catalog {
	byID := make(map[string]CompanyConfig, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}
	return &Catalog{companies: companies, byID: byID}
}

// Companies returns the partners in their configured display order.
func (c *Catalog) Companies() []CompanyConfig {
	out := make([]CompanyConfig, len(c.companies))
	copy(out, c.companies)
	return out
}

// PriceFor resolves a company id to its per-unit price.
// Unknown ids are not an error: they resolve to (0, false) so that stale
// voucher rows contribute zero instead of breaking the closing.
func (c *Catalog) PriceFor(id string) (decimal.Decimal, bool) {
	cfg, ok := c.byID[id]
	if !ok {
		return decimal.Zero, false
	}
	return cfg.PricePerUnit, true
}

// NameFor resolves a company id to its display name.
func (c *Catalog) NameFor(id string) (string, bool) {
	cfg, ok := c.byID[id]
	return cfg.Name, ok
}
