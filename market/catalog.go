package market

import (
	"fmt"
	"sort"
)

// Definition describes an instrument to list at market initialization or
// through the IPO path.
type Definition struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Name        string  `json:"name" yaml:"name"`
	Sector      string  `json:"sector" yaml:"sector"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
	Quantity    Shares  `json:"quantity" yaml:"quantity"`
}

// Catalog is the registry of tradable instruments, keyed by symbol.
// It is not safe for concurrent use; the engine serializes access.
type Catalog struct {
	instruments map[string]*Instrument
}

func NewCatalog() *Catalog {
	return &Catalog{instruments: make(map[string]*Instrument)}
}

// Initialize clears the catalog and repopulates it from defs. Prices,
// quantities, volumes and histories all reset to their listing values.
func (c *Catalog) Initialize(defs []Definition) error {
	fresh := make(map[string]*Instrument, len(defs))
	for _, d := range defs {
		if _, ok := fresh[d.Symbol]; ok {
			return fmt.Errorf("initialize %s: %w", d.Symbol, ErrDuplicateSymbol)
		}
		fresh[d.Symbol] = newInstrument(d)
	}
	c.instruments = fresh
	return nil
}

// Register lists a new instrument at runtime (the IPO path).
func (c *Catalog) Register(d Definition) error {
	if _, ok := c.instruments[d.Symbol]; ok {
		return fmt.Errorf("register %s: %w", d.Symbol, ErrDuplicateSymbol)
	}
	if d.Price < MinPrice || d.Quantity < 0 {
		return fmt.Errorf("register %s: %w", d.Symbol, ErrInvalidOrder)
	}
	c.instruments[d.Symbol] = newInstrument(d)
	return nil
}

func newInstrument(d Definition) *Instrument {
	return &Instrument{
		Symbol:          d.Symbol,
		Name:            d.Name,
		Sector:          d.Sector,
		Description:     d.Description,
		Price:           d.Price,
		LastPrice:       d.Price,
		InitialPrice:    d.Price,
		Available:       d.Quantity,
		InitialQuantity: d.Quantity,
	}
}

// Get returns the instrument for symbol, or ErrUnknownSymbol.
func (c *Catalog) Get(symbol string) (*Instrument, error) {
	in, ok := c.instruments[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrUnknownSymbol)
	}
	return in, nil
}

func (c *Catalog) Has(symbol string) bool {
	_, ok := c.instruments[symbol]
	return ok
}

func (c *Catalog) Len() int { return len(c.instruments) }

// Symbols returns all listed symbols in stable order.
func (c *Catalog) Symbols() []string {
	out := make([]string, 0, len(c.instruments))
	for s := range c.instruments {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Sectors returns the distinct sectors currently listed.
func (c *Catalog) Sectors() []string {
	seen := map[string]struct{}{}
	for _, in := range c.instruments {
		seen[in.Sector] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// DefaultUniverse is the stock universe the simulation ships with.
func DefaultUniverse() []Definition {
	return []Definition{
		{Symbol: "NOVA", Name: "TechNova Innovations", Sector: "Technology", Price: 100, Quantity: 1000,
			Description: "Breakthrough software and hardware at the forefront of digital transformation."},
		{Symbol: "GREEN", Name: "GreenFusion Energy", Sector: "Renewable Energy", Price: 80, Quantity: 1500,
			Description: "Sustainable solar and wind energy solutions."},
		{Symbol: "FIN", Name: "FinTrust Capital", Sector: "Finance", Price: 120, Quantity: 800,
			Description: "Robust financial services with decades of expertise."},
		{Symbol: "MED", Name: "MediCore Health", Sector: "Healthcare", Price: 90, Quantity: 1000,
			Description: "Advanced medical research with a patient-first approach."},
		{Symbol: "CSMR", Name: "ConsumerX Global", Sector: "Consumer Goods", Price: 110, Quantity: 900,
			Description: "Smart products designed for modern lifestyles."},
		{Symbol: "IND", Name: "IndustriMax Holdings", Sector: "Industrial", Price: 70, Quantity: 2000,
			Description: "High-performance machinery and infrastructure."},
	}
}
