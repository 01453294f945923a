// Package catalog holds the static game catalogues: commodities,
// locations, ship templates, and the balance rules that tune the
// simulation. The built-in defaults can be replaced wholesale by a
// YAML file, which is the only configuration surface the simulation
// core reads.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Commodity is an immutable catalogue entry for a tradeable good.
type Commodity struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	PriceMin    int64  `yaml:"price_min"`
	PriceMax    int64  `yaml:"price_max"`
	Tier        int    `yaml:"tier"`
	UnlockLevel int    `yaml:"unlock_level"`
}

// GalacticAverage is the midpoint of the commodity's base price range.
func (c Commodity) GalacticAverage() float64 {
	return float64(c.PriceMin+c.PriceMax) / 2
}

// SpecialDemand marks a good a location never stocks but buys at a premium.
type SpecialDemand struct {
	Bonus float64 `yaml:"bonus"`
}

// Location is an immutable catalogue entry for a market location.
type Location struct {
	ID            string                   `yaml:"id"`
	Name          string                   `yaml:"name"`
	FuelPrice     int64                    `yaml:"fuel_price"`
	Modifiers     map[string]float64       `yaml:"modifiers"`
	SpecialDemand map[string]SpecialDemand `yaml:"special_demand"`
}

// Modifier returns the location's price modifier for a commodity,
// defaulting to 1.0.
func (l Location) Modifier(commodityID string) float64 {
	if m, ok := l.Modifiers[commodityID]; ok {
		return m
	}
	return 1.0
}

// Ship is an immutable ship template.
type Ship struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Class          string  `yaml:"class"`
	Price          int64   `yaml:"price"`
	MaxHealth      float64 `yaml:"max_health"`
	MaxFuel        float64 `yaml:"max_fuel"`
	CargoCapacity  int     `yaml:"cargo_capacity"`
	SaleLocationID string  `yaml:"sale_location_id"`
	Rare           bool    `yaml:"rare"`
}

// Milestone unlocks commodity tiers and locations at credit thresholds.
type Milestone struct {
	Threshold       int64  `yaml:"threshold"`
	UnlockLevel     int    `yaml:"unlock_level"`
	UnlocksLocation string `yaml:"unlocks_location"`
	Message         string `yaml:"message"`
}

// Rules carries the balance constants that tune the simulation.
type Rules struct {
	StartingCredits      int64   `yaml:"starting_credits"`
	StartingDebt         int64   `yaml:"starting_debt"`
	StartingInterest     int64   `yaml:"starting_interest"`
	StartingLocationID   string  `yaml:"starting_location_id"`
	StarterShipID        string  `yaml:"starter_ship_id"`
	StartYear            int     `yaml:"start_year"`
	StartingAge          int     `yaml:"starting_age"`
	BirthdayDayOfYear    int     `yaml:"birthday_day_of_year"`
	RandomEventChance    float64 `yaml:"random_event_chance"`
	PriceVolatility      float64 `yaml:"price_volatility"`
	MeanReversion        float64 `yaml:"mean_reversion"`
	PriceHistoryLength   int     `yaml:"price_history_length"`
	MarketInterval       int     `yaml:"market_interval_days"`
	InterestInterval     int     `yaml:"interest_interval_days"`
	HullDecayPerDay      float64 `yaml:"hull_decay_per_day"`
	PassiveRepairRate    float64 `yaml:"passive_repair_rate"`
	RepairCostPerHP      float64 `yaml:"repair_cost_per_hp"`
	RepairPercentPerTick float64 `yaml:"repair_percent_per_tick"`
	FuelUnitsPerTick     float64 `yaml:"fuel_units_per_tick"`
	ShipSellModifier     float64 `yaml:"ship_sell_modifier"`
	RareShipChance       float64 `yaml:"rare_ship_chance"`
	IntelCostPercent     float64 `yaml:"intel_cost_percent"`
	IntelMinCredits      int64   `yaml:"intel_min_credits"`
	IntelChance          float64 `yaml:"intel_chance"`
	IntelDurationDays    int     `yaml:"intel_duration_days"`
	IntelDemandMod       float64 `yaml:"intel_demand_mod"`
	IntelDepressionMod   float64 `yaml:"intel_depression_mod"`
	GarnishmentDays      int     `yaml:"garnishment_days"`
	GarnishmentPercent   float64 `yaml:"garnishment_percent"`
	EventDebtInterest    float64 `yaml:"event_debt_interest"`
}

// Catalog is the root of all static game data.
type Catalog struct {
	Rules       Rules       `yaml:"rules"`
	Commodities []Commodity `yaml:"commodities"`
	Locations   []Location  `yaml:"locations"`
	Ships       []Ship      `yaml:"ships"`
	Milestones  []Milestone `yaml:"milestones"`
}

// Commodity looks up a commodity by id. Returns nil if not found.
func (c *Catalog) Commodity(id string) *Commodity {
	for i := range c.Commodities {
		if c.Commodities[i].ID == id {
			return &c.Commodities[i]
		}
	}
	return nil
}

// Location looks up a location by id. Returns nil if not found.
func (c *Catalog) Location(id string) *Location {
	for i := range c.Locations {
		if c.Locations[i].ID == id {
			return &c.Locations[i]
		}
	}
	return nil
}

// Ship looks up a ship template by id. Returns nil if not found.
func (c *Catalog) Ship(id string) *Ship {
	for i := range c.Ships {
		if c.Ships[i].ID == id {
			return &c.Ships[i]
		}
	}
	return nil
}

// TierStock is the weekly stock envelope for a commodity tier.
// Higher tiers restock in smaller, rarer quantities.
type TierStock struct {
	Min, Max int
}

// StockEnvelope returns the replenishment envelope for a tier.
func StockEnvelope(tier int) TierStock {
	switch tier {
	case 1:
		return TierStock{Min: 6, Max: 240}
	case 2:
		return TierStock{Min: 4, Max: 200}
	case 3:
		return TierStock{Min: 3, Max: 120}
	case 4:
		return TierStock{Min: 2, Max: 40}
	case 5:
		return TierStock{Min: 1, Max: 20}
	case 6:
		return TierStock{Min: 0, Max: 20}
	case 7:
		return TierStock{Min: 0, Max: 10}
	default:
		return TierStock{Min: 0, Max: 5}
	}
}

// Load reads a full catalogue from a YAML file. The file replaces the
// built-in defaults entirely; missing sections fail validation rather
// than silently merging.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks referential integrity between catalogue sections.
func (c *Catalog) Validate() error {
	if len(c.Commodities) == 0 {
		return fmt.Errorf("catalog: no commodities")
	}
	if len(c.Locations) == 0 {
		return fmt.Errorf("catalog: no locations")
	}
	if c.Ship(c.Rules.StarterShipID) == nil {
		return fmt.Errorf("catalog: starter ship %q not defined", c.Rules.StarterShipID)
	}
	if c.Location(c.Rules.StartingLocationID) == nil {
		return fmt.Errorf("catalog: starting location %q not defined", c.Rules.StartingLocationID)
	}
	for _, l := range c.Locations {
		for id := range l.Modifiers {
			if c.Commodity(id) == nil {
				return fmt.Errorf("catalog: location %s references unknown commodity %q", l.ID, id)
			}
		}
		for id := range l.SpecialDemand {
			if c.Commodity(id) == nil {
				return fmt.Errorf("catalog: location %s special demand references unknown commodity %q", l.ID, id)
			}
		}
	}
	for _, m := range c.Milestones {
		if m.UnlocksLocation != "" && c.Location(m.UnlocksLocation) == nil {
			return fmt.Errorf("catalog: milestone %d unlocks unknown location %q", m.Threshold, m.UnlocksLocation)
		}
	}
	for _, s := range c.Ships {
		if s.SaleLocationID != "" && c.Location(s.SaleLocationID) == nil {
			return fmt.Errorf("catalog: ship %s sold at unknown location %q", s.ID, s.SaleLocationID)
		}
	}
	return nil
}
