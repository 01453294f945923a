package game

import (
	"math"

	"github.com/vraelian/OrbitalTrading/internal/catalog"
)

// seedPrices sets the opening price for every location and commodity:
// galactic average, perturbed up to 25% either way, scaled by the
// location modifier.
func (s *Session) seedPrices(st *State) {
	for _, loc := range s.cat.Locations {
		market := st.Markets[loc.ID]
		for _, c := range s.cat.Commodities {
			price := c.GalacticAverage() * (1 + (s.nextFloat()-0.5)*0.5) * loc.Modifier(c.ID)
			market.Prices[c.ID] = roundPrice(price)
		}
	}
}

// evolvePrices runs the weekly random walk: a bounded volatility kick
// plus a pull back toward the location-weighted baseline. Prices can
// neither collapse to zero nor run away.
func (s *Session) evolvePrices(st *State) {
	v := s.cat.Rules.PriceVolatility
	k := s.cat.Rules.MeanReversion
	for _, loc := range s.cat.Locations {
		market := st.Markets[loc.ID]
		for _, c := range s.cat.Commodities {
			prev := float64(market.Prices[c.ID])
			baseline := c.GalacticAverage() * loc.Modifier(c.ID)

			kick := prev * (s.nextFloat() - 0.5) * 2 * v
			pull := (baseline - prev) * k
			market.Prices[c.ID] = roundPrice(prev + kick + pull)
		}
	}
}

// price returns the effective unit price, applying the sell-side
// special-demand bonus and any active intel targeting this pair.
func (s *Session) price(st *State, locationID, commodityID string, selling bool) int64 {
	market := st.Markets[locationID]
	p := float64(market.Prices[commodityID])

	loc := s.cat.Location(locationID)
	if selling && loc != nil {
		if sd, ok := loc.SpecialDemand[commodityID]; ok {
			p *= sd.Bonus
		}
	}

	intel := st.Intel
	if intel.Active && intel.LocationID == locationID && intel.CommodityID == commodityID {
		if intel.Depression {
			p *= s.cat.Rules.IntelDepressionMod
		} else {
			p *= s.cat.Rules.IntelDemandMod
		}
	}
	return roundPrice(p)
}

// Price is the read-only lookup exposed to callers.
func (s *Session) Price(locationID, commodityID string, selling bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cat.Location(locationID) == nil {
		return 0, ErrUnknownLocation
	}
	if s.cat.Commodity(commodityID) == nil {
		return 0, ErrUnknownCommodity
	}
	return s.price(s.state, locationID, commodityID, selling), nil
}

// replenishStock redraws commodity stock from the tier envelope.
// Exporter locations carry half again as much; special-demand goods
// are never stocked, only bought.
func (s *Session) replenishStock(st *State) {
	for _, loc := range s.cat.Locations {
		market := st.Markets[loc.ID]
		for _, c := range s.cat.Commodities {
			env := catalog.StockEnvelope(c.Tier)
			qty := skewedRandom(env.Min, env.Max, s.nextFloat)
			if loc.Modifier(c.ID) > 1.0 {
				qty = qty * 3 / 2
			}
			if _, ok := loc.SpecialDemand[c.ID]; ok {
				qty = 0
			}
			if qty < 0 {
				qty = 0
			}
			market.Stock[c.ID] = qty
		}
	}
}

// recordHistory appends the current effective price for every pair and
// trims to the retention window.
func (s *Session) recordHistory(st *State) {
	keep := s.cat.Rules.PriceHistoryLength
	for _, loc := range s.cat.Locations {
		market := st.Markets[loc.ID]
		for _, c := range s.cat.Commodities {
			h := append(market.History[c.ID], PricePoint{Day: st.Day, Price: s.price(st, loc.ID, c.ID, false)})
			if len(h) > keep {
				h = h[len(h)-keep:]
			}
			market.History[c.ID] = h
		}
	}
}

func roundPrice(p float64) int64 {
	r := int64(math.Round(p))
	if r < 1 {
		return 1
	}
	return r
}
