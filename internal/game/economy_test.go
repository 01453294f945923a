package game

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vraelian/OrbitalTrading/internal/catalog"
)

func newTestSession(seed int64) *Session {
	cat := catalog.Default()
	cat.Rules.RandomEventChance = 0
	return New(cat, slog.New(slog.NewTextHandler(io.Discard, nil)), seed)
}

func TestSeededPricesNeverBelowOne(t *testing.T) {
	s := newTestSession(1)
	for locID, market := range s.state.Markets {
		for cID, p := range market.Prices {
			if p < 1 {
				t.Fatalf("price at %s for %s is %d, want >= 1", locID, cID, p)
			}
		}
	}
}

func TestZeroVolatilityConvergesToBaseline(t *testing.T) {
	cat := catalog.Default()
	cat.Rules.PriceVolatility = 0
	s := New(cat, slog.New(slog.NewTextHandler(io.Discard, nil)), 7)

	for i := 0; i < 2000; i++ {
		s.evolvePrices(s.state)
	}

	for _, loc := range cat.Locations {
		market := s.state.Markets[loc.ID]
		for _, c := range cat.Commodities {
			baseline := c.GalacticAverage() * loc.Modifier(c.ID)
			got := float64(market.Prices[c.ID])
			if diff := got - baseline; diff > 60 || diff < -60 {
				t.Fatalf("%s at %s: price %v did not converge to baseline %v", c.ID, loc.ID, got, baseline)
			}
		}
	}
}

func TestEvolvedPricesStayPositive(t *testing.T) {
	s := newTestSession(42)
	for i := 0; i < 200; i++ {
		s.evolvePrices(s.state)
	}
	for locID, market := range s.state.Markets {
		for cID, p := range market.Prices {
			if p < 1 {
				t.Fatalf("price at %s for %s fell to %d", locID, cID, p)
			}
		}
	}
}

func TestSpecialDemandRaisesSellPriceOnly(t *testing.T) {
	s := newTestSession(3)
	st := s.state

	// Cryo pods carry a special demand bonus at Mars.
	st.Markets["loc_mars"].Prices["cryo_pods"] = 1000000
	buy := s.price(st, "loc_mars", "cryo_pods", false)
	sell := s.price(st, "loc_mars", "cryo_pods", true)
	if buy != 1000000 {
		t.Fatalf("buy price = %d, want 1000000", buy)
	}
	if sell != 1750000 {
		t.Fatalf("sell price = %d, want 1750000", sell)
	}
}

func TestIntelModifiesTargetPrice(t *testing.T) {
	s := newTestSession(4)
	st := s.state
	st.Markets["loc_luna"].Prices["hydroponics"] = 8000
	st.Intel = IntelState{
		Active:      true,
		LocationID:  "loc_luna",
		CommodityID: "hydroponics",
		EndDay:      st.Day + 100,
		Available:   st.Intel.Available,
	}
	if got := s.price(st, "loc_luna", "hydroponics", false); got != 14400 {
		t.Fatalf("demand intel price = %d, want 14400", got)
	}
	st.Intel.Depression = true
	if got := s.price(st, "loc_luna", "hydroponics", false); got != 4000 {
		t.Fatalf("depression intel price = %d, want 4000", got)
	}
	// Other pairs are untouched.
	st.Markets["loc_mars"].Prices["hydroponics"] = 8000
	if got := s.price(st, "loc_mars", "hydroponics", false); got != 8000 {
		t.Fatalf("unrelated market price = %d, want 8000", got)
	}
}

func TestReplenishStockRespectsTierEnvelopes(t *testing.T) {
	s := newTestSession(9)
	st := s.state
	s.replenishStock(st)
	for _, loc := range s.cat.Locations {
		market := st.Markets[loc.ID]
		for _, c := range s.cat.Commodities {
			qty := market.Stock[c.ID]
			if qty < 0 {
				t.Fatalf("negative stock for %s at %s", c.ID, loc.ID)
			}
			if _, special := loc.SpecialDemand[c.ID]; special && qty != 0 {
				t.Fatalf("special demand good %s stocked at %s", c.ID, loc.ID)
			}
			env := catalog.StockEnvelope(c.Tier)
			limit := env.Max
			if loc.Modifier(c.ID) > 1.0 {
				limit = limit * 3 / 2
			}
			if qty > limit {
				t.Fatalf("stock %d for %s at %s exceeds envelope max %d", qty, c.ID, loc.ID, limit)
			}
		}
	}
}

func TestPriceHistoryTrimmed(t *testing.T) {
	cat := catalog.Default()
	cat.Rules.PriceHistoryLength = 5
	s := New(cat, slog.New(slog.NewTextHandler(io.Discard, nil)), 11)
	for i := 0; i < 20; i++ {
		s.recordHistory(s.state)
	}
	for _, market := range s.state.Markets {
		for cID, h := range market.History {
			if len(h) > 5 {
				t.Fatalf("history for %s has %d points, want <= 5", cID, len(h))
			}
		}
	}
}

func TestSkewedRandomStaysInRange(t *testing.T) {
	s := newTestSession(5)
	for i := 0; i < 1000; i++ {
		got := skewedRandom(6, 240, s.nextFloat)
		if got < 6 || got > 240 {
			t.Fatalf("skewedRandom out of range: %d", got)
		}
	}
	if got := skewedRandom(4, 4, s.nextFloat); got != 4 {
		t.Fatalf("degenerate range returned %d, want 4", got)
	}
}
