package game

import (
	"testing"
)

func TestSameDayTradesConsolidate(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	market := st.Markets["loc_mars"]
	market.Prices["water_ice"] = 100
	market.Stock["water_ice"] = 40
	st.Player.Credits = 10000

	if _, err := s.Buy("water_ice", 3); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	if _, err := s.Buy("water_ice", 5); err != nil {
		t.Fatalf("second buy: %v", err)
	}

	if len(st.Ledger) != 1 {
		t.Fatalf("ledger has %d entries, want 1 consolidated", len(st.Ledger))
	}
	e := st.Ledger[0]
	if e.Description != "Bought 8x Water Ice" {
		t.Fatalf("description = %q, want %q", e.Description, "Bought 8x Water Ice")
	}
	if e.Amount != -800 {
		t.Fatalf("amount = %d, want -800", e.Amount)
	}
	if e.Balance != 9200 {
		t.Fatalf("balance = %d, want 9200", e.Balance)
	}
}

func TestOppositeDirectionsDoNotMerge(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	market := st.Markets["loc_mars"]
	market.Prices["water_ice"] = 100
	market.Stock["water_ice"] = 40
	st.Player.Credits = 10000

	if _, err := s.Buy("water_ice", 4); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if _, err := s.Sell("water_ice", 2); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if _, err := s.Buy("water_ice", 1); err != nil {
		t.Fatalf("second buy: %v", err)
	}

	if len(st.Ledger) != 3 {
		t.Fatalf("ledger has %d entries, want 3", len(st.Ledger))
	}
	if st.Ledger[0].Description != "Bought 4x Water Ice" {
		t.Fatalf("entry 0 = %q", st.Ledger[0].Description)
	}
	if st.Ledger[1].Description != "Sold 2x Water Ice" {
		t.Fatalf("entry 1 = %q", st.Ledger[1].Description)
	}
	if st.Ledger[2].Description != "Bought 1x Water Ice" {
		t.Fatalf("entry 2 = %q", st.Ledger[2].Description)
	}
}

func TestDifferentDaysDoNotMerge(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	market := st.Markets["loc_mars"]
	market.Prices["water_ice"] = 100
	market.Stock["water_ice"] = 40
	st.Player.Credits = 10000

	if _, err := s.Buy("water_ice", 2); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if _, err := s.AdvanceDays(1); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := s.Buy("water_ice", 2); err != nil {
		t.Fatalf("next-day buy: %v", err)
	}

	if len(st.Ledger) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(st.Ledger))
	}
}

func TestServiceTicksAccumulate(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Player.Credits = 10000
	st.Player.ShipStates["starter"].Fuel = 10

	for i := 0; i < 3; i++ {
		if err := s.RefuelTick(); err != nil {
			t.Fatalf("refuel tick %d: %v", i, err)
		}
	}

	if len(st.Ledger) != 1 {
		t.Fatalf("ledger has %d entries, want 1 accumulated fuel entry", len(st.Ledger))
	}
	// Mars pumps at 450 per ten units; three five-unit ticks cost 675.
	if st.Ledger[0].Amount != -675 {
		t.Fatalf("fuel amount = %d, want -675", st.Ledger[0].Amount)
	}
	if st.Ledger[0].Type != TxFuel {
		t.Fatalf("entry type = %q, want fuel", st.Ledger[0].Type)
	}
}

func TestLoanEntriesNeverMerge(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Player.Debt = 0
	st.Player.WeeklyInterest = 0

	if _, err := s.TakeLoan(0); err != nil {
		t.Fatalf("take loan: %v", err)
	}
	// Fee and principal land as two separate loan entries.
	if len(st.Ledger) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(st.Ledger))
	}
	if st.Ledger[0].Amount != -600 || st.Ledger[1].Amount != 10000 {
		t.Fatalf("loan amounts = %d, %d; want -600, 10000", st.Ledger[0].Amount, st.Ledger[1].Amount)
	}
}
