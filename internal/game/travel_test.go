package game

import (
	"errors"
	"testing"
)

func TestTravelRejectsInsufficientFuel(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Routes["loc_mars"]["loc_earth"] = Route{Days: 14, FuelCost: 20}
	st.Player.ShipStates["starter"].Fuel = 15

	_, err := s.TravelTo("loc_earth", false)
	if !errors.Is(err, ErrInsufficientFuel) {
		t.Fatalf("err = %v, want ErrInsufficientFuel", err)
	}
	if st.Player.LocationID != "loc_mars" {
		t.Fatalf("location changed to %s on failed travel", st.Player.LocationID)
	}
	if st.Day != 1 {
		t.Fatalf("day advanced to %d on failed travel", st.Day)
	}
	if st.Player.ShipStates["starter"].Fuel != 15 {
		t.Fatalf("fuel changed on failed travel")
	}
}

func TestTravelValidation(t *testing.T) {
	s := newTestSession(1)
	if _, err := s.TravelTo("loc_nowhere", false); !errors.Is(err, ErrUnknownLocation) {
		t.Fatalf("unknown destination: err = %v", err)
	}
	if _, err := s.TravelTo("loc_pluto", false); !errors.Is(err, ErrLocationLocked) {
		t.Fatalf("locked destination: err = %v", err)
	}
	if _, err := s.TravelTo("loc_mars", false); !errors.Is(err, ErrAlreadyHere) {
		t.Fatalf("current location: err = %v", err)
	}
}

func TestTravelAdvancesClockAndDecaysHull(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Routes["loc_mars"]["loc_earth"] = Route{Days: 14, FuelCost: 20}

	if _, err := s.TravelTo("loc_earth", false); err != nil {
		t.Fatalf("travel failed: %v", err)
	}
	if st.Player.LocationID != "loc_earth" {
		t.Fatalf("location = %s, want loc_earth", st.Player.LocationID)
	}
	if st.Day != 15 {
		t.Fatalf("day = %d, want 15", st.Day)
	}
	if got := st.Player.ShipStates["starter"].Fuel; got != 80 {
		t.Fatalf("fuel = %v, want 80", got)
	}
	health := st.Player.ShipStates["starter"].Health
	if health < 97.9 || health > 98.1 {
		t.Fatalf("health = %v, want ~98 after 14 days of decay", health)
	}
}

func TestWeeklyMarketTickFiresTwiceOverFourteenDays(t *testing.T) {
	s := newTestSession(1)
	before := len(s.state.Markets["loc_mars"].History["water_ice"])

	if _, err := s.AdvanceDays(14); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	after := len(s.state.Markets["loc_mars"].History["water_ice"])
	if after-before != 2 {
		t.Fatalf("market tick fired %d times over 14 days, want 2", after-before)
	}
	if s.state.DaysSinceMarket != 0 {
		t.Fatalf("market counter = %d after tick, want 0", s.state.DaysSinceMarket)
	}
	// Interest compounds weekly on the starting debt.
	if s.state.Player.Debt != 25250 {
		t.Fatalf("debt = %d after two interest cycles, want 25250", s.state.Player.Debt)
	}
}

func TestDestructionOfLastShipEndsGame(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Routes["loc_mars"]["loc_earth"] = Route{Days: 14, FuelCost: 10}
	st.Player.ShipStates["starter"].Health = 1

	if _, err := s.TravelTo("loc_earth", false); err != nil {
		t.Fatalf("travel failed: %v", err)
	}
	if !st.GameOver {
		t.Fatal("expected game over after losing the only ship")
	}
	if st.Player.LocationID != "loc_mars" {
		t.Fatalf("location = %s, destroyed ship must not arrive", st.Player.LocationID)
	}
	if _, err := s.Buy("water_ice", 1); !errors.Is(err, ErrGameOver) {
		t.Fatalf("post-game mutation err = %v, want ErrGameOver", err)
	}
}

func TestDestructionPromotesNextShip(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	s.grantShip(st, "hauler_c1")
	st.Routes["loc_mars"]["loc_earth"] = Route{Days: 14, FuelCost: 10}
	st.Player.ShipStates["starter"].Health = 1

	if _, err := s.TravelTo("loc_earth", false); err != nil {
		t.Fatalf("travel failed: %v", err)
	}
	if st.GameOver {
		t.Fatal("game ended despite a surviving hull")
	}
	if st.Player.ActiveShipID != "hauler_c1" {
		t.Fatalf("active ship = %s, want hauler_c1", st.Player.ActiveShipID)
	}
	if _, ok := st.Player.ShipStates["starter"]; ok {
		t.Fatal("destroyed ship state not removed")
	}
	if st.Player.LocationID != "loc_mars" {
		t.Fatalf("location = %s, want loc_mars", st.Player.LocationID)
	}
}

func TestForcedEventParksTravelUntilResolved(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Routes["loc_mars"]["loc_earth"] = Route{Days: 10, FuelCost: 10}

	if _, err := s.TravelTo("loc_earth", true); err != nil {
		t.Fatalf("travel failed: %v", err)
	}
	if st.PendingChoice == nil {
		t.Fatal("expected a pending choice from the forced event")
	}
	if st.Travel == nil {
		t.Fatal("expected the voyage to be parked")
	}
	if st.Day != 1 {
		t.Fatalf("day = %d, clock must not move while parked", st.Day)
	}

	if _, err := s.Buy("water_ice", 1); !errors.Is(err, ErrAwaitingChoice) {
		t.Fatalf("buy while parked: err = %v, want ErrAwaitingChoice", err)
	}
	if _, err := s.TravelTo("loc_luna", false); !errors.Is(err, ErrAwaitingChoice) {
		t.Fatalf("second travel while parked: err = %v, want ErrAwaitingChoice", err)
	}
	if _, _, err := s.ResolveChoice(99); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("bad choice index: err = %v, want ErrInvalidChoice", err)
	}

	narrative, _, err := s.ResolveChoice(0)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if narrative == "" {
		t.Fatal("expected a narrative from the outcome")
	}
	if st.PendingChoice != nil {
		t.Fatal("choice not cleared after resolution")
	}
	if st.Travel == nil {
		t.Fatal("voyage must stay parked until resumed")
	}

	if _, err := s.ResumeTravel(); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if st.Travel != nil {
		t.Fatal("voyage still pending after resume")
	}
	if st.Player.LocationID != "loc_earth" && !st.GameOver {
		t.Fatalf("location = %s after resume, want loc_earth", st.Player.LocationID)
	}
}

func TestResumeWithoutVoyage(t *testing.T) {
	s := newTestSession(1)
	if _, err := s.ResumeTravel(); !errors.Is(err, ErrNotTraveling) {
		t.Fatalf("err = %v, want ErrNotTraveling", err)
	}
	if _, _, err := s.ResolveChoice(0); !errors.Is(err, ErrNoPendingChoice) {
		t.Fatalf("err = %v, want ErrNoPendingChoice", err)
	}
}

func TestResumeAbandonsVoyageWhenEventsDrainFuel(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	day := st.Day
	st.Travel = &PendingTravel{FromID: "loc_mars", DestinationID: "loc_earth", Days: 5, FuelCost: 20}
	st.Player.ShipStates[st.Player.ActiveShipID].Fuel = 5

	notices, err := s.ResumeTravel()
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if st.Player.LocationID != "loc_mars" {
		t.Fatalf("location = %s, want loc_mars after an abandoned voyage", st.Player.LocationID)
	}
	if st.Day != day {
		t.Fatalf("day = %d, want %d; abandoned voyage must not advance the clock", st.Day, day)
	}
	if st.Travel != nil {
		t.Fatal("voyage still pending after abandonment")
	}
	if fuel := st.Player.ShipStates[st.Player.ActiveShipID].Fuel; fuel != 5 {
		t.Fatalf("fuel = %v, want 5 untouched", fuel)
	}
	found := false
	for _, n := range notices {
		if n.Title == "Insufficient Fuel" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no fuel warning in notices: %+v", notices)
	}
}

func TestGarnishmentAfterLongDefault(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Player.DebtStartDay = 1
	st.Player.Credits = 100000

	if _, err := s.AdvanceDays(185); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if !st.Player.Garnished {
		t.Fatal("expected garnishment flag after 180 days in default")
	}
	if st.Player.Credits >= 100000 {
		t.Fatalf("credits = %v, expected seizures to reduce them", st.Player.Credits)
	}
	found := false
	for _, e := range st.Ledger {
		if e.Type == TxGarnish {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("no garnishment ledger entry recorded")
	}
}

func TestStartingDebtIsNeverGarnished(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	st.Player.Credits = 100000

	if _, err := s.AdvanceDays(200); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if st.Player.Garnished {
		t.Fatal("starting debt must not trigger garnishment")
	}
}

func TestPassiveRepairOnDockedShips(t *testing.T) {
	s := newTestSession(1)
	st := s.state
	s.grantShip(st, "hauler_c1")
	st.Player.ShipStates["hauler_c1"].Health = 100
	st.Player.ShipStates["starter"].Health = 50

	if _, err := s.AdvanceDays(5); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	// The inactive hauler heals 2% of max per day; the active ship does not.
	if got := st.Player.ShipStates["hauler_c1"].Health; got != 115 {
		t.Fatalf("docked ship health = %v, want 115", got)
	}
	if got := st.Player.ShipStates["starter"].Health; got != 50 {
		t.Fatalf("active ship health = %v, want 50", got)
	}
}
