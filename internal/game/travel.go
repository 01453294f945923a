package game

import (
	"fmt"
	"math"

	"github.com/vraelian/OrbitalTrading/internal/catalog"
)

// TravelTo departs for another location. Fuel is validated before any
// state changes. A random event may interrupt departure, in which case
// the voyage parks behind a pending choice and forceEvent exists so
// the debug surface can trigger that path on demand.
func (s *Session) TravelTo(destinationID string, forceEvent bool) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if st.Travel != nil {
		return nil, ErrInTransit
	}
	if s.cat.Location(destinationID) == nil {
		return nil, ErrUnknownLocation
	}
	if !st.Player.UnlockedLocations[destinationID] {
		return nil, ErrLocationLocked
	}
	if destinationID == st.Player.LocationID {
		return nil, ErrAlreadyHere
	}

	route := st.Routes[st.Player.LocationID][destinationID]
	days := route.Days
	fuelCost := route.FuelCost
	if st.Player.Perks["navigator"] {
		days = roundInt(float64(days) * 0.9)
		fuelCost = roundInt(float64(fuelCost) * 0.9)
	}

	_, shipState := s.activeShip(st)
	if shipState.Fuel < float64(fuelCost) {
		return nil, ErrInsufficientFuel
	}

	st.Travel = &PendingTravel{
		FromID:        st.Player.LocationID,
		DestinationID: destinationID,
		Days:          days,
		FuelCost:      fuelCost,
	}

	if ev := s.rollTravelEvent(st, forceEvent); ev != nil {
		pc := &PendingChoice{EventID: ev.ID, Title: ev.Title, Scenario: ev.Scenario}
		for _, c := range ev.Choices {
			pc.Options = append(pc.Options, c.Title)
		}
		st.PendingChoice = pc
		s.notify(NoticeEvent, ev.Title, ev.Scenario)
		return s.drainNotices(), nil
	}

	s.completeTravel(st)
	return s.drainNotices(), nil
}

// ResolveChoice answers a travel event. The voyage stays parked; call
// ResumeTravel to finish the leg.
func (s *Session) ResolveChoice(choice int) (string, []Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.PendingChoice == nil {
		return "", nil, ErrNoPendingChoice
	}
	ev := eventByID(st.PendingChoice.EventID)
	if ev == nil || choice < 0 || choice >= len(ev.Choices) {
		return "", nil, ErrInvalidChoice
	}

	outcome := s.pickOutcome(ev.Choices[choice].Outcomes)
	narrative := s.applyOutcome(st, outcome, st.Travel)
	st.PendingChoice = nil
	st.SeenEvents[ev.ID] = true
	s.notify(NoticeEvent, ev.Title, narrative)
	return narrative, s.drainNotices(), nil
}

// ResumeTravel completes a voyage that was interrupted by an event.
func (s *Session) ResumeTravel() ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if st.Travel == nil {
		return nil, ErrNotTraveling
	}
	s.completeTravel(st)
	return s.drainNotices(), nil
}

// completeTravel runs the leg to its end: recheck fuel, recompute time
// from event adjustments, burn fuel, advance the clock, then land the
// hull damage and either dock or lose the ship.
func (s *Session) completeTravel(st *State) {
	t := st.Travel
	st.Travel = nil

	days := roundInt(float64(t.Days) * (1 + t.ExtraPct))
	days += t.ExtraDays
	if t.OverrideDays > 0 {
		days = t.OverrideDays
	}
	if days < 1 {
		days = 1
	}

	ship, shipState := s.activeShip(st)

	// Event effects can drain the tank mid-flight, so the departure
	// check alone is not enough. A leg that can no longer be fueled is
	// abandoned at the origin.
	if shipState.Fuel < float64(t.FuelCost) {
		s.notify(NoticeEvent, "Insufficient Fuel",
			fmt.Sprintf("Trip modifications left you without enough fuel. You need %d but only have %d.",
				t.FuelCost, int(shipState.Fuel)))
		s.log.Warn("voyage abandoned",
			"destination", t.DestinationID,
			"fuel", shipState.Fuel,
			"fuel_cost", t.FuelCost)
		return
	}
	decayMod := 1.0
	if st.Player.Perks["navigator"] {
		decayMod = 0.9
	}
	damage := float64(days)*s.cat.Rules.HullDecayPerDay*decayMod +
		t.HullDamagePct/100*ship.MaxHealth

	shipState.Fuel = clamp(shipState.Fuel-float64(t.FuelCost), 0, ship.MaxFuel)
	s.advanceDays(st, days)

	shipState.Health -= damage
	if shipState.Health <= 0 {
		s.destroyShip(st, st.Player.ActiveShipID)
		return
	}
	s.checkHullWarnings(st, ship, shipState)

	st.Player.LocationID = t.DestinationID
	if loc := s.cat.Location(t.DestinationID); loc != nil {
		s.notify(NoticeInfo, "Arrival", fmt.Sprintf("Docked at %s after %d days.", loc.Name, days))
	}
	s.log.Info("arrived",
		"destination", t.DestinationID,
		"days", days,
		"day", st.Day)
}

// advanceDays runs the per-day simulation loop: birthdays, career
// events, the weekly market and interest cycles, intel expiry, and
// passive repair on docked hulls.
func (s *Session) advanceDays(st *State, days int) {
	for i := 0; i < days; i++ {
		st.Day++
		s.checkBirthday(st)
		s.checkAgeEvents(st)

		st.DaysSinceMarket++
		if st.DaysSinceMarket >= s.cat.Rules.MarketInterval {
			s.evolvePrices(st)
			s.recordHistory(st)
			s.replenishStock(st)
			s.applyGarnishment(st)
			s.refreshShipyards(st)
			st.DaysSinceMarket = 0
		}

		st.DaysSinceInterest++
		if st.DaysSinceInterest >= s.cat.Rules.InterestInterval {
			if st.Player.Debt > 0 && st.Player.WeeklyInterest > 0 {
				st.Player.Debt += st.Player.WeeklyInterest
				s.appendLedger(st, TxDebt, st.Player.WeeklyInterest, "Weekly interest accrued")
			}
			st.DaysSinceInterest = 0
		}

		if st.Intel.Active && st.Day > st.Intel.EndDay {
			st.Intel = IntelState{Available: st.Intel.Available}
			s.notify(NoticeInfo, "Intel Expired", "Your market intel has gone stale.")
		}

		for _, id := range st.Player.OwnedShipIDs {
			if id == st.Player.ActiveShipID {
				continue
			}
			ship := s.cat.Ship(id)
			shipState := st.Player.ShipStates[id]
			shipState.Health = clamp(shipState.Health+s.cat.Rules.PassiveRepairRate*ship.MaxHealth, 0, ship.MaxHealth)
		}
	}
}

// applyGarnishment seizes a cut of the player's credits when a loan
// has gone unpaid long enough. Runs inside the weekly market cycle.
func (s *Session) applyGarnishment(st *State) {
	if st.Player.Debt <= 0 || st.Player.DebtStartDay == 0 {
		return
	}
	if st.Day-st.Player.DebtStartDay < s.cat.Rules.GarnishmentDays {
		return
	}
	seized := math.Floor(st.Player.Credits * s.cat.Rules.GarnishmentPercent)
	if seized <= 0 {
		return
	}
	st.Player.Credits -= seized
	s.appendLedger(st, TxGarnish, -int64(seized), "Wages garnished by creditors")
	s.recordTransaction(st, TxGarnish, -int64(seized))
	if !st.Player.Garnished {
		st.Player.Garnished = true
		s.notify(NoticeInfo, "Garnishment Notice",
			"Your creditors have begun garnishing your earnings. Pay off your debt to stop the seizures.")
	}
}

// checkHullWarnings latches low and critical alerts as hull integrity
// crosses 30% and 15%, and releases them once repaired back above.
func (s *Session) checkHullWarnings(st *State, ship *catalog.Ship, shipState *ShipState) {
	pct := shipState.Health / ship.MaxHealth * 100
	switch {
	case pct <= 15:
		if !shipState.AlertCritical {
			shipState.AlertCritical = true
			shipState.AlertLow = true
			s.notify(NoticeHull, "Hull Critical", fmt.Sprintf("The %s's hull is at %.0f%%. One more hard voyage could be its last.", ship.Name, pct))
		}
	case pct <= 30:
		if !shipState.AlertLow {
			shipState.AlertLow = true
			s.notify(NoticeHull, "Hull Low", fmt.Sprintf("The %s's hull is at %.0f%%. Repairs are advised.", ship.Name, pct))
		}
		shipState.AlertCritical = false
	default:
		shipState.AlertLow = false
		shipState.AlertCritical = false
	}
}

// destroyShip removes a hull and everything aboard. Losing the last
// ship ends the game; otherwise command transfers to the next hull in
// the fleet.
func (s *Session) destroyShip(st *State, shipID string) {
	ship := s.cat.Ship(shipID)
	for i, id := range st.Player.OwnedShipIDs {
		if id == shipID {
			st.Player.OwnedShipIDs = append(st.Player.OwnedShipIDs[:i], st.Player.OwnedShipIDs[i+1:]...)
			break
		}
	}
	delete(st.Player.ShipStates, shipID)
	delete(st.Player.Cargo, shipID)

	if st.Player.ActiveShipID != shipID {
		return
	}
	if len(st.Player.OwnedShipIDs) == 0 {
		st.GameOver = true
		st.EndCause = "ship_destroyed"
		st.Player.ActiveShipID = ""
		s.notify(NoticeGameOver, "Ship Lost", fmt.Sprintf("The %s broke apart in the void. Your trading days are over.", ship.Name))
		s.log.Info("game over", "cause", st.EndCause, "day", st.Day)
		return
	}
	st.Player.ActiveShipID = st.Player.OwnedShipIDs[0]
	next := s.cat.Ship(st.Player.ActiveShipID)
	s.notify(NoticeEvent, "Ship Lost", fmt.Sprintf("The %s was destroyed. Your crew transfers to the %s.", ship.Name, next.Name))
}

// AdvanceDays forces the clock forward. Debug surface only.
func (s *Session) AdvanceDays(days int) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	s.advanceDays(st, days)
	return s.drainNotices(), nil
}
