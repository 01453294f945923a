package game

import (
	"fmt"
	"math"
	"sort"
)

// EffectKind names one mutation an event outcome can apply.
type EffectKind string

const (
	EffectCredits                EffectKind = "credits"
	EffectFuel                   EffectKind = "fuel"
	EffectHullDamagePct          EffectKind = "hull_damage_percent"
	EffectTravelTimeAdd          EffectKind = "travel_time_add"
	EffectTravelTimeAddPct       EffectKind = "travel_time_add_percent"
	EffectSetTravelTime          EffectKind = "set_travel_time"
	EffectAddDebt                EffectKind = "add_debt"
	EffectUnlockLocation         EffectKind = "unlock_location"
	EffectAddCargo               EffectKind = "add_cargo"
	EffectLoseCargo              EffectKind = "lose_cargo"
	EffectLoseRandomCargoPct     EffectKind = "lose_random_cargo_percent"
	EffectSellRandomCargoPremium EffectKind = "sell_random_cargo_premium"
	EffectNewRandomDestination   EffectKind = "set_new_random_destination"
	EffectSpaceRace              EffectKind = "resolve_space_race"
	EffectAdriftPassenger        EffectKind = "resolve_adrift_passenger"
)

// Effect is one field of an outcome. Which fields are meaningful
// depends on Kind; the rest stay zero.
type Effect struct {
	Kind        EffectKind
	Amount      float64
	Lo, Hi      float64
	CommodityID string
	Quantity    int
	LocationID  string
}

// Outcome is one weighted branch of an event choice.
type Outcome struct {
	Chance    float64
	Narrative string
	Effects   []Effect
}

// applyOutcome mutates player state and the pending leg for every
// effect of the chosen outcome, then returns the narrative to show.
// Composite effects may replace the narrative entirely.
func (s *Session) applyOutcome(st *State, out Outcome, travel *PendingTravel) string {
	narrative := out.Narrative
	for _, eff := range out.Effects {
		if msg := s.applyEffect(st, eff, travel); msg != "" {
			narrative = msg
		}
	}
	return narrative
}

func (s *Session) applyEffect(st *State, eff Effect, travel *PendingTravel) string {
	switch eff.Kind {
	case EffectCredits:
		st.Player.Credits += eff.Amount
		if st.Player.Credits < 0 {
			st.Player.Credits = 0
		}
		s.appendLedger(st, TxEvent, int64(eff.Amount), "Event outcome")
		s.recordTransaction(st, TxEvent, int64(eff.Amount))

	case EffectFuel:
		ship, shipState := s.activeShip(st)
		shipState.Fuel = clamp(shipState.Fuel+eff.Amount, 0, ship.MaxFuel)

	case EffectHullDamagePct:
		pct := eff.Amount
		if eff.Hi > eff.Lo {
			pct = eff.Lo + s.nextFloat()*(eff.Hi-eff.Lo)
		}
		travel.HullDamagePct += pct

	case EffectTravelTimeAdd:
		travel.ExtraDays += int(eff.Amount)

	case EffectTravelTimeAddPct:
		travel.ExtraPct += eff.Amount

	case EffectSetTravelTime:
		travel.OverrideDays = int(eff.Amount)

	case EffectAddDebt:
		if st.Player.Debt == 0 {
			st.Player.DebtStartDay = st.Day
		}
		st.Player.Debt += int64(eff.Amount)
		st.Player.WeeklyInterest += int64(math.Ceil(eff.Amount * s.cat.Rules.EventDebtInterest))
		s.appendLedger(st, TxDebt, int64(eff.Amount), "Debt incurred")

	case EffectUnlockLocation:
		st.Player.UnlockedLocations[eff.LocationID] = true

	case EffectAddCargo:
		ship, _ := s.activeShip(st)
		inv := s.activeInventory(st)
		if inv.Used()+eff.Quantity > ship.CargoCapacity {
			return "Your hold is too full to take the cargo aboard. You leave it behind."
		}
		s.addCargo(inv, eff.CommodityID, eff.Quantity, 0)

	case EffectLoseCargo:
		inv := s.activeInventory(st)
		if lot, ok := inv[eff.CommodityID]; ok {
			lot.Quantity -= eff.Quantity
			if lot.Quantity <= 0 {
				delete(inv, eff.CommodityID)
			}
		}

	case EffectLoseRandomCargoPct:
		inv := s.activeInventory(st)
		id := s.randomCargoID(inv)
		if id == "" {
			return "Your empty hold offers the raiders nothing. They let you pass."
		}
		lot := inv[id]
		lost := int(math.Ceil(float64(lot.Quantity) * eff.Amount))
		lot.Quantity -= lost
		if lot.Quantity <= 0 {
			delete(inv, id)
		}

	case EffectSellRandomCargoPremium:
		inv := s.activeInventory(st)
		id := s.randomCargoID(inv)
		if id == "" {
			return "You have no cargo to offer. The buyer moves on, disappointed."
		}
		c := s.cat.Commodity(id)
		lot := inv[id]
		proceeds := int64(c.GalacticAverage()*3) * int64(lot.Quantity)
		st.Player.Credits += float64(proceeds)
		s.appendLedger(st, TxEvent, proceeds, fmt.Sprintf("Sold %dx %s at a premium", lot.Quantity, c.Name))
		s.recordTransaction(st, TxEvent, proceeds)
		delete(inv, id)
		return fmt.Sprintf("The collector pays triple the galactic average for your %s. %s credits richer, you fly on.", c.Name, formatCredits(proceeds))

	case EffectNewRandomDestination:
		ids := s.unlockedLocationIDs(st)
		var candidates []string
		for _, id := range ids {
			if id != travel.FromID {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) > 0 {
			travel.DestinationID = candidates[s.rng.Intn(len(candidates))]
		}

	case EffectSpaceRace:
		return s.resolveSpaceRace(st)

	case EffectAdriftPassenger:
		return s.resolveAdriftPassenger(st)

	default:
		s.log.Warn("unknown event effect", "kind", string(eff.Kind))
	}
	return ""
}

// raceWinChance is keyed by hull class. Sleeker classes win more often.
var raceWinChance = map[string]float64{
	"S": 0.85,
	"A": 0.70,
	"B": 0.55,
	"C": 0.40,
	"O": 0.95,
}

func (s *Session) resolveSpaceRace(st *State) string {
	ship, _ := s.activeShip(st)
	wager := math.Floor(st.Player.Credits * 0.8)
	chance, ok := raceWinChance[ship.Class]
	if !ok {
		chance = 0.40
	}
	if s.nextFloat() < chance {
		st.Player.Credits += wager
		s.appendLedger(st, TxEvent, int64(wager), "Won a spontaneous race")
		s.recordTransaction(st, TxEvent, int64(wager))
		return fmt.Sprintf("Your %s screams past the challenger at the finish line. You collect %s credits in winnings.", ship.Name, formatCredits(int64(wager)))
	}
	st.Player.Credits -= wager
	s.appendLedger(st, TxEvent, -int64(wager), "Lost a spontaneous race")
	s.recordTransaction(st, TxEvent, -int64(wager))
	return fmt.Sprintf("The challenger leaves you in their exhaust plume. You lose %s credits.", formatCredits(int64(wager)))
}

func (s *Session) resolveAdriftPassenger(st *State) string {
	ship, shipState := s.activeShip(st)
	shipState.Fuel = clamp(shipState.Fuel-30, 0, ship.MaxFuel)

	inv := s.activeInventory(st)
	space := ship.CargoCapacity - inv.Used()
	switch {
	case space >= 40:
		s.addCargo(inv, "cybernetics", 40, 0)
		return "The grateful passenger unloads forty crates of cybernetics into your hold as thanks."
	case st.Player.Debt > 0:
		forgiven := int64(math.Floor(float64(st.Player.Debt) * 0.20))
		st.Player.Debt -= forgiven
		s.appendLedger(st, TxDebt, forgiven, "Debt forgiven")
		return fmt.Sprintf("The passenger turns out to hold your loan note. They forgive %s credits of your debt.", formatCredits(forgiven))
	default:
		bonus := math.Floor(st.Player.Credits * 0.05)
		st.Player.Credits += bonus
		s.appendLedger(st, TxEvent, int64(bonus), "Passenger's reward")
		s.recordTransaction(st, TxEvent, int64(bonus))
		return fmt.Sprintf("The passenger wires you %s credits the moment you dock them at a relay.", formatCredits(int64(bonus)))
	}
}

// randomCargoID picks a uniformly random held commodity, or "" when
// the hold is empty. IDs are sorted first so the draw is reproducible
// for a given seed.
func (s *Session) randomCargoID(inv Inventory) string {
	var ids []string
	for id, lot := range inv {
		if lot.Quantity > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return ids[s.rng.Intn(len(ids))]
}

// addCargo merges quantity into a lot, folding cost into the average.
func (s *Session) addCargo(inv Inventory, commodityID string, quantity int, cost float64) {
	lot, ok := inv[commodityID]
	if !ok {
		lot = &CargoLot{}
		inv[commodityID] = lot
	}
	total := float64(lot.Quantity)*lot.AvgCost + cost
	lot.Quantity += quantity
	if lot.Quantity > 0 {
		lot.AvgCost = total / float64(lot.Quantity)
	}
}

func formatCredits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if n < 0 {
		return "-" + string(out)
	}
	return string(out)
}
