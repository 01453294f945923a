package game

import (
	"fmt"
	"math"
)

// Buy purchases a commodity at the current location's buy price.
func (s *Session) Buy(commodityID string, quantity int) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	c := s.cat.Commodity(commodityID)
	if c == nil {
		return nil, ErrUnknownCommodity
	}
	if c.UnlockLevel > st.Player.UnlockLevel {
		return nil, ErrTierLocked
	}

	market := st.Markets[st.Player.LocationID]
	if market.Stock[commodityID] <= 0 || quantity > market.Stock[commodityID] {
		return nil, ErrStockDepleted
	}

	ship, _ := s.activeShip(st)
	inv := s.activeInventory(st)
	if inv.Used()+quantity > ship.CargoCapacity {
		return nil, ErrCargoFull
	}

	price := s.price(st, st.Player.LocationID, commodityID, false)
	cost := price * int64(quantity)
	if st.Player.Credits < float64(cost) {
		return nil, ErrInsufficientFunds
	}

	market.Stock[commodityID] -= quantity
	st.Player.Credits -= float64(cost)
	s.addCargo(inv, commodityID, quantity, float64(cost))

	s.logTrade(st, c.Name, quantity, -cost)
	s.recordTransaction(st, TxTrade, -cost)
	s.checkMilestones(st)
	s.log.Info("bought",
		"commodity", commodityID,
		"quantity", quantity,
		"price", price,
		"day", st.Day)
	return s.drainNotices(), nil
}

// Sell liquidates cargo at the current location's sell price. Profit
// above the lot's average cost earns the captain's trade bonuses.
func (s *Session) Sell(commodityID string, quantity int) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	c := s.cat.Commodity(commodityID)
	if c == nil {
		return nil, ErrUnknownCommodity
	}

	inv := s.activeInventory(st)
	lot, ok := inv[commodityID]
	if !ok || lot.Quantity < quantity {
		return nil, ErrInsufficientCargo
	}

	market := st.Markets[st.Player.LocationID]
	market.Stock[commodityID] += quantity

	price := s.price(st, st.Player.LocationID, commodityID, true)
	saleValue := float64(price * int64(quantity))

	profit := saleValue - lot.AvgCost*float64(quantity)
	if profit > 0 {
		bonus := st.Player.ProfitBonus
		if st.Player.Perks["trademaster"] {
			bonus += 0.05
		}
		saleValue += profit * bonus
	}

	st.Player.Credits += saleValue
	lot.Quantity -= quantity
	if lot.Quantity == 0 {
		delete(inv, commodityID)
	}

	proceeds := int64(math.Round(saleValue))
	s.logTrade(st, c.Name, quantity, proceeds)
	s.recordTransaction(st, TxTrade, proceeds)
	s.checkMilestones(st)
	s.log.Info("sold",
		"commodity", commodityID,
		"quantity", quantity,
		"price", price,
		"day", st.Day)
	return s.drainNotices(), nil
}

// RefuelTick buys one increment of fuel at the local pump price. The
// Venetian Syndicate perk discounts fuel at Venus.
func (s *Session) RefuelTick() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return err
	}
	ship, shipState := s.activeShip(st)
	if shipState.Fuel >= ship.MaxFuel {
		return ErrFuelFull
	}

	loc := s.cat.Location(st.Player.LocationID)
	cost := float64(loc.FuelPrice) * s.cat.Rules.FuelUnitsPerTick / 10
	if st.Player.Perks["venetian_syndicate"] && st.Player.LocationID == "loc_venus" {
		cost *= 0.25
	}
	if st.Player.Credits < cost {
		return ErrInsufficientFunds
	}

	st.Player.Credits -= cost
	shipState.Fuel = clamp(shipState.Fuel+s.cat.Rules.FuelUnitsPerTick, 0, ship.MaxFuel)
	s.logService(st, TxFuel, -int64(math.Round(cost)), "Refueled ship")
	s.recordTransaction(st, TxFuel, -int64(math.Round(cost)))
	return nil
}

// RepairTick restores one increment of hull integrity for credits.
func (s *Session) RepairTick() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return err
	}
	ship, shipState := s.activeShip(st)
	if shipState.Health >= ship.MaxHealth {
		return ErrHullIntact
	}

	heal := ship.MaxHealth * s.cat.Rules.RepairPercentPerTick
	cost := heal * s.cat.Rules.RepairCostPerHP
	if st.Player.Perks["venetian_syndicate"] && st.Player.LocationID == "loc_venus" {
		cost *= 0.25
	}
	if st.Player.Credits < cost {
		return ErrInsufficientFunds
	}

	st.Player.Credits -= cost
	shipState.Health = clamp(shipState.Health+heal, 0, ship.MaxHealth)
	s.checkHullWarnings(st, ship, shipState)
	s.logService(st, TxRepair, -int64(math.Round(cost)), "Hull repairs")
	s.recordTransaction(st, TxRepair, -int64(math.Round(cost)))
	return nil
}

// LoanOffer is one financing package from the station broker.
type LoanOffer struct {
	Principal      int64 `json:"principal"`
	Fee            int64 `json:"fee"`
	WeeklyInterest int64 `json:"weekly_interest"`
}

// LoanOffers lists the packages currently available: a fixed small
// loan and a larger one scaled to the player's present worth.
func (s *Session) LoanOffers() []LoanOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	dynamic := int64(math.Floor(s.state.Player.Credits * 3.5))
	return []LoanOffer{
		{Principal: 10000, Fee: 600, WeeklyInterest: 125},
		{Principal: dynamic, Fee: dynamic / 10, WeeklyInterest: dynamic / 100},
	}
}

// TakeLoan accepts one of the current offers by index. Only one loan
// may be outstanding at a time and the financing fee is paid up front.
func (s *Session) TakeLoan(offer int) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if st.Player.Debt > 0 {
		return nil, ErrDebtOutstanding
	}
	dynamic := int64(math.Floor(st.Player.Credits * 3.5))
	offers := []LoanOffer{
		{Principal: 10000, Fee: 600, WeeklyInterest: 125},
		{Principal: dynamic, Fee: dynamic / 10, WeeklyInterest: dynamic / 100},
	}
	if offer < 0 || offer >= len(offers) {
		return nil, ErrInvalidChoice
	}
	o := offers[offer]
	if st.Player.Credits < float64(o.Fee) {
		return nil, ErrInsufficientFunds
	}

	st.Player.Credits -= float64(o.Fee)
	s.appendLedger(st, TxLoan, -o.Fee, "Loan financing fee")
	s.recordTransaction(st, TxLoan, -o.Fee)

	st.Player.Credits += float64(o.Principal)
	s.appendLedger(st, TxLoan, o.Principal, fmt.Sprintf("Loan of %s credits acquired", formatCredits(o.Principal)))
	s.recordTransaction(st, TxLoan, o.Principal)

	st.Player.Debt = o.Principal
	st.Player.WeeklyInterest = o.WeeklyInterest
	st.Player.DebtStartDay = st.Day
	st.Player.Garnished = false

	s.notify(NoticeInfo, "Loan Acquired",
		fmt.Sprintf("You've acquired a loan of %s credits. A financing fee of %s was deducted.",
			formatCredits(o.Principal), formatCredits(o.Fee)))
	return s.drainNotices(), nil
}

// PayDebt settles the outstanding loan in full. Partial payments are
// not accepted.
func (s *Session) PayDebt() ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if st.Player.Debt <= 0 {
		return nil, ErrNoDebt
	}
	if st.Player.Credits < float64(st.Player.Debt) {
		return nil, ErrInsufficientFunds
	}

	amount := st.Player.Debt
	st.Player.Credits -= float64(amount)
	st.Player.Debt = 0
	st.Player.WeeklyInterest = 0
	st.Player.DebtStartDay = 0
	s.appendLedger(st, TxLoan, -amount, "Debt paid in full")
	s.recordTransaction(st, TxLoan, -amount)
	s.notify(NoticeInfo, "Debt Cleared", "Your creditors are satisfied. You fly free of obligation.")
	return s.drainNotices(), nil
}

// BuyIntel purchases a market tip at the current location. The broker
// takes a fifth of the player's credits and points them at a demand
// spike in another unlocked market.
func (s *Session) BuyIntel() ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if st.Intel.Active {
		return nil, ErrIntelActive
	}
	here := st.Player.LocationID
	if !s.intelOffered(st, here) {
		return nil, ErrIntelUnavailable
	}
	if st.Player.Credits < float64(s.cat.Rules.IntelMinCredits) {
		return nil, ErrInsufficientFunds
	}

	cost := math.Floor(st.Player.Credits * s.cat.Rules.IntelCostPercent)
	st.Player.Credits -= cost
	s.appendLedger(st, TxIntel, -int64(cost), "Purchased market intel")
	s.recordTransaction(st, TxIntel, -int64(cost))
	st.Intel.Available[here] = false

	var targets []string
	for _, id := range s.unlockedLocationIDs(st) {
		if id != here {
			targets = append(targets, id)
		}
	}
	if len(targets) == 0 {
		return s.drainNotices(), nil
	}
	target := targets[s.rng.Intn(len(targets))]

	var goods []string
	for _, c := range s.cat.Commodities {
		if c.UnlockLevel <= st.Player.UnlockLevel {
			goods = append(goods, c.ID)
		}
	}
	commodityID := goods[s.rng.Intn(len(goods))]

	st.Intel.Active = true
	st.Intel.LocationID = target
	st.Intel.CommodityID = commodityID
	st.Intel.Depression = false
	st.Intel.EndDay = st.Day + s.cat.Rules.IntelDurationDays

	loc := s.cat.Location(target)
	c := s.cat.Commodity(commodityID)
	s.notify(NoticeInfo, "Market Intel",
		fmt.Sprintf("Word is that %s will pay well for %s over the next %d days.",
			loc.Name, c.Name, s.cat.Rules.IntelDurationDays))
	return s.drainNotices(), nil
}

// intelOffered reports whether a tip can be bought at the location.
// The two endgame stations always have a broker on hand.
func (s *Session) intelOffered(st *State, locationID string) bool {
	if locationID == "loc_exchange" || locationID == "loc_kepler" {
		return true
	}
	return st.Intel.Available[locationID]
}

// ShipListing is a hull offered at the local shipyard.
type ShipListing struct {
	ShipID string `json:"ship_id"`
	Name   string `json:"name"`
	Class  string `json:"class"`
	Price  int64  `json:"price"`
}

// ShipyardListings returns the hulls for sale at the current location,
// excluding any the player already owns.
func (s *Session) ShipyardListings() []ShipListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	owned := make(map[string]bool, len(st.Player.OwnedShipIDs))
	for _, id := range st.Player.OwnedShipIDs {
		owned[id] = true
	}
	var out []ShipListing
	for _, id := range st.Shipyards[st.Player.LocationID] {
		if owned[id] {
			continue
		}
		ship := s.cat.Ship(id)
		out = append(out, ShipListing{ShipID: id, Name: ship.Name, Class: ship.Class, Price: ship.Price})
	}
	return out
}

// BuyShip purchases a hull from the local shipyard. It arrives at full
// health and fuel with an empty hold.
func (s *Session) BuyShip(shipID string) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	ship := s.cat.Ship(shipID)
	if ship == nil {
		return nil, ErrUnknownShip
	}
	listed := false
	for _, id := range st.Shipyards[st.Player.LocationID] {
		if id == shipID {
			listed = true
			break
		}
	}
	if !listed {
		return nil, ErrShipNotForSale
	}
	for _, id := range st.Player.OwnedShipIDs {
		if id == shipID {
			return nil, ErrShipNotForSale
		}
	}
	if st.Player.Credits < float64(ship.Price) {
		return nil, ErrInsufficientFunds
	}

	st.Player.Credits -= float64(ship.Price)
	s.grantShip(st, shipID)
	s.appendLedger(st, TxShip, -ship.Price, fmt.Sprintf("Purchased the %s", ship.Name))
	s.recordTransaction(st, TxShip, -ship.Price)
	s.notify(NoticeInfo, "Acquisition Complete", fmt.Sprintf("The %s has been transferred to your hangar.", ship.Name))
	return s.drainNotices(), nil
}

// SellShip decommissions an inactive, empty hull for three quarters of
// its list price.
func (s *Session) SellShip(shipID string) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if len(st.Player.OwnedShipIDs) <= 1 {
		return nil, ErrLastShip
	}
	if shipID == st.Player.ActiveShipID {
		return nil, ErrShipActive
	}
	owned := false
	for _, id := range st.Player.OwnedShipIDs {
		if id == shipID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrShipNotOwned
	}
	if st.Player.Cargo[shipID].Used() > 0 {
		return nil, ErrCargoNotEmpty
	}

	ship := s.cat.Ship(shipID)
	salePrice := int64(math.Floor(float64(ship.Price) * s.cat.Rules.ShipSellModifier))
	st.Player.Credits += float64(salePrice)

	for i, id := range st.Player.OwnedShipIDs {
		if id == shipID {
			st.Player.OwnedShipIDs = append(st.Player.OwnedShipIDs[:i], st.Player.OwnedShipIDs[i+1:]...)
			break
		}
	}
	delete(st.Player.ShipStates, shipID)
	delete(st.Player.Cargo, shipID)

	s.appendLedger(st, TxShip, salePrice, fmt.Sprintf("Sold the %s", ship.Name))
	s.recordTransaction(st, TxShip, salePrice)
	s.notify(NoticeInfo, "Vessel Sold", fmt.Sprintf("You sold the %s for %s credits.", ship.Name, formatCredits(salePrice)))
	return s.drainNotices(), nil
}

// SetActiveShip transfers the crew to another owned hull.
func (s *Session) SetActiveShip(shipID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return err
	}
	for _, id := range st.Player.OwnedShipIDs {
		if id == shipID {
			st.Player.ActiveShipID = shipID
			return nil
		}
	}
	return ErrShipNotOwned
}
