package game

// State returns a deep copy of the full game state for serialization.
func (s *Session) State() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Quote is one commodity's terms at the player's current market.
type Quote struct {
	CommodityID string `json:"commodity_id"`
	Name        string `json:"name"`
	BuyPrice    int64  `json:"buy_price"`
	SellPrice   int64  `json:"sell_price"`
	Stock       int    `json:"stock"`
	Held        int    `json:"held"`
	Locked      bool   `json:"locked"`
}

// MarketQuotes lists every commodity's buy and sell terms at the
// current location, in catalogue order.
func (s *Session) MarketQuotes() []Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	inv := s.activeInventory(st)
	out := make([]Quote, 0, len(s.cat.Commodities))
	for _, c := range s.cat.Commodities {
		q := Quote{
			CommodityID: c.ID,
			Name:        c.Name,
			BuyPrice:    s.price(st, st.Player.LocationID, c.ID, false),
			SellPrice:   s.price(st, st.Player.LocationID, c.ID, true),
			Stock:       st.Markets[st.Player.LocationID].Stock[c.ID],
			Locked:      c.UnlockLevel > st.Player.UnlockLevel,
		}
		if lot, ok := inv[c.ID]; ok {
			q.Held = lot.Quantity
		}
		out = append(out, q)
	}
	return out
}

// RouteQuote is one reachable destination with the cost of getting
// there on the active ship.
type RouteQuote struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
	Days       int    `json:"days"`
	FuelCost   int    `json:"fuel_cost"`
}

// TravelOptions lists every unlocked destination other than the
// current location, with navigator discounts applied.
func (s *Session) TravelOptions() []RouteQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	var out []RouteQuote
	for _, id := range s.unlockedLocationIDs(st) {
		if id == st.Player.LocationID {
			continue
		}
		route := st.Routes[st.Player.LocationID][id]
		days, fuel := route.Days, route.FuelCost
		if st.Player.Perks["navigator"] {
			days = roundInt(float64(days) * 0.9)
			fuel = roundInt(float64(fuel) * 0.9)
		}
		loc := s.cat.Location(id)
		out = append(out, RouteQuote{LocationID: id, Name: loc.Name, Days: days, FuelCost: fuel})
	}
	return out
}
