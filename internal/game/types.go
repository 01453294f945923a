package game

// State is the full serializable game state. It holds no behavior and no
// references into the catalogue; Session methods interpret it.
type State struct {
	Day      int    `json:"day"`
	GameOver bool   `json:"game_over"`
	EndCause string `json:"end_cause,omitempty"`

	Player Player `json:"player"`

	// Markets and Shipyards are keyed by location id. Routes is keyed by
	// origin then destination and is generated once per game.
	Markets   map[string]*Market          `json:"markets"`
	Shipyards map[string][]string         `json:"shipyards"`
	Routes    map[string]map[string]Route `json:"routes"`

	Intel IntelState `json:"intel"`

	Travel        *PendingTravel `json:"travel,omitempty"`
	PendingChoice *PendingChoice `json:"pending_choice,omitempty"`

	// PendingAge holds age-event ids waiting for the player's pick, in
	// firing order.
	PendingAge []string `json:"pending_age,omitempty"`

	DaysSinceMarket   int `json:"days_since_market"`
	DaysSinceInterest int `json:"days_since_interest"`

	Ledger       []LedgerEntry   `json:"ledger"`
	Transactions []Transaction   `json:"transactions"`
	SeenEvents   map[string]bool `json:"seen_events"`
}

type Player struct {
	Credits        float64 `json:"credits"`
	Debt           int64   `json:"debt"`
	WeeklyInterest int64   `json:"weekly_interest"`

	// DebtStartDay is the day the current loan was taken. Zero means no
	// garnishment clock is running; the starting debt carries none.
	DebtStartDay int  `json:"debt_start_day"`
	Garnished    bool `json:"garnished"`

	Age               int     `json:"age"`
	BirthdayDayOfYear int     `json:"birthday_day_of_year"`
	ProfitBonus       float64 `json:"profit_bonus"`

	UnlockLevel       int             `json:"unlock_level"`
	UnlockedLocations map[string]bool `json:"unlocked_locations"`

	Title          string          `json:"title"`
	Perks          map[string]bool `json:"perks"`
	SeenMilestones map[int64]bool  `json:"seen_milestones"`

	LocationID   string                `json:"location_id"`
	ActiveShipID string                `json:"active_ship_id"`
	OwnedShipIDs []string              `json:"owned_ship_ids"`
	ShipStates   map[string]*ShipState `json:"ship_states"`

	// Cargo is keyed by ship id then commodity id.
	Cargo map[string]Inventory `json:"cargo"`
}

// ShipState is the mutable per-hull condition of an owned ship.
type ShipState struct {
	Health float64 `json:"health"`
	Fuel   float64 `json:"fuel"`

	// Hull warning latches, cleared when repaired back above threshold.
	AlertLow      bool `json:"alert_low"`
	AlertCritical bool `json:"alert_critical"`
}

// Inventory maps commodity id to the held lot for one ship.
type Inventory map[string]*CargoLot

// CargoLot tracks quantity and the weighted average paid per unit, which
// sell operations use to compute realized profit.
type CargoLot struct {
	Quantity int     `json:"quantity"`
	AvgCost  float64 `json:"avg_cost"`
}

// Used returns total units held across all lots.
func (inv Inventory) Used() int {
	total := 0
	for _, lot := range inv {
		total += lot.Quantity
	}
	return total
}

// Market is the per-location commodity state.
type Market struct {
	Prices  map[string]int64        `json:"prices"`
	Stock   map[string]int          `json:"stock"`
	History map[string][]PricePoint `json:"history"`
}

type PricePoint struct {
	Day   int   `json:"day"`
	Price int64 `json:"price"`
}

// Route is a fixed travel leg between two locations.
type Route struct {
	Days     int `json:"days"`
	FuelCost int `json:"fuel_cost"`
}

// IntelState tracks a purchased market tip. At most one is active, and
// Available marks the stations currently brokering tips.
type IntelState struct {
	Active      bool   `json:"active"`
	LocationID  string `json:"location_id,omitempty"`
	CommodityID string `json:"commodity_id,omitempty"`

	// Depression marks a price-crash tip rather than a demand spike.
	Depression bool `json:"depression,omitempty"`
	EndDay     int  `json:"end_day,omitempty"`

	Available map[string]bool `json:"available"`
}

// PendingTravel is an in-flight voyage, parked while an event choice is
// outstanding and consumed on arrival.
type PendingTravel struct {
	FromID        string `json:"from_id"`
	DestinationID string `json:"destination_id"`
	Days          int    `json:"days"`
	FuelCost      int    `json:"fuel_cost"`

	// Event adjustments accumulated before departure resumes. Time
	// modifiers apply percent first, then additive days, then the
	// absolute override, floored at one day.
	ExtraDays     int     `json:"extra_days,omitempty"`
	ExtraPct      float64 `json:"extra_pct,omitempty"`
	OverrideDays  int     `json:"override_days,omitempty"`
	HullDamagePct float64 `json:"hull_damage_pct,omitempty"`
}

// PendingChoice suspends travel until the player answers an event prompt.
type PendingChoice struct {
	EventID  string   `json:"event_id"`
	Title    string   `json:"title"`
	Scenario string   `json:"scenario"`
	Options  []string `json:"options"`
}

// LedgerEntry is one line of the running finance log.
type LedgerEntry struct {
	Day         int    `json:"day"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Balance     int64  `json:"balance"`
}

// Transaction is the compact per-category cash movement record used for
// profit tracking and garnishment accounting.
type Transaction struct {
	Day    int    `json:"day"`
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

// Notice is a player-facing message produced by a mutation: arrivals,
// milestones, hull warnings, event narration.
type Notice struct {
	Kind    string `json:"kind"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// Notice kinds.
const (
	NoticeInfo      = "info"
	NoticeMilestone = "milestone"
	NoticeEvent     = "event"
	NoticeHull      = "hull"
	NoticeBirthday  = "birthday"
	NoticeGameOver  = "game_over"
)

// Ledger entry types.
const (
	TxTrade   = "trade"
	TxFuel    = "fuel"
	TxRepair  = "repair"
	TxShip    = "ship"
	TxLoan    = "loan"
	TxDebt    = "debt"
	TxIntel   = "intel"
	TxEvent   = "event"
	TxGarnish = "garnishment"
)
