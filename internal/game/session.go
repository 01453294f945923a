package game

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/vraelian/OrbitalTrading/internal/catalog"
)

// Session owns one game's state. Every mutation goes through a method
// that takes the mutex, so a call runs to completion before the next
// one is accepted. All randomness flows through rng, which makes a
// seeded session fully reproducible.
type Session struct {
	mu  sync.Mutex
	log *slog.Logger
	rng *mathrand.Rand
	cat *catalog.Catalog

	state *State

	// notices accumulate during one mutation and are returned to the
	// caller by the exported method that triggered them.
	notices []Notice
}

// New starts a fresh game from the catalogue. A zero seed picks one
// from the clock.
func New(cat *catalog.Catalog, logger *slog.Logger, seed int64) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		log: logger,
		rng: mathrand.New(mathrand.NewSource(seed)),
		cat: cat,
	}
	s.state = s.newGameState()
	return s
}

func (s *Session) newGameState() *State {
	rules := s.cat.Rules

	st := &State{
		Day:        1,
		Markets:    make(map[string]*Market, len(s.cat.Locations)),
		Shipyards:  make(map[string][]string, len(s.cat.Locations)),
		Routes:     s.generateRoutes(),
		SeenEvents: make(map[string]bool),
		Intel:      IntelState{Available: make(map[string]bool)},
		Player: Player{
			Credits:           float64(rules.StartingCredits),
			Debt:              rules.StartingDebt,
			WeeklyInterest:    rules.StartingInterest,
			Age:               rules.StartingAge,
			BirthdayDayOfYear: rules.BirthdayDayOfYear,
			Title:             "Captain",
			UnlockLevel:       1,
			UnlockedLocations: make(map[string]bool),
			Perks:             make(map[string]bool),
			SeenMilestones:    make(map[int64]bool),
			LocationID:        rules.StartingLocationID,
			ActiveShipID:      rules.StarterShipID,
			OwnedShipIDs:      []string{rules.StarterShipID},
			ShipStates:        make(map[string]*ShipState),
			Cargo:             make(map[string]Inventory),
		},
	}

	for _, id := range startingLocations {
		st.Player.UnlockedLocations[id] = true
	}

	starter := s.cat.Ship(rules.StarterShipID)
	st.Player.ShipStates[starter.ID] = &ShipState{Health: starter.MaxHealth, Fuel: starter.MaxFuel}
	st.Player.Cargo[starter.ID] = make(Inventory)

	for _, loc := range s.cat.Locations {
		st.Markets[loc.ID] = &Market{
			Prices:  make(map[string]int64, len(s.cat.Commodities)),
			Stock:   make(map[string]int, len(s.cat.Commodities)),
			History: make(map[string][]PricePoint, len(s.cat.Commodities)),
		}
		st.Intel.Available[loc.ID] = s.rng.Float64() < rules.IntelChance
	}

	s.seedPrices(st)
	s.replenishStock(st)
	s.recordHistory(st)
	s.refreshShipyards(st)
	return st
}

// startingLocations are reachable from day one; the rest are unlocked
// by milestones or events.
var startingLocations = []string{
	"loc_earth", "loc_luna", "loc_mars", "loc_venus", "loc_belt", "loc_saturn",
}

// generateRoutes builds the travel table from the catalogue ordering:
// farther apart in the listing means a longer, thirstier leg. The
// Earth-Luna hop stays short regardless.
func (s *Session) generateRoutes() map[string]map[string]Route {
	locs := s.cat.Locations
	routes := make(map[string]map[string]Route, len(locs))
	for i, from := range locs {
		routes[from.ID] = make(map[string]Route, len(locs)-1)
		for j, to := range locs {
			if i == j {
				continue
			}
			dist := i - j
			if dist < 0 {
				dist = -dist
			}

			fuelTime := dist*2 + s.rng.Intn(3)
			fuel := int(math.Round(float64(fuelTime) * 3 * (1 + float64(j)/float64(len(locs))*0.5)))
			if fuel < 1 {
				fuel = 1
			}

			var days int
			shortHop := (from.ID == "loc_earth" && to.ID == "loc_luna") ||
				(from.ID == "loc_luna" && to.ID == "loc_earth")
			if shortHop {
				days = 1 + s.rng.Intn(3)
			} else {
				days = 15 + dist*10 + s.rng.Intn(5)
			}
			routes[from.ID][to.ID] = Route{Days: days, FuelCost: fuel}
		}
	}
	return routes
}

// refreshShipyards rolls the for-sale list per location: common hulls
// always listed at their home station, rare ones by chance.
func (s *Session) refreshShipyards(st *State) {
	for _, loc := range s.cat.Locations {
		var ids []string
		for _, ship := range s.cat.Ships {
			if ship.SaleLocationID != loc.ID {
				continue
			}
			if ship.Rare && s.rng.Float64() >= s.cat.Rules.RareShipChance {
				continue
			}
			ids = append(ids, ship.ID)
		}
		st.Shipyards[loc.ID] = ids
	}
}

func (s *Session) nextFloat() float64 {
	return s.rng.Float64()
}

// Snapshot returns a deep copy of the current state, safe to hold
// across later mutations.
func (s *Session) Snapshot() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Restore replaces the session state with a previously captured
// snapshot.
func (s *Session) Restore(st *State) error {
	clone, err := cloneState(st)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = clone
	return nil
}

func cloneState(st *State) (*State, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("clone state: %w", err)
	}
	var out State
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("clone state: %w", err)
	}
	return &out, nil
}

// activeShip returns the active ship's template and mutable state.
func (s *Session) activeShip(st *State) (*catalog.Ship, *ShipState) {
	id := st.Player.ActiveShipID
	return s.cat.Ship(id), st.Player.ShipStates[id]
}

func (s *Session) activeInventory(st *State) Inventory {
	return st.Player.Cargo[st.Player.ActiveShipID]
}

// unlockedLocationIDs lists the player's reachable locations in
// catalog order.
func (s *Session) unlockedLocationIDs(st *State) []string {
	var ids []string
	for _, loc := range s.cat.Locations {
		if st.Player.UnlockedLocations[loc.ID] {
			ids = append(ids, loc.ID)
		}
	}
	return ids
}

// guard rejects mutations once the game has ended or while an event
// choice is outstanding.
func (s *Session) guard(st *State) error {
	if st.GameOver {
		return ErrGameOver
	}
	if st.PendingChoice != nil {
		return ErrAwaitingChoice
	}
	return nil
}

func (s *Session) notify(kind, title, message string) {
	s.notices = append(s.notices, Notice{Kind: kind, Title: title, Message: message})
}

// drainNotices hands the accumulated notices to the caller and resets
// the buffer for the next mutation.
func (s *Session) drainNotices() []Notice {
	out := s.notices
	s.notices = nil
	return out
}

// Day returns the current simulation day.
func (s *Session) Day() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Day
}
