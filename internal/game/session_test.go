package game

import "testing"

func TestNewGameInvariants(t *testing.T) {
	s := newTestSession(1)
	st := s.state

	if st.Day != 1 {
		t.Fatalf("day = %d, want 1", st.Day)
	}
	if st.Player.Credits != 8000 {
		t.Fatalf("credits = %v, want 8000", st.Player.Credits)
	}
	if st.Player.Debt != 25000 {
		t.Fatalf("debt = %d, want 25000", st.Player.Debt)
	}
	if st.Player.DebtStartDay != 0 {
		t.Fatal("starting debt must not carry a garnishment clock")
	}
	if st.Player.LocationID != "loc_mars" {
		t.Fatalf("starting location = %s, want loc_mars", st.Player.LocationID)
	}
	if len(st.Player.UnlockedLocations) != 6 {
		t.Fatalf("%d locations unlocked at start, want 6", len(st.Player.UnlockedLocations))
	}
	if st.Player.UnlockedLocations["loc_jupiter"] {
		t.Fatal("Jupiter must start locked")
	}

	ship := st.Player.ShipStates["starter"]
	if ship == nil || ship.Health != 100 || ship.Fuel != 100 {
		t.Fatalf("starter state = %+v, want full condition", ship)
	}
	if len(st.Markets) != len(s.cat.Locations) {
		t.Fatalf("%d markets seeded, want %d", len(st.Markets), len(s.cat.Locations))
	}
	if len(st.Markets["loc_mars"].History["water_ice"]) != 1 {
		t.Fatal("opening price not recorded in history")
	}
}

func TestRouteGeneration(t *testing.T) {
	s := newTestSession(1)
	st := s.state

	for _, from := range s.cat.Locations {
		for _, to := range s.cat.Locations {
			if from.ID == to.ID {
				if _, ok := st.Routes[from.ID][to.ID]; ok {
					t.Fatalf("self route generated for %s", from.ID)
				}
				continue
			}
			r, ok := st.Routes[from.ID][to.ID]
			if !ok {
				t.Fatalf("missing route %s -> %s", from.ID, to.ID)
			}
			if r.Days < 1 || r.FuelCost < 1 {
				t.Fatalf("degenerate route %s -> %s: %+v", from.ID, to.ID, r)
			}
		}
	}

	// The Earth-Luna hop stays short in both directions.
	if r := st.Routes["loc_earth"]["loc_luna"]; r.Days > 3 {
		t.Fatalf("earth->luna takes %d days, want <= 3", r.Days)
	}
	if r := st.Routes["loc_luna"]["loc_earth"]; r.Days > 3 {
		t.Fatalf("luna->earth takes %d days, want <= 3", r.Days)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := newTestSession(1)
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if _, err := s.AdvanceDays(30); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.Day() == 1 {
		t.Fatal("clock did not move")
	}

	if err := s.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if s.Day() != 1 {
		t.Fatalf("day = %d after restore, want 1", s.Day())
	}

	// The snapshot is a deep copy: mutating it cannot reach the session.
	snap.Player.Credits = 999999
	if s.state.Player.Credits == 999999 {
		t.Fatal("restored state shares memory with the snapshot")
	}
}

func TestSeededSessionsAreReproducible(t *testing.T) {
	a := newTestSession(99)
	b := newTestSession(99)

	for _, loc := range a.cat.Locations {
		for _, c := range a.cat.Commodities {
			pa := a.state.Markets[loc.ID].Prices[c.ID]
			pb := b.state.Markets[loc.ID].Prices[c.ID]
			if pa != pb {
				t.Fatalf("price diverged for %s at %s: %d vs %d", c.ID, loc.ID, pa, pb)
			}
		}
	}
	ra := a.state.Routes["loc_mars"]["loc_saturn"]
	rb := b.state.Routes["loc_mars"]["loc_saturn"]
	if ra != rb {
		t.Fatalf("routes diverged: %+v vs %+v", ra, rb)
	}
}
