package game

import "fmt"

// eventChoice is one answer the player can give to a travel event.
type eventChoice struct {
	Title    string
	Outcomes []Outcome
}

// travelEvent can interrupt a voyage before departure. Eligible gates
// it on the player's situation so a choice is never offered that the
// ship cannot act on.
type travelEvent struct {
	ID       string
	Title    string
	Scenario string
	Eligible func(s *Session, st *State) bool
	Choices  []eventChoice
}

var travelEvents = []travelEvent{
	{
		ID:       "distress_call",
		Title:    "Distress Call",
		Scenario: "You pick up a distress signal from a small, damaged ship. They are out of fuel and requesting an emergency transfer to restart their reactor.",
		Eligible: func(s *Session, st *State) bool {
			_, shipState := s.activeShip(st)
			return shipState.Fuel >= 20
		},
		Choices: []eventChoice{
			{
				Title: "Offer Aid (20 Fuel)",
				Outcomes: []Outcome{
					{
						Chance:    0.75,
						Narrative: "The fuel transfer is successful. The grateful captain rewards you with 10,000 credits for your timely assistance.",
						Effects:   []Effect{{Kind: EffectFuel, Amount: -20}, {Kind: EffectCredits, Amount: 10000}},
					},
					{
						Chance:    0.25,
						Narrative: "As the fuel transfer begins, their reactor overloads! The resulting explosion damages your hull by 15%.",
						Effects:   []Effect{{Kind: EffectFuel, Amount: -20}, {Kind: EffectHullDamagePct, Amount: 15}},
					},
				},
			},
			{
				Title: "Ignore the Call",
				Outcomes: []Outcome{
					{Chance: 1.0, Narrative: "You press on, and the desperate signal fades behind you."},
				},
			},
		},
	},
	{
		ID:       "floating_cargo",
		Title:    "Floating Cargo Pod",
		Scenario: "Long-range sensors detect an unmarked, sealed cargo pod adrift in the shipping lane. It appears to be intact.",
		Eligible: func(s *Session, st *State) bool { return true },
		Choices: []eventChoice{
			{
				Title: "Bring it Aboard",
				Outcomes: []Outcome{
					{
						Chance:    0.60,
						Narrative: "The pod contains valuable goods. You gain 25 units of Neural Processors.",
						Effects:   []Effect{{Kind: EffectAddCargo, CommodityID: "processors", Quantity: 25}},
					},
					{
						Chance:    0.40,
						Narrative: "It was a trap! The pod is booby-trapped and detonates as your tractor beam locks on, causing 20% hull damage.",
						Effects:   []Effect{{Kind: EffectHullDamagePct, Amount: 20}},
					},
				},
			},
			{
				Title: "Report it",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You notify the nearest station of the hazard and receive a small finder's fee of 1,000 credits.",
						Effects:   []Effect{{Kind: EffectCredits, Amount: 1000}},
					},
				},
			},
		},
	},
	{
		ID:       "adrift_passenger",
		Title:    "Adrift Passenger",
		Scenario: "You find a spacer in a functioning escape pod. Their beacon is down, and they ask for passage to the nearest civilized port.",
		Eligible: func(s *Session, st *State) bool {
			_, shipState := s.activeShip(st)
			return shipState.Fuel >= 30
		},
		Choices: []eventChoice{
			{
				Title: "Take Aboard for Payment",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "The passenger is grateful for the rescue and pays you 10,000 credits upon arrival at your destination.",
						Effects:   []Effect{{Kind: EffectCredits, Amount: 10000}},
					},
				},
			},
			{
				Title: "Give a Fuel Cell (30 Fuel)",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You offer the stranded spacer a fuel cell.",
						Effects:   []Effect{{Kind: EffectAdriftPassenger}},
					},
				},
			},
		},
	},
	{
		ID:       "meteoroid_swarm",
		Title:    "Micrometeoroid Swarm",
		Scenario: "Alarms blare as you fly into an uncharted micrometeoroid swarm. Your navigation computer suggests two options to minimize damage.",
		Eligible: func(s *Session, st *State) bool {
			_, shipState := s.activeShip(st)
			return shipState.Fuel >= 15
		},
		Choices: []eventChoice{
			{
				Title: "Evade Aggressively (+15 Fuel)",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You burn extra fuel to successfully dodge the worst of the swarm, emerging unscathed.",
						Effects:   []Effect{{Kind: EffectFuel, Amount: -15}},
					},
				},
			},
			{
				Title: "Brace for Impact",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You trust your hull to withstand the impacts, taking a beating but saving fuel.",
						Effects:   []Effect{{Kind: EffectHullDamagePct, Lo: 10, Hi: 25}},
					},
				},
			},
		},
	},
	{
		ID:       "engine_malfunction",
		Title:    "Engine Malfunction",
		Scenario: "A sickening shudder runs through the ship. A key plasma injector has failed, destabilizing your engine output.",
		Eligible: func(s *Session, st *State) bool {
			inv := s.activeInventory(st)
			lot, ok := inv["plasteel"]
			return ok && lot.Quantity >= 5
		},
		Choices: []eventChoice{
			{
				Title: "Quick, Risky Fix (5 Plasteel)",
				Outcomes: []Outcome{
					{
						Chance:    0.50,
						Narrative: "The patch holds! The engine stabilizes and you continue your journey without further incident.",
						Effects:   []Effect{{Kind: EffectLoseCargo, CommodityID: "plasteel", Quantity: 5}},
					},
					{
						Chance:    0.50,
						Narrative: "The patch fails catastrophically, causing a small explosion that deals 20% hull damage.",
						Effects:   []Effect{{Kind: EffectLoseCargo, CommodityID: "plasteel", Quantity: 5}, {Kind: EffectHullDamagePct, Amount: 20}},
					},
				},
			},
			{
				Title: "Limp to Destination",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You shut down the faulty injector. The ship is slower, but stable. Your remaining travel time increases by 25%.",
						Effects:   []Effect{{Kind: EffectTravelTimeAddPct, Amount: 0.25}},
					},
				},
			},
		},
	},
	{
		ID:       "nav_glitch",
		Title:    "Navigation Sensor Glitch",
		Scenario: "The nav-console flashes red. Your primary positioning sensors are offline, and you're flying blind in the deep dark.",
		Eligible: func(s *Session, st *State) bool { return true },
		Choices: []eventChoice{
			{
				Title: "Attempt Hard Reboot",
				Outcomes: []Outcome{
					{
						Chance:    0.50,
						Narrative: "Success! The sensors come back online. In your haste, you find a shortcut, shortening your trip. You will arrive the next day.",
						Effects:   []Effect{{Kind: EffectSetTravelTime, Amount: 1}},
					},
					{
						Chance:    0.50,
						Narrative: "The reboot corrupts your course data, sending you on a long, meandering path. This adds 15 days to your journey.",
						Effects:   []Effect{{Kind: EffectTravelTimeAdd, Amount: 15}},
					},
				},
			},
			{
				Title: "Navigate Manually",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You rely on old-fashioned star charts. It's slow but safe, adding 7 days to your trip.",
						Effects:   []Effect{{Kind: EffectTravelTimeAdd, Amount: 7}},
					},
				},
			},
		},
	},
	{
		ID:       "life_support_fluctuation",
		Title:    "Life Support Fluctuation",
		Scenario: "An alarm indicates unstable oxygen levels. It's not critical yet, but the crew is on edge and efficiency is dropping.",
		Eligible: func(s *Session, st *State) bool {
			ship, shipState := s.activeShip(st)
			return shipState.Health > ship.MaxHealth*0.25
		},
		Choices: []eventChoice{
			{
				Title: "Salvage materials from the ship to repair the atmospheric regulators. (This will cost 25% hull damage)",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You cannibalize some non-essential hull plating to get the regulators working again. The system stabilizes, but the ship's integrity is compromised.",
						Effects:   []Effect{{Kind: EffectHullDamagePct, Amount: 25}},
					},
				},
			},
			{
				Title: "Defer Maintenance Costs",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You log the issue for later. The cost of repairs and crew hazard pay, 5,000 credits, is added to your debt.",
						Effects:   []Effect{{Kind: EffectAddDebt, Amount: 5000}},
					},
				},
			},
		},
	},
	{
		ID:       "cargo_rupture",
		Title:    "Cargo Hold Rupture",
		Scenario: "A micrometeorite has punched a small hole in the cargo bay. One of your cargo stacks is exposed to hard vacuum.",
		Eligible: func(s *Session, st *State) bool {
			return s.activeInventory(st).Used() > 0
		},
		Choices: []eventChoice{
			{
				Title: "Jettison Damaged Cargo",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You vent the damaged section, losing 10% of a random cargo stack from your hold into the void.",
						Effects:   []Effect{{Kind: EffectLoseRandomCargoPct, Amount: 0.10}},
					},
				},
			},
			{
				Title: "Attempt EVA Repair",
				Outcomes: []Outcome{
					{
						Chance:    0.75,
						Narrative: "The emergency patch holds! The cargo is safe, but the repair adds 2 days to your trip.",
						Effects:   []Effect{{Kind: EffectTravelTimeAdd, Amount: 2}},
					},
					{
						Chance:    0.25,
						Narrative: "The patch fails to hold. Explosive decompression destroys 50% of the cargo stack, and the repair still adds 2 days to your trip.",
						Effects:   []Effect{{Kind: EffectLoseRandomCargoPct, Amount: 0.50}, {Kind: EffectTravelTimeAdd, Amount: 2}},
					},
				},
			},
		},
	},
	{
		ID:       "space_race",
		Title:    "Space Race Wager",
		Scenario: "A smug-looking luxury ship pulls alongside and its captain, broadcasted on your main screen, challenges you to a \"friendly\" race to the destination.",
		Eligible: func(s *Session, st *State) bool {
			return st.Player.Credits > 100
		},
		Choices: []eventChoice{
			{
				Title: "Accept Wager (Bet: 80% of current credits)",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You accept the high-stakes challenge.",
						Effects:   []Effect{{Kind: EffectSpaceRace}},
					},
				},
			},
			{
				Title: "Politely Decline",
				Outcomes: []Outcome{
					{Chance: 1.0, Narrative: "You decline the race. The luxury ship performs a flashy maneuver and speeds off, leaving you to travel in peace."},
				},
			},
		},
	},
	{
		ID:       "supply_drop",
		Title:    "Emergency Supply Drop",
		Scenario: "You intercept a system-wide emergency broadcast. A new outpost is offering a massive premium for an immediate delivery of a specific commodity that you happen to be carrying.",
		Eligible: func(s *Session, st *State) bool {
			return s.activeInventory(st).Used() > 0
		},
		Choices: []eventChoice{
			{
				Title: "Divert Course to Deliver",
				Outcomes: []Outcome{
					{
						Chance:    1.0,
						Narrative: "You sell your entire stack of the requested commodity for 3 times its galactic average value. Your course is diverted to a new, random destination, adding 7 days to your trip.",
						Effects: []Effect{
							{Kind: EffectSellRandomCargoPremium},
							{Kind: EffectTravelTimeAdd, Amount: 7},
							{Kind: EffectNewRandomDestination},
						},
					},
				},
			},
			{
				Title: "Decline and Continue",
				Outcomes: []Outcome{
					{Chance: 1.0, Narrative: "You stick to your original plan and let someone else handle the emergency supply run."},
				},
			},
		},
	},
}

// eventByID returns the travel event definition, or nil.
func eventByID(id string) *travelEvent {
	for i := range travelEvents {
		if travelEvents[i].ID == id {
			return &travelEvents[i]
		}
	}
	return nil
}

// rollTravelEvent decides whether departure is interrupted. When forced
// is set the chance roll is skipped, but eligibility still applies.
func (s *Session) rollTravelEvent(st *State, forced bool) *travelEvent {
	if !forced && s.nextFloat() >= s.cat.Rules.RandomEventChance {
		return nil
	}
	var eligible []*travelEvent
	for i := range travelEvents {
		if travelEvents[i].Eligible(s, st) {
			eligible = append(eligible, &travelEvents[i])
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	return eligible[s.rng.Intn(len(eligible))]
}

// pickOutcome rolls a weighted outcome. Weights that do not sum to one
// fall through to the last entry.
func (s *Session) pickOutcome(outcomes []Outcome) Outcome {
	r := s.nextFloat()
	for _, out := range outcomes {
		if r < out.Chance {
			return out
		}
		r -= out.Chance
	}
	return outcomes[len(outcomes)-1]
}

// ageChoice is one branch of a career milestone.
type ageChoice struct {
	Title       string
	Description string
	PerkID      string
	PlayerTitle string
}

type ageEvent struct {
	ID      string
	Title   string
	Prompt  string
	Ready   func(st *State) bool
	Choices []ageChoice
}

var ageEvents = []ageEvent{
	{
		ID:     "captain_choice",
		Title:  "Captain Who?",
		Prompt: "You've successfully navigated many trades and run a tight ship. Your crew depends on you... but what kind of captain will you be?",
		Ready:  func(st *State) bool { return st.Day >= 366 },
		Choices: []ageChoice{
			{Title: "Trademaster", Description: "5% bonus on all trade profits.", PerkID: "trademaster", PlayerTitle: "Trademaster"},
			{Title: "Navigator", Description: "10% reduced fuel usage, hull decay, and travel time.", PerkID: "navigator", PlayerTitle: "Navigator"},
		},
	},
	{
		ID:     "friends_with_benefits",
		Title:  "Friends with Benefits",
		Prompt: "An ally in need is an ally indeed.",
		Ready:  func(st *State) bool { return st.Player.Credits >= 50000 },
		Choices: []ageChoice{
			{Title: "Join the Merchant's Guild", Description: "Receive a free C-Class freighter.", PerkID: "merchant_guild_ship"},
			{Title: "Join the Venetian Syndicate", Description: "75% discount on fuel and repairs at Venus.", PerkID: "venetian_syndicate"},
		},
	},
}

func ageEventByID(id string) *ageEvent {
	for i := range ageEvents {
		if ageEvents[i].ID == id {
			return &ageEvents[i]
		}
	}
	return nil
}

// checkAgeEvents queues any newly eligible career milestone. Each fires
// once per game.
func (s *Session) checkAgeEvents(st *State) {
	for i := range ageEvents {
		ev := &ageEvents[i]
		if st.SeenEvents[ev.ID] || !ev.Ready(st) {
			continue
		}
		st.SeenEvents[ev.ID] = true
		st.PendingAge = append(st.PendingAge, ev.ID)
		s.notify(NoticeEvent, ev.Title, ev.Prompt)
	}
}

// PendingAgeEvent returns the oldest unanswered career milestone, or
// nil when none is waiting.
func (s *Session) PendingAgeEvent() *PendingChoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.PendingAge) == 0 {
		return nil
	}
	ev := ageEventByID(s.state.PendingAge[0])
	if ev == nil {
		return nil
	}
	pc := &PendingChoice{EventID: ev.ID, Title: ev.Title, Scenario: ev.Prompt}
	for _, c := range ev.Choices {
		pc.Options = append(pc.Options, c.Title)
	}
	return pc
}

// ResolveAgeChoice answers the oldest queued career milestone.
func (s *Session) ResolveAgeChoice(choice int) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if err := s.guard(st); err != nil {
		return nil, err
	}
	if len(st.PendingAge) == 0 {
		return nil, ErrNoPendingChoice
	}
	ev := ageEventByID(st.PendingAge[0])
	if ev == nil || choice < 0 || choice >= len(ev.Choices) {
		return nil, ErrInvalidChoice
	}
	picked := ev.Choices[choice]
	st.PendingAge = st.PendingAge[1:]

	if picked.PerkID == "merchant_guild_ship" {
		s.grantShip(st, "hauler_c1")
		s.notify(NoticeEvent, ev.Title, "A C-Class freighter has been added to your fleet.")
	} else {
		st.Player.Perks[picked.PerkID] = true
		s.notify(NoticeEvent, ev.Title, picked.Description)
	}
	if picked.PlayerTitle != "" {
		st.Player.Title = picked.PlayerTitle
	}
	return s.drainNotices(), nil
}

// grantShip adds a hull to the fleet at full health and fuel with an
// empty hold.
func (s *Session) grantShip(st *State, shipID string) {
	ship := s.cat.Ship(shipID)
	if ship == nil {
		s.log.Warn("unknown ship grant", "ship_id", shipID)
		return
	}
	st.Player.OwnedShipIDs = append(st.Player.OwnedShipIDs, shipID)
	st.Player.ShipStates[shipID] = &ShipState{Health: ship.MaxHealth, Fuel: ship.MaxFuel}
	st.Player.Cargo[shipID] = Inventory{}
}

// checkMilestones unlocks trade tiers and locations as net worth
// crosses each threshold. Each fires once.
func (s *Session) checkMilestones(st *State) {
	for _, m := range s.cat.Milestones {
		if st.Player.SeenMilestones[m.Threshold] || st.Player.Credits < float64(m.Threshold) {
			continue
		}
		st.Player.SeenMilestones[m.Threshold] = true
		if m.UnlockLevel > st.Player.UnlockLevel {
			st.Player.UnlockLevel = m.UnlockLevel
		}
		if m.UnlocksLocation != "" {
			st.Player.UnlockedLocations[m.UnlocksLocation] = true
		}
		s.notify(NoticeMilestone, "Milestone Reached", m.Message)
	}
}

// checkBirthday ages the captain once per in-game year and sweetens
// the trade bonus. The first year never fires since the game starts
// past the captain's latest birthday.
func (s *Session) checkBirthday(st *State) {
	if (st.Day-1)%365 != st.Player.BirthdayDayOfYear {
		return
	}
	year := (st.Day - 1) / 365
	if year == 0 {
		return
	}
	key := fmt.Sprintf("birthday_%d", year)
	if st.SeenEvents[key] {
		return
	}
	st.SeenEvents[key] = true
	st.Player.Age++
	st.Player.ProfitBonus += 0.01
	s.notify(NoticeBirthday, "Happy Birthday",
		fmt.Sprintf("You turn %d today. Your experience grants an additional 1%% profit on all trades.", st.Player.Age))
}
