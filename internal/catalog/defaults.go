package catalog

// Default returns the built-in solar-system catalogue.
func Default() *Catalog {
	return &Catalog{
		Rules: Rules{
			StartingCredits:      8000,
			StartingDebt:         25000,
			StartingInterest:     125,
			StartingLocationID:   "loc_mars",
			StarterShipID:        "starter",
			StartYear:            2120,
			StartingAge:          24,
			BirthdayDayOfYear:    11,
			RandomEventChance:    0.07,
			PriceVolatility:      0.035,
			MeanReversion:        0.01,
			PriceHistoryLength:   50,
			MarketInterval:       7,
			InterestInterval:     7,
			HullDecayPerDay:      1.0 / 7.0,
			PassiveRepairRate:    0.02,
			RepairCostPerHP:      75,
			RepairPercentPerTick: 0.10,
			FuelUnitsPerTick:     5,
			ShipSellModifier:     0.75,
			RareShipChance:       0.3,
			IntelCostPercent:     0.20,
			IntelMinCredits:      5000,
			IntelChance:          0.3,
			IntelDurationDays:    100,
			IntelDemandMod:       1.8,
			IntelDepressionMod:   0.5,
			GarnishmentDays:      180,
			GarnishmentPercent:   0.14,
			EventDebtInterest:    0.013,
		},
		Commodities: []Commodity{
			{ID: "water_ice", Name: "Water Ice", PriceMin: 25, PriceMax: 500, Tier: 1, UnlockLevel: 1},
			{ID: "plasteel", Name: "Plasteel", PriceMin: 1000, PriceMax: 4000, Tier: 1, UnlockLevel: 1},
			{ID: "hydroponics", Name: "Hydroponics", PriceMin: 6000, PriceMax: 10000, Tier: 2, UnlockLevel: 1},
			{ID: "cybernetics", Name: "Cybernetics", PriceMin: 15000, PriceMax: 30000, Tier: 2, UnlockLevel: 1},
			{ID: "propellant", Name: "Refined Propellant", PriceMin: 50000, PriceMax: 90000, Tier: 3, UnlockLevel: 2},
			{ID: "processors", Name: "Neural Processors", PriceMin: 100000, PriceMax: 200000, Tier: 3, UnlockLevel: 2},
			{ID: "gmo_seeds", Name: "GMO Seed Cultures", PriceMin: 200000, PriceMax: 600000, Tier: 4, UnlockLevel: 3},
			{ID: "cryo_pods", Name: "Cryo-Sleep Pods", PriceMin: 900000, PriceMax: 1600000, Tier: 4, UnlockLevel: 3},
			{ID: "atmos_processors", Name: "Atmo Processors", PriceMin: 3000000, PriceMax: 7000000, Tier: 5, UnlockLevel: 4},
			{ID: "cloned_organs", Name: "Cloned Organs", PriceMin: 15000000, PriceMax: 40000000, Tier: 5, UnlockLevel: 4},
			{ID: "xeno_geologicals", Name: "Xeno-Geologicals", PriceMin: 80000000, PriceMax: 200000000, Tier: 6, UnlockLevel: 5},
			{ID: "sentient_ai", Name: "Sentient AI Cores", PriceMin: 400000000, PriceMax: 900000000, Tier: 6, UnlockLevel: 5},
			{ID: "antimatter", Name: "Antimatter", PriceMin: 3000000000, PriceMax: 7000000000, Tier: 7, UnlockLevel: 6},
			{ID: "folded_drives", Name: "Folded-Space Drives", PriceMin: 40000000000, PriceMax: 100000000000, Tier: 7, UnlockLevel: 6},
		},
		Locations: []Location{
			{
				ID: "loc_earth", Name: "Earth Orbit", FuelPrice: 250,
				Modifiers:     map[string]float64{"sentient_ai": 0.7, "propellant": 1.8, "cloned_organs": 1.5, "plasteel": 1.2},
				SpecialDemand: map[string]SpecialDemand{"cloned_organs": {Bonus: 1.75}},
			},
			{
				ID: "loc_luna", Name: "The Moon", FuelPrice: 350,
				Modifiers:     map[string]float64{"propellant": 0.8, "plasteel": 1.5, "water_ice": 1.4},
				SpecialDemand: map[string]SpecialDemand{"gmo_seeds": {Bonus: 1.75}},
			},
			{
				ID: "loc_mars", Name: "Mars", FuelPrice: 450,
				Modifiers:     map[string]float64{"plasteel": 0.7, "hydroponics": 0.6, "processors": 1.6, "atmos_processors": 1.4},
				SpecialDemand: map[string]SpecialDemand{"cryo_pods": {Bonus: 1.75}},
			},
			{
				ID: "loc_venus", Name: "Venus", FuelPrice: 400,
				Modifiers:     map[string]float64{"xeno_geologicals": 0.5, "processors": 1.3, "hydroponics": 1.6},
				SpecialDemand: map[string]SpecialDemand{"processors": {Bonus: 1.75}},
			},
			{
				ID: "loc_belt", Name: "The Asteroid Belt", FuelPrice: 600,
				Modifiers:     map[string]float64{"water_ice": 0.4, "plasteel": 0.6, "xeno_geologicals": 1.7, "cryo_pods": 1.2},
				SpecialDemand: map[string]SpecialDemand{"cybernetics": {Bonus: 1.75}},
			},
			{
				ID: "loc_saturn", Name: "Saturn's Rings", FuelPrice: 550,
				Modifiers:     map[string]float64{"water_ice": 0.6, "plasteel": 1.3, "gmo_seeds": 1.5, "cloned_organs": 1.8},
				SpecialDemand: map[string]SpecialDemand{"xeno_geologicals": {Bonus: 1.75}},
			},
			{
				ID: "loc_jupiter", Name: "Jupiter", FuelPrice: 150,
				Modifiers:     map[string]float64{"propellant": 0.5, "processors": 1.4, "cybernetics": 1.5, "plasteel": 1.3},
				SpecialDemand: map[string]SpecialDemand{"atmos_processors": {Bonus: 1.75}},
			},
			{
				ID: "loc_uranus", Name: "Uranus", FuelPrice: 700,
				Modifiers:     map[string]float64{"xeno_geologicals": 1.2, "processors": 1.5, "gmo_seeds": 1.8, "water_ice": 0.8},
				SpecialDemand: map[string]SpecialDemand{"folded_drives": {Bonus: 1.75}},
			},
			{
				ID: "loc_neptune", Name: "Neptune", FuelPrice: 650,
				Modifiers:     map[string]float64{"sentient_ai": 1.4, "folded_drives": 1.2, "antimatter": 1.3, "cybernetics": 0.7},
				SpecialDemand: map[string]SpecialDemand{"antimatter": {Bonus: 1.75}},
			},
			{
				ID: "loc_pluto", Name: "Pluto", FuelPrice: 900,
				Modifiers:     map[string]float64{"cloned_organs": 2.0, "sentient_ai": 1.5, "cybernetics": 1.4, "plasteel": 0.9},
				SpecialDemand: map[string]SpecialDemand{"cloned_organs": {Bonus: 1.75}},
			},
			{
				ID: "loc_exchange", Name: "The Exchange", FuelPrice: 1200,
				Modifiers:     map[string]float64{"antimatter": 2.5, "folded_drives": 1.5, "xeno_geologicals": 1.2},
				SpecialDemand: map[string]SpecialDemand{"sentient_ai": {Bonus: 1.75}},
			},
			{
				ID: "loc_kepler", Name: "Kepler's Eye", FuelPrice: 800,
				Modifiers:     map[string]float64{"sentient_ai": 2.0, "processors": 1.8, "cryo_pods": 1.3},
				SpecialDemand: map[string]SpecialDemand{"xeno_geologicals": {Bonus: 1.75}},
			},
		},
		Ships: []Ship{
			{ID: "starter", Name: "Wanderer", Class: "C", Price: 0, MaxHealth: 100, CargoCapacity: 50, MaxFuel: 100},
			{ID: "hauler_c1", Name: "Stalwart", Class: "C", Price: 65000, MaxHealth: 150, CargoCapacity: 75, MaxFuel: 80, SaleLocationID: "loc_mars"},
			{ID: "hauler_c2", Name: "Mule", Class: "C", Price: 110000, MaxHealth: 50, CargoCapacity: 175, MaxFuel: 50, SaleLocationID: "loc_belt"},
			{ID: "explorer_b1", Name: "Pathfinder", Class: "B", Price: 180000, MaxHealth: 120, CargoCapacity: 250, MaxFuel: 150, SaleLocationID: "loc_luna"},
			{ID: "explorer_b2", Name: "Nomad", Class: "B", Price: 280000, MaxHealth: 100, CargoCapacity: 100, MaxFuel: 140, SaleLocationID: "loc_uranus"},
			{ID: "frigate_a1", Name: "Vindicator", Class: "A", Price: 750000, MaxHealth: 250, CargoCapacity: 125, MaxFuel: 120, SaleLocationID: "loc_neptune"},
			{ID: "frigate_a2", Name: "Aegis", Class: "A", Price: 1200000, MaxHealth: 120, CargoCapacity: 150, MaxFuel: 140, SaleLocationID: "loc_earth"},
			{ID: "luxury_s1", Name: "Odyssey", Class: "S", Price: 3800000, MaxHealth: 100, CargoCapacity: 125, MaxFuel: 250, SaleLocationID: "loc_saturn"},
			{ID: "luxury_s2", Name: "Majestic", Class: "S", Price: 7200000, MaxHealth: 200, CargoCapacity: 400, MaxFuel: 250, SaleLocationID: "loc_kepler"},
			{ID: "rare_s1", Name: "Titan Hauler", Class: "S", Price: 1800000, MaxHealth: 175, CargoCapacity: 500, MaxFuel: 75, SaleLocationID: "loc_uranus", Rare: true},
			{ID: "rare_s2", Name: "Void Chaser", Class: "S", Price: 3100000, MaxHealth: 50, CargoCapacity: 75, MaxFuel: 400, SaleLocationID: "loc_belt", Rare: true},
			{ID: "rare_s3", Name: "Guardian", Class: "S", Price: 1500000, MaxHealth: 400, CargoCapacity: 100, MaxFuel: 150, SaleLocationID: "loc_earth", Rare: true},
			{ID: "rare_s4", Name: "Stargazer", Class: "S", Price: 950000, MaxHealth: 100, CargoCapacity: 50, MaxFuel: 350, SaleLocationID: "loc_jupiter", Rare: true},
			{ID: "rare_o1", Name: "Behemoth", Class: "O", Price: 32000000, MaxHealth: 600, CargoCapacity: 6000, MaxFuel: 600, SaleLocationID: "loc_exchange", Rare: true},
		},
		Milestones: []Milestone{
			{Threshold: 30000, UnlockLevel: 2, Message: "Your growing reputation has unlocked access to more advanced industrial hardware."},
			{Threshold: 300000, UnlockLevel: 3, UnlocksLocation: "loc_uranus", Message: "Word of your success is spreading. High-tech biological and medical markets are now open to you."},
			{Threshold: 5000000, UnlockLevel: 4, UnlocksLocation: "loc_neptune", Message: "Your influence is undeniable. Contracts for planetary-scale infrastructure are now within your reach."},
			{Threshold: 75000000, UnlockLevel: 5, UnlocksLocation: "loc_pluto", Message: "You now operate on a level few can comprehend. The most exotic goods are available to you."},
			{Threshold: 100000000, UnlocksLocation: "loc_kepler", Message: "Your name is legend. You've been granted clearance to Kepler's Eye."},
			{Threshold: 500000000, UnlockLevel: 6, UnlocksLocation: "loc_exchange", Message: "The Exchange has taken notice. Reality-bending goods now trade within your reach."},
		},
	}
}
