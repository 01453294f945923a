// Package game implements the simulation core: market economy, travel,
// random events, player finances and fleet management. All state lives in
// a Session and every mutation goes through its methods.
package game

import (
	"errors"
	"math"
)

var (
	ErrInsufficientFunds = errors.New("insufficient credits")
	ErrInsufficientFuel  = errors.New("insufficient fuel")
	ErrInsufficientCargo = errors.New("insufficient cargo")
	ErrCargoFull         = errors.New("cargo hold full")
	ErrStockDepleted     = errors.New("market stock depleted")
	ErrUnknownCommodity  = errors.New("unknown commodity")
	ErrUnknownLocation   = errors.New("unknown location")
	ErrUnknownShip       = errors.New("unknown ship")
	ErrLocationLocked    = errors.New("location not yet unlocked")
	ErrShipNotOwned      = errors.New("ship not owned")
	ErrShipNotForSale    = errors.New("ship not for sale here")
	ErrShipActive        = errors.New("cannot sell the active ship")
	ErrLastShip          = errors.New("cannot sell your only ship")
	ErrAlreadyHere       = errors.New("already docked at destination")
	ErrInTransit         = errors.New("operation unavailable in transit")
	ErrNotTraveling      = errors.New("no travel in progress")
	ErrAwaitingChoice    = errors.New("a pending choice must be resolved first")
	ErrNoPendingChoice   = errors.New("no pending choice")
	ErrInvalidChoice     = errors.New("invalid choice index")
	ErrGameOver          = errors.New("game over")
	ErrNoDebt            = errors.New("no outstanding debt")
	ErrDebtOutstanding   = errors.New("loan unavailable while in debt")
	ErrIntelActive       = errors.New("intel already active")
	ErrIntelUnavailable  = errors.New("no intel offered here")
	ErrTierLocked        = errors.New("commodity tier not yet unlocked")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrCargoNotEmpty     = errors.New("cargo hold not empty")
	ErrFuelFull          = errors.New("fuel tank already full")
	ErrHullIntact        = errors.New("hull already at full integrity")
)

func roundInt(v float64) int {
	return int(math.Round(v))
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// skewedRandom draws an integer in [min, max] biased toward the high
// end. Averaging three uniform draws clusters near the middle, and the
// square root pushes the result above the midpoint, so restocks land
// in the upper half of the envelope most weeks.
func skewedRandom(min, max int, next func() float64) int {
	if max <= min {
		return min
	}
	r := (next() + next() + next()) / 3
	return min + int(math.Floor(float64(max-min)*math.Sqrt(r)))
}
