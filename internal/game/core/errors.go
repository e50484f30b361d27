package core

import (
	"errors"
	"fmt"
)

var (
	ErrMapInvalid        = errors.New("map is invalid")
	ErrUnknownTerritory  = errors.New("unknown territory")
	ErrUnknownContinent  = errors.New("unknown continent")
	ErrSelfBorder        = errors.New("territory cannot border itself")
	ErrNegativeAmount    = errors.New("amount must be non-negative")
	ErrInsufficientArmy  = errors.New("insufficient armies")
	ErrInsufficientPool  = errors.New("insufficient reinforcement pool")
	ErrEmptyDeck         = errors.New("deck is empty")
	ErrCardNotFound      = errors.New("card not found in hand")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrGameOver          = errors.New("game is over")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrUnknownStrategy   = errors.New("unknown strategy")
	ErrNoOrdersAvailable = errors.New("strategy issues no orders")
)

// MapError describes a structural problem found while validating a map.
type MapError struct {
	Map    string
	Reason string
}

func (e *MapError) Error() string {
	if e.Map == "" {
		return fmt.Sprintf("%s: %s", ErrMapInvalid, e.Reason)
	}
	return fmt.Sprintf("map %q: %s: %s", e.Map, ErrMapInvalid, e.Reason)
}

// Unwrap lets errors.Is match ErrMapInvalid.
func (e *MapError) Unwrap() error { return ErrMapInvalid }

// WrapOrderError adds the issuing player and order description to an error.
func WrapOrderError(o Order, err error) error {
	if err == nil {
		return nil
	}
	if o == nil || o.Issuer() == nil {
		return fmt.Errorf("order: %w", err)
	}
	return fmt.Errorf("player %s: %s: %w", o.Issuer().Name, o.String(), err)
}

// WrapTurnError adds turn and phase context to an error.
func WrapTurnError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds player context to an error.
func WrapPlayerError(p *Player, operation string, err error) error {
	if err == nil {
		return nil
	}
	if p == nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return fmt.Errorf("player %s: %s: %w", p.Name, operation, err)
}
