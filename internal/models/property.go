package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"ingatlan/agent/config"
)

var (
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidModifierState = errors.New("invalid modifier state")
)

// Category is the kind of real estate a listing describes
type Category int

const (
	DetachedHouse Category = iota
	Condominium
	Farm
)

// String returns the string representation of a Category
func (c Category) String() string {
	switch c {
	case DetachedHouse:
		return "DETACHED_HOUSE"
	case Condominium:
		return "CONDOMINIUM"
	case Farm:
		return "FARM"
	default:
		return "UNKNOWN"
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category token case-insensitively. FAMILYHOUSE is
// accepted as the legacy name of DETACHED_HOUSE.
func ParseCategory(token string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "DETACHED_HOUSE", "FAMILYHOUSE":
		return DetachedHouse, nil
	case "CONDOMINIUM":
		return Condominium, nil
	case "FARM":
		return Farm, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, token)
	}
}

// Listing is implemented by every entity the registry holds.
type Listing interface {
	// Details exposes the base attributes shared by all listings.
	Details() *Property
	TotalPrice() int64
	AverageAreaPerRoom() float64
	PricePerRoom() int64
	ApplyDiscount(percentage int)
	SameValuation(other Listing) bool
}

// Property is a plain listing priced by area and location.
//
// TotalPrice is always computed from the current pricePerArea and never
// cached, since ApplyDiscount mutates it after the listing is registered.
type Property struct {
	id           uuid.UUID
	location     string
	pricePerArea float64
	area         int
	roomCount    float64
	category     Category
}

// MaxTotalPrice is the largest valuation a listing may reach. Above 2^53 a
// float64 no longer holds every integer, so totals would stop being exact.
const MaxTotalPrice int64 = 1 << 53

// maxUnitModifier is the floor premium times the insulation premium.
const maxUnitModifier = 1.05 * 1.05

// NewProperty validates and builds a Property.
//
// Negative prices and non-positive areas are rejected, and so is any listing
// whose valuation could exceed MaxTotalPrice with the highest location and
// unit modifiers applied. A price of zero is accepted, and so is any room
// count: a count of zero or below only makes the per-room metrics 0.
func NewProperty(location string, pricePerArea float64, area int, roomCount float64, category Category) (*Property, error) {
	if pricePerArea < 0 || math.IsNaN(pricePerArea) || math.IsInf(pricePerArea, 0) {
		return nil, fmt.Errorf("%w: price per area %v", ErrInvalidModifierState, pricePerArea)
	}
	if area <= 0 {
		return nil, fmt.Errorf("%w: area %d", ErrInvalidModifierState, area)
	}
	if pricePerArea*float64(area)*config.MaxLocationMultiplier()*maxUnitModifier > float64(MaxTotalPrice) {
		return nil, fmt.Errorf("%w: price %v for area %d is out of range", ErrInvalidModifierState, pricePerArea, area)
	}
	if math.IsNaN(roomCount) || math.IsInf(roomCount, 0) {
		return nil, fmt.Errorf("%w: room count %v", ErrInvalidModifierState, roomCount)
	}
	switch category {
	case DetachedHouse, Condominium, Farm:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(category))
	}

	return &Property{
		id:           uuid.New(),
		location:     location,
		pricePerArea: pricePerArea,
		area:         area,
		roomCount:    roomCount,
		category:     category,
	}, nil
}

func (p *Property) Details() *Property { return p }
func (p *Property) ID() uuid.UUID { return p.id }
func (p *Property) Location() string { return p.location }
func (p *Property) PricePerArea() float64 { return p.pricePerArea }
func (p *Property) Area() int { return p.area }
func (p *Property) RoomCount() float64 { return p.roomCount }
func (p *Property) Category() Category { return p.category }

// baseTotal is the unrounded price with the location multiplier applied.
func (p *Property) baseTotal() float64 {
	return p.pricePerArea * float64(p.area) * config.LocationMultiplier(p.location)
}

// TotalPrice returns the rounded valuation used for every comparison.
func (p *Property) TotalPrice() int64 {
	return roundHalfUp(p.baseTotal())
}

// AverageAreaPerRoom returns area / roomCount, or 0 without rooms.
func (p *Property) AverageAreaPerRoom() float64 {
	if p.roomCount <= 0 {
		return 0
	}
	return float64(p.area) / p.roomCount
}

// PricePerRoom divides the raw price (no multipliers) by the room count.
func (p *Property) PricePerRoom() int64 {
	if p.roomCount <= 0 {
		return 0
	}
	return roundHalfUp(p.pricePerArea * float64(p.area) / p.roomCount)
}

// ApplyDiscount lowers the price per area by percentage percent. Values
// outside (0, 100] are ignored. Repeated discounts compound.
func (p *Property) ApplyDiscount(percentage int) {
	if percentage <= 0 || percentage > 100 {
		return
	}
	p.pricePerArea -= p.pricePerArea * float64(percentage) / 100
}

func (p *Property) SameValuation(other Listing) bool {
	return SameValuation(p, other)
}

// SameValuation reports whether two listings have the same total price, each
// computed with its own modifiers.
func SameValuation(a, b Listing) bool {
	if a == nil || b == nil {
		return false
	}
	return a.TotalPrice() == b.TotalPrice()
}

// roundHalfUp rounds to the nearest integer, halves towards +Inf.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
