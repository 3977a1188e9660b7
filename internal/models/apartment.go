package models

// ApartmentUnit is a prefabricated block apartment. Its valuation adds a floor
// and an insulation modifier on top of the location multiplier.
type ApartmentUnit struct {
	Property
	floor     int
	insulated bool
}

func NewApartmentUnit(location string, pricePerArea float64, area int, roomCount float64, category Category, floor int, insulated bool) (*ApartmentUnit, error) {
	base, err := NewProperty(location, pricePerArea, area, roomCount, category)
	if err != nil {
		return nil, err
	}
	return &ApartmentUnit{
		Property:  *base,
		floor:     floor,
		insulated: insulated,
	}, nil
}

func (a *ApartmentUnit) Floor() int { return a.floor }
func (a *ApartmentUnit) Insulated() bool { return a.insulated }

// floorModifier: ground to second floor is a premium, the tenth floor a
// discount. Negative floors get no modifier.
func (a *ApartmentUnit) floorModifier() float64 {
	switch {
	case a.floor >= 0 && a.floor <= 2:
		return 1.05
	case a.floor == 10:
		return 0.95
	default:
		return 1.0
	}
}

// TotalPrice applies location, floor and insulation in that order and rounds
// only the final result.
func (a *ApartmentUnit) TotalPrice() int64 {
	total := a.baseTotal() * a.floorModifier()
	if a.insulated {
		total *= 1.05
	}
	return roundHalfUp(total)
}

func (a *ApartmentUnit) SameValuation(other Listing) bool {
	return SameValuation(a, other)
}
