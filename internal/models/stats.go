package models

import "github.com/google/uuid"

// ListingView is the flattened, serialisable form of a listing
type ListingView struct {
	ID                 uuid.UUID `json:"id"`
	Kind               string    `json:"kind"`
	Location           string    `json:"location"`
	PricePerArea       float64   `json:"price_per_area"`
	Area               int       `json:"area"`
	RoomCount          float64   `json:"room_count"`
	Category           Category  `json:"category"`
	Floor              *int      `json:"floor,omitempty"`
	Insulated          *bool     `json:"insulated,omitempty"`
	TotalPrice         int64     `json:"total_price"`
	AverageAreaPerRoom float64   `json:"average_area_per_room"`
	PricePerRoom       int64     `json:"price_per_room"`
}

const (
	KindProperty      = "property"
	KindApartmentUnit = "apartment_unit"
)

// NewListingView snapshots the current state and derived values of l.
func NewListingView(l Listing) ListingView {
	p := l.Details()
	view := ListingView{
		ID:                 p.ID(),
		Kind:               KindProperty,
		Location:           p.Location(),
		PricePerArea:       p.PricePerArea(),
		Area:               p.Area(),
		RoomCount:          p.RoomCount(),
		Category:           p.Category(),
		TotalPrice:         l.TotalPrice(),
		AverageAreaPerRoom: l.AverageAreaPerRoom(),
		PricePerRoom:       l.PricePerRoom(),
	}
	if unit, ok := l.(*ApartmentUnit); ok {
		floor, insulated := unit.Floor(), unit.Insulated()
		view.Kind = KindApartmentUnit
		view.Floor = &floor
		view.Insulated = &insulated
	}
	return view
}

// NewListingViews converts a slice of listings, keeping the order.
func NewListingViews(listings []Listing) []ListingView {
	views := make([]ListingView, len(listings))
	for i, l := range listings {
		views[i] = NewListingView(l)
	}
	return views
}

// ReportStats holds the aggregate values of one report run
type ReportStats struct {
	TotalListings            int           `json:"total_listings"`
	AveragePricePerArea      float64       `json:"average_price_per_area"`
	CheapestTotalPrice       *int64        `json:"cheapest_total_price"`
	ReportCity               string        `json:"report_city"`
	CityMaxAreaPerRoom       *float64      `json:"city_max_average_area_per_room"`
	TotalOfAll               int64         `json:"total_of_all"`
	AverageTotalPrice        float64       `json:"average_total_price"`
	CondominiumsBelowAverage []ListingView `json:"condominiums_below_average"`
}
