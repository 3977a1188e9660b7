package registry

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ingatlan/agent/config"
	"ingatlan/agent/internal/models"
)

// Registry holds the loaded listings and answers the report queries.
//
// Listings are kept in insertion order and every read sorts a fresh snapshot
// by total price, so a discount applied after insertion can never leave a
// stale order behind. Ties keep insertion order.
//
// A Registry is not safe for concurrent mutation. Populate it first, then
// share it read-only.
type Registry struct {
	listings []models.Listing
	logger   *logrus.Logger
}

// NewRegistry creates an empty registry. A nil logger discards log output.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &Registry{logger: logger}
}

// Add inserts a listing. Adding a listing that is already held does not
// duplicate it and returns false.
func (r *Registry) Add(l models.Listing) bool {
	if l == nil {
		return false
	}
	for _, existing := range r.listings {
		if existing == l {
			return false
		}
	}
	r.listings = append(r.listings, l)
	r.logger.WithFields(logrus.Fields{
		"id":          l.Details().ID(),
		"location":    l.Details().Location(),
		"total_price": l.TotalPrice(),
	}).Debug("Added listing to registry")
	return true
}

// Len returns the number of listings held
func (r *Registry) Len() int {
	return len(r.listings)
}

// All returns the listings sorted by total price ascending.
func (r *Registry) All() []models.Listing {
	sorted := make([]models.Listing, len(r.listings))
	copy(sorted, r.listings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPrice() < sorted[j].TotalPrice()
	})
	return sorted
}

// Find returns the listing with the given id, or nil.
func (r *Registry) Find(id uuid.UUID) models.Listing {
	for _, l := range r.listings {
		if l.Details().ID() == id {
			return l
		}
	}
	return nil
}

// ApplyDiscount discounts every listing by the same percentage.
func (r *Registry) ApplyDiscount(percentage int) {
	for _, l := range r.listings {
		l.ApplyDiscount(percentage)
	}
	r.logger.WithFields(logrus.Fields{
		"percentage": percentage,
		"listings":   len(r.listings),
	}).Info("Applied discount")
}

// AveragePricePerArea is the mean price per area, 0 when empty.
func (r *Registry) AveragePricePerArea() float64 {
	if len(r.listings) == 0 {
		return 0
	}
	var sum float64
	for _, l := range r.listings {
		sum += l.Details().PricePerArea()
	}
	return sum / float64(len(r.listings))
}

// Cheapest returns the listing with the lowest total price, or nil.
func (r *Registry) Cheapest() models.Listing {
	var cheapest models.Listing
	var lowest int64
	for _, l := range r.All() {
		if price := l.TotalPrice(); cheapest == nil || price < lowest {
			cheapest, lowest = l, price
		}
	}
	return cheapest
}

// MostExpensiveIn returns the priciest listing in location (case-insensitive),
// or nil when nothing is listed there.
func (r *Registry) MostExpensiveIn(location string) models.Listing {
	var best models.Listing
	var highest int64
	for _, l := range r.All() {
		if !config.SameCity(l.Details().Location(), location) {
			continue
		}
		if price := l.TotalPrice(); best == nil || price > highest {
			best, highest = l, price
		}
	}
	return best
}

// TotalOfAll sums every total price. A sum past math.MaxInt64 saturates at
// math.MaxInt64.
func (r *Registry) TotalOfAll() int64 {
	var sum int64
	for _, l := range r.listings {
		price := l.TotalPrice()
		if price > math.MaxInt64-sum {
			r.logger.WithField("listings", len(r.listings)).Warn("Total of all listings overflows, saturating")
			return math.MaxInt64
		}
		sum += price
	}
	return sum
}

// AverageTotalPrice is the mean total price, 0 when empty. It sums in float64
// so that it stays correct when TotalOfAll saturates.
func (r *Registry) AverageTotalPrice() float64 {
	if len(r.listings) == 0 {
		return 0
	}
	var sum float64
	for _, l := range r.listings {
		sum += float64(l.TotalPrice())
	}
	return sum / float64(len(r.listings))
}

// CondominiumsBelowAverage returns the condominiums priced at or below the
// average total price of all listings, in sorted order.
func (r *Registry) CondominiumsBelowAverage() []models.Listing {
	avg := r.AverageTotalPrice()
	result := make([]models.Listing, 0)
	for _, l := range r.All() {
		if l.Details().Category() == models.Condominium && float64(l.TotalPrice()) <= avg {
			result = append(result, l)
		}
	}
	return result
}

// MatchingValuation returns the other listings whose total price equals l's.
func (r *Registry) MatchingValuation(l models.Listing) []models.Listing {
	result := make([]models.Listing, 0)
	for _, other := range r.All() {
		if other != l && l.SameValuation(other) {
			result = append(result, other)
		}
	}
	return result
}
