package registry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingatlan/agent/internal/models"
)

func property(t *testing.T, location string, price float64, area int, rooms float64, category models.Category) *models.Property {
	t.Helper()
	p, err := models.NewProperty(location, price, area, rooms, category)
	require.NoError(t, err)
	return p
}

func unit(t *testing.T, location string, price float64, area int, rooms float64, floor int, insulated bool) *models.ApartmentUnit {
	t.Helper()
	u, err := models.NewApartmentUnit(location, price, area, rooms, models.Condominium, floor, insulated)
	require.NoError(t, err)
	return u
}

func prices(listings []models.Listing) []int64 {
	result := make([]int64, len(listings))
	for i, l := range listings {
		result[i] = l.TotalPrice()
	}
	return result
}

// fixture: totals 156000, 76800, 104000, 114660, 50000
func fixture(t *testing.T) (*Registry, []models.Listing) {
	listings := []models.Listing{
		property(t, "Budapest", 1000, 120, 4, models.DetachedHouse),
		property(t, "Debrecen", 800, 80, 3, models.Condominium),
		unit(t, "Budapest", 1000, 80, 3, 5, false),
		unit(t, "budapest", 1000, 80, 3, 0, true),
		property(t, "Szeged", 500, 100, 2, models.Farm),
	}
	r := NewRegistry(nil)
	for _, l := range listings {
		require.True(t, r.Add(l))
	}
	return r, listings
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry(nil)

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0.0, r.AveragePricePerArea())
	assert.Nil(t, r.Cheapest())
	assert.Nil(t, r.MostExpensiveIn("Budapest"))
	assert.Equal(t, int64(0), r.TotalOfAll())
	assert.Equal(t, 0.0, r.AverageTotalPrice())
	assert.NotNil(t, r.CondominiumsBelowAverage())
	assert.Empty(t, r.CondominiumsBelowAverage())
	assert.Empty(t, r.All())
}

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry(nil)
	p := property(t, "Budapest", 1000, 120, 4, models.DetachedHouse)

	assert.True(t, r.Add(p))
	assert.False(t, r.Add(p), "same listing must not be held twice")
	assert.False(t, r.Add(nil))
	assert.Equal(t, 1, r.Len())

	// An identical but distinct listing is a new member.
	assert.True(t, r.Add(property(t, "Budapest", 1000, 120, 4, models.DetachedHouse)))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_AllSorted(t *testing.T) {
	r, _ := fixture(t)
	assert.Equal(t, []int64{50000, 76800, 104000, 114660, 156000}, prices(r.All()))
}

func TestRegistry_TiesKeepInsertionOrder(t *testing.T) {
	r := NewRegistry(nil)
	first := property(t, "Debrecen", 800, 80, 3, models.Condominium)
	second := unit(t, "Szeged", 960, 80, 3, 5, false)
	third := property(t, "Szeged", 768, 100, 3, models.Farm)
	r.Add(first)
	r.Add(second)
	r.Add(third)

	all := r.All()
	require.Len(t, all, 3)
	assert.Same(t, first, all[0])
	assert.Same(t, second, all[1])
	assert.Same(t, third, all[2])
	assert.Same(t, first, r.Cheapest())
	assert.Same(t, first, r.MostExpensiveIn("debrecen"))
}

func TestRegistry_OrderFollowsDiscount(t *testing.T) {
	r := NewRegistry(nil)
	cheap := property(t, "Szeged", 500, 100, 2, models.Farm)
	dear := property(t, "Budapest", 1000, 120, 4, models.DetachedHouse)
	r.Add(cheap)
	r.Add(dear)
	require.Same(t, cheap, r.Cheapest())

	dear.ApplyDiscount(90)

	assert.Same(t, dear, r.Cheapest())
	assert.Same(t, dear, r.All()[0])
	assert.Equal(t, int64(15600+50000), r.TotalOfAll())
}

func TestRegistry_AveragePricePerArea(t *testing.T) {
	r, _ := fixture(t)
	assert.InDelta(t, (1000.0+800+1000+1000+500)/5, r.AveragePricePerArea(), 1e-9)
}

func TestRegistry_Cheapest(t *testing.T) {
	r, listings := fixture(t)
	cheapest := r.Cheapest()
	require.NotNil(t, cheapest)
	assert.Same(t, listings[4], cheapest)
	for _, l := range listings {
		assert.LessOrEqual(t, cheapest.TotalPrice(), l.TotalPrice())
	}
}

func TestRegistry_MostExpensiveIn(t *testing.T) {
	r, listings := fixture(t)

	assert.Same(t, listings[0], r.MostExpensiveIn("Budapest"))
	assert.Same(t, listings[0], r.MostExpensiveIn("BUDAPEST"))
	assert.Same(t, listings[1], r.MostExpensiveIn("debrecen"))
	assert.Nil(t, r.MostExpensiveIn("Pécs"))
	assert.Nil(t, r.MostExpensiveIn("Buda"))
}

func TestRegistry_Totals(t *testing.T) {
	r, _ := fixture(t)
	total := int64(156000 + 76800 + 104000 + 114660 + 50000)
	assert.Equal(t, total, r.TotalOfAll())
	assert.InDelta(t, float64(total)/5, r.AverageTotalPrice(), 1e-9)
}

func TestRegistry_TotalOfAllSaturates(t *testing.T) {
	r := NewRegistry(nil)
	for i := 0; i < 1200; i++ {
		require.True(t, r.Add(property(t, "Budapest", 6e15, 1, 1, models.Farm)))
	}
	each := r.All()[0].TotalPrice()
	require.Greater(t, each, int64(0))

	assert.Equal(t, int64(math.MaxInt64), r.TotalOfAll())
	assert.InEpsilon(t, float64(each), r.AverageTotalPrice(), 1e-9)
	assert.NotNil(t, r.Cheapest())
	assert.Equal(t, each, r.Cheapest().TotalPrice())
}

func TestRegistry_CondominiumsBelowAverage(t *testing.T) {
	r, listings := fixture(t)
	avg := r.AverageTotalPrice() // 100292

	result := r.CondominiumsBelowAverage()
	require.Len(t, result, 1)
	assert.Same(t, listings[1], result[0])
	for _, l := range result {
		assert.Equal(t, models.Condominium, l.Details().Category())
		assert.LessOrEqual(t, float64(l.TotalPrice()), avg)
	}
}

func TestRegistry_CondominiumsAtAverageIncluded(t *testing.T) {
	r := NewRegistry(nil)
	a := property(t, "Debrecen", 800, 80, 3, models.Condominium)
	b := property(t, "Debrecen", 800, 80, 3, models.Condominium)
	r.Add(a)
	r.Add(b)

	result := r.CondominiumsBelowAverage()
	require.Len(t, result, 2)
	assert.Same(t, a, result[0])
	assert.Same(t, b, result[1])
}

func TestRegistry_Find(t *testing.T) {
	r, listings := fixture(t)
	assert.Same(t, listings[2], r.Find(listings[2].Details().ID()))

	other := property(t, "Budapest", 1, 1, 1, models.Farm)
	assert.Nil(t, r.Find(other.ID()))
}

func TestRegistry_MatchingValuation(t *testing.T) {
	r := NewRegistry(nil)
	p := property(t, "Debrecen", 800, 80, 3, models.Condominium)
	u := unit(t, "Szeged", 960, 80, 3, 5, false)
	other := unit(t, "Szeged", 960, 80, 3, 0, false)
	r.Add(p)
	r.Add(u)
	r.Add(other)

	matches := r.MatchingValuation(p)
	require.Len(t, matches, 1)
	assert.Same(t, u, matches[0])
	assert.Empty(t, r.MatchingValuation(other))
}

func TestRegistry_ApplyDiscount(t *testing.T) {
	r, listings := fixture(t)
	r.ApplyDiscount(10)
	assert.InDelta(t, 900.0, listings[0].Details().PricePerArea(), 1e-9)
	assert.InDelta(t, 450.0, listings[4].Details().PricePerArea(), 1e-9)

	r.ApplyDiscount(0)
	assert.InDelta(t, 900.0, listings[0].Details().PricePerArea(), 1e-9)
}
