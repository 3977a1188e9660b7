package config

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// City represents a city with a land price premium
type City struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// SupportedCities lists the cities whose listings are priced above base.
// Every other location uses a multiplier of 1.0.
var SupportedCities = []City{
	{Name: "Budapest", Multiplier: 1.30},
	{Name: "Debrecen", Multiplier: 1.20},
	{Name: "Nyíregyháza", Multiplier: 1.15},
}

// MaxLocationMultiplier returns the highest multiplier any location can get.
func MaxLocationMultiplier() float64 {
	highest := 1.0
	for _, city := range SupportedCities {
		if city.Multiplier > highest {
			highest = city.Multiplier
		}
	}
	return highest
}

// GetCityByName returns a city configuration by name, ignoring case
func GetCityByName(name string) *City {
	key := NormalizeCity(name)
	for _, city := range SupportedCities {
		if NormalizeCity(city.Name) == key {
			return &city
		}
	}
	return nil
}

// LocationMultiplier returns the price multiplier for a location.
func LocationMultiplier(location string) float64 {
	if city := GetCityByName(location); city != nil {
		return city.Multiplier
	}
	return 1.0
}

// NormalizeCity folds case and composes accents so that "NYÍREGYHÁZA" and a
// decomposed "Nyíregyháza" compare equal. Surrounding text is not trimmed:
// matching is exact apart from case.
func NormalizeCity(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// SameCity reports whether two location names denote the same city.
func SameCity(a, b string) bool {
	return NormalizeCity(a) == NormalizeCity(b)
}
