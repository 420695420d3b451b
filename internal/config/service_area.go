package config

import "route-optimizer-service/internal/domain"

// Bounds is the rectangular region geocoded results must fall inside.
type Bounds struct {
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

// Contains reports whether the coordinates fall inside the bounds.
func (b Bounds) Contains(c domain.Coordinates) bool {
	return c.Lat >= b.LatMin && c.Lat <= b.LatMax &&
		c.Lng >= b.LngMin && c.Lng <= b.LngMax
}

// ServiceArea is the immutable geographic reference data for one city:
// the validation bounds, known locality centers for fallback geocoding,
// and the city center as the last resort.
type ServiceArea struct {
	City            string
	Country         string
	Bounds          Bounds
	LocalityCenters map[string]domain.Coordinates
	CityCenter      domain.Coordinates
}

// DefaultServiceArea returns the Bogotá service area the original
// deployment covers.
func DefaultServiceArea() ServiceArea {
	return ServiceArea{
		City:    "Bogotá",
		Country: "Colombia",
		Bounds: Bounds{
			LatMin: 4.47,
			LatMax: 4.83,
			LngMin: -74.22,
			LngMax: -74.00,
		},
		LocalityCenters: map[string]domain.Coordinates{
			"Chapinero":      {Lat: 4.6097, Lng: -74.0817},
			"Usaquén":        {Lat: 4.6954, Lng: -74.0308},
			"Teusaquillo":    {Lat: 4.6392, Lng: -74.0931},
			"Barrios Unidos": {Lat: 4.6609, Lng: -74.0687},
			"Engativá":       {Lat: 4.6868, Lng: -74.1439},
			"Suba":           {Lat: 4.7370, Lng: -74.0937},
			"Fontibón":       {Lat: 4.6735, Lng: -74.1365},
			"La Candelaria":  {Lat: 4.5980, Lng: -74.0760},
			"Santa Fé":       {Lat: 4.6097, Lng: -74.0654},
			"Antonio Nariño": {Lat: 4.5924, Lng: -74.0989},
			"Puente Aranda":  {Lat: 4.6209, Lng: -74.1221},
			"Pontevedra":     {Lat: 4.6392, Lng: -74.0931},
			"Centro":         {Lat: 4.5980, Lng: -74.0760},
		},
		CityCenter: domain.Coordinates{Lat: 4.60971, Lng: -74.08175},
	}
}
