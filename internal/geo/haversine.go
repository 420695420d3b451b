// Package geo provides the great-circle distance primitives shared by the
// clustering engine, the route solver, and the route metrics pass.
package geo

import (
	"math"

	"route-optimizer-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance in kilometers
// between two coordinate pairs. It is symmetric and zero for identical
// points; inputs are assumed to be valid finite coordinates.
func Distance(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Matrix builds the full n×n pairwise distance matrix for the given
// points. The result is symmetric with a zero diagonal.
func Matrix(points []domain.Coordinates) [][]float64 {
	n := len(points)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	// Only the upper triangle is computed; the lower is mirrored.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Distance(points[i], points[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	return matrix
}
