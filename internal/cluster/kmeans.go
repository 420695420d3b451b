package cluster

import (
	"errors"
	"math"
	"math/rand"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// maxKMeansIterations bounds a single Lloyd run; assignments converge far
// earlier on city-scale inputs.
const maxKMeansIterations = 100

type point struct {
	lat float64
	lng float64
}

func squaredDist(a, b point) float64 {
	dLat := a.lat - b.lat
	dLng := a.lng - b.lng
	return dLat*dLat + dLng*dLng
}

// kMeans runs Lloyd's algorithm on the given 2D points and returns a
// cluster label per point in [0, k). Initial centroids are k distinct
// points chosen by the seeded rng, so trials with different seeds explore
// different partitions. Degenerate numeric input yields an error so the
// caller can skip the trial.
func kMeans(points []point, k int, rng *rand.Rand) ([]int, error) {
	if k <= 0 {
		return nil, errors.New("kmeans: k must be positive")
	}
	if len(points) < k {
		return nil, errors.New("kmeans: fewer points than clusters")
	}

	for _, p := range points {
		if math.IsNaN(p.lat) || math.IsInf(p.lat, 0) || math.IsNaN(p.lng) || math.IsInf(p.lng, 0) {
			return nil, errors.New("kmeans: non-finite coordinate")
		}
	}

	centroids := make([]point, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		centroids[i] = points[idx]
	}

	labels := make([]int, len(points))
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false

		for i, p := range points {
			best := 0
			bestDist := squaredDist(p, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDist(p, centroids[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best || iter == 0 {
				labels[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		sums := make([]point, k)
		counts := make([]int, k)
		for i, p := range points {
			sums[labels[i]].lat += p.lat
			sums[labels[i]].lng += p.lng
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			// An emptied centroid keeps its previous position.
			if counts[c] > 0 {
				centroids[c] = point{
					lat: sums[c].lat / float64(counts[c]),
					lng: sums[c].lng / float64(counts[c]),
				}
			}
		}
	}

	return labels, nil
}

// weightedPoints nudges each stop's coordinates toward the depot with an
// inverse-distance factor: closer stops are pulled harder, biasing the
// resulting groups to stay compact around the depot.
func weightedPoints(stops []domain.Stop, depot *domain.Depot, weight float64) []point {
	points := make([]point, len(stops))
	for i, s := range stops {
		points[i] = point{lat: s.Coord.Lat, lng: s.Coord.Lng}
	}
	if depot == nil || weight <= 0 {
		return points
	}

	for i, s := range stops {
		dist := geo.Distance(depot.Coord, s.Coord)
		if dist <= 0 {
			continue
		}
		factor := weight / (1 + dist)
		points[i].lat += (depot.Coord.Lat - s.Coord.Lat) * factor
		points[i].lng += (depot.Coord.Lng - s.Coord.Lng) * factor
	}

	return points
}
