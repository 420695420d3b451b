// Package cluster partitions delivery stops into exactly k vehicle groups.
//
// Both clustering modes run the same multi-trial search: seeded k-means on
// depot-weighted coordinates, a split-or-pad step that forces exactly k
// groups, and a mode-specific score that keeps the best trial. Trials are
// independent; a failed trial is logged and skipped, and a deterministic
// equal-size split covers the case where every trial fails.
package cluster

import (
	"log"
	"math"
	"math/rand"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

const (
	// trialCount is the number of random k-means initializations tried
	// before keeping the best-scored partition.
	trialCount = 10

	// geographicDepotWeight nudges coordinates toward the depot in
	// geographic mode; capacityDepotWeight does the same in capacity mode.
	geographicDepotWeight = 0.2
	capacityDepotWeight   = 0.3

	// depotProximityWeight scales the depot-distance term of the
	// geographic score.
	depotProximityWeight = 0.3

	standardTier = "standard"
)

// Geographic partitions stops into exactly k groups by proximity alone.
// Every stop appears in exactly one group; empty groups pad the result
// when there are fewer stops than trucks. The input stop slice is not
// mutated.
func Geographic(stops []domain.Stop, k int, depot *domain.Depot) []domain.Cluster {
	if k <= 0 {
		return nil
	}

	if len(stops) <= k {
		return degenerateSplit(stops, k, standardTier)
	}

	points := weightedPoints(stops, depot, geographicDepotWeight)

	var best [][]domain.Stop
	bestScore := math.Inf(1)

	for attempt := 0; attempt < trialCount; attempt++ {
		rng := rand.New(rand.NewSource(int64(attempt)))
		labels, err := kMeans(points, k, rng)
		if err != nil {
			log.Printf("clustering attempt=%d failed: %v", attempt, err)
			continue
		}

		groups := splitToExactly(groupByLabel(stops, labels, k), k)

		score := geographicScore(groups, depot)
		if score < bestScore {
			bestScore = score
			best = groups
		}
	}

	if best == nil {
		log.Printf("all clustering attempts failed, using equal-split fallback")
		best = fallbackSplit(stops, k)
	}

	return toClusters(best, standardTier)
}

// geographicScore sums, over non-empty groups, the average member distance
// to the group centroid plus a weighted average distance to the depot.
// Lower is better.
func geographicScore(groups [][]domain.Stop, depot *domain.Depot) float64 {
	total := 0.0

	for _, group := range groups {
		if len(group) == 0 {
			continue
		}

		center := centroid(group)
		spread := 0.0
		for _, s := range group {
			spread += geo.Distance(center, s.Coord)
		}
		total += spread / float64(len(group))

		if depot != nil {
			depotDist := 0.0
			for _, s := range group {
				depotDist += geo.Distance(depot.Coord, s.Coord)
			}
			total += depotProximityWeight * depotDist / float64(len(group))
		}
	}

	return total
}

func centroid(group []domain.Stop) domain.Coordinates {
	var c domain.Coordinates
	for _, s := range group {
		c.Lat += s.Coord.Lat
		c.Lng += s.Coord.Lng
	}
	c.Lat /= float64(len(group))
	c.Lng /= float64(len(group))
	return c
}

// groupByLabel buckets stops by their k-means label, dropping empty
// buckets so splitToExactly can rebuild the group count.
func groupByLabel(stops []domain.Stop, labels []int, k int) [][]domain.Stop {
	buckets := make([][]domain.Stop, k)
	for i, s := range stops {
		buckets[labels[i]] = append(buckets[labels[i]], s)
	}

	groups := make([][]domain.Stop, 0, k)
	for _, b := range buckets {
		if len(b) > 0 {
			groups = append(groups, b)
		}
	}
	return groups
}

// splitToExactly grows the group list to exactly k entries by repeatedly
// halving the largest group in index order. Empty groups are appended
// only when the largest group has a single member and cannot split.
func splitToExactly(groups [][]domain.Stop, k int) [][]domain.Stop {
	for len(groups) < k {
		largest := 0
		for i := 1; i < len(groups); i++ {
			if len(groups[i]) > len(groups[largest]) {
				largest = i
			}
		}

		if len(groups[largest]) > 1 {
			mid := len(groups[largest]) / 2
			first := groups[largest][:mid]
			second := groups[largest][mid:]
			groups[largest] = first
			groups = append(groups, second)
		} else {
			groups = append(groups, []domain.Stop{})
		}
	}
	return groups
}

// degenerateSplit handles stop counts at or below k: one stop per group,
// remaining groups empty. No search is performed.
func degenerateSplit(stops []domain.Stop, k int, tier string) []domain.Cluster {
	groups := make([][]domain.Stop, k)
	for i, s := range stops {
		groups[i] = []domain.Stop{s}
	}
	for i := range groups {
		if groups[i] == nil {
			groups[i] = []domain.Stop{}
		}
	}
	return toClusters(groups, tier)
}

// fallbackSplit distributes stops contiguously in input order; the last
// group absorbs the remainder.
func fallbackSplit(stops []domain.Stop, k int) [][]domain.Stop {
	size := len(stops) / k
	groups := make([][]domain.Stop, k)

	for i := 0; i < k; i++ {
		start := i * size
		end := start + size
		if i == k-1 {
			end = len(stops)
		}
		groups[i] = append([]domain.Stop{}, stops[start:end]...)
	}

	return groups
}

// toClusters copies each group into a cluster that owns its own backing
// array, so later stop transfers cannot alias another group's storage.
func toClusters(groups [][]domain.Stop, tier string) []domain.Cluster {
	clusters := make([]domain.Cluster, len(groups))
	for i, g := range groups {
		stops := make([]domain.Stop, len(g))
		copy(stops, g)
		clusters[i] = domain.Cluster{ClusterID: i, Stops: stops, TruckTier: tier}
	}
	return clusters
}
