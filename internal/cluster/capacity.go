package cluster

import (
	"log"
	"math"
	"math/rand"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

const (
	// Capacity score penalties: a group no tier can carry, a group that
	// barely uses its tier, and a group close to its tier's limit.
	overloadPenalty    = 10000.0
	underUtilPenalty   = 100.0
	highUtilPenalty    = 10.0
	lowUtilThreshold   = 0.3
	highUtilThreshold  = 0.9
	depotPenaltyWeight = 0.5

	// maxRepairIterations caps the capacity repair loop. The loop has no
	// convergence guarantee; residual overload after the cap is returned
	// to the caller, not treated as an error.
	maxRepairIterations = 50
)

// WithCapacity partitions stops into exactly k groups weighing both
// geography and truck capacity, then assigns each group the smallest
// tier that fits its load. Groups that still exceed the largest tier
// after the repair loop keep the largest tier label; callers detect
// the overload by comparing group load against tier capacity.
func WithCapacity(stops []domain.Stop, specs []domain.TruckSpec, k int, depot *domain.Depot) []domain.Cluster {
	if k <= 0 || len(specs) == 0 {
		return nil
	}

	if len(stops) <= k {
		clusters := degenerateSplit(stops, k, standardTier)
		assignTiers(clusters, specs)
		return clusters
	}

	points := weightedPoints(stops, depot, capacityDepotWeight)

	var best [][]domain.Stop
	bestScore := math.Inf(1)

	for attempt := 0; attempt < trialCount; attempt++ {
		rng := rand.New(rand.NewSource(int64(attempt)))
		labels, err := kMeans(points, k, rng)
		if err != nil {
			log.Printf("capacity clustering attempt=%d failed: %v", attempt, err)
			continue
		}

		groups := splitToExactly(groupByLabel(stops, labels, k), k)

		score := capacityScore(groups, specs, depot)
		if score < bestScore {
			bestScore = score
			best = groups
		}
	}

	if best == nil {
		log.Printf("all capacity clustering attempts failed, using equal-split fallback")
		best = fallbackSplit(stops, k)
	}

	clusters := toClusters(best, standardTier)
	repairCapacityViolations(clusters, specs)
	assignTiers(clusters, specs)

	return clusters
}

// capacityScore rates a candidate partition: large penalty for a group no
// tier can carry, smaller ones for poor utilization of the fitted tier,
// plus a weighted depot-distance term. Lower is better.
func capacityScore(groups [][]domain.Stop, specs []domain.TruckSpec, depot *domain.Depot) float64 {
	total := 0.0

	for _, group := range groups {
		load := groupLoad(group)

		spec, ok := domain.SmallestFit(specs, load)
		if !ok {
			total += overloadPenalty
		} else {
			util := load.Utilization(spec)
			if util < lowUtilThreshold {
				total += underUtilPenalty
			} else if util > highUtilThreshold {
				total += highUtilPenalty
			}
		}

		if depot != nil && len(group) > 0 {
			depotDist := 0.0
			for _, s := range group {
				depotDist += geo.Distance(depot.Coord, s.Coord)
			}
			total += depotPenaltyWeight * depotDist / float64(len(group))
		}
	}

	return total
}

func groupLoad(group []domain.Stop) domain.Load {
	var load domain.Load
	for _, s := range group {
		load.WeightKg += s.WeightKg
		load.VolumeM3 += s.VolumeM3
	}
	return load
}

// repairCapacityViolations migrates extreme stops out of overloaded
// groups. Each pass looks for a group whose load exceeds the largest
// tier, then tries to move its heaviest and bulkiest member to the first
// other group that absorbs it without itself exceeding the largest tier.
// The loop ends after a pass that fixes nothing or after the iteration
// cap, so residual violations can remain.
func repairCapacityViolations(clusters []domain.Cluster, specs []domain.TruckSpec) {
	largest := domain.Largest(specs)

	for iteration := 0; iteration < maxRepairIterations; iteration++ {
		fixed := false

		for i := range clusters {
			load := clusters[i].Load()
			if load.Fits(largest) || len(clusters[i].Stops) <= 1 {
				continue
			}

			candidates := []int{clusters[i].HeaviestIndex(), clusters[i].BulkiestIndex()}
			for _, idx := range candidates {
				if idx < 0 {
					continue
				}
				if moveStop(clusters, i, idx, largest) {
					fixed = true
					break
				}
			}

			if fixed {
				break
			}
		}

		if !fixed {
			return
		}
	}
}

// moveStop transfers clusters[src].Stops[idx] to the first other cluster
// that can absorb it within the largest tier. The transfer is a single
// ownership move; the stop is never duplicated.
func moveStop(clusters []domain.Cluster, src, idx int, largest domain.TruckSpec) bool {
	stop := clusters[src].Stops[idx]

	for j := range clusters {
		if j == src {
			continue
		}

		load := clusters[j].Load()
		load.WeightKg += stop.WeightKg
		load.VolumeM3 += stop.VolumeM3
		if !load.Fits(largest) {
			continue
		}

		clusters[src].Stops = append(clusters[src].Stops[:idx], clusters[src].Stops[idx+1:]...)
		clusters[j].Stops = append(clusters[j].Stops, stop)
		return true
	}

	return false
}

// assignTiers labels each cluster with the smallest tier that fits its
// load, falling back to the largest tier for groups nothing can carry.
func assignTiers(clusters []domain.Cluster, specs []domain.TruckSpec) {
	for i := range clusters {
		spec, ok := domain.SmallestFit(specs, clusters[i].Load())
		if !ok {
			spec = domain.Largest(specs)
		}
		clusters[i].TruckTier = spec.Tier
	}
}
