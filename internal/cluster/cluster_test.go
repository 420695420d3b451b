package cluster

import (
	"fmt"
	"testing"

	"route-optimizer-service/internal/domain"
)

var testDepot = &domain.Depot{
	Name:     "Depot Central",
	Locality: "Centro",
	Coord:    domain.Coordinates{Lat: 4.60971, Lng: -74.08175},
}

var testSpecs = []domain.TruckSpec{
	{Tier: "small", MaxWeightKg: 1500, MaxVolumeM3: 10, DisplayName: "Camión Pequeño"},
	{Tier: "medium", MaxWeightKg: 3500, MaxVolumeM3: 20, DisplayName: "Camión Mediano"},
	{Tier: "large", MaxWeightKg: 7500, MaxVolumeM3: 40, DisplayName: "Camión Grande"},
}

// spreadStops generates n stops scattered across the Bogotá service area.
func spreadStops(n int) []domain.Stop {
	stops := make([]domain.Stop, n)
	for i := 0; i < n; i++ {
		stops[i] = domain.Stop{
			StopID:   i + 1,
			Name:     fmt.Sprintf("Cliente %d", i+1),
			WeightKg: 50,
			VolumeM3: 0.5,
			Coord: domain.Coordinates{
				Lat: 4.50 + 0.3*float64(i%7)/7.0,
				Lng: -74.20 + 0.2*float64(i%11)/11.0,
			},
		}
	}
	return stops
}

// checkPartition verifies every input stop lands in exactly one cluster.
func checkPartition(t *testing.T, stops []domain.Stop, clusters []domain.Cluster, k int) {
	t.Helper()

	if len(clusters) != k {
		t.Fatalf("expected %d clusters, got %d", k, len(clusters))
	}

	seen := make(map[int]int)
	for _, c := range clusters {
		for _, s := range c.Stops {
			seen[s.StopID]++
		}
	}

	if len(seen) != len(stops) {
		t.Fatalf("expected %d distinct stops across clusters, got %d", len(stops), len(seen))
	}
	for _, s := range stops {
		if seen[s.StopID] != 1 {
			t.Fatalf("stop %d appears %d times", s.StopID, seen[s.StopID])
		}
	}
}

func TestGeographicPartitionsExactly(t *testing.T) {
	cases := []struct {
		stops int
		k     int
	}{
		{stops: 30, k: 1},
		{stops: 30, k: 3},
		{stops: 30, k: 5},
		{stops: 21, k: 20},
		{stops: 100, k: 8},
	}

	for _, tc := range cases {
		stops := spreadStops(tc.stops)
		clusters := Geographic(stops, tc.k, testDepot)
		checkPartition(t, stops, clusters, tc.k)
	}
}

func TestGeographicFewerStopsThanTrucks(t *testing.T) {
	stops := spreadStops(2)
	clusters := Geographic(stops, 5, testDepot)

	checkPartition(t, stops, clusters, 5)

	nonEmpty := 0
	for _, c := range clusters {
		if len(c.Stops) > 1 {
			t.Fatalf("degenerate split produced a cluster with %d stops", len(c.Stops))
		}
		if len(c.Stops) == 1 {
			nonEmpty++
		}
	}
	if nonEmpty != 2 {
		t.Fatalf("expected 2 single-stop clusters, got %d", nonEmpty)
	}
}

func TestGeographicNoStops(t *testing.T) {
	clusters := Geographic(nil, 3, testDepot)

	if len(clusters) != 3 {
		t.Fatalf("expected 3 clusters, got %d", len(clusters))
	}
	for _, c := range clusters {
		if len(c.Stops) != 0 {
			t.Fatalf("expected empty cluster, got %d stops", len(c.Stops))
		}
	}
}

func TestGeographicInvalidTruckCount(t *testing.T) {
	if got := Geographic(spreadStops(5), 0, testDepot); got != nil {
		t.Fatalf("expected nil for k=0, got %d clusters", len(got))
	}
}

// Identical coordinates collapse k-means to a single centroid; the split
// step must still force exactly k groups.
func TestGeographicIdenticalStops(t *testing.T) {
	stops := make([]domain.Stop, 10)
	for i := range stops {
		stops[i] = domain.Stop{
			StopID: i + 1,
			Coord:  domain.Coordinates{Lat: 4.60971, Lng: -74.08175},
		}
	}

	clusters := Geographic(stops, 3, testDepot)
	checkPartition(t, stops, clusters, 3)
}

func TestGeographicDoesNotMutateInput(t *testing.T) {
	stops := spreadStops(20)
	original := make([]domain.Stop, len(stops))
	copy(original, stops)

	Geographic(stops, 4, testDepot)

	for i := range stops {
		if stops[i] != original[i] {
			t.Fatalf("input stop %d was mutated", i)
		}
	}
}

func TestWithCapacityAssignsTiers(t *testing.T) {
	stops := spreadStops(30)
	clusters := WithCapacity(stops, testSpecs, 3, testDepot)

	checkPartition(t, stops, clusters, 3)

	valid := map[string]bool{"small": true, "medium": true, "large": true}
	for _, c := range clusters {
		if !valid[c.TruckTier] {
			t.Fatalf("cluster %d has unknown tier %q", c.ClusterID, c.TruckTier)
		}
		load := c.Load()
		spec, ok := domain.SmallestFit(testSpecs, load)
		if !ok {
			continue
		}
		if c.TruckTier != spec.Tier {
			t.Fatalf("cluster %d assigned %q, smallest fit is %q", c.ClusterID, c.TruckTier, spec.Tier)
		}
	}
}

// An overloaded group should shed its extreme stop into a neighbor with
// headroom instead of keeping a load no tier can carry.
func TestWithCapacityRepairsOverload(t *testing.T) {
	stops := spreadStops(12)
	// Concentrate weight so the group containing stop 1 exceeds the
	// largest tier until repair moves something out.
	stops[0].WeightKg = 7000
	stops[1].WeightKg = 4000

	clusters := WithCapacity(stops, testSpecs, 3, testDepot)
	checkPartition(t, stops, clusters, 3)

	largest := domain.Largest(testSpecs)
	for _, c := range clusters {
		if !c.Load().Fits(largest) {
			t.Fatalf("cluster %d still exceeds largest tier: %+v", c.ClusterID, c.Load())
		}
	}
}

// Total load beyond all tiers combined cannot be repaired; the result
// must still be a valid partition with every cluster labeled.
func TestWithCapacityUnrepairableLoad(t *testing.T) {
	stops := spreadStops(6)
	for i := range stops {
		stops[i].WeightKg = 9000
	}

	clusters := WithCapacity(stops, testSpecs, 2, testDepot)
	checkPartition(t, stops, clusters, 2)

	for _, c := range clusters {
		if c.TruckTier == "" {
			t.Fatalf("cluster %d has no tier", c.ClusterID)
		}
	}
}

func TestWithCapacityNoSpecs(t *testing.T) {
	if got := WithCapacity(spreadStops(5), nil, 2, testDepot); got != nil {
		t.Fatalf("expected nil without truck specs, got %d clusters", len(got))
	}
}

func TestWithCapacityDegenerate(t *testing.T) {
	stops := spreadStops(2)
	stops[0].WeightKg = 3000

	clusters := WithCapacity(stops, testSpecs, 4, testDepot)
	checkPartition(t, stops, clusters, 4)

	for _, c := range clusters {
		if len(c.Stops) == 0 {
			continue
		}
		spec, ok := domain.SmallestFit(testSpecs, c.Load())
		if ok && c.TruckTier != spec.Tier {
			t.Fatalf("cluster %d assigned %q, smallest fit is %q", c.ClusterID, c.TruckTier, spec.Tier)
		}
	}
}
