package tsp

import (
	"math"
	"testing"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

var testDepot = &domain.Depot{
	Name:  "Depot Central",
	Coord: domain.Coordinates{Lat: 4.598, Lng: -74.076},
}

func stopsAt(coords ...domain.Coordinates) []domain.Stop {
	stops := make([]domain.Stop, len(coords))
	for i, c := range coords {
		stops[i] = domain.Stop{StopID: i + 1, Coord: c}
	}
	return stops
}

func checkPermutation(t *testing.T, order []int, n int) {
	t.Helper()

	if len(order) != n {
		t.Fatalf("expected order of length %d, got %d", n, len(order))
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			t.Fatalf("index %d out of range [0,%d)", idx, n)
		}
		if seen[idx] {
			t.Fatalf("index %d repeated", idx)
		}
		seen[idx] = true
	}
}

func TestSequenceTrivialSizes(t *testing.T) {
	if got := Sequence(nil, testDepot); len(got) != 0 {
		t.Fatalf("expected empty order for no stops, got %v", got)
	}

	one := stopsAt(domain.Coordinates{Lat: 4.61, Lng: -74.08})
	if got := Sequence(one, testDepot); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected [0] for a single stop, got %v", got)
	}

	two := stopsAt(
		domain.Coordinates{Lat: 4.61, Lng: -74.08},
		domain.Coordinates{Lat: 4.65, Lng: -74.05},
	)
	if got := Sequence(two, testDepot); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("expected [0 1] for two stops, got %v", got)
	}
}

func TestSequenceThreeStops(t *testing.T) {
	stops := stopsAt(
		domain.Coordinates{Lat: 4.60, Lng: -74.08},
		domain.Coordinates{Lat: 4.62, Lng: -74.05},
		domain.Coordinates{Lat: 4.59, Lng: -74.09},
	)

	order := Sequence(stops, testDepot)
	checkPermutation(t, order, len(stops))

	got := TourLength(stops, testDepot, order)
	want := bruteForceBest(stops, testDepot)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected optimal cycle %.6f km, got %.6f km (order %v)", want, got, order)
	}
}

// The exact branch must match an independent enumeration on every size it
// claims to solve optimally.
func TestSequenceExactMatchesBruteForce(t *testing.T) {
	coords := []domain.Coordinates{
		{Lat: 4.6097, Lng: -74.0817},
		{Lat: 4.6482, Lng: -74.0631},
		{Lat: 4.7110, Lng: -74.0721},
		{Lat: 4.5708, Lng: -74.0973},
		{Lat: 4.6268, Lng: -74.1360},
		{Lat: 4.5981, Lng: -74.0760},
		{Lat: 4.6761, Lng: -74.0483},
		{Lat: 4.5623, Lng: -74.0830},
	}

	for n := 3; n <= len(coords); n++ {
		stops := stopsAt(coords[:n]...)

		order := Sequence(stops, testDepot)
		checkPermutation(t, order, n)

		got := TourLength(stops, testDepot, order)
		want := bruteForceBest(stops, testDepot)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("n=%d: expected optimal cycle %.6f km, got %.6f km", n, want, got)
		}
	}
}

func TestSequenceHeuristicNotWorseThanGreedy(t *testing.T) {
	stops := make([]domain.Stop, 15)
	for i := range stops {
		stops[i] = domain.Stop{
			StopID: i + 1,
			Coord: domain.Coordinates{
				Lat: 4.50 + 0.30*float64((i*7)%13)/13.0,
				Lng: -74.20 + 0.20*float64((i*5)%11)/11.0,
			},
		}
	}

	order := Sequence(stops, testDepot)
	checkPermutation(t, order, len(stops))

	greedy := make([]int, len(stops))
	visited := make([]bool, len(stops))
	current := testDepot.Coord
	for i := range greedy {
		next := -1
		for j := range stops {
			if visited[j] {
				continue
			}
			if next == -1 || geo.Distance(current, stops[j].Coord) < geo.Distance(current, stops[next].Coord) {
				next = j
			}
		}
		greedy[i] = next
		visited[next] = true
		current = stops[next].Coord
	}

	improved := TourLength(stops, testDepot, order)
	baseline := TourLength(stops, testDepot, greedy)
	if improved > baseline+1e-9 {
		t.Fatalf("2-opt tour %.6f km is longer than greedy tour %.6f km", improved, baseline)
	}
}

func TestSequenceDeterministic(t *testing.T) {
	stops := stopsAt(
		domain.Coordinates{Lat: 4.60, Lng: -74.08},
		domain.Coordinates{Lat: 4.62, Lng: -74.05},
		domain.Coordinates{Lat: 4.59, Lng: -74.09},
		domain.Coordinates{Lat: 4.70, Lng: -74.03},
		domain.Coordinates{Lat: 4.55, Lng: -74.14},
	)

	first := Sequence(stops, testDepot)
	for run := 0; run < 5; run++ {
		again := Sequence(stops, testDepot)
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d produced %v, first run produced %v", run, again, first)
			}
		}
	}
}

// bruteForceBest enumerates all customer orderings recursively and returns
// the shortest depot-closed cycle length.
func bruteForceBest(stops []domain.Stop, depot *domain.Depot) float64 {
	n := len(stops)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	best := math.Inf(1)
	var recurse func(depth int)
	recurse = func(depth int) {
		if depth == n {
			if l := TourLength(stops, depot, perm); l < best {
				best = l
			}
			return
		}
		for i := depth; i < n; i++ {
			perm[depth], perm[i] = perm[i], perm[depth]
			recurse(depth + 1)
			perm[depth], perm[i] = perm[i], perm[depth]
		}
	}
	recurse(0)

	return best
}
