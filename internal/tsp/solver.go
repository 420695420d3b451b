// Package tsp computes depot-anchored visiting orders for stop groups.
//
// Small groups (at most 8 customer stops) are solved exactly by
// enumerating every ordering; larger groups get a nearest-neighbor tour
// improved by first-improvement 2-opt. The depot is always the implicit
// first and last point of the cycle and never appears in the returned
// index list.
package tsp

import (
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

const (
	// exactLimit is the largest customer count solved by brute force;
	// beyond it (n-1)! enumeration is no longer worth the cycles.
	exactLimit = 8

	// maxTwoOptMoves caps the number of applied 2-opt improvements so the
	// first-improvement scan always terminates.
	maxTwoOptMoves = 100
)

// Sequence returns the visiting order for the given stops as a
// permutation of their indices. The depot is fixed as the start and end
// of the cycle; it is not included in the returned indices.
func Sequence(stops []domain.Stop, depot *domain.Depot) []int {
	n := len(stops)

	if n <= 1 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order
	}

	if n == 2 {
		// Swapping two stops never shortens a depot round trip.
		return []int{0, 1}
	}

	// Depot occupies matrix index 0; customers follow at 1..n.
	coords := make([]domain.Coordinates, 0, n+1)
	coords = append(coords, depot.Coord)
	for _, s := range stops {
		coords = append(coords, s.Coord)
	}
	dist := geo.Matrix(coords)

	if n <= exactLimit {
		return solveExact(dist, n)
	}
	return solveHeuristic(dist, n)
}

// solveExact enumerates every ordering of the customer indices 1..n and
// keeps the first ordering whose depot-closed cycle is shortest.
func solveExact(dist [][]float64, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i + 1
	}

	best := make([]int, n)
	copy(best, perm)
	bestLen := cycleLength(dist, perm)

	// Heap's algorithm generates each permutation with one swap.
	c := make([]int, n)
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}

			if l := cycleLength(dist, perm); l < bestLen {
				bestLen = l
				copy(best, perm)
			}

			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}

	order := make([]int, n)
	for i, v := range best {
		order[i] = v - 1
	}
	return order
}

// cycleLength is the round-trip length depot -> perm... -> depot.
func cycleLength(dist [][]float64, perm []int) float64 {
	total := dist[0][perm[0]]
	for i := 0; i < len(perm)-1; i++ {
		total += dist[perm[i]][perm[i+1]]
	}
	total += dist[perm[len(perm)-1]][0]
	return total
}

// solveHeuristic builds a nearest-neighbor tour from the depot and
// improves it with 2-opt before stripping the depot ends.
func solveHeuristic(dist [][]float64, n int) []int {
	tour := nearestNeighborTour(dist)
	tour = twoOptImprove(tour, dist)

	order := make([]int, 0, n)
	for _, v := range tour[1 : len(tour)-1] {
		order = append(order, v-1)
	}
	return order
}

// nearestNeighborTour greedily extends the tour to the nearest unvisited
// customer, starting and ending at the depot (index 0). Ties keep the
// lowest index, so construction is deterministic.
func nearestNeighborTour(dist [][]float64) []int {
	n := len(dist)
	tour := make([]int, 0, n+1)
	tour = append(tour, 0)

	visited := make([]bool, n)
	visited[0] = true
	current := 0

	for len(tour) < n {
		next := -1
		for city := 1; city < n; city++ {
			if visited[city] {
				continue
			}
			if next == -1 || dist[current][city] < dist[current][next] {
				next = city
			}
		}
		tour = append(tour, next)
		visited[next] = true
		current = next
	}

	tour = append(tour, 0)
	return tour
}

// twoOptImprove applies first-improvement 2-opt to a depot-closed tour.
// Each scan looks for the first segment reversal that shortens the cycle,
// applies it, and restarts; the depot endpoints are never moved. The
// search stops at a local optimum or after maxTwoOptMoves applied moves.
func twoOptImprove(tour []int, dist [][]float64) []int {
	last := len(tour) - 1
	if last < 3 {
		return tour
	}

	for moves := 0; moves < maxTwoOptMoves; moves++ {
		improved := false

	scan:
		for i := 1; i < last-1; i++ {
			for j := i + 1; j < last; j++ {
				// Reversing tour[i..j] replaces edges (i-1,i) and (j,j+1)
				// with (i-1,j) and (i,j+1).
				delta := dist[tour[i-1]][tour[j]] + dist[tour[i]][tour[j+1]] -
					dist[tour[i-1]][tour[i]] - dist[tour[j]][tour[j+1]]
				if delta < -1e-12 {
					reverse(tour, i, j)
					improved = true
					break scan
				}
			}
		}

		if !improved {
			break
		}
	}

	return tour
}

func reverse(tour []int, i, j int) {
	for i < j {
		tour[i], tour[j] = tour[j], tour[i]
		i++
		j--
	}
}

// TourLength is the depot-closed cycle length of the given customer
// order; exported for metrics and tests that verify solver output.
func TourLength(stops []domain.Stop, depot *domain.Depot, order []int) float64 {
	if len(order) == 0 {
		return 0
	}

	total := geo.Distance(depot.Coord, stops[order[0]].Coord)
	for i := 0; i < len(order)-1; i++ {
		total += geo.Distance(stops[order[i]].Coord, stops[order[i+1]].Coord)
	}
	total += geo.Distance(stops[order[len(order)-1]].Coord, depot.Coord)
	return total
}
