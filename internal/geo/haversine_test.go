package geo

import (
	"math"
	"testing"

	"route-optimizer-service/internal/domain"
)

func TestDistanceIdenticalPoints(t *testing.T) {
	p := domain.Coordinates{Lat: 4.598, Lng: -74.076}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("distance between identical points = %v, want 0", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := domain.Coordinates{Lat: 4.60, Lng: -74.08}
	b := domain.Coordinates{Lat: 4.62, Lng: -74.05}

	ab := Distance(a, b)
	ba := Distance(b, a)
	if math.Abs(ab-ba) > 1e-12 {
		t.Fatalf("distance not symmetric: a->b=%v b->a=%v", ab, ba)
	}
	if ab <= 0 {
		t.Fatalf("distance between distinct points = %v, want > 0", ab)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Bogotá city center to Usaquén, roughly 11.9 km.
	a := domain.Coordinates{Lat: 4.5980, Lng: -74.0760}
	b := domain.Coordinates{Lat: 4.6954, Lng: -74.0308}

	d := Distance(a, b)
	if d < 11 || d > 13 {
		t.Fatalf("distance = %v km, want roughly 11.9", d)
	}
}

func TestMatrixShapeAndSymmetry(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 4.598, Lng: -74.076},
		{Lat: 4.60, Lng: -74.08},
		{Lat: 4.62, Lng: -74.05},
		{Lat: 4.59, Lng: -74.09},
	}

	m := Matrix(points)
	if len(m) != len(points) {
		t.Fatalf("matrix rows = %d, want %d", len(m), len(points))
	}

	for i := range m {
		if len(m[i]) != len(points) {
			t.Fatalf("row %d has %d columns, want %d", i, len(m[i]), len(points))
		}
		if m[i][i] != 0 {
			t.Errorf("diagonal [%d][%d] = %v, want 0", i, i, m[i][i])
		}
		for j := range m[i] {
			if m[i][j] < 0 {
				t.Errorf("negative distance at [%d][%d]: %v", i, j, m[i][j])
			}
			if math.Abs(m[i][j]-m[j][i]) > 1e-12 {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}
}

func TestMatrixEmpty(t *testing.T) {
	if m := Matrix(nil); len(m) != 0 {
		t.Fatalf("matrix of no points has %d rows, want 0", len(m))
	}
}
