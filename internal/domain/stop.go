package domain

// Represents a single delivery location handled by the system.
// A Stop has a display name, a free-text street address, an optional
// locality label, and demand attributes (weight, volume) used by the
// capacity-aware clustering mode. Coordinates are populated by the
// geocoding collaborator and the Stop is treated as immutable afterwards.
type Stop struct {
	StopID   int
	Name     string
	Address  string
	Locality string
	WeightKg float64
	VolumeM3 float64
	Coord    Coordinates
	IsDepot  bool
}

// Depot is the fixed origin and destination shared by every route.
// It is resolved once at startup and never mutated afterwards; all
// routes reference the same record.
type Depot struct {
	Name     string
	Address  string
	Locality string
	Coord    Coordinates
}

// AsStop converts the depot into a stop record so it can be spliced
// into a materialized route sequence.
func (d *Depot) AsStop() Stop {
	return Stop{
		Name:     d.Name,
		Address:  d.Address,
		Locality: d.Locality,
		Coord:    d.Coord,
		IsDepot:  true,
	}
}
