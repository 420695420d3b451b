package domain

// SegmentDistance describes one leg between consecutive stops of a
// materialized route, including the wrap-around leg back to the depot.
type SegmentDistance struct {
	FromStop   int
	ToStop     int
	FromName   string
	ToName     string
	DistanceKm float64
}

// EfficiencyMetrics summarizes how well a finished route uses its driving
// distance. Compactness rewards tightly grouped stops, the detour factor
// compares the actual tour against direct round trips to every stop.
type EfficiencyMetrics struct {
	EfficiencyScore       float64
	DetourFactor          float64
	CompactnessScore      float64
	TotalDirectDistanceKm float64
}

// FuelEstimate is the projected consumption and cost for a route.
type FuelEstimate struct {
	FuelLiters     float64
	FuelCost       float64
	KmPerLiterUsed float64
}

// Route is a cluster after sequencing: the ordered stop list with the
// depot prepended and appended, plus the metrics computed from it.
// A Route is produced once per cluster and is immutable after the
// metrics pass has annotated it.
type Route struct {
	ClusterID     int
	TruckTier     string
	TruckName     string
	Color         string
	Stops         []Stop
	CustomerCount int

	TotalDistanceKm    float64
	SegmentDistances   []SegmentDistance
	AvgDistancePerStop float64
	EstimatedTimeHours float64
	Efficiency         EfficiencyMetrics
	Fuel               FuelEstimate
}
