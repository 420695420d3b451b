package dto

import "time"

type OptimizeRequest struct {
	NumTrucks int    `json:"num_trucks"`
	Mode      string `json:"mode"`
}

type SegmentResponse struct {
	FromStop   int     `json:"from_stop"`
	ToStop     int     `json:"to_stop"`
	FromName   string  `json:"from_name"`
	ToName     string  `json:"to_name"`
	DistanceKm float64 `json:"distance_km"`
}

type EfficiencyResponse struct {
	EfficiencyScore       float64 `json:"efficiency_score"`
	DetourFactor          float64 `json:"detour_factor"`
	CompactnessScore      float64 `json:"compactness_score"`
	TotalDirectDistanceKm float64 `json:"total_direct_distance_km"`
}

type FuelResponse struct {
	FuelLiters     float64 `json:"fuel_liters"`
	FuelCost       float64 `json:"fuel_cost"`
	KmPerLiterUsed float64 `json:"km_per_liter_used"`
}

type RouteResponse struct {
	ClusterID          int                `json:"cluster_id"`
	TruckTier          string             `json:"truck_tier"`
	TruckName          string             `json:"truck_name"`
	Color              string             `json:"color"`
	CustomerCount      int                `json:"customer_count"`
	Stops              []StopResponse     `json:"stops"`
	TotalDistanceKm    float64            `json:"total_distance_km"`
	SegmentDistances   []SegmentResponse  `json:"segment_distances"`
	AvgDistancePerStop float64            `json:"avg_distance_per_stop"`
	EstimatedTimeHours float64            `json:"estimated_time_hours"`
	Efficiency         EfficiencyResponse `json:"efficiency"`
	Fuel               FuelResponse       `json:"fuel"`
}

type PlanResponse struct {
	PlanID     string          `json:"plan_id"`
	Mode       string          `json:"mode"`
	TruckCount int             `json:"truck_count"`
	CreatedAt  time.Time       `json:"created_at"`
	Routes     []RouteResponse `json:"routes"`
}
