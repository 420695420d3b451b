package dto

type StopResponse struct {
	StopID   int     `json:"stop_id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Locality string  `json:"locality,omitempty"`
	WeightKg float64 `json:"weight_kg"`
	VolumeM3 float64 `json:"volume_m3"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	IsDepot  bool    `json:"is_depot,omitempty"`
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}

type UploadStopsResponse struct {
	StopCount int `json:"stop_count"`
}
