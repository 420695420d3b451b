package domain

// Cluster is an ordered group of stops assigned to one vehicle.
// It owns its stops for the duration of clustering; the capacity repair
// loop transfers ownership of a stop between clusters, it never copies.
type Cluster struct {
	ClusterID int
	Stops     []Stop
	TruckTier string
}

// Load sums the demand of all member stops.
func (c *Cluster) Load() Load {
	var load Load
	for _, s := range c.Stops {
		load.WeightKg += s.WeightKg
		load.VolumeM3 += s.VolumeM3
	}
	return load
}

// HeaviestIndex returns the index of the heaviest member, or -1 when empty.
func (c *Cluster) HeaviestIndex() int {
	best := -1
	for i, s := range c.Stops {
		if best == -1 || s.WeightKg > c.Stops[best].WeightKg {
			best = i
		}
	}
	return best
}

// BulkiestIndex returns the index of the largest-volume member, or -1 when empty.
func (c *Cluster) BulkiestIndex() int {
	best := -1
	for i, s := range c.Stops {
		if best == -1 || s.VolumeM3 > c.Stops[best].VolumeM3 {
			best = i
		}
	}
	return best
}
