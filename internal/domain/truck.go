package domain

// TruckSpec describes one capacity tier of the fleet. The set of tiers
// is small, fixed reference data ordered from smallest to largest.
type TruckSpec struct {
	Tier        string
	MaxWeightKg float64
	MaxVolumeM3 float64
	DisplayName string
}

// Load is the combined demand of a group of stops.
type Load struct {
	WeightKg float64
	VolumeM3 float64
}

// Fits reports whether the load can be carried by the given tier.
func (l Load) Fits(spec TruckSpec) bool {
	return l.WeightKg <= spec.MaxWeightKg && l.VolumeM3 <= spec.MaxVolumeM3
}

// Utilization is the dominant capacity fraction (weight or volume) the
// load would occupy on the given tier.
func (l Load) Utilization(spec TruckSpec) float64 {
	weightUtil := 0.0
	if spec.MaxWeightKg > 0 {
		weightUtil = l.WeightKg / spec.MaxWeightKg
	}
	volumeUtil := 0.0
	if spec.MaxVolumeM3 > 0 {
		volumeUtil = l.VolumeM3 / spec.MaxVolumeM3
	}
	if weightUtil > volumeUtil {
		return weightUtil
	}
	return volumeUtil
}

// SmallestFit returns the first tier (specs are ordered small to large)
// that can carry the load, or false when even the largest cannot.
func SmallestFit(specs []TruckSpec, load Load) (TruckSpec, bool) {
	for _, spec := range specs {
		if load.Fits(spec) {
			return spec, true
		}
	}
	return TruckSpec{}, false
}

// Largest returns the last (largest) tier. Callers must pass a non-empty
// tier list; tiers are validated at configuration load time.
func Largest(specs []TruckSpec) TruckSpec {
	return specs[len(specs)-1]
}
