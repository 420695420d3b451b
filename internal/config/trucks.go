package config

import (
	"fmt"
	"os"

	"route-optimizer-service/internal/domain"

	"gopkg.in/yaml.v3"
)

type truckTierFile struct {
	Tiers []struct {
		Tier        string  `yaml:"tier"`
		MaxWeightKg float64 `yaml:"max_weight_kg"`
		MaxVolumeM3 float64 `yaml:"max_volume_m3"`
		DisplayName string  `yaml:"display_name"`
	} `yaml:"tiers"`
}

// DefaultTruckSpecs returns the built-in fleet tiers, ordered smallest
// to largest.
func DefaultTruckSpecs() []domain.TruckSpec {
	return []domain.TruckSpec{
		{Tier: "small", MaxWeightKg: 1500, MaxVolumeM3: 10, DisplayName: "Camión Pequeño"},
		{Tier: "medium", MaxWeightKg: 3500, MaxVolumeM3: 20, DisplayName: "Camión Mediano"},
		{Tier: "large", MaxWeightKg: 7500, MaxVolumeM3: 40, DisplayName: "Camión Grande"},
	}
}

// LoadTruckSpecs reads fleet tiers from a YAML file. Tiers must be listed
// smallest to largest; capacity lookups rely on that order.
func LoadTruckSpecs(path string) ([]domain.TruckSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load truck specs: read %q: %w", path, err)
	}

	var file truckTierFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("load truck specs: parse yaml: %w", err)
	}

	if len(file.Tiers) == 0 {
		return nil, fmt.Errorf("load truck specs: %q defines no tiers", path)
	}

	specs := make([]domain.TruckSpec, 0, len(file.Tiers))
	for i, t := range file.Tiers {
		if t.Tier == "" {
			return nil, fmt.Errorf("load truck specs: tier #%d has no label", i+1)
		}
		if t.MaxWeightKg <= 0 || t.MaxVolumeM3 <= 0 {
			return nil, fmt.Errorf("load truck specs: tier %q has non-positive capacity", t.Tier)
		}
		specs = append(specs, domain.TruckSpec{
			Tier:        t.Tier,
			MaxWeightKg: t.MaxWeightKg,
			MaxVolumeM3: t.MaxVolumeM3,
			DisplayName: t.DisplayName,
		})
	}

	return specs, nil
}
