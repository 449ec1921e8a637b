package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Optimizer holds the tunables of the route optimization engine.
//
// StopAliasGroups externalizes stop-name equivalence: each group is a list
// of lowercase name fragments, and two boarding-stop names are considered
// the same physical location when they normalize equal or both contain a
// fragment of the same group. New synonyms are added here, not in code.
type Optimizer struct {
	LowLoadThreshold       int        `yaml:"low_load_threshold" validate:"gt=0"`
	DefaultSeatCapacity    int        `yaml:"default_seat_capacity" validate:"gt=0"`
	FullTransferSavings    int        `yaml:"full_transfer_savings" validate:"gte=0"`
	PartialTransferSavings int        `yaml:"partial_transfer_savings" validate:"gte=0"`
	StopAliasGroups        [][]string `yaml:"stop_alias_groups" validate:"dive,min=1,dive,required"`
}

// DefaultOptimizer returns the built-in tunables. The alias groups cover the
// synonym pairs known from operator data entry; savings figures are coarse
// placeholders per cancelled or consolidated bus, not a cost model.
func DefaultOptimizer() Optimizer {
	return Optimizer{
		LowLoadThreshold:       30,
		DefaultSeatCapacity:    60,
		FullTransferSavings:    5000,
		PartialTransferSavings: 2500,
		StopAliasGroups: [][]string{
			{"main"},
			{"bus stand", "bypass"},
			{"secondary stop", "office"},
			{"junction", "chowk"},
			{"temple", "kovil"},
		},
	}
}

// LoadOptimizer reads tunables from a YAML file, filling unset fields from
// the defaults. An empty path returns the defaults unchanged.
func LoadOptimizer(path string) (Optimizer, error) {
	cfg := DefaultOptimizer()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Optimizer{}, fmt.Errorf("load optimizer config: read %q: %w", path, err)
	}

	var file Optimizer
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Optimizer{}, fmt.Errorf("load optimizer config: parse %q: %w", path, err)
	}

	if file.LowLoadThreshold != 0 {
		cfg.LowLoadThreshold = file.LowLoadThreshold
	}
	if file.DefaultSeatCapacity != 0 {
		cfg.DefaultSeatCapacity = file.DefaultSeatCapacity
	}
	if file.FullTransferSavings != 0 {
		cfg.FullTransferSavings = file.FullTransferSavings
	}
	if file.PartialTransferSavings != 0 {
		cfg.PartialTransferSavings = file.PartialTransferSavings
	}
	if len(file.StopAliasGroups) != 0 {
		cfg.StopAliasGroups = file.StopAliasGroups
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Optimizer{}, fmt.Errorf("load optimizer config: validate %q: %w", path, err)
	}

	return cfg, nil
}
