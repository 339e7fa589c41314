// Package config loads process-wide tunables from a TOML file via the
// module's own hand-rolled toml package, grounded on
// _examples/lixenwraith-vi-fighter's toml/decode.go reflection decoder.
package config

import (
	"os"

	"github.com/striprouter/striprouter/genetic"
	"github.com/striprouter/striprouter/layout"
	"github.com/striprouter/striprouter/toml"
)

// File is the on-disk shape of a striprouter config file. Every field has
// a recognized default (spec.md §6); an absent field keeps its default.
type File struct {
	WireCost  int `toml:"wire_cost"`
	StripCost int `toml:"strip_cost"`
	ViaCost   int `toml:"via_cost"`
	CutCost   int `toml:"cut_cost"`

	PopulationSize int     `toml:"population_size"`
	CrossoverRate  float64 `toml:"crossover_rate"`
	MutationRate   float64 `toml:"mutation_rate"`
	TournamentSize int     `toml:"tournament_size"`
}

// Default returns the spec's default settings.
func Default() File {
	s := layout.DefaultSettings()
	return File{
		WireCost:       s.WireCost,
		StripCost:      s.StripCost,
		ViaCost:        s.ViaCost,
		CutCost:        s.CutCost,
		PopulationSize: genetic.DefaultPopulationSize,
		CrossoverRate:  genetic.DefaultCrossoverRate,
		MutationRate:   genetic.DefaultMutationRate,
		TournamentSize: genetic.DefaultTournamentSize,
	}
}

// Load reads and decodes a TOML config file. Missing fields retain their
// default value rather than zeroing out.
func Load(path string) (File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return f, err
	}
	return f, nil
}

// Normalize rounds PopulationSize up to an even number, since the GA's
// generational replacement pairs parents two at a time (spec.md §4.6).
func (f File) Normalize() File {
	if f.PopulationSize%2 != 0 {
		f.PopulationSize++
	}
	return f
}

// ToSettings projects the cost-model fields into a layout.Settings.
func (f File) ToSettings() layout.Settings {
	return layout.Settings{
		WireCost:  f.WireCost,
		StripCost: f.StripCost,
		ViaCost:   f.ViaCost,
		CutCost:   f.CutCost,
	}
}
