package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// SeasonCatalog lists the seasons offered by the season selector
type SeasonCatalog struct {
	Seasons []types.Season `yaml:"seasons" json:"seasons"`
	Default types.Season   `yaml:"default" json:"default"`
}

// DefaultSeasonCatalog returns the seasons exported by the data pipeline
func DefaultSeasonCatalog() *SeasonCatalog {
	return &SeasonCatalog{
		Seasons: []types.Season{2025, 2024, 2023, 2022, 2021, 2020},
		Default: 2025,
	}
}

// Validate validates the catalog
func (c *SeasonCatalog) Validate() error {
	if len(c.Seasons) == 0 {
		return goerr.New("at least one season is required")
	}

	seen := make(map[types.Season]bool)
	for i, s := range c.Seasons {
		if s <= 0 {
			return goerr.New("season must be positive",
				goerr.V("index", i),
				goerr.V("season", s))
		}
		if seen[s] {
			return goerr.New("duplicate season", goerr.V("season", s))
		}
		seen[s] = true
	}

	if c.Default == 0 {
		return goerr.New("default season is required")
	}
	if !seen[c.Default] {
		return goerr.New("default season is not listed",
			goerr.V("default", c.Default))
	}

	return nil
}

// Contains checks if the season is listed
func (c *SeasonCatalog) Contains(s types.Season) bool {
	return slices.Contains(c.Seasons, s)
}
