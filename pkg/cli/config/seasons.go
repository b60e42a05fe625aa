package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Seasons holds the season catalog configuration
type Seasons struct {
	File string
}

// Flags returns CLI flags for Seasons configuration
func (s *Seasons) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "seasons-file",
			Usage:       "YAML file listing the selectable seasons (built-in catalog if not set)",
			Category:    "Data",
			Sources:     cli.EnvVars("GRIDIRON_SEASONS_FILE"),
			Destination: &s.File,
		},
	}
}

// Configure returns the season catalog
func (s *Seasons) Configure() (*model.SeasonCatalog, error) {
	if s.File == "" {
		return model.DefaultSeasonCatalog(), nil
	}
	return LoadSeasonsFromFile(s.File)
}

// LogValue returns structured log value
func (s Seasons) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", s.File),
	)
}

// LoadSeasonsFromFile loads the season catalog from YAML file
func LoadSeasonsFromFile(path string) (*model.SeasonCatalog, error) {
	if path == "" {
		return nil, goerr.New("seasons file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "seasons file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read seasons file",
			goerr.V("path", path))
	}

	var catalog model.SeasonCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seasons file",
			goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid season catalog",
			goerr.V("path", path))
	}

	return &catalog, nil
}
