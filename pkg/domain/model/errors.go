package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrSeasonNotFound   = goerr.New("season dataset not found")
	ErrInvalidDataset   = goerr.New("invalid dataset")
	ErrNoSeasonProvider = goerr.New("must be used within a SeasonProvider")
	ErrTeamNotFound     = goerr.New("unknown team")
	ErrSnapshotTooLarge = goerr.New("snapshot too large")
)
