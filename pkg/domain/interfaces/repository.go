package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . DatasetSource DatasetStore

import (
	"context"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// DatasetSource fetches the aggregated statistics of one season.
// Implementations return an error wrapping model.ErrSeasonNotFound when the
// season has no export, and model.ErrInvalidDataset when the payload is
// malformed.
type DatasetSource interface {
	Load(ctx context.Context, season types.Season) (*model.SeasonDataset, error)
}

// DatasetStore is a DatasetSource that also accepts new season exports
type DatasetStore interface {
	DatasetSource
	Put(ctx context.Context, ds *model.SeasonDataset) error
}
