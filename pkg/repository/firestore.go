package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	seasonsCollection = "seasons"

	// MaxFirestorePayloadSize keeps a season document under Firestore's
	// 1 MiB document limit, leaving room for the other fields
	MaxFirestorePayloadSize = 1_000_000
)

// seasonDocument is the stored form of a season snapshot. The payload keeps
// the exported JSON verbatim so that it is validated the same way as files.
type seasonDocument struct {
	Season      int       `firestore:"season"`
	Payload     string    `firestore:"payload"`
	LastUpdated string    `firestore:"last_updated"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// Firestore implements DatasetStore with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore dataset store
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on invalid project or missing permission
	_, err = client.Collection(seasonsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore dataset store initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// Load retrieves the snapshot of season
func (f *Firestore) Load(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
	doc, err := f.client.Collection(seasonsCollection).Doc(season.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrSeasonNotFound, "season document not found",
				goerr.V("season", season))
		}
		return nil, goerr.Wrap(err, "failed to get season from firestore", goerr.V("season", season))
	}

	var stored seasonDocument
	if err := doc.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to decode season document", goerr.V("season", season))
	}

	return decodeSeason([]byte(stored.Payload), season)
}

// Put stores ds as the document of its season
func (f *Firestore) Put(ctx context.Context, ds *model.SeasonDataset) error {
	if ds == nil {
		return goerr.New("dataset is nil")
	}

	stored, err := newSeasonDocument(ds, time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := f.client.Collection(seasonsCollection).Doc(ds.Season.String()).Set(ctx, stored); err != nil {
		return goerr.Wrap(err, "failed to save season to firestore", goerr.V("season", ds.Season))
	}

	return nil
}

func newSeasonDocument(ds *model.SeasonDataset, now time.Time) (*seasonDocument, error) {
	data, err := ds.Encode()
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFirestorePayloadSize {
		return nil, goerr.Wrap(model.ErrSnapshotTooLarge, "snapshot exceeds firestore document limit",
			goerr.V("season", ds.Season),
			goerr.V("size", len(data)),
			goerr.V("limit", MaxFirestorePayloadSize))
	}

	return &seasonDocument{
		Season:      ds.Season.Int(),
		Payload:     string(data),
		LastUpdated: ds.LastUpdated,
		UpdatedAt:   now,
	}, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
