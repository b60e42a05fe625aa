package repository

import (
	"time"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
)

// SeasonDocumentPayload exposes the stored payload of a Firestore season document
func SeasonDocumentPayload(ds *model.SeasonDataset, now time.Time) (string, error) {
	doc, err := newSeasonDocument(ds, now)
	if err != nil {
		return "", err
	}
	return doc.Payload, nil
}
