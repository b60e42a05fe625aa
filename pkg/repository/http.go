package repository

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// DefaultMaxSnapshotSize bounds the size of a downloaded snapshot
const DefaultMaxSnapshotSize = 32 << 20

// HTTP implements DatasetSource by fetching <base>/data/nfl_<season>.json
type HTTP struct {
	base    *url.URL
	client  *http.Client
	maxSize int64
}

// HTTPOption configures HTTP source
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = client
	}
}

// WithMaxSnapshotSize replaces the download size limit
func WithMaxSnapshotSize(n int64) HTTPOption {
	return func(h *HTTP) {
		if n > 0 {
			h.maxSize = n
		}
	}
}

// NewHTTP creates a source for the snapshots published under baseURL
func NewHTTP(baseURL string, opts ...HTTPOption) (*HTTP, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse data URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("data URL must be http or https", goerr.V("url", baseURL))
	}

	h := &HTTP{
		base:    u,
		client:  &http.Client{Timeout: 30 * time.Second},
		maxSize: DefaultMaxSnapshotSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// URL returns the snapshot URL of season
func (h *HTTP) URL(season types.Season) string {
	return h.base.JoinPath("data", DatasetFileName(season)).String()
}

// Load downloads and validates the snapshot of season
func (h *HTTP) Load(ctx context.Context, season types.Season) (*model.SeasonDataset, error) {
	target := h.URL(season)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create snapshot request", goerr.V("url", target))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch snapshot", goerr.V("url", target))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.Wrap(model.ErrSeasonNotFound, "snapshot is not published",
			goerr.V("season", season),
			goerr.V("url", target))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New("unexpected snapshot response status",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", target))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxSize+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read snapshot body", goerr.V("url", target))
	}
	if int64(len(data)) > h.maxSize {
		return nil, goerr.Wrap(model.ErrSnapshotTooLarge, "snapshot exceeds download limit",
			goerr.V("limit", h.maxSize),
			goerr.V("url", target))
	}

	return decodeSeason(data, season)
}
