package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/domain"
	"github.com/chalitbbph/TNCC-H/internal/repository"
)

// SupabaseClient is a DatasetsRepo over a PostgREST-style REST endpoint
// (the reference deployment runs on Supabase). Each year dataset is one
// table; rows travel as flat JSON objects.
type SupabaseClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewSupabaseClient creates the REST-backed datasets repository.
// baseURL is the project URL without the /rest/v1 suffix.
func NewSupabaseClient(baseURL, apiKey string, logger *zap.Logger) *SupabaseClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL+"/rest/v1").
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &SupabaseClient{httpClient: client, logger: logger}
}

var _ repository.DatasetsRepo = (*SupabaseClient)(nil)

// FetchAll pages with Range headers in repository.PageSize chunks and stops
// on the first short page. An error on any page aborts the whole fetch.
func (c *SupabaseClient) FetchAll(ctx context.Context, datasetName string) ([]domain.RawRow, error) {
	var all []domain.RawRow
	from := 0
	for {
		if err := ctx.Err(); err != nil {
			// Cancellation between pages: distinct from a data error,
			// surfaced as the context error itself.
			return nil, fmt.Errorf("fetch %s cancelled: %w", datasetName, err)
		}

		to := from + repository.PageSize - 1
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader("Range", fmt.Sprintf("%d-%d", from, to)).
			SetQueryParam("select", "*").
			SetQueryParam("order", repository.ConflictKeyEmployeeID).
			Get("/" + datasetName)
		if err != nil {
			return nil, &repository.Error{Op: "fetch", Dataset: datasetName, Err: err}
		}
		if resp.IsError() {
			return nil, &repository.Error{
				Op:      "fetch",
				Dataset: datasetName,
				Err:     fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()),
			}
		}

		var page []domain.RawRow
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return nil, &repository.Error{Op: "fetch", Dataset: datasetName, Err: fmt.Errorf("decode page: %w", err)}
		}

		all = append(all, page...)
		if len(page) < repository.PageSize {
			break
		}
		from += repository.PageSize
	}

	c.logger.Debug("fetched dataset via REST",
		zap.String("dataset", datasetName),
		zap.Int("rows", len(all)),
	)
	return all, nil
}

// Upsert posts the batch with merge-duplicates resolution on the conflict
// key, which makes re-applying the same batch a no-op.
func (c *SupabaseClient) Upsert(ctx context.Context, datasetName string, rows []domain.RawRow, conflictKey string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if conflictKey == "" {
		conflictKey = repository.ConflictKeyEmployeeID
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetQueryParam("on_conflict", conflictKey).
		SetBody(rows).
		Post("/" + datasetName)
	if err != nil {
		return 0, &repository.Error{Op: "upsert", Dataset: datasetName, Err: err}
	}
	if resp.IsError() {
		return 0, &repository.Error{
			Op:      "upsert",
			Dataset: datasetName,
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	c.logger.Info("upserted dataset rows via REST",
		zap.String("dataset", datasetName),
		zap.Int("rows", len(rows)),
	)
	return len(rows), nil
}
