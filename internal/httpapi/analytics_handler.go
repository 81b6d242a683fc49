package httpapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/analytics"
	"github.com/chalitbbph/TNCC-H/internal/domain"
	"github.com/chalitbbph/TNCC-H/internal/repository"
)

// DatasetSource is what the handlers need from the loader.
// *loader.Loader satisfies it.
type DatasetSource interface {
	Load(ctx context.Context, years []string) (map[string][]domain.HealthRecord, map[string]error)
	LoadYear(ctx context.Context, year string) ([]domain.HealthRecord, error)
	Invalidate(ctx context.Context, year string)
}

// AnalyticsHandler serves the year-dataset and cross-year comparison APIs.
type AnalyticsHandler struct {
	src    DatasetSource
	logger *zap.Logger
}

func NewAnalyticsHandler(src DatasetSource, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{src: src, logger: logger}
}

type datasetResponse struct {
	Year    string                `json:"year"`
	Total   int                   `json:"total"`
	Records []domain.HealthRecord `json:"records"`
}

// GetDataset handles GET /api/v1/datasets/{year}.
// An empty year is a valid empty collection (200), distinct from a storage
// failure (502): the frontend renders "no data" and "not connected"
// differently.
func (h *AnalyticsHandler) GetDataset(w http.ResponseWriter, r *http.Request, year string) {
	records, err := h.src.LoadYear(r.Context(), year)
	if err != nil {
		h.writeLoadError(w, year, err)
		return
	}
	if records == nil {
		records = []domain.HealthRecord{}
	}
	writeJSON(w, http.StatusOK, Ok(datasetResponse{
		Year:    year,
		Total:   len(records),
		Records: records,
	}))
}

type compareResponse struct {
	BeforeYear string                `json:"before_year"`
	AfterYear  string                `json:"after_year"`
	Comparison *analytics.Comparison `json:"comparison"`
}

// Compare handles GET /api/v1/compare?before=2024&after=2025&field=drink.
func (h *AnalyticsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	beforeYear := q.Get("before")
	afterYear := q.Get("after")
	field := q.Get("field")
	if beforeYear == "" || afterYear == "" || field == "" {
		writeJSON(w, http.StatusBadRequest, Fail("before, after and field are required"))
		return
	}

	records, failures := h.src.Load(r.Context(), []string{beforeYear, afterYear})
	for _, year := range []string{beforeYear, afterYear} {
		if err, ok := failures[year]; ok {
			h.writeLoadError(w, year, err)
			return
		}
	}

	cmp, err := analytics.Compare(field, records[beforeYear], records[afterYear])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(compareResponse{
		BeforeYear: beforeYear,
		AfterYear:  afterYear,
		Comparison: cmp,
	}))
}

func (h *AnalyticsHandler) writeLoadError(w http.ResponseWriter, year string, err error) {
	var repoErr *repository.Error
	switch {
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to render.
		writeJSON(w, http.StatusServiceUnavailable, Fail("request cancelled"))
	case errors.As(err, &repoErr):
		h.logger.Error("dataset load failed",
			zap.String("year", year),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, Fail("storage failure for year "+year))
	default:
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	}
}
