package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/repository"
)

// maxUploadBytes caps checkup workbook uploads (largest observed export is
// well under 10 MB).
const maxUploadBytes = 32 << 20

// ImportHandler ingests yearly checkup workbooks and serves exports.
type ImportHandler struct {
	repo   repository.DatasetsRepo
	src    DatasetSource
	logger *zap.Logger
}

func NewImportHandler(repo repository.DatasetsRepo, src DatasetSource, logger *zap.Logger) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{repo: repo, src: src, logger: logger}
}

type importResponse struct {
	BatchID  string `json:"batch_id"`
	Year     string `json:"year"`
	Imported int    `json:"imported"`
}

// Import handles POST /api/v1/import/{year}: multipart "file" field holding
// an XLSX. Rows are upserted keyed by employee_id, then the year's cache
// entry is invalidated so the next analytics request sees the new upload.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request, year string) {
	datasetName, err := repository.DatasetName(year)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("multipart field 'file' is required"))
		return
	}
	defer file.Close()

	rows, err := ParseWorkbook(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	if len(rows) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("workbook has no data rows"))
		return
	}

	count, err := h.repo.Upsert(r.Context(), datasetName, rows, repository.ConflictKeyEmployeeID)
	if err != nil {
		h.logger.Error("import upsert failed",
			zap.String("dataset", datasetName),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, Fail("storage failure for year "+year))
		return
	}

	h.src.Invalidate(r.Context(), year)

	batchID := uuid.NewString()
	h.logger.Info("imported year dataset",
		zap.String("batch_id", batchID),
		zap.String("dataset", datasetName),
		zap.Int("rows", count),
	)
	writeJSON(w, http.StatusOK, Ok(importResponse{
		BatchID:  batchID,
		Year:     year,
		Imported: count,
	}))
}

// Export handles GET /api/v1/export/{year}: the typed dataset as XLSX.
func (h *ImportHandler) Export(w http.ResponseWriter, r *http.Request, year string) {
	records, err := h.src.LoadYear(r.Context(), year)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, Fail("storage failure for year "+year))
		return
	}

	payload, err := ExportWorkbook(year, records)
	if err != nil {
		h.logger.Error("export failed", zap.String("year", year), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("export failed"))
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		`attachment; filename="health_`+year+`.xlsx"`)
	_, _ = w.Write(payload)
}
