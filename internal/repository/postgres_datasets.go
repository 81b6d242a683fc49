package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/domain"
)

// PostgresDatasetsRepo stores year datasets in a single health_rows table:
// (dataset_name, employee_id) primary key, row payload as jsonb.
type PostgresDatasetsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresDatasetsRepo creates the Postgres-backed datasets repository.
func NewPostgresDatasetsRepo(db *sql.DB, logger *zap.Logger) *PostgresDatasetsRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresDatasetsRepo{db: db, logger: logger}
}

var _ DatasetsRepo = (*PostgresDatasetsRepo)(nil)

// FetchAll pages through the dataset in PageSize chunks, ordered by
// employee_id for a stable walk, and stops on the first short page.
func (r *PostgresDatasetsRepo) FetchAll(ctx context.Context, datasetName string) ([]domain.RawRow, error) {
	query := `
		SELECT row
		FROM health_rows
		WHERE dataset_name = $1
		ORDER BY employee_id
		LIMIT $2 OFFSET $3
	`

	var all []domain.RawRow
	offset := 0
	for {
		page, err := r.fetchPage(ctx, query, datasetName, offset)
		if err != nil {
			return nil, &Error{Op: "fetch", Dataset: datasetName, Err: err}
		}
		all = append(all, page...)
		if len(page) < PageSize {
			break
		}
		offset += PageSize
	}

	r.logger.Debug("fetched dataset",
		zap.String("dataset", datasetName),
		zap.Int("rows", len(all)),
	)
	return all, nil
}

func (r *PostgresDatasetsRepo) fetchPage(ctx context.Context, query, datasetName string, offset int) ([]domain.RawRow, error) {
	rows, err := r.db.QueryContext(ctx, query, datasetName, PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("query page at offset %d: %w", offset, err)
	}
	defer rows.Close()

	var page []domain.RawRow
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var raw domain.RawRow
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("decode row payload: %w", err)
		}
		page = append(page, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate page at offset %d: %w", offset, err)
	}
	return page, nil
}

// Upsert writes rows keyed by conflictKey. Rows without a usable key value
// are skipped (counted in the log, not an error): a row that cannot be keyed
// cannot be idempotently replaced.
func (r *PostgresDatasetsRepo) Upsert(ctx context.Context, datasetName string, rowsIn []domain.RawRow, conflictKey string) (int, error) {
	if conflictKey == "" {
		conflictKey = ConflictKeyEmployeeID
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &Error{Op: "upsert", Dataset: datasetName, Err: err}
	}
	defer tx.Rollback()

	stmt := `
		INSERT INTO health_rows (dataset_name, employee_id, row)
		VALUES ($1, $2, $3)
		ON CONFLICT (dataset_name, employee_id)
		DO UPDATE SET row = EXCLUDED.row, updated_at = NOW()
	`

	written := 0
	skipped := 0
	for _, row := range rowsIn {
		key, ok := stringValue(row[conflictKey])
		if !ok || key == "" {
			skipped++
			continue
		}
		payload, err := json.Marshal(row)
		if err != nil {
			return written, &Error{Op: "upsert", Dataset: datasetName, Err: fmt.Errorf("encode row %s: %w", key, err)}
		}
		if _, err := tx.ExecContext(ctx, stmt, datasetName, key, payload); err != nil {
			return written, &Error{Op: "upsert", Dataset: datasetName, Err: fmt.Errorf("write row %s: %w", key, err)}
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, &Error{Op: "upsert", Dataset: datasetName, Err: err}
	}

	if skipped > 0 {
		r.logger.Warn("upsert skipped rows without conflict key",
			zap.String("dataset", datasetName),
			zap.String("conflict_key", conflictKey),
			zap.Int("skipped", skipped),
		)
	}
	return written, nil
}

func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return fmt.Sprintf("%v", s), true
	default:
		return "", false
	}
}
