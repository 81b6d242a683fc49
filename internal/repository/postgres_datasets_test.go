package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/domain"
)

func setupMockRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresDatasetsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresDatasetsRepo(db, zap.NewNop())
	return db, mock, repo
}

func rowPayload(t *testing.T, raw domain.RawRow) []byte {
	payload, err := json.Marshal(raw)
	require.NoError(t, err)
	return payload
}

func TestDatasetName(t *testing.T) {
	name, err := DatasetName("2024")
	require.NoError(t, err)
	assert.Equal(t, "health_2024", name)

	// Years are not enumerated anywhere: any 4-digit label is valid.
	name, err = DatasetName("2031")
	require.NoError(t, err)
	assert.Equal(t, "health_2031", name)

	for _, bad := range []string{"", "24", "20245", "20 24", "abcd"} {
		_, err := DatasetName(bad)
		assert.Error(t, err, bad)
	}
}

func TestFetchAll_SingleShortPage(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"row"}).
		AddRow(rowPayload(t, domain.RawRow{"employee_id": "E001", "branch": "HQ"})).
		AddRow(rowPayload(t, domain.RawRow{"employee_id": "E002", "branch": "Rayong"}))

	mock.ExpectQuery(`SELECT\s+row\s+FROM health_rows`).
		WithArgs("health_2024", PageSize, 0).
		WillReturnRows(rows)

	got, err := repo.FetchAll(context.Background(), "health_2024")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "E001", got[0]["employee_id"])
	assert.Equal(t, "Rayong", got[1]["branch"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_PaginatesUntilShortPage(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	full := sqlmock.NewRows([]string{"row"})
	for i := 0; i < PageSize; i++ {
		full.AddRow(rowPayload(t, domain.RawRow{"employee_id": fmt.Sprintf("E%04d", i)}))
	}
	mock.ExpectQuery(`SELECT\s+row\s+FROM health_rows`).
		WithArgs("health_2025", PageSize, 0).
		WillReturnRows(full)

	short := sqlmock.NewRows([]string{"row"}).
		AddRow(rowPayload(t, domain.RawRow{"employee_id": "E9998"})).
		AddRow(rowPayload(t, domain.RawRow{"employee_id": "E9999"}))
	mock.ExpectQuery(`SELECT\s+row\s+FROM health_rows`).
		WithArgs("health_2025", PageSize, PageSize).
		WillReturnRows(short)

	got, err := repo.FetchAll(context.Background(), "health_2025")
	require.NoError(t, err)
	assert.Len(t, got, PageSize+2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_ErrorOnLaterPageAbortsWholeFetch(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	full := sqlmock.NewRows([]string{"row"})
	for i := 0; i < PageSize; i++ {
		full.AddRow(rowPayload(t, domain.RawRow{"employee_id": fmt.Sprintf("E%04d", i)}))
	}
	mock.ExpectQuery(`SELECT\s+row\s+FROM health_rows`).
		WithArgs("health_2025", PageSize, 0).
		WillReturnRows(full)
	mock.ExpectQuery(`SELECT\s+row\s+FROM health_rows`).
		WithArgs("health_2025", PageSize, PageSize).
		WillReturnError(errors.New("connection reset"))

	got, err := repo.FetchAll(context.Background(), "health_2025")
	assert.Nil(t, got)

	var repoErr *Error
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "fetch", repoErr.Op)
	assert.Equal(t, "health_2025", repoErr.Dataset)
}

func TestFetchAll_EmptyDatasetIsNotAnError(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+row\s+FROM health_rows`).
		WithArgs("health_2030", PageSize, 0).
		WillReturnRows(sqlmock.NewRows([]string{"row"}))

	got, err := repo.FetchAll(context.Background(), "health_2030")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpsert_WritesRowsAndSkipsUnkeyed(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO health_rows`).
		WithArgs("health_2024", "E001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO health_rows`).
		WithArgs("health_2024", "E002", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows := []domain.RawRow{
		{"employee_id": "E001", "smoke": true},
		{"branch": "HQ"}, // no conflict key: skipped, not an error
		{"employee_id": "E002", "smoke": false},
	}

	n, err := repo.Upsert(context.Background(), "health_2024", rows, ConflictKeyEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_ExecErrorSurfacesAsRepositoryError(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO health_rows`).
		WithArgs("health_2024", "E001", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), "health_2024",
		[]domain.RawRow{{"employee_id": "E001"}}, "")

	var repoErr *Error
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "upsert", repoErr.Op)
}
