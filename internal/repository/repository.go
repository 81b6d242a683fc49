package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/chalitbbph/TNCC-H/internal/domain"
)

// ConflictKeyEmployeeID is the default upsert conflict key.
const ConflictKeyEmployeeID = "employee_id"

// PageSize is the internal pagination size for FetchAll. A page shorter than
// this terminates the fetch.
const PageSize = 1000

var yearRe = regexp.MustCompile(`^\d{4}$`)

// DatasetName builds the store name for a reporting year ("health_2024").
// Any well-formed 4-digit label is valid; there is no fixed set of years.
func DatasetName(year string) (string, error) {
	if !yearRe.MatchString(year) {
		return "", fmt.Errorf("invalid year label %q: want 4 digits", year)
	}
	return "health_" + year, nil
}

// DatasetsRepo is the storage boundary for year datasets.
//
// FetchAll retrieves every row of the named dataset, paging internally at
// PageSize. An error on any page aborts the whole fetch: no partial silent
// success. Zero rows is not an error.
//
// Upsert writes rows keyed by conflictKey; re-applying the same batch must
// not create duplicates. On conflict the stored row is replaced.
type DatasetsRepo interface {
	FetchAll(ctx context.Context, datasetName string) ([]domain.RawRow, error)
	Upsert(ctx context.Context, datasetName string, rows []domain.RawRow, conflictKey string) (int, error)
}

// Error is a hard storage failure, carrying enough context to identify which
// dataset and operation failed. Soft conditions (unknown columns, unparsable
// numerics, empty datasets) never become an Error.
type Error struct {
	Op      string // "fetch" / "upsert"
	Dataset string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repository %s %s: %v", e.Op, e.Dataset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
