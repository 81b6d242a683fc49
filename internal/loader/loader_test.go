package loader

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/domain"
	"github.com/chalitbbph/TNCC-H/internal/repository"
	"github.com/chalitbbph/TNCC-H/internal/schema"
)

// fakeRepo is an in-memory DatasetsRepo for loader tests.
type fakeRepo struct {
	mu    sync.Mutex
	data  map[string][]domain.RawRow
	errs  map[string]error
	calls map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		data:  make(map[string][]domain.RawRow),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeRepo) FetchAll(ctx context.Context, datasetName string) ([]domain.RawRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[datasetName]++
	if err := ctx.Err(); err != nil {
		return nil, &repository.Error{Op: "fetch", Dataset: datasetName, Err: err}
	}
	if err := f.errs[datasetName]; err != nil {
		return nil, &repository.Error{Op: "fetch", Dataset: datasetName, Err: err}
	}
	return f.data[datasetName], nil
}

func (f *fakeRepo) Upsert(ctx context.Context, datasetName string, rows []domain.RawRow, conflictKey string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[datasetName] = append(f.data[datasetName], rows...)
	return len(rows), nil
}

func (f *fakeRepo) fetchCount(datasetName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[datasetName]
}

func newTestLoader(repo repository.DatasetsRepo, kv KVStore) *Loader {
	n := schema.NewNormalizer(schema.DefaultMapping, zap.NewNop())
	return NewLoader(repo, n, kv, zap.NewNop())
}

func TestLoad_TypesNormalizedRows(t *testing.T) {
	repo := newFakeRepo()
	repo.data["health_2024"] = []domain.RawRow{
		{
			"รหัสพนักงาน":              "E001",
			"สาขา":                     "สำนักงานใหญ่",
			"เพศ":                      "ชาย",
			"อายุ":                     "45",
			"สูบบุหรี่":                "ไม่สูบ",
			"ดื่มสุรา":                 "ü",
			"Triglyceride 30-150  mg%": "182.5",
			"ผลตรวจสุขภาพโดยรวม": "ปกติ",
		},
	}

	l := newTestLoader(repo, nil)
	records, failures := l.Load(context.Background(), []string{"2024"})
	require.Empty(t, failures)
	require.Len(t, records["2024"], 1)

	rec := records["2024"][0]
	assert.Equal(t, "E001", rec.EmployeeID)
	assert.Equal(t, "สำนักงานใหญ่", rec.Branch)
	assert.Equal(t, "M", rec.Gender)
	require.NotNil(t, rec.Age)
	assert.Equal(t, 45.0, *rec.Age)
	assert.False(t, rec.Smoke)
	assert.True(t, rec.Drink)
	require.NotNil(t, rec.Triglyceride)
	assert.Equal(t, 182.5, *rec.Triglyceride)
	assert.Equal(t, "ปกติ", rec.OverallResult)
}

func TestLoad_MalformedNumericBecomesNilNotZero(t *testing.T) {
	repo := newFakeRepo()
	repo.data["health_2024"] = []domain.RawRow{
		{"employee_id": "E001", "cholesterol": "N/A", "bmi": "0"},
	}

	l := newTestLoader(repo, nil)
	records, failures := l.Load(context.Background(), []string{"2024"})
	require.Empty(t, failures)
	require.Len(t, records["2024"], 1)

	rec := records["2024"][0]
	assert.Nil(t, rec.Cholesterol, "unparsable must be missing, not zero")
	require.NotNil(t, rec.BMI, "a literal zero is a real value, not missing")
	assert.Equal(t, 0.0, *rec.BMI)
}

func TestLoad_PerYearFailureIsolation(t *testing.T) {
	repo := newFakeRepo()
	repo.data["health_2024"] = []domain.RawRow{{"employee_id": "E001"}}
	repo.errs["health_2025"] = errors.New("relation does not exist")

	l := newTestLoader(repo, nil)
	records, failures := l.Load(context.Background(), []string{"2024", "2025"})

	require.Len(t, records["2024"], 1)
	require.Contains(t, failures, "2025")

	var repoErr *repository.Error
	assert.ErrorAs(t, failures["2025"], &repoErr)
	_, ok := records["2025"]
	assert.False(t, ok)
}

func TestLoad_EmptyDatasetIsValidEmptyCollection(t *testing.T) {
	repo := newFakeRepo()

	l := newTestLoader(repo, nil)
	records, failures := l.Load(context.Background(), []string{"2030"})
	require.Empty(t, failures)

	recs, ok := records["2030"]
	assert.True(t, ok, "empty year must still be reported as loaded")
	assert.Empty(t, recs)
}

func TestLoad_InvalidYearLabel(t *testing.T) {
	l := newTestLoader(newFakeRepo(), nil)
	_, failures := l.Load(context.Background(), []string{"24"})
	assert.Contains(t, failures, "24")
}

func TestLoad_CancellationIsDistinctFromDataError(t *testing.T) {
	repo := newFakeRepo()
	l := newTestLoader(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, failures := l.Load(ctx, []string{"2024"})
	require.Contains(t, failures, "2024")
	assert.ErrorIs(t, failures["2024"], context.Canceled)
}

func TestLoadYear_CacheReadThroughAndInvalidate(t *testing.T) {
	repo := newFakeRepo()
	repo.data["health_2024"] = []domain.RawRow{{"employee_id": "E001"}}
	kv := newFakeKVStore()

	l := newTestLoader(repo, kv)
	ctx := context.Background()

	_, err := l.LoadYear(ctx, "2024")
	require.NoError(t, err)
	_, err = l.LoadYear(ctx, "2024")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.fetchCount("health_2024"), "second load must hit the cache")

	l.Invalidate(ctx, "2024")
	_, err = l.LoadYear(ctx, "2024")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.fetchCount("health_2024"), "invalidate must force a re-fetch")
}

func TestLoadYear_CorruptCacheEntryIsDropped(t *testing.T) {
	repo := newFakeRepo()
	repo.data["health_2024"] = []domain.RawRow{{"employee_id": "E001"}}
	kv := newFakeKVStore()
	require.NoError(t, kv.Set(context.Background(), "healthdash:dataset:2024", "{not json", 0))

	l := newTestLoader(repo, kv)
	records, err := l.LoadYear(context.Background(), "2024")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, repo.fetchCount("health_2024"))
}
