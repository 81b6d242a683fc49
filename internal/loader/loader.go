package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/domain"
	"github.com/chalitbbph/TNCC-H/internal/repository"
	"github.com/chalitbbph/TNCC-H/internal/schema"
)

// DefaultCacheTTL bounds staleness for dashboards that poll; uploads
// invalidate explicitly, the TTL only covers out-of-band writes.
const DefaultCacheTTL = 5 * time.Minute

// Loader fetches year datasets, normalizes and types them, and caches the
// typed collections per year label. Collections it returns are treated as
// immutable by every consumer; derived views must copy.
type Loader struct {
	repo       repository.DatasetsRepo
	normalizer *schema.Normalizer
	kv         KVStore
	ttl        time.Duration
	logger     *zap.Logger
}

// NewLoader creates a Loader. kv may be nil to disable caching.
func NewLoader(repo repository.DatasetsRepo, normalizer *schema.Normalizer, kv KVStore, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		repo:       repo,
		normalizer: normalizer,
		kv:         kv,
		ttl:        DefaultCacheTTL,
		logger:     logger,
	}
}

func cacheKey(year string) string {
	return "healthdash:dataset:" + year
}

// Load fetches the requested years concurrently. Failures are isolated per
// year: a failed year appears in the error map, the others still load. Both
// maps are keyed by year label; a year appears in exactly one of them.
func (l *Loader) Load(ctx context.Context, years []string) (map[string][]domain.HealthRecord, map[string]error) {
	records := make(map[string][]domain.HealthRecord, len(years))
	failures := make(map[string]error)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, year := range years {
		wg.Add(1)
		go func(year string) {
			defer wg.Done()
			recs, err := l.LoadYear(ctx, year)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[year] = err
				return
			}
			records[year] = recs
		}(year)
	}
	wg.Wait()

	return records, failures
}

// LoadYear loads one year: cache read-through, then repository fetch +
// normalize + type on miss. An empty dataset is a valid empty collection.
func (l *Loader) LoadYear(ctx context.Context, year string) ([]domain.HealthRecord, error) {
	datasetName, err := repository.DatasetName(year)
	if err != nil {
		return nil, err
	}

	if cached, ok := l.cacheGet(ctx, year); ok {
		return cached, nil
	}

	raw, err := l.repo.FetchAll(ctx, datasetName)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled mid-fetch: report cancellation, not a data error.
			return nil, fmt.Errorf("load %s: %w", year, ctx.Err())
		}
		return nil, fmt.Errorf("load %s: %w", year, err)
	}

	normalized := l.normalizer.Normalize(raw)
	records := make([]domain.HealthRecord, 0, len(normalized))
	for _, row := range normalized {
		records = append(records, RecordFromRow(row))
	}

	l.cacheSet(ctx, year, records)

	l.logger.Info("loaded year dataset",
		zap.String("year", year),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// Invalidate drops the cached collection for a year. Called after an upload
// replaces that year's rows.
func (l *Loader) Invalidate(ctx context.Context, year string) {
	if l.kv == nil {
		return
	}
	if err := l.kv.Del(ctx, cacheKey(year)); err != nil {
		l.logger.Warn("cache invalidation failed",
			zap.String("year", year),
			zap.Error(err),
		)
	}
}

func (l *Loader) cacheGet(ctx context.Context, year string) ([]domain.HealthRecord, bool) {
	if l.kv == nil {
		return nil, false
	}
	val, err := l.kv.Get(ctx, cacheKey(year))
	if err != nil {
		if err != ErrCacheMiss {
			l.logger.Warn("cache read failed", zap.String("year", year), zap.Error(err))
		}
		return nil, false
	}
	var records []domain.HealthRecord
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		l.logger.Warn("cache entry corrupt, dropping", zap.String("year", year), zap.Error(err))
		_ = l.kv.Del(ctx, cacheKey(year))
		return nil, false
	}
	return records, true
}

func (l *Loader) cacheSet(ctx context.Context, year string, records []domain.HealthRecord) {
	if l.kv == nil {
		return
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := l.kv.Set(ctx, cacheKey(year), string(payload), l.ttl); err != nil {
		l.logger.Warn("cache write failed", zap.String("year", year), zap.Error(err))
	}
}
