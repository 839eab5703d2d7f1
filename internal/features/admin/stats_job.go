package admin

import (
	"context"
	"encoding/json"
	"time"

	"log/slog"

	"gorm.io/gorm"

	"github.com/codearc/codearc-server/pkg/cache"
)

// StatsSnapshotJob refreshes the cached platform overview so the admin
// dashboard reads a precomputed snapshot instead of hitting the aggregate
// queries on every request.
type StatsSnapshotJob struct {
	db     *gorm.DB
	cache  cache.Client
	logger *slog.Logger
}

func NewStatsSnapshotJob(db *gorm.DB, cacheClient cache.Client, logger *slog.Logger) *StatsSnapshotJob {
	return &StatsSnapshotJob{db: db, cache: cacheClient, logger: logger}
}

func (j *StatsSnapshotJob) Name() string { return "platform-stats-snapshot" }

func (j *StatsSnapshotJob) Interval() time.Duration { return 5 * time.Minute }

func (j *StatsSnapshotJob) Run(ctx context.Context) error {
	if j.cache == nil || !j.cache.Enabled() {
		return nil
	}

	stats, err := CollectStats(j.db.WithContext(ctx))
	if err != nil {
		return err
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return j.cache.Set(ctx, statsCacheKey, string(payload), statsCacheTTL)
}
