package repository

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	ScheduleEntry ScheduleEntryRepository
	Override      AvailabilityOverrideRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		ScheduleEntry: NewScheduleEntryRepo(db),
		Override:      NewAvailabilityOverrideRepo(db),
	}
}

// WithSnapshotCache 为课表读取加上快照缓存；cache 为 nil 时原样返回
func (r *Repository) WithSnapshotCache(cache SnapshotCache, ttl time.Duration, logger *zap.Logger) *Repository {
	if cache == nil {
		return r
	}
	return &Repository{
		ScheduleEntry: NewCachedScheduleEntryRepo(r.ScheduleEntry, cache, ttl, logger),
		Override:      r.Override,
	}
}
