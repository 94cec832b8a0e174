package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/r-kabir-rafi/bracu-socials/internal/model"
)

// ScheduleEntryRepository 课表快照数据访问接口（只读）
type ScheduleEntryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error)
	// ListByUsers 批量读取多个用户的课表，按 user_id、start_time 排序
	ListByUsers(ctx context.Context, userIDs []string) ([]model.ScheduleEntry, error)
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo 创建 ScheduleEntryRepository 实例
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC, course_code ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ListByUsers(ctx context.Context, userIDs []string) ([]model.ScheduleEntry, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("user_id ASC, start_time ASC, course_code ASC").
		Find(&entries).Error
	return entries, err
}
