package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/r-kabir-rafi/bracu-socials/internal/model"
	pkgerrors "github.com/r-kabir-rafi/bracu-socials/pkg/errors"
)

// AvailabilityOverrideRepository 手动状态覆盖数据访问接口
type AvailabilityOverrideRepository interface {
	// GetByUser 读取覆盖记录，不存在时返回 gorm.ErrRecordNotFound
	GetByUser(ctx context.Context, userID string) (*model.AvailabilityOverride, error)
	// Upsert 设置覆盖（每个用户至多一条）
	Upsert(ctx context.Context, ov *model.AvailabilityOverride) error
	// ClearIfExpired 比较并清除：仅当记录仍有效且过期时间等于 observed 时清除。
	// 未命中返回 ErrOverrideChanged，调用方可视为已被他人清除。
	ClearIfExpired(ctx context.Context, userID string, observed time.Time) error
	// Clear 无条件清除覆盖，记录不存在时静默成功
	Clear(ctx context.Context, userID string) error
}

type availabilityOverrideRepo struct {
	db *gorm.DB
}

// NewAvailabilityOverrideRepo 创建 AvailabilityOverrideRepository 实例
func NewAvailabilityOverrideRepo(db *gorm.DB) AvailabilityOverrideRepository {
	return &availabilityOverrideRepo{db: db}
}

func (r *availabilityOverrideRepo) GetByUser(ctx context.Context, userID string) (*model.AvailabilityOverride, error) {
	var ov model.AvailabilityOverride
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&ov).Error
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

func (r *availabilityOverrideRepo) Upsert(ctx context.Context, ov *model.AvailabilityOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     ov.Status,
				"active":     ov.Active,
				"expires_at": ov.ExpiresAt,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(ov).Error
}

func (r *availabilityOverrideRepo) ClearIfExpired(ctx context.Context, userID string, observed time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.AvailabilityOverride{}).
		Where("user_id = ? AND active = ? AND expires_at = ?", userID, true, observed).
		Updates(map[string]interface{}{
			"active":     false,
			"expires_at": nil,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOverrideChanged
	}
	return nil
}

func (r *availabilityOverrideRepo) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.AvailabilityOverride{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"active":     false,
			"expires_at": nil,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}
