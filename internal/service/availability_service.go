package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/r-kabir-rafi/bracu-socials/internal/availability"
	"github.com/r-kabir-rafi/bracu-socials/internal/dto"
	"github.com/r-kabir-rafi/bracu-socials/internal/model"
	"github.com/r-kabir-rafi/bracu-socials/internal/repository"
	pkgerrors "github.com/r-kabir-rafi/bracu-socials/pkg/errors"
)

// ── 可用性模块业务错误 ──

var (
	ErrAvailabilityInvalidUserID   = errors.New("用户ID格式非法")
	ErrAvailabilityInvalidSchedule = errors.New("课表数据非法")
	ErrAvailabilityInvalidStatus   = errors.New("状态只能为 free 或 busy")
	ErrAvailabilityInvalidDuration = errors.New("持续时间必须在 1 到 10080 分钟之间")
	ErrAvailabilityInvalidDay      = errors.New("星期参数非法")
	ErrAvailabilityNoUsers         = errors.New("至少需要一个用户")
)

// maxOverrideMinutes 手动覆盖的最长持续时间（7 天）
const maxOverrideMinutes = 7 * 24 * 60

// AvailabilityService 可用性业务接口
type AvailabilityService interface {
	GetStatus(ctx context.Context, userID string) (*dto.StatusResponse, error)
	// GetFreeTime day 为空时取校园时区的今天
	GetFreeTime(ctx context.Context, userID, day string) (*dto.FreeTimeResponse, error)
	FindCommonFreeTime(ctx context.Context, userIDs []string, day string) (*dto.CommonFreeTimeResponse, error)
	SetStatus(ctx context.Context, userID string, req *dto.SetStatusRequest) (*dto.StatusResponse, error)
	ClearStatusOverride(ctx context.Context, userID string) error
}

type availabilityService struct {
	repo   *repository.Repository
	campus availability.Interval
	loc    *time.Location
	clock  Clock
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(
	repo *repository.Repository,
	campus availability.Interval,
	loc *time.Location,
	clock Clock,
	logger *zap.Logger,
) AvailabilityService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &availabilityService{repo: repo, campus: campus, loc: loc, clock: clock, logger: logger}
}

// ────────────────────── GetStatus ──────────────────────

func (s *availabilityService) GetStatus(ctx context.Context, userID string) (*dto.StatusResponse, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	ov, err := s.loadOverride(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var entries []availability.ScheduleEntry
	// 有效覆盖直接生效，无需读取课表
	if ov == nil || !ov.Active || ov.Stale(now) {
		entries, err = s.loadEntries(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	res := availability.ResolveStatus(ov, entries, now, s.campus)
	if res.Clear != nil {
		s.clearExpired(ctx, userID, res.Clear.ExpiredAt)
	}

	resp := &dto.StatusResponse{
		UserID:      userID,
		Status:      res.Status,
		IsOverride:  res.IsOverride,
		CampusHours: s.campusHours(),
	}
	if res.IsOverride && ov.ExpiresAt != nil {
		until := ov.ExpiresAt.In(s.loc).Format(time.RFC3339)
		resp.OverrideUntil = &until
	}
	return resp, nil
}

// ────────────────────── GetFreeTime ──────────────────────

func (s *availabilityService) GetFreeTime(ctx context.Context, userID, day string) (*dto.FreeTimeResponse, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	d, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}

	entries, err := s.loadEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	free, err := availability.FreeIntervalsForDay(entries, d, s.campus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityInvalidSchedule, err)
	}

	return &dto.FreeTimeResponse{
		UserID:      userID,
		Day:         d.String(),
		CampusHours: s.campusHours(),
		Classes:     len(availability.BusyOn(entries, d)),
		FreeSlots:   free,
	}, nil
}

// ────────────────────── FindCommonFreeTime ──────────────────────

func (s *availabilityService) FindCommonFreeTime(ctx context.Context, userIDs []string, day string) (*dto.CommonFreeTimeResponse, error) {
	ids := dedupe(userIDs)
	if len(ids) == 0 {
		return nil, ErrAvailabilityNoUsers
	}
	for _, id := range ids {
		if err := validateUserID(id); err != nil {
			return nil, err
		}
	}
	d, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ScheduleEntry.ListByUsers(ctx, ids)
	if err != nil {
		s.logger.Error("批量查询课表失败", zap.Int("users", len(ids)), zap.Error(err))
		return nil, err
	}

	byUser := make(map[string][]model.ScheduleEntry, len(ids))
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], row)
	}

	people := make([][]availability.Interval, 0, len(ids))
	var busy []availability.Interval
	for _, id := range ids {
		entries, err := toEntries(byUser[id])
		if err != nil {
			s.logger.Warn("课表数据非法", zap.String("user_id", id), zap.Error(err))
			return nil, err
		}
		onDay := availability.BusyOn(entries, d)
		people = append(people, onDay)
		busy = append(busy, onDay...)
	}

	free, err := availability.CommonFree(people, s.campus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityInvalidSchedule, err)
	}
	merged, err := availability.Merge(busy, s.campus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityInvalidSchedule, err)
	}

	return &dto.CommonFreeTimeResponse{
		UserIDs:     ids,
		Day:         d.String(),
		CampusHours: s.campusHours(),
		BusySlots:   merged,
		FreeSlots:   free,
	}, nil
}

// ────────────────────── SetStatus ──────────────────────

func (s *availabilityService) SetStatus(ctx context.Context, userID string, req *dto.SetStatusRequest) (*dto.StatusResponse, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrAvailabilityInvalidStatus
	}
	status, err := availability.ParseOverrideStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityInvalidStatus, err)
	}

	ov := &model.AvailabilityOverride{
		UserID: userID,
		Status: string(status),
		Active: true,
	}
	if req.DurationMinutes != nil {
		minutes := *req.DurationMinutes
		if minutes < 1 || minutes > maxOverrideMinutes {
			return nil, ErrAvailabilityInvalidDuration
		}
		until := s.now().Add(time.Duration(minutes) * time.Minute)
		ov.ExpiresAt = &until
	}

	if err := s.repo.Override.Upsert(ctx, ov); err != nil {
		s.logger.Error("设置状态覆盖失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("状态覆盖已设置",
		zap.String("user_id", userID),
		zap.String("status", ov.Status),
		zap.Timep("expires_at", ov.ExpiresAt),
	)

	resp := &dto.StatusResponse{
		UserID:      userID,
		Status:      status,
		IsOverride:  true,
		CampusHours: s.campusHours(),
	}
	if ov.ExpiresAt != nil {
		until := ov.ExpiresAt.Format(time.RFC3339)
		resp.OverrideUntil = &until
	}
	return resp, nil
}

// ────────────────────── ClearStatusOverride ──────────────────────

func (s *availabilityService) ClearStatusOverride(ctx context.Context, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := s.repo.Override.Clear(ctx, userID); err != nil {
		s.logger.Error("清除状态覆盖失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部工具 ──

func (s *availabilityService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *availabilityService) campusHours() dto.CampusHours {
	return dto.CampusHours{Start: s.campus.Start.String(), End: s.campus.End.String()}
}

func (s *availabilityService) resolveDay(day string) (time.Weekday, error) {
	if strings.TrimSpace(day) == "" {
		return s.now().Weekday(), nil
	}
	d, err := availability.ParseWeekday(day)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAvailabilityInvalidDay, err)
	}
	return d, nil
}

// loadOverride 读取覆盖记录，不存在时返回 nil
func (s *availabilityService) loadOverride(ctx context.Context, userID string) (*availability.Override, error) {
	row, err := s.repo.Override.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询状态覆盖失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &availability.Override{
		Status:    availability.Status(row.Status),
		Active:    row.Active,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (s *availabilityService) loadEntries(ctx context.Context, userID string) ([]availability.ScheduleEntry, error) {
	rows, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询课表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	entries, err := toEntries(rows)
	if err != nil {
		s.logger.Warn("课表数据非法", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// clearExpired 执行过期覆盖的清除意图，失败只记录日志
func (s *availabilityService) clearExpired(ctx context.Context, userID string, observed time.Time) {
	err := s.repo.Override.ClearIfExpired(ctx, userID, observed)
	switch {
	case err == nil:
		s.logger.Info("过期状态覆盖已清除", zap.String("user_id", userID), zap.Time("expired_at", observed))
	case errors.Is(err, pkgerrors.ErrOverrideChanged):
		s.logger.Debug("状态覆盖已被并发清除或重设", zap.String("user_id", userID))
	default:
		s.logger.Warn("清除过期状态覆盖失败", zap.String("user_id", userID), zap.Error(err))
	}
}

// toEntries 将存储行转换为引擎课表条目，任一行非法即整体失败
func toEntries(rows []model.ScheduleEntry) ([]availability.ScheduleEntry, error) {
	entries := make([]availability.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		e, err := availability.NewScheduleEntry(row.CourseCode, row.ClassDays, row.StartTime, row.EndTime, row.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: 课程 %s: %w", ErrAvailabilityInvalidSchedule, row.CourseCode, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func validateUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrAvailabilityInvalidUserID, id)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
