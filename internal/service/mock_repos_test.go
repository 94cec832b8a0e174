package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/r-kabir-rafi/bracu-socials/internal/model"
	pkgerrors "github.com/r-kabir-rafi/bracu-socials/pkg/errors"
)

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries map[string][]model.ScheduleEntry
	err     error
	calls   int
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[string][]model.ScheduleEntry)}
}

func (m *mockScheduleEntryRepo) add(userID, course, days, start, end string) {
	m.entries[userID] = append(m.entries[userID], model.ScheduleEntry{
		UserID:     userID,
		CourseCode: course,
		ClassDays:  days,
		StartTime:  start,
		EndTime:    end,
	})
}

func (m *mockScheduleEntryRepo) ListByUser(_ context.Context, userID string) ([]model.ScheduleEntry, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.entries[userID], nil
}

func (m *mockScheduleEntryRepo) ListByUsers(_ context.Context, userIDs []string) ([]model.ScheduleEntry, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var result []model.ScheduleEntry
	for _, id := range userIDs {
		result = append(result, m.entries[id]...)
	}
	return result, nil
}

// ── Mock AvailabilityOverrideRepository ──

type mockOverrideRepo struct {
	overrides  map[string]*model.AvailabilityOverride
	clearErr   error
	clearCalls int
}

func newMockOverrideRepo() *mockOverrideRepo {
	return &mockOverrideRepo{overrides: make(map[string]*model.AvailabilityOverride)}
}

func (m *mockOverrideRepo) GetByUser(_ context.Context, userID string) (*model.AvailabilityOverride, error) {
	if ov, ok := m.overrides[userID]; ok {
		cp := *ov
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOverrideRepo) Upsert(_ context.Context, ov *model.AvailabilityOverride) error {
	cp := *ov
	m.overrides[ov.UserID] = &cp
	return nil
}

func (m *mockOverrideRepo) ClearIfExpired(_ context.Context, userID string, observed time.Time) error {
	m.clearCalls++
	if m.clearErr != nil {
		return m.clearErr
	}
	ov, ok := m.overrides[userID]
	if !ok || !ov.Active || ov.ExpiresAt == nil || !ov.ExpiresAt.Equal(observed) {
		return pkgerrors.ErrOverrideChanged
	}
	ov.Active = false
	ov.ExpiresAt = nil
	return nil
}

func (m *mockOverrideRepo) Clear(_ context.Context, userID string) error {
	if ov, ok := m.overrides[userID]; ok {
		ov.Active = false
		ov.ExpiresAt = nil
	}
	return nil
}
