package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/r-kabir-rafi/bracu-socials/config"
	"github.com/r-kabir-rafi/bracu-socials/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Availability AvailabilityService
}

// NewService 创建 Service 聚合，校园窗口与时区取自配置
func NewService(cfg *config.Config, repo *repository.Repository, clock Clock, logger *zap.Logger) (*Service, error) {
	window, err := cfg.Campus.Window()
	if err != nil {
		return nil, fmt.Errorf("校园窗口非法: %w", err)
	}
	loc, err := cfg.Campus.Location()
	if err != nil {
		return nil, fmt.Errorf("校园时区非法: %w", err)
	}
	return &Service{
		Availability: NewAvailabilityService(repo, window, loc, clock, logger),
	}, nil
}
