package service

import (
	"Parlor/internal/model"
	"Parlor/internal/pkg/mongo"
	"Parlor/internal/repository"
	"context"
	"time"
)

// RoomMetricService 房间日活跃度统计
type RoomMetricService interface {
	SyncRoomDailyMetric(ctx context.Context, roomID string, date time.Time) error
	GetDailyMetrics(ctx context.Context, roomID string, days int) ([]*model.RoomDailyMetric, error)
}

type roomMetricServiceImpl struct {
	messageRepo mongo.MessageRepo
	metricRepo  repository.RoomMetricRepo
}

func NewRoomMetricService(messageRepo mongo.MessageRepo, metricRepo repository.RoomMetricRepo) RoomMetricService {
	return &roomMetricServiceImpl{
		messageRepo: messageRepo,
		metricRepo:  metricRepo,
	}
}

// SyncRoomDailyMetric 统计指定房间在 date 当天的消息数并落库
func (s *roomMetricServiceImpl) SyncRoomDailyMetric(ctx context.Context, roomID string, date time.Time) error {
	id, err := parseObjectID(roomID)
	if err != nil {
		return err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	count, err := s.messageRepo.CountMessagesByRoomBetween(ctx, id, day, day.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	return s.metricRepo.UpsertDailyMetric(ctx, &model.RoomDailyMetric{
		RoomID:       roomID,
		Date:         day,
		MessageCount: count,
	})
}

func (s *roomMetricServiceImpl) GetDailyMetrics(ctx context.Context, roomID string, days int) ([]*model.RoomDailyMetric, error) {
	return s.metricRepo.GetDailyMetrics(ctx, roomID, days)
}
