package repository

import (
	"Parlor/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomMetricRepo interface {
	UpsertDailyMetric(ctx context.Context, metric *model.RoomDailyMetric) error
	GetDailyMetrics(ctx context.Context, roomID string, days int) ([]*model.RoomDailyMetric, error)
}

type RoomMetricRepoImpl struct {
	db *gorm.DB
}

func NewRoomMetricRepo(db *gorm.DB) RoomMetricRepo {
	return &RoomMetricRepoImpl{db: db}
}

// UpsertDailyMetric 按 (room_id, date) 幂等写入，任务重跑时覆盖计数
func (s *RoomMetricRepoImpl) UpsertDailyMetric(ctx context.Context, metric *model.RoomDailyMetric) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"message_count", "updated_at"}),
		}).
		Create(metric).Error
}

func (s *RoomMetricRepoImpl) GetDailyMetrics(ctx context.Context, roomID string, days int) ([]*model.RoomDailyMetric, error) {
	metrics := make([]*model.RoomDailyMetric, 0)
	result := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("date DESC").
		Limit(days).
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
