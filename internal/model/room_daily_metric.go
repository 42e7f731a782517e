package model

import "time"

// RoomDailyMetric 房间每日消息量统计
type RoomDailyMetric struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID       string    `gorm:"uniqueIndex:idx_room_date;type:varchar(32)" json:"roomId"` // Mongo 房间 ID 的十六进制表示
	Date         time.Time `gorm:"uniqueIndex:idx_room_date;type:date" json:"date"`
	MessageCount int64     `gorm:"not null;default:0" json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (RoomDailyMetric) TableName() string { return "room_daily_metrics" }
