package job

import (
	"Parlor/internal/pkg/consts"
	"Parlor/internal/pkg/logger"
	"Parlor/internal/pkg/redis"
	"Parlor/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// RoomMetricsJob 每日统计前一天有新消息的房间的消息量
type RoomMetricsJob struct {
	metricSvc service.RoomMetricService
}

func NewRoomMetricsJob(metricSvc service.RoomMetricService) *RoomMetricsJob {
	return &RoomMetricsJob{metricSvc: metricSvc}
}

func (s *RoomMetricsJob) Run() {
	traceID := "job-room-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.RoomDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.RoomDirtyKey, processingKey)
	if err != nil {
		return
	}

	roomIDs, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get room dirty set error", "err", err)
		return
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	synced := 0
	for _, roomID := range roomIDs {
		err = s.metricSvc.SyncRoomDailyMetric(ctx, roomID, yesterday)
		if err != nil {
			log.ErrorContext(ctx, "sync room daily metric error", "room", roomID, "err", err)
			continue
		}
		synced++
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete room processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync room metrics success",
		"room_count", len(roomIDs),
		"synced", synced)
}
