package wire

import (
	"Parlor/internal/api"
	"Parlor/internal/api/handler"
	"Parlor/internal/job"
	"Parlor/internal/pkg/cron"
	pkgmongo "Parlor/internal/pkg/mongo"
	"Parlor/internal/repository"
	"Parlor/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	metricRepo := repository.NewRoomMetricRepo(db)
	roomRepo := pkgmongo.NewRoomRepo(mongoDB)
	messageRepo := pkgmongo.NewMessageRepo(mongoDB)

	userService := service.NewUserService(userRepo)
	roomService := service.NewRoomService(roomRepo)
	messageService := service.NewMessageService(messageRepo, roomRepo)
	metricService := service.NewRoomMetricService(messageRepo, metricRepo)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userService),
		RoomHandler:    handler.NewRoomHandler(roomService, metricService),
		MessageHandler: handler.NewMessageHandler(messageService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewRoomMetricsJob(metricService))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
