package api

import (
	"Parlor/internal/api/middleware"
	"Parlor/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.POST("/avatar", group.UserHandler.UploadAvatar)
			}
		}

		roomGroup := apiGroup.Group("/rooms")
		roomGroup.Use(middleware.AuthMiddleware())
		{
			roomGroup.GET("", group.RoomHandler.ListRooms)
			roomGroup.GET("/me", group.RoomHandler.ListMyRooms)
			roomGroup.GET("/:room_id", group.RoomHandler.GetRoom)
			roomGroup.POST("", group.RoomHandler.CreateRoom)
			roomGroup.PUT("/connect/:room_id", group.RoomHandler.Connect)
			roomGroup.GET("/:room_id/metrics", group.RoomHandler.GetRoomMetrics)
		}

		messageGroup := apiGroup.Group("/messages")
		messageGroup.Use(middleware.AuthMiddleware())
		{
			messageGroup.GET("", group.MessageHandler.ListMessages)
			messageGroup.GET("/me", group.MessageHandler.ListMyMessages)
			messageGroup.GET("/:room_id", group.MessageHandler.ListRoomMessages)
			messageGroup.POST("", group.MessageHandler.SendMessage)
			messageGroup.PUT("", group.MessageHandler.EditMessage)
			messageGroup.DELETE("/:message_id", group.MessageHandler.DetachMessage)
		}
	}

	return r
}
