package api

import "Parlor/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler    *handler.UserHandler
	RoomHandler    *handler.RoomHandler
	MessageHandler *handler.MessageHandler
}
