package handler

import (
	"Parlor/internal/api/dto"
	"Parlor/internal/pkg/response"
	"Parlor/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

func (s *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var sendDTO dto.SendMessageDTO
	err := c.ShouldBind(&sendDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	messageDTO, err := s.messageSvc.PostMessage(c.Request.Context(), userID, &sendDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, messageDTO)
}

func (s *MessageHandler) EditMessage(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var editDTO dto.EditMessageDTO
	err := c.ShouldBind(&editDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	messageDTO, err := s.messageSvc.EditMessage(c.Request.Context(), userID, &editDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, messageDTO)
}

// DetachMessage 将消息从房间摘除，消息本身保留
func (s *MessageHandler) DetachMessage(c *gin.Context) {
	userID := c.GetUint64("user_id")
	messageDTO, err := s.messageSvc.DetachMessage(c.Request.Context(), userID, c.Param("message_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, messageDTO)
}

func (s *MessageHandler) ListMessages(c *gin.Context) {
	page, limit, err := parsePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pageDTO, err := s.messageSvc.ListMessages(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageDTO)
}

func (s *MessageHandler) ListMyMessages(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, limit, err := parsePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	messages, err := s.messageSvc.ListMyMessages(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

// ListRoomMessages 房间内消息分页，读取同时推进调用者的已读检查点
func (s *MessageHandler) ListRoomMessages(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, limit, err := parsePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	messages, err := s.messageSvc.ListRoomMessages(c.Request.Context(), userID, c.Param("room_id"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}
