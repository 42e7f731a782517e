package dto

import "time"

// SendMessageDTO 发送消息请求体
type SendMessageDTO struct {
	Content string `json:"content" binding:"required"`
	Room    string `json:"room" binding:"required"`
}

// EditMessageDTO 修改消息请求体
type EditMessageDTO struct {
	Message string `json:"message" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// MessageDTO 消息响应
type MessageDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  uint64    `json:"authorId"`
	RoomID    *string   `json:"roomId"`
	IsUnseen  bool      `json:"isUnseen"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessagePageDTO 全局消息分页响应
type MessagePageDTO struct {
	Messages []*MessageDTO `json:"message"`
	Limit    int           `json:"limit"`
	Page     int           `json:"page"`
	Total    int64         `json:"total"`
}
