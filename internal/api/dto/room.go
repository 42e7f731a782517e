package dto

import "time"

// CreateRoomDTO 创建房间请求体
type CreateRoomDTO struct {
	Name string `json:"name" binding:"required"`
}

// ConnectActionDTO 房间连接请求体，action 取 connect 或 disconnect
type ConnectActionDTO struct {
	Action string `json:"action" binding:"required,oneof=connect disconnect"`
}

// RoomUserDTO 房间成员条目
type RoomUserDTO struct {
	ID         uint64     `json:"id"`
	LastSeenAt *time.Time `json:"lastSeenAt"`
}

// RoomDTO 房间响应
type RoomDTO struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Users             []RoomUserDTO `json:"users"`
	LastMessageSentAt *time.Time    `json:"lastMessageSentAt"`
	HasNewContent     bool          `json:"hasNewContent"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// DisconnectNoticeDTO 退出房间的结果通知；房间因无人而被删除时 Removed 为 true
type DisconnectNoticeDTO struct {
	Removed bool   `json:"removed"`
	Message string `json:"message"`
}
