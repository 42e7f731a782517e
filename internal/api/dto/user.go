package dto

import "time"

// RegisterDTO 注册请求体
type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=6,max=20"`
	Password string `json:"password" binding:"required,min=6,max=20"`
}

// CredentialDTO 登录请求体
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO 用户信息响应
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  *string   `json:"username"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
