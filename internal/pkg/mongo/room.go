package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room 房间文档
type Room struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Users             []RoomUser         `bson:"users" json:"users"`                                               // 成员列表，userId 唯一
	LastMessageSentAt *time.Time         `bson:"last_message_sent_at,omitempty" json:"lastMessageSentAt"`          // 最近一条消息的创建时间，单调不减
	HasNewContent     bool               `bson:"has_new_content" json:"hasNewContent"`                             // 新内容提示标记
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// RoomUser 房间内的成员条目，记录其阅读检查点
type RoomUser struct {
	ID         uint64     `bson:"id" json:"id"`                               // 用户 ID，关联 MySQL 的用户表
	LastSeenAt *time.Time `bson:"last_seen_at,omitempty" json:"lastSeenAt"`   // 阅读检查点，未读取过时为空
}

// Member 返回指定用户的成员条目，非成员时返回 nil
func (r *Room) Member(userID uint64) *RoomUser {
	for i := range r.Users {
		if r.Users[i].ID == userID {
			return &r.Users[i]
		}
	}
	return nil
}
