package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message 消息文档
type Message struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Content   string              `bson:"content" json:"content"`
	AuthorID  uint64              `bson:"author_id" json:"authorId"`
	RoomID    *primitive.ObjectID `bson:"room_id,omitempty" json:"roomId"` // 为空表示消息已从房间摘除
	IsUnseen  bool                `bson:"is_unseen" json:"isUnseen"`       // 最近一次拉取该消息的成员视角下的未读标记
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}
