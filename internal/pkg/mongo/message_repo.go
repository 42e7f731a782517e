package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepo interface {
	CreateMessage(ctx context.Context, msg *Message) error
	GetMessageByID(ctx context.Context, id primitive.ObjectID) (*Message, error)
	ListMessages(ctx context.Context, skip, limit int64) ([]*Message, error)
	CountMessages(ctx context.Context) (int64, error)
	ListMessagesByAuthor(ctx context.Context, authorID uint64, skip, limit int64) ([]*Message, error)
	ListMessagesByRoom(ctx context.Context, roomID primitive.ObjectID, skip, limit int64) ([]*Message, error)
	CountMessagesByRoomBetween(ctx context.Context, roomID primitive.ObjectID, from, to time.Time) (int64, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*Message, error)
	DetachRoom(ctx context.Context, id primitive.ObjectID) (*Message, error)
	SetUnseen(ctx context.Context, id primitive.ObjectID, unseen bool) error
}

type messageRepoImpl struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepoImpl{
		col: db.Collection("messages"),
	}
}

// messageSort 按创建时间倒序，最新的在前
var messageSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (s *messageRepoImpl) CreateMessage(ctx context.Context, msg *Message) error {
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *messageRepoImpl) GetMessageByID(ctx context.Context, id primitive.ObjectID) (*Message, error) {
	var msg Message
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (s *messageRepoImpl) ListMessages(ctx context.Context, skip, limit int64) ([]*Message, error) {
	return s.find(ctx, bson.M{}, skip, limit)
}

func (s *messageRepoImpl) CountMessages(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

func (s *messageRepoImpl) ListMessagesByAuthor(ctx context.Context, authorID uint64, skip, limit int64) ([]*Message, error) {
	return s.find(ctx, bson.M{"author_id": authorID}, skip, limit)
}

func (s *messageRepoImpl) ListMessagesByRoom(ctx context.Context, roomID primitive.ObjectID, skip, limit int64) ([]*Message, error) {
	return s.find(ctx, bson.M{"room_id": roomID}, skip, limit)
}

func (s *messageRepoImpl) CountMessagesByRoomBetween(ctx context.Context, roomID primitive.ObjectID, from, to time.Time) (int64, error) {
	filter := bson.M{
		"room_id":    roomID,
		"created_at": bson.M{"$gte": from, "$lt": to},
	}
	return s.col.CountDocuments(ctx, filter)
}

func (s *messageRepoImpl) find(ctx context.Context, filter bson.M, skip, limit int64) ([]*Message, error) {
	findOptions := options.Find().
		SetSort(messageSort).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// UpdateContent 仅替换消息内容，作者、所属房间与创建时间保持不变
func (s *messageRepoImpl) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*Message, error) {
	update := bson.M{
		"$set":         bson.M{"content": content},
		"$currentDate": bson.M{"updated_at": true},
	}
	return s.findOneAndUpdate(ctx, id, update)
}

// DetachRoom 将消息从房间摘除（逻辑删除），消息本身仍可按 ID 读取
func (s *messageRepoImpl) DetachRoom(ctx context.Context, id primitive.ObjectID) (*Message, error) {
	update := bson.M{
		"$unset":       bson.M{"room_id": ""},
		"$currentDate": bson.M{"updated_at": true},
	}
	return s.findOneAndUpdate(ctx, id, update)
}

func (s *messageRepoImpl) SetUnseen(ctx context.Context, id primitive.ObjectID, unseen bool) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_unseen": unseen}},
	)
	return err
}

func (s *messageRepoImpl) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*Message, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var msg Message
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
