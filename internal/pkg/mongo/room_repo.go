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

type RoomRepo interface {
	CreateRoom(ctx context.Context, room *Room) error
	GetRoomByID(ctx context.Context, id primitive.ObjectID) (*Room, error)
	ListRooms(ctx context.Context, skip, limit int64) ([]*Room, error)
	ListRoomsByMember(ctx context.Context, userID uint64, skip, limit int64) ([]*Room, error)
	AddMember(ctx context.Context, roomID primitive.ObjectID, userID uint64) (bool, error)
	RemoveMember(ctx context.Context, roomID primitive.ObjectID, userID uint64) (bool, error)
	DeleteIfEmpty(ctx context.Context, roomID primitive.ObjectID) (bool, error)
	MarkVisited(ctx context.Context, roomID primitive.ObjectID, userID uint64, at time.Time) error
	SetHasNewContent(ctx context.Context, roomID primitive.ObjectID, hasNew bool) error
	SetLastMessageSentAt(ctx context.Context, roomID primitive.ObjectID, at time.Time) error
}

type roomRepoImpl struct {
	col *mongo.Collection
}

func NewRoomRepo(db *mongo.Database) RoomRepo {
	return &roomRepoImpl{
		col: db.Collection("rooms"),
	}
}

// roomSort 按最近更新倒序，平局按插入顺序
var roomSort = bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}

func (s *roomRepoImpl) CreateRoom(ctx context.Context, room *Room) error {
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, room)
	if err != nil {
		return err
	}
	room.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *roomRepoImpl) GetRoomByID(ctx context.Context, id primitive.ObjectID) (*Room, error) {
	var room Room
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (s *roomRepoImpl) ListRooms(ctx context.Context, skip, limit int64) ([]*Room, error) {
	return s.find(ctx, bson.M{}, skip, limit)
}

func (s *roomRepoImpl) ListRoomsByMember(ctx context.Context, userID uint64, skip, limit int64) ([]*Room, error) {
	return s.find(ctx, bson.M{"users.id": userID}, skip, limit)
}

func (s *roomRepoImpl) find(ctx context.Context, filter bson.M, skip, limit int64) ([]*Room, error) {
	findOptions := options.Find().
		SetSort(roomSort).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rooms []*Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// AddMember 条件更新：仅当用户尚不在成员列表时追加，避免并发下的重复加入
func (s *roomRepoImpl) AddMember(ctx context.Context, roomID primitive.ObjectID, userID uint64) (bool, error) {
	filter := bson.M{
		"_id":      roomID,
		"users.id": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push":        bson.M{"users": RoomUser{ID: userID}},
		"$currentDate": bson.M{"updated_at": true},
	}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveMember 条件更新：仅当用户在成员列表时摘除
func (s *roomRepoImpl) RemoveMember(ctx context.Context, roomID primitive.ObjectID, userID uint64) (bool, error) {
	filter := bson.M{
		"_id":      roomID,
		"users.id": userID,
	}
	update := bson.M{
		"$pull":        bson.M{"users": bson.M{"id": userID}},
		"$currentDate": bson.M{"updated_at": true},
	}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// DeleteIfEmpty 仅当成员列表为空时删除房间，保证"零成员房间不存在"的约束
func (s *roomRepoImpl) DeleteIfEmpty(ctx context.Context, roomID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":   roomID,
		"users": bson.M{"$size": 0},
	}

	res, err := s.col.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// MarkVisited 推进成员的阅读检查点并清除房间的新内容标记
func (s *roomRepoImpl) MarkVisited(ctx context.Context, roomID primitive.ObjectID, userID uint64, at time.Time) error {
	filter := bson.M{
		"_id":      roomID,
		"users.id": userID,
	}
	update := bson.M{
		"$set": bson.M{
			"users.$.last_seen_at": at,
			"has_new_content":      false,
		},
	}

	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

func (s *roomRepoImpl) SetHasNewContent(ctx context.Context, roomID primitive.ObjectID, hasNew bool) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$set": bson.M{"has_new_content": hasNew}},
	)
	return err
}

func (s *roomRepoImpl) SetLastMessageSentAt(ctx context.Context, roomID primitive.ObjectID, at time.Time) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$set":         bson.M{"last_message_sent_at": at},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	return err
}
