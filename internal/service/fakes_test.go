package service

import (
	"Parlor/internal/pkg/mongo"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRoomRepo 基于内存切片复刻房间仓储的条件更新语义
type fakeRoomRepo struct {
	rooms []*mongo.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{}
}

func (f *fakeRoomRepo) CreateRoom(_ context.Context, room *mongo.Room) error {
	now := time.Now()
	room.ID = primitive.NewObjectID()
	room.CreatedAt = now
	room.UpdatedAt = now
	f.rooms = append(f.rooms, room)
	return nil
}

func (f *fakeRoomRepo) GetRoomByID(_ context.Context, id primitive.ObjectID) (*mongo.Room, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			cp := *r
			cp.Users = append([]mongo.RoomUser(nil), r.Users...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) ListRooms(_ context.Context, skip, limit int64) ([]*mongo.Room, error) {
	return window(f.sorted(), skip, limit), nil
}

func (f *fakeRoomRepo) ListRoomsByMember(_ context.Context, userID uint64, skip, limit int64) ([]*mongo.Room, error) {
	var mine []*mongo.Room
	for _, r := range f.sorted() {
		if r.Member(userID) != nil {
			mine = append(mine, r)
		}
	}
	return window(mine, skip, limit), nil
}

func (f *fakeRoomRepo) AddMember(_ context.Context, roomID primitive.ObjectID, userID uint64) (bool, error) {
	r := f.find(roomID)
	if r == nil || r.Member(userID) != nil {
		return false, nil
	}
	r.Users = append(r.Users, mongo.RoomUser{ID: userID})
	r.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeRoomRepo) RemoveMember(_ context.Context, roomID primitive.ObjectID, userID uint64) (bool, error) {
	r := f.find(roomID)
	if r == nil || r.Member(userID) == nil {
		return false, nil
	}
	users := r.Users[:0]
	for _, u := range r.Users {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	r.Users = users
	r.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeRoomRepo) DeleteIfEmpty(_ context.Context, roomID primitive.ObjectID) (bool, error) {
	for i, r := range f.rooms {
		if r.ID == roomID && len(r.Users) == 0 {
			f.rooms = append(f.rooms[:i], f.rooms[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoomRepo) MarkVisited(_ context.Context, roomID primitive.ObjectID, userID uint64, at time.Time) error {
	r := f.find(roomID)
	if r == nil {
		return nil
	}
	for i := range r.Users {
		if r.Users[i].ID == userID {
			t := at
			r.Users[i].LastSeenAt = &t
		}
	}
	r.HasNewContent = false
	return nil
}

func (f *fakeRoomRepo) SetHasNewContent(_ context.Context, roomID primitive.ObjectID, hasNew bool) error {
	if r := f.find(roomID); r != nil {
		r.HasNewContent = hasNew
	}
	return nil
}

func (f *fakeRoomRepo) SetLastMessageSentAt(_ context.Context, roomID primitive.ObjectID, at time.Time) error {
	if r := f.find(roomID); r != nil {
		t := at
		r.LastMessageSentAt = &t
		r.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeRoomRepo) find(id primitive.ObjectID) *mongo.Room {
	for _, r := range f.rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (f *fakeRoomRepo) sorted() []*mongo.Room {
	res := append([]*mongo.Room(nil), f.rooms...)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].UpdatedAt.After(res[j].UpdatedAt)
	})
	return res
}

// fakeMessageRepo 内存消息仓储
type fakeMessageRepo struct {
	messages []*mongo.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) CreateMessage(_ context.Context, msg *mongo.Message) error {
	now := time.Now()
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageRepo) GetMessageByID(_ context.Context, id primitive.ObjectID) (*mongo.Message, error) {
	if m := f.find(id); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMessageRepo) ListMessages(_ context.Context, skip, limit int64) ([]*mongo.Message, error) {
	return window(f.sorted(), skip, limit), nil
}

func (f *fakeMessageRepo) CountMessages(_ context.Context) (int64, error) {
	return int64(len(f.messages)), nil
}

func (f *fakeMessageRepo) ListMessagesByAuthor(_ context.Context, authorID uint64, skip, limit int64) ([]*mongo.Message, error) {
	var res []*mongo.Message
	for _, m := range f.sorted() {
		if m.AuthorID == authorID {
			res = append(res, m)
		}
	}
	return window(res, skip, limit), nil
}

func (f *fakeMessageRepo) ListMessagesByRoom(_ context.Context, roomID primitive.ObjectID, skip, limit int64) ([]*mongo.Message, error) {
	var res []*mongo.Message
	for _, m := range f.sorted() {
		if m.RoomID != nil && *m.RoomID == roomID {
			res = append(res, m)
		}
	}
	return window(res, skip, limit), nil
}

func (f *fakeMessageRepo) CountMessagesByRoomBetween(_ context.Context, roomID primitive.ObjectID, from, to time.Time) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.RoomID != nil && *m.RoomID == roomID &&
			!m.CreatedAt.Before(from) && m.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) UpdateContent(_ context.Context, id primitive.ObjectID, content string) (*mongo.Message, error) {
	m := f.find(id)
	if m == nil {
		return nil, nil
	}
	m.Content = content
	m.UpdatedAt = time.Now()
	cp := *m
	return &cp, nil
}

func (f *fakeMessageRepo) DetachRoom(_ context.Context, id primitive.ObjectID) (*mongo.Message, error) {
	m := f.find(id)
	if m == nil {
		return nil, nil
	}
	m.RoomID = nil
	m.UpdatedAt = time.Now()
	cp := *m
	return &cp, nil
}

func (f *fakeMessageRepo) SetUnseen(_ context.Context, id primitive.ObjectID, unseen bool) error {
	if m := f.find(id); m != nil {
		m.IsUnseen = unseen
	}
	return nil
}

func (f *fakeMessageRepo) find(id primitive.ObjectID) *mongo.Message {
	for _, m := range f.messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (f *fakeMessageRepo) sorted() []*mongo.Message {
	res := append([]*mongo.Message(nil), f.messages...)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}

func window[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return nil
	}
	items = items[skip:]
	if limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}
