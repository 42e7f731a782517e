package service

import (
	"Parlor/internal/api/dto"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type chatFixture struct {
	roomRepo    *fakeRoomRepo
	messageRepo *fakeMessageRepo
	roomSvc     RoomService
	messageSvc  MessageService
	roomID      string
}

// newChatFixture 建一个房间，用户 1 为创建者，用户 2 为成员
func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	ctx := context.Background()

	roomRepo := newFakeRoomRepo()
	messageRepo := newFakeMessageRepo()
	roomSvc := NewRoomService(roomRepo)
	messageSvc := NewMessageService(messageRepo, roomRepo)

	room, err := roomSvc.CreateRoom(ctx, 1, &dto.CreateRoomDTO{Name: "general"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if _, err = roomSvc.Connect(ctx, room.ID, 2); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	return &chatFixture{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		roomSvc:     roomSvc,
		messageSvc:  messageSvc,
		roomID:      room.ID,
	}
}

func (f *chatFixture) post(t *testing.T, authorID uint64, content string) *dto.MessageDTO {
	t.Helper()
	msg, err := f.messageSvc.PostMessage(context.Background(), authorID, &dto.SendMessageDTO{
		Content: content,
		Room:    f.roomID,
	})
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	return msg
}

func TestPostMessage(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	msg := f.post(t, 1, "  hello  ")
	if msg.Content != "hello" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hello")
	}
	if msg.RoomID == nil || *msg.RoomID != f.roomID {
		t.Errorf("roomId = %v, want %s", msg.RoomID, f.roomID)
	}

	roomID, _ := primitive.ObjectIDFromHex(f.roomID)
	stored := f.roomRepo.find(roomID)
	if stored.LastMessageSentAt == nil || !stored.LastMessageSentAt.Equal(msg.CreatedAt) {
		t.Errorf("last_message_sent_at = %v, want %v", stored.LastMessageSentAt, msg.CreatedAt)
	}

	// 非成员
	_, err := f.messageSvc.PostMessage(ctx, 99, &dto.SendMessageDTO{Content: "hi", Room: f.roomID})
	if !errors.Is(err, UnauthorizedError) {
		t.Errorf("non-member post err = %v, want UnauthorizedError", err)
	}

	// 不存在的房间
	_, err = f.messageSvc.PostMessage(ctx, 1, &dto.SendMessageDTO{Content: "hi", Room: primitive.NewObjectID().Hex()})
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("missing room err = %v, want ErrRoomNotFound", err)
	}
}

func TestPostMessageContentRules(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	for _, content := range []string{"", "   ", strings.Repeat("a", 2001)} {
		_, err := f.messageSvc.PostMessage(ctx, 1, &dto.SendMessageDTO{Content: content, Room: f.roomID})
		if !errors.Is(err, ErrContentInvalid) {
			t.Errorf("PostMessage(%d chars) err = %v, want ErrContentInvalid", len(content), err)
		}
	}

	msg := f.post(t, 1, "<b>hi</b>")
	if msg.Content != "&lt;b&gt;hi&lt;/b&gt;" {
		t.Errorf("content = %q, want HTML-escaped", msg.Content)
	}
}

func TestListRoomMessagesReadTracking(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	f.post(t, 1, "first")
	f.post(t, 1, "second")

	// 用户 2 从未读过该房间
	messages, err := f.messageSvc.ListRoomMessages(ctx, 2, f.roomID, 1, 10)
	if err != nil {
		t.Fatalf("ListRoomMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}
	for _, m := range messages {
		if !m.IsUnseen {
			t.Errorf("message %q must be unseen on first read", m.Content)
		}
	}

	// 落盘的标记与检查点推进
	roomID, _ := primitive.ObjectIDFromHex(f.roomID)
	member := f.roomRepo.find(roomID).Member(2)
	if member.LastSeenAt == nil {
		t.Fatal("read checkpoint not advanced")
	}

	// 第二次读取应全部已读
	messages, err = f.messageSvc.ListRoomMessages(ctx, 2, f.roomID, 1, 10)
	if err != nil {
		t.Fatalf("ListRoomMessages: %v", err)
	}
	for _, m := range messages {
		if m.IsUnseen {
			t.Errorf("message %q must be seen on second read", m.Content)
		}
	}

	// 新消息再次变为未读，旧消息保持已读
	f.post(t, 1, "third")
	messages, err = f.messageSvc.ListRoomMessages(ctx, 2, f.roomID, 1, 10)
	if err != nil {
		t.Fatalf("ListRoomMessages: %v", err)
	}
	if !messages[0].IsUnseen {
		t.Error("newest message must be unseen")
	}
	for _, m := range messages[1:] {
		if m.IsUnseen {
			t.Errorf("message %q must stay seen", m.Content)
		}
	}
}

func TestListRoomMessagesMemberOnly(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	if _, err := f.messageSvc.ListRoomMessages(ctx, 99, f.roomID, 1, 10); !errors.Is(err, UnauthorizedError) {
		t.Errorf("non-member err = %v, want UnauthorizedError", err)
	}
	if _, err := f.messageSvc.ListRoomMessages(ctx, 1, primitive.NewObjectID().Hex(), 1, 10); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("missing room err = %v, want ErrRoomNotFound", err)
	}
}

func TestListRoomMessagesPagination(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 12; i++ {
		msg := f.post(t, 1, fmt.Sprintf("msg-%02d", i))
		// 拉开创建时间，保证稳定的新到旧排序
		id, _ := primitive.ObjectIDFromHex(msg.ID)
		f.messageRepo.find(id).CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	// 第二页：第 6 到第 10 新
	messages, err := f.messageSvc.ListRoomMessages(ctx, 1, f.roomID, 2, 5)
	if err != nil {
		t.Fatalf("ListRoomMessages: %v", err)
	}
	want := []string{"msg-07", "msg-06", "msg-05", "msg-04", "msg-03"}
	if len(messages) != len(want) {
		t.Fatalf("messages = %d, want %d", len(messages), len(want))
	}
	for i, m := range messages {
		if m.Content != want[i] {
			t.Errorf("messages[%d] = %q, want %q", i, m.Content, want[i])
		}
	}

	// 超出范围读空
	messages, err = f.messageSvc.ListRoomMessages(ctx, 1, f.roomID, 4, 5)
	if err != nil {
		t.Fatalf("ListRoomMessages: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("out-of-range page = %d messages, want 0", len(messages))
	}
}

func TestListMessages(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		f.post(t, 1, "hello")
	}

	page, err := f.messageSvc.ListMessages(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if page.Page != 1 || page.Limit != 5 {
		t.Errorf("page meta = (%d, %d), want (1, 5)", page.Page, page.Limit)
	}
	if page.Total != 7 {
		t.Errorf("total = %d, want 7", page.Total)
	}
	if len(page.Messages) != 5 {
		t.Errorf("messages = %d, want 5", len(page.Messages))
	}
}

func TestListMyMessages(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	f.post(t, 1, "mine")
	f.post(t, 2, "theirs")

	messages, err := f.messageSvc.ListMyMessages(ctx, 1, 1, 10)
	if err != nil {
		t.Fatalf("ListMyMessages: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "mine" {
		t.Errorf("messages = %+v, want only the caller's", messages)
	}
}

func TestEditMessage(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	msg := f.post(t, 1, "before")

	// 非作者
	_, err := f.messageSvc.EditMessage(ctx, 2, &dto.EditMessageDTO{Message: msg.ID, Content: "hacked"})
	if !errors.Is(err, UnauthorizedError) {
		t.Errorf("non-author edit err = %v, want UnauthorizedError", err)
	}

	updated, err := f.messageSvc.EditMessage(ctx, 1, &dto.EditMessageDTO{Message: msg.ID, Content: "after"})
	if err != nil {
		t.Fatalf("EditMessage: %v", err)
	}
	if updated.Content != "after" {
		t.Errorf("content = %q, want %q", updated.Content, "after")
	}
	if updated.AuthorID != msg.AuthorID || !updated.CreatedAt.Equal(msg.CreatedAt) {
		t.Error("author and creation time must not change on edit")
	}
	if updated.RoomID == nil || *updated.RoomID != *msg.RoomID {
		t.Error("room binding must not change on edit")
	}

	_, err = f.messageSvc.EditMessage(ctx, 1, &dto.EditMessageDTO{Message: primitive.NewObjectID().Hex(), Content: "x"})
	if !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("missing message err = %v, want ErrMessageNotFound", err)
	}
}

func TestDetachMessage(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	msg := f.post(t, 1, "to-detach")

	// 非作者
	if _, err := f.messageSvc.DetachMessage(ctx, 2, msg.ID); !errors.Is(err, UnauthorizedError) {
		t.Errorf("non-author detach err = %v, want UnauthorizedError", err)
	}

	detached, err := f.messageSvc.DetachMessage(ctx, 1, msg.ID)
	if err != nil {
		t.Fatalf("DetachMessage: %v", err)
	}
	if detached.RoomID != nil {
		t.Errorf("roomId = %v, want nil after detach", detached.RoomID)
	}

	// 消息本身保留
	id, _ := primitive.ObjectIDFromHex(msg.ID)
	if f.messageRepo.find(id) == nil {
		t.Fatal("detached message must still exist")
	}

	// 不再出现在房间列表里
	messages, err := f.messageSvc.ListRoomMessages(ctx, 1, f.roomID, 1, 10)
	if err != nil {
		t.Fatalf("ListRoomMessages: %v", err)
	}
	for _, m := range messages {
		if m.ID == msg.ID {
			t.Error("detached message must not be listed in the room")
		}
	}
}
