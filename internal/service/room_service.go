package service

import (
	"Parlor/internal/api/dto"
	"Parlor/internal/pkg/mongo"
	"Parlor/internal/pkg/util"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomService 房间与成员关系服务接口定义
type RoomService interface {
	CreateRoom(ctx context.Context, userID uint64, req *dto.CreateRoomDTO) (*dto.RoomDTO, error)
	GetRoom(ctx context.Context, roomID string) (*dto.RoomDTO, error)
	ListRooms(ctx context.Context, userID uint64, page, limit int) ([]*dto.RoomDTO, error)
	ListMyRooms(ctx context.Context, userID uint64, page, limit int) ([]*dto.RoomDTO, error)
	Connect(ctx context.Context, roomID string, userID uint64) (*dto.RoomDTO, error)
	Disconnect(ctx context.Context, roomID string, userID uint64) (*dto.DisconnectNoticeDTO, error)
}

type roomServiceImpl struct {
	roomRepo mongo.RoomRepo
}

func NewRoomService(roomRepo mongo.RoomRepo) RoomService {
	return &roomServiceImpl{roomRepo: roomRepo}
}

// CreateRoom 创建房间，创建者即唯一初始成员，其检查点为当前时间
func (s *roomServiceImpl) CreateRoom(ctx context.Context, userID uint64, req *dto.CreateRoomDTO) (*dto.RoomDTO, error) {
	name := util.SanitizeText(req.Name)
	if !util.ValidRoomName(name) {
		return nil, ErrRoomNameInvalid
	}

	now := time.Now()
	room := &mongo.Room{
		Name:  name,
		Users: []mongo.RoomUser{{ID: userID, LastSeenAt: &now}},
	}

	if err := s.roomRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return toRoomDTO(room), nil
}

// GetRoom 按 ID 查询房间，不做成员校验
func (s *roomServiceImpl) GetRoom(ctx context.Context, roomID string) (*dto.RoomDTO, error) {
	id, err := parseObjectID(roomID)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return toRoomDTO(room), nil
}

// ListRooms 按最近更新倒序分页列出全部房间。
// 副作用：调用者是成员且其检查点落后于房间最新消息时间时，
// 将 has_new_content 置位并尽力持久化
func (s *roomServiceImpl) ListRooms(ctx context.Context, userID uint64, page, limit int) ([]*dto.RoomDTO, error) {
	skip, lim := util.PageWindow(page, limit)
	rooms, err := s.roomRepo.ListRooms(ctx, skip, lim)
	if err != nil {
		return nil, err
	}
	return s.flagFreshness(ctx, rooms, userID), nil
}

// ListMyRooms 同 ListRooms，但仅包含调用者加入的房间
func (s *roomServiceImpl) ListMyRooms(ctx context.Context, userID uint64, page, limit int) ([]*dto.RoomDTO, error) {
	skip, lim := util.PageWindow(page, limit)
	rooms, err := s.roomRepo.ListRoomsByMember(ctx, userID, skip, lim)
	if err != nil {
		return nil, err
	}
	return s.flagFreshness(ctx, rooms, userID), nil
}

func (s *roomServiceImpl) flagFreshness(ctx context.Context, rooms []*mongo.Room, userID uint64) []*dto.RoomDTO {
	res := make([]*dto.RoomDTO, 0, len(rooms))
	for _, room := range rooms {
		member := room.Member(userID)
		if member != nil && checkpointBehind(member, room) && !room.HasNewContent {
			room.HasNewContent = true
			if err := s.roomRepo.SetHasNewContent(ctx, room.ID, true); err != nil {
				log.WarnContext(ctx, "Failed to persist has_new_content", "room", room.ID.Hex(), "err", err)
			}
		}
		res = append(res, toRoomDTO(room))
	}
	return res
}

// checkpointBehind 判断成员检查点是否早于房间最新消息时间；
// 从未读取过的成员视为落后于任何消息
func checkpointBehind(member *mongo.RoomUser, room *mongo.Room) bool {
	if room.LastMessageSentAt == nil {
		return false
	}
	return member.LastSeenAt == nil || member.LastSeenAt.Before(*room.LastMessageSentAt)
}

// Connect 将用户加入房间；重复加入视为冲突
func (s *roomServiceImpl) Connect(ctx context.Context, roomID string, userID uint64) (*dto.RoomDTO, error) {
	id, err := parseObjectID(roomID)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.Member(userID) != nil {
		return nil, ErrAlreadyInRoom
	}

	added, err := s.roomRepo.AddMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		// 条件更新未命中：并发下已有相同成员，或房间刚被删除
		return nil, ErrAlreadyInRoom
	}

	room, err = s.roomRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return toRoomDTO(room), nil
}

// Disconnect 将用户移出房间；最后一名成员退出时房间随之删除，
// 结果通过 Removed 显式区分
func (s *roomServiceImpl) Disconnect(ctx context.Context, roomID string, userID uint64) (*dto.DisconnectNoticeDTO, error) {
	id, err := parseObjectID(roomID)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.Member(userID) == nil {
		return nil, UnauthorizedError
	}

	removed, err := s.roomRepo.RemoveMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, UnauthorizedError
	}

	deleted, err := s.roomRepo.DeleteIfEmpty(ctx, id)
	if err != nil {
		log.WarnContext(ctx, "Failed to delete empty room", "room", id.Hex(), "err", err)
	}

	notice := &dto.DisconnectNoticeDTO{
		Removed: deleted,
		Message: fmt.Sprintf("user disconnected from the room : %s", room.Name),
	}
	if deleted {
		notice.Message = fmt.Sprintf(
			"user disconnected from the room : %s. there is no user in this room anymore, it has been removed.",
			room.Name,
		)
	}
	return notice, nil
}

func toRoomDTO(room *mongo.Room) *dto.RoomDTO {
	users := make([]dto.RoomUserDTO, 0, len(room.Users))
	for _, u := range room.Users {
		users = append(users, dto.RoomUserDTO{ID: u.ID, LastSeenAt: u.LastSeenAt})
	}
	return &dto.RoomDTO{
		ID:                room.ID.Hex(),
		Name:              room.Name,
		Users:             users,
		LastMessageSentAt: room.LastMessageSentAt,
		HasNewContent:     room.HasNewContent,
		CreatedAt:         room.CreatedAt,
		UpdatedAt:         room.UpdatedAt,
	}
}

// parseObjectID 解析十六进制文档 ID，非法时按参数错误处理
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrParamInvalid
	}
	return oid, nil
}
