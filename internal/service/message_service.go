package service

import (
	"Parlor/internal/api/dto"
	"Parlor/internal/pkg/consts"
	"Parlor/internal/pkg/mongo"
	"Parlor/internal/pkg/redis"
	"Parlor/internal/pkg/util"
	"context"
	log "log/slog"
	"time"
)

// MessageService 消息生命周期与列表服务接口定义
type MessageService interface {
	PostMessage(ctx context.Context, authorID uint64, req *dto.SendMessageDTO) (*dto.MessageDTO, error)
	EditMessage(ctx context.Context, callerID uint64, req *dto.EditMessageDTO) (*dto.MessageDTO, error)
	DetachMessage(ctx context.Context, callerID uint64, messageID string) (*dto.MessageDTO, error)
	ListMessages(ctx context.Context, page, limit int) (*dto.MessagePageDTO, error)
	ListMyMessages(ctx context.Context, userID uint64, page, limit int) ([]*dto.MessageDTO, error)
	ListRoomMessages(ctx context.Context, userID uint64, roomID string, page, limit int) ([]*dto.MessageDTO, error)
}

type messageServiceImpl struct {
	messageRepo mongo.MessageRepo
	roomRepo    mongo.RoomRepo
}

func NewMessageService(messageRepo mongo.MessageRepo, roomRepo mongo.RoomRepo) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
	}
}

// PostMessage 在房间内发送消息。要求调用者是房间成员；
// 成功后推进房间的 last_message_sent_at
func (s *messageServiceImpl) PostMessage(ctx context.Context, authorID uint64, req *dto.SendMessageDTO) (*dto.MessageDTO, error) {
	roomID, err := parseObjectID(req.Room)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.Member(authorID) == nil {
		return nil, UnauthorizedError
	}

	content := util.SanitizeText(req.Content)
	if !util.ValidMessageContent(content) {
		return nil, ErrContentInvalid
	}

	msg := &mongo.Message{
		Content:  content,
		AuthorID: authorID,
		RoomID:   &roomID,
	}
	if err := s.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.roomRepo.SetLastMessageSentAt(ctx, roomID, msg.CreatedAt); err != nil {
		log.WarnContext(ctx, "Failed to advance last_message_sent_at", "room", roomID.Hex(), "err", err)
	}

	s.markRoomDirty(ctx, roomID.Hex())

	return toMessageDTO(msg), nil
}

// EditMessage 仅作者可修改内容；作者、所属房间与创建时间不变
func (s *messageServiceImpl) EditMessage(ctx context.Context, callerID uint64, req *dto.EditMessageDTO) (*dto.MessageDTO, error) {
	id, err := parseObjectID(req.Message)
	if err != nil {
		return nil, err
	}

	msg, err := s.messageRepo.GetMessageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.AuthorID != callerID {
		return nil, UnauthorizedError
	}

	content := util.SanitizeText(req.Content)
	if !util.ValidMessageContent(content) {
		return nil, ErrContentInvalid
	}

	updated, err := s.messageRepo.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrMessageNotFound
	}
	return toMessageDTO(updated), nil
}

// DetachMessage 仅作者可将消息从房间摘除；
// 消息本身保留，按 ID 仍可读取，但不再出现在房间列表中
func (s *messageServiceImpl) DetachMessage(ctx context.Context, callerID uint64, messageID string) (*dto.MessageDTO, error) {
	id, err := parseObjectID(messageID)
	if err != nil {
		return nil, err
	}

	msg, err := s.messageRepo.GetMessageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.AuthorID != callerID {
		return nil, UnauthorizedError
	}

	detached, err := s.messageRepo.DetachRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if detached == nil {
		return nil, ErrMessageNotFound
	}
	return toMessageDTO(detached), nil
}

// ListMessages 全局消息分页，不过滤房间与成员关系
func (s *messageServiceImpl) ListMessages(ctx context.Context, page, limit int) (*dto.MessagePageDTO, error) {
	page, limit = util.NormalizePage(page, limit)
	skip, lim := util.PageWindow(page, limit)

	messages, err := s.messageRepo.ListMessages(ctx, skip, lim)
	if err != nil {
		return nil, err
	}
	total, err := s.messageRepo.CountMessages(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.MessagePageDTO{
		Messages: toMessageDTOs(messages),
		Limit:    limit,
		Page:     page,
		Total:    total,
	}, nil
}

// ListMyMessages 调用者本人发出的消息
func (s *messageServiceImpl) ListMyMessages(ctx context.Context, userID uint64, page, limit int) ([]*dto.MessageDTO, error) {
	skip, lim := util.PageWindow(page, limit)
	messages, err := s.messageRepo.ListMessagesByAuthor(ctx, userID, skip, lim)
	if err != nil {
		return nil, err
	}
	return toMessageDTOs(messages), nil
}

// ListRoomMessages 房间消息分页，仅成员可见。
// 对返回的每条消息, 以调用前的检查点计算并落盘 is_unseen，
// 随后推进检查点到当前时间并清除房间的新内容标记
func (s *messageServiceImpl) ListRoomMessages(ctx context.Context, userID uint64, roomID string, page, limit int) ([]*dto.MessageDTO, error) {
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
	member := room.Member(userID)
	if member == nil {
		return nil, UnauthorizedError
	}

	skip, lim := util.PageWindow(page, limit)
	messages, err := s.messageRepo.ListMessagesByRoom(ctx, id, skip, lim)
	if err != nil {
		return nil, err
	}

	for _, msg := range messages {
		unseen := member.LastSeenAt == nil || msg.CreatedAt.After(*member.LastSeenAt)
		if unseen != msg.IsUnseen {
			if err := s.messageRepo.SetUnseen(ctx, msg.ID, unseen); err != nil {
				log.WarnContext(ctx, "Failed to persist is_unseen", "message", msg.ID.Hex(), "err", err)
			}
		}
		msg.IsUnseen = unseen
	}

	if err := s.roomRepo.MarkVisited(ctx, id, userID, time.Now()); err != nil {
		log.WarnContext(ctx, "Failed to advance read checkpoint", "room", id.Hex(), "user", userID, "err", err)
	}

	return toMessageDTOs(messages), nil
}

// markRoomDirty 将房间标记进统计任务的待处理集合，尽力而为
func (s *messageServiceImpl) markRoomDirty(ctx context.Context, roomID string) {
	if redis.Rdb == nil {
		return
	}
	if err := redis.SAdd(ctx, consts.RoomDirtyKey, roomID); err != nil {
		log.WarnContext(ctx, "Failed to mark room dirty", "room", roomID, "err", err)
	}
}

func toMessageDTO(msg *mongo.Message) *dto.MessageDTO {
	var roomID *string
	if msg.RoomID != nil {
		hex := msg.RoomID.Hex()
		roomID = &hex
	}
	return &dto.MessageDTO{
		ID:        msg.ID.Hex(),
		Content:   msg.Content,
		AuthorID:  msg.AuthorID,
		RoomID:    roomID,
		IsUnseen:  msg.IsUnseen,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func toMessageDTOs(messages []*mongo.Message) []*dto.MessageDTO {
	res := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageDTO(m))
	}
	return res
}
