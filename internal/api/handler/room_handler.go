package handler

import (
	"Parlor/internal/api/dto"
	"Parlor/internal/pkg/response"
	"Parlor/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomSvc   service.RoomService
	metricSvc service.RoomMetricService
}

func NewRoomHandler(roomSvc service.RoomService, metricSvc service.RoomMetricService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc, metricSvc: metricSvc}
}

// parsePageQuery 解析 page / limit 查询参数，非数字时报参数错误
func parsePageQuery(c *gin.Context) (int, int, error) {
	page := 0
	limit := 0
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, service.ErrParamInvalid
		}
		page = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, service.ErrParamInvalid
		}
		limit = v
	}
	return page, limit, nil
}

func (s *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var createDTO dto.CreateRoomDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	roomDTO, err := s.roomSvc.CreateRoom(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, roomDTO)
}

func (s *RoomHandler) GetRoom(c *gin.Context) {
	roomDTO, err := s.roomSvc.GetRoom(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, roomDTO)
}

func (s *RoomHandler) ListRooms(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, limit, err := parsePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rooms, err := s.roomSvc.ListRooms(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

func (s *RoomHandler) ListMyRooms(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, limit, err := parsePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rooms, err := s.roomSvc.ListMyRooms(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

// Connect 按 action 进入或退出房间
func (s *RoomHandler) Connect(c *gin.Context) {
	userID := c.GetUint64("user_id")
	roomID := c.Param("room_id")

	var actionDTO dto.ConnectActionDTO
	err := c.ShouldBind(&actionDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	if actionDTO.Action == "connect" {
		roomDTO, err := s.roomSvc.Connect(c.Request.Context(), roomID, userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, roomDTO)
		return
	}

	notice, err := s.roomSvc.Disconnect(c.Request.Context(), roomID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notice)
}

// GetRoomMetrics 最近 N 天的房间消息量统计，默认 7 天
func (s *RoomHandler) GetRoomMetrics(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		days = v
	}

	metrics, err := s.metricSvc.GetDailyMetrics(c.Request.Context(), c.Param("room_id"), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}
