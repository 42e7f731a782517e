package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserUsernameExist = errors.New("用户名已存在")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrRoomNotFound      = errors.New("房间不存在")
	ErrRoomNameInvalid   = errors.New("房间名称为空或超过长度限制")
	ErrAlreadyInRoom     = errors.New("已是房间成员")
	ErrMessageNotFound   = errors.New("消息不存在")
	ErrContentInvalid    = errors.New("消息内容为空或超过长度限制")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserUsernameExist: BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrRoomNotFound:      NotFound,
	ErrRoomNameInvalid:   BadRequest,
	ErrAlreadyInRoom:     BadRequest,
	ErrMessageNotFound:   NotFound,
	ErrContentInvalid:    BadRequest,
	ErrFileNotSupported:  BadRequest,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
