package consts

const (
	MimePrefixImage = "image"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	// RoomNameMaxLen 房间名称长度上限
	RoomNameMaxLen = 50
	// MessageMaxLen 消息内容长度上限
	MessageMaxLen = 2000
	// DefaultPageSize 列表接口默认分页大小
	DefaultPageSize = 5
	// MaxPageSize 列表接口分页大小上限
	MaxPageSize = 100
)
