package consts

const (
	UserInfoKey     = "user:info:"
	RoomDirtyKey    = "room:metric:dirty"
	TokenRevokedKey = "token:revoked:"
)
