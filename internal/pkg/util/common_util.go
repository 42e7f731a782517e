package util

import (
	"Parlor/internal/pkg/consts"
	"html"
	"strings"
	"unicode/utf8"
)

// SanitizeText 去除首尾空白并转义 HTML 特殊字符
func SanitizeText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// ValidRoomName 校验清洗后的房间名长度
func ValidRoomName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= consts.RoomNameMaxLen
}

// ValidMessageContent 校验清洗后的消息内容长度
func ValidMessageContent(content string) bool {
	return content != "" && utf8.RuneCountInString(content) <= consts.MessageMaxLen
}
