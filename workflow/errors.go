package workflow

import "errors"

var (
	// ErrToolNotFound 扫码/ID 未命中任何工具
	ErrToolNotFound = errors.New("tool not found")
	// ErrInvalidTransition 工具已处于目标状态（或在维修中），拒绝动作
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrNoUser 调用方没带已认证用户
	ErrNoUser = errors.New("missing authenticated user")
)
