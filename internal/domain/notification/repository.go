package notification

import (
	"context"
)

// Repository 通知仓储接口(依赖倒置原则)
type Repository interface {
	// Create 写入一条通知
	Create(ctx context.Context, n *Notification) error

	// ListUnreadByUser 用户的未读通知(按创建时间倒序)
	ListUnreadByUser(ctx context.Context, userID uint) ([]*Notification, error)

	// CountUnreadByUser 用户的未读通知数量
	CountUnreadByUser(ctx context.Context, userID uint) (int64, error)

	// MarkAllRead 将用户所有未读通知置为已读，返回影响条数
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}
