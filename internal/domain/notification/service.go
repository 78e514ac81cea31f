package notification

import (
	"context"
)

// Service 通知领域服务接口
type Service interface {
	// Notify 给用户追加一条通知，category为空时默认general
	Notify(ctx context.Context, userID uint, message, category string) error

	// ListUnread 用户的未读通知列表
	ListUnread(ctx context.Context, userID uint) ([]*Notification, error)

	// CountUnread 未读数量(角标)
	CountUnread(ctx context.Context, userID uint) (int64, error)

	// MarkAllRead 全部标记已读，返回影响条数
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建通知领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID uint, message, category string) error {
	if message == "" {
		return nil
	}
	return s.repo.Create(ctx, NewWithCategory(userID, message, category))
}

func (s *service) ListUnread(ctx context.Context, userID uint) ([]*Notification, error) {
	return s.repo.ListUnreadByUser(ctx, userID)
}

func (s *service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
