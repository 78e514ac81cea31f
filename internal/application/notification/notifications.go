package notification

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/notification"
)

// NotificationUseCase 站内通知用例
// 查未读、计数、一键已读，围绕当前登录用户
type NotificationUseCase struct {
	notificationService notification.Service
}

// NewNotificationUseCase 创建通知用例
func NewNotificationUseCase(notificationService notification.Service) *NotificationUseCase {
	return &NotificationUseCase{notificationService: notificationService}
}

// NotificationResponse 通知响应DTO
type NotificationResponse struct {
	ID        uint   `json:"id"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// ListUnread 未读通知列表
func (uc *NotificationUseCase) ListUnread(ctx context.Context, userID uint) ([]NotificationResponse, error) {
	items, err := uc.notificationService.ListUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := make([]NotificationResponse, len(items))
	for i, n := range items {
		list[i] = NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Category:  n.Category,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return list, nil
}

// CountUnread 未读通知数(客户端角标用)
func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return uc.notificationService.CountUnread(ctx, userID)
}

// MarkAllRead 全部标记已读，返回本次标记的条数
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return uc.notificationService.MarkAllRead(ctx, userID)
}
