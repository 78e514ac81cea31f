package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/notification"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// notificationRepository 通知仓储实现(MySQL)
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create 写入一条通知
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := &NotificationModel{
		UserID:    n.UserID,
		Message:   n.Message,
		Category:  n.Category,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入通知失败")
	}
	n.ID = model.ID
	return nil
}

// ListUnreadByUser 用户的未读通知(按创建时间倒序)
func (r *notificationRepository) ListUnreadByUser(ctx context.Context, userID uint) ([]*notification.Notification, error) {
	var models []NotificationModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND `read` = ?", userID, false).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询通知失败")
	}

	items := make([]*notification.Notification, len(models))
	for i := range models {
		items[i] = &notification.Notification{
			ID:        models[i].ID,
			UserID:    models[i].UserID,
			Message:   models[i].Message,
			Category:  models[i].Category,
			Read:      models[i].Read,
			CreatedAt: models[i].CreatedAt,
		}
	}
	return items, nil
}

// CountUnreadByUser 用户的未读通知数量
func (r *notificationRepository) CountUnreadByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计未读通知失败")
	}
	return count, nil
}

// MarkAllRead 将用户所有未读通知置为已读
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := getDB(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "标记已读失败")
	}
	return result.RowsAffected, nil
}
