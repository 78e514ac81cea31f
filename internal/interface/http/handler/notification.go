package handler

import (
	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/biblioteca/internal/application/notification"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// NotificationHandler 站内通知HTTP处理器
type NotificationHandler struct {
	notificationUseCase *appnotification.NotificationUseCase
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(notificationUseCase *appnotification.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase}
}

// ListUnread 未读通知
// @Summary      未读通知列表
// @Tags         通知
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/notifications [get]
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	result, err := h.notificationUseCase.ListUnread(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CountUnread 未读通知数
// @Summary      未读通知数
// @Tags         通知
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/notifications/count [get]
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	count, err := h.notificationUseCase.CountUnread(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkAllRead 全部标记已读
// @Summary      全部标记已读
// @Tags         通知
// @Success      200 {object} response.Response "操作成功"
// @Router       /api/v1/notifications/read [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	marked, err := h.notificationUseCase.MarkAllRead(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"marked": marked})
}
