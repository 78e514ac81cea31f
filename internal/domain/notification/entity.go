package notification

import (
	"time"
)

// 通知类别(展示时分组/图标用，不参与业务逻辑)
const (
	CategoryGeneral = "general" // 通用
	CategoryOrder   = "order"   // 订单相关
	CategoryLoan    = "loan"    // 借阅相关
	CategoryRequest = "request" // 工单相关
)

// Notification 站内通知实体
// 追加写入，只有"已读"一个可变标志，不支持删除
type Notification struct {
	ID        uint
	UserID    uint
	Message   string
	Category  string
	Read      bool
	CreatedAt time.Time
}

// New 创建一条未读通知(类别general)
func New(userID uint, message string) *Notification {
	return NewWithCategory(userID, message, CategoryGeneral)
}

// NewWithCategory 创建指定类别的未读通知
func NewWithCategory(userID uint, message, category string) *Notification {
	if category == "" {
		category = CategoryGeneral
	}
	return &Notification{
		UserID:    userID,
		Message:   message,
		Category:  category,
		Read:      false,
		CreatedAt: time.Now(),
	}
}
