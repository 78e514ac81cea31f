package user

import (
	"time"
)

// RequestKind 馆员工单类型
type RequestKind string

const (
	RequestReservation RequestKind = "reservation" // 预约相关
	RequestWaitlist    RequestKind = "waitlist"    // 排队相关
	RequestReturn      RequestKind = "return"      // 归还相关
	RequestOther       RequestKind = "other"       // 其他
)

// Valid 校验工单类型取值
func (k RequestKind) Valid() bool {
	switch k {
	case RequestReservation, RequestWaitlist, RequestReturn, RequestOther:
		return true
	}
	return false
}

// RequestPriority 工单优先级
type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityNormal RequestPriority = "normal"
	PriorityHigh   RequestPriority = "high"
)

// Valid 校验优先级取值
func (p RequestPriority) Valid() bool {
	return p == PriorityLow || p == PriorityNormal || p == PriorityHigh
}

// RequestStatus 工单状态
// 流转:open→in_progress→resolved→closed，只允许向前推进
type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestResolved   RequestStatus = "resolved"
	RequestClosed     RequestStatus = "closed"
)

// rank 状态在流转链上的序号
func (s RequestStatus) rank() int {
	switch s {
	case RequestOpen:
		return 0
	case RequestInProgress:
		return 1
	case RequestResolved:
		return 2
	case RequestClosed:
		return 3
	}
	return -1
}

// LibrarianRequest 馆员工单
// 读者向馆员发起的请求(预约协助、排队咨询等)，状态变更会通知发起人
type LibrarianRequest struct {
	ID        uint
	UserID    uint // 发起人
	Kind      RequestKind
	Priority  RequestPriority
	Subject   string
	Body      string
	Status    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLibrarianRequest 创建工单(工厂方法)
func NewLibrarianRequest(userID uint, kind RequestKind, priority RequestPriority, subject, body string) *LibrarianRequest {
	now := time.Now()
	return &LibrarianRequest{
		UserID:    userID,
		Kind:      kind,
		Priority:  priority,
		Subject:   subject,
		Body:      body,
		Status:    RequestOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MoveTo 推进工单状态(只允许沿open→in_progress→resolved→closed向前)
func (r *LibrarianRequest) MoveTo(target RequestStatus) error {
	if target.rank() <= r.Status.rank() || target.rank() < 0 {
		return ErrInvalidRequestStatus
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	return nil
}
