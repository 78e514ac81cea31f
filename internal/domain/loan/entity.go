package loan

import (
	"time"
)

// 借阅子系统采用"单册模型":
// 每个书目在借阅视角下只有一本可借副本，与书店的销售库存(inventory)互不相干。
// 一本书在任意时刻处于"可借"或"已借出"两个互斥集合之一(不可同时、不可都不在)。

// ReservationStatus 预约状态
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"    // 生效中
	ReservationCompleted ReservationStatus = "completed" // 已完成(取书/归还)
	ReservationExpired   ReservationStatus = "expired"   // 已过期
)

// ReservationTTL 预约有效期:自创建起7天
// 过期是数据属性，由读取方惰性检查(ExpireDue)，没有定时器在到期瞬间触发
const ReservationTTL = 7 * 24 * time.Hour

// Reservation 预约实体
// 不变量:同一(用户,图书)至多存在一条active预约；
// 创建预约的同时图书从可借集合转入已借出集合(复用可用性账本的状态转移)
type Reservation struct {
	ID        uint
	UserID    uint
	BookID    uint
	Status    ReservationStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewReservation 创建预约(工厂方法)
func NewReservation(userID, bookID uint) *Reservation {
	now := time.Now()
	return &Reservation{
		UserID:    userID,
		BookID:    bookID,
		Status:    ReservationActive,
		CreatedAt: now,
		ExpiresAt: now.Add(ReservationTTL),
	}
}

// IsExpired 判断预约在指定时刻是否已过期
func (r *Reservation) IsExpired(now time.Time) bool {
	return r.Status == ReservationActive && now.After(r.ExpiresAt)
}

// WaitlistStatus 等待队列条目状态
type WaitlistStatus string

const (
	WaitlistActive    WaitlistStatus = "active"    // 排队中
	WaitlistNotified  WaitlistStatus = "notified"  // 已晋升并通知
	WaitlistCompleted WaitlistStatus = "completed" // 已完成
)

// WaitlistEntry 等待队列条目
// 不变量:Position是该图书active条目中从1开始的稠密排名。
// 入队时取(当前active条目数+1)；条目离开active集合时同事务内重排，保持稠密
type WaitlistEntry struct {
	ID          uint
	UserID      uint
	BookID      uint
	Position    int
	Status      WaitlistStatus
	RequestedAt time.Time
}

// NewWaitlistEntry 创建等待队列条目
func NewWaitlistEntry(userID, bookID uint, position int) *WaitlistEntry {
	return &WaitlistEntry{
		UserID:      userID,
		BookID:      bookID,
		Position:    position,
		Status:      WaitlistActive,
		RequestedAt: time.Now(),
	}
}
