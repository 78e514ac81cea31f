package loan

import (
	"context"
	"time"
)

// Repository 借阅/预约仓储接口(依赖倒置原则)
// 设计说明:
// 1. 可用性账本用两张互斥的集合表实现(available/loaned各有唯一book_id)，
//    状态转移是"删一张、插另一张"，必须在事务内执行
// 2. 所有写方法都应在TxManager事务内调用；仓储从context提取事务DB
// 3. LockBook对图书行加排他锁，序列化同一本书上的并发转移(防止双借/双预约)
type Repository interface {
	// LockBook 悲观锁锁定图书行(SELECT FOR UPDATE)
	// 图书不存在时返回catalog.ErrBookNotFound
	LockBook(ctx context.Context, bookID uint) error

	// IsAvailable 图书是否在可借集合中
	IsAvailable(ctx context.Context, bookID uint) (bool, error)

	// IsLoaned 图书是否在已借出集合中
	IsLoaned(ctx context.Context, bookID uint) (bool, error)

	// MarkLoaned 可借→已借出(原子转移)
	// 图书不在可借集合时返回ErrBookNotAvailable，且不产生任何副作用
	MarkLoaned(ctx context.Context, bookID uint) error

	// MarkAvailable 已借出→可借(原子转移)
	// 图书不在已借出集合时返回ErrBookNotLoaned
	MarkAvailable(ctx context.Context, bookID uint) error

	// ===== 预约 =====

	// CreateReservation 创建预约
	CreateReservation(ctx context.Context, r *Reservation) error

	// FindActiveReservation 查找用户对某图书的active预约
	// 不存在时返回ErrReservationNotFound
	FindActiveReservation(ctx context.Context, userID, bookID uint) (*Reservation, error)

	// FindActiveReservationByBook 查找某图书的active预约(归还时完成它)
	FindActiveReservationByBook(ctx context.Context, bookID uint) (*Reservation, error)

	// ListActiveReservationsByUser 用户的active预约列表(按创建时间倒序)
	ListActiveReservationsByUser(ctx context.Context, userID uint) ([]*Reservation, error)

	// ListOverdueReservations 已到期但仍为active的预约
	ListOverdueReservations(ctx context.Context, now time.Time) ([]*Reservation, error)

	// UpdateReservationStatus 更新预约状态
	UpdateReservationStatus(ctx context.Context, id uint, status ReservationStatus) error

	// ===== 等待队列 =====

	// CreateWaitlistEntry 创建等待队列条目
	CreateWaitlistEntry(ctx context.Context, e *WaitlistEntry) error

	// HasActiveWaitlistEntry 用户是否已在某图书的等待队列中
	HasActiveWaitlistEntry(ctx context.Context, userID, bookID uint) (bool, error)

	// CountActiveWaitlist 某图书的active等待人数
	CountActiveWaitlist(ctx context.Context, bookID uint) (int64, error)

	// HeadOfWaitlist 等待队列头部(position最小的active条目)
	// 队列为空时返回(nil, nil)
	HeadOfWaitlist(ctx context.Context, bookID uint) (*WaitlistEntry, error)

	// UpdateWaitlistStatus 更新条目状态
	UpdateWaitlistStatus(ctx context.Context, id uint, status WaitlistStatus) error

	// RenumberWaitlist 重排某图书active条目的position，保持1..N稠密
	// 必须与导致条目离开active集合的操作同事务执行
	RenumberWaitlist(ctx context.Context, bookID uint) error

	// ListActiveWaitlistByUser 用户的active排队列表
	ListActiveWaitlistByUser(ctx context.Context, userID uint) ([]*WaitlistEntry, error)
}
