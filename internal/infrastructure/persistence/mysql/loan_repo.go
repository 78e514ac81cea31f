package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/loan"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// loanRepository 借阅/预约仓储实现(MySQL)
// 设计说明:
// 1. 可用性账本 = available_books/loaned_books两张互斥集合表
// 2. 集合转移"删一张、插另一张"，靠RowsAffected判断前置状态
// 3. 写路径都假定调用方已在TxManager事务内并LockBook过
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// LockBook 悲观锁锁定图书行(SELECT FOR UPDATE)
// 同一本书上的并发状态转移在此串行化
func (r *loanRepository) LockBook(ctx context.Context, bookID uint) error {
	var model BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.ErrBookNotFound
		}
		return apperrors.Wrap(err, "锁定图书失败")
	}
	return nil
}

// IsAvailable 图书是否在可借集合中
func (r *loanRepository) IsAvailable(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&AvailableBookModel{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询可借状态失败")
	}
	return count > 0, nil
}

// IsLoaned 图书是否在已借出集合中
func (r *loanRepository) IsLoaned(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanedBookModel{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询借出状态失败")
	}
	return count > 0, nil
}

// MarkLoaned 可借→已借出
// DELETE的RowsAffected=0说明图书不在可借集合，原子失败
func (r *loanRepository) MarkLoaned(ctx context.Context, bookID uint) error {
	db := getDB(ctx, r.db)

	result := db.Where("book_id = ?", bookID).Delete(&AvailableBookModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新可借状态失败")
	}
	if result.RowsAffected == 0 {
		return loan.ErrBookNotAvailable
	}

	if err := db.Create(&LoanedBookModel{BookID: bookID, LoanedAt: time.Now()}).Error; err != nil {
		return apperrors.Wrap(err, "写入借出状态失败")
	}
	return nil
}

// MarkAvailable 已借出→可借
func (r *loanRepository) MarkAvailable(ctx context.Context, bookID uint) error {
	db := getDB(ctx, r.db)

	result := db.Where("book_id = ?", bookID).Delete(&LoanedBookModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新借出状态失败")
	}
	if result.RowsAffected == 0 {
		return loan.ErrBookNotLoaned
	}

	if err := db.Create(&AvailableBookModel{BookID: bookID}).Error; err != nil {
		return apperrors.Wrap(err, "写入可借状态失败")
	}
	return nil
}

// CreateReservation 创建预约
func (r *loanRepository) CreateReservation(ctx context.Context, res *loan.Reservation) error {
	model := &ReservationModel{
		UserID:    res.UserID,
		BookID:    res.BookID,
		Status:    string(res.Status),
		ExpiresAt: res.ExpiresAt,
		CreatedAt: res.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建预约失败")
	}
	res.ID = model.ID
	return nil
}

// FindActiveReservation 查找用户对某图书的active预约
func (r *loanRepository) FindActiveReservation(ctx context.Context, userID, bookID uint) (*loan.Reservation, error) {
	var model ReservationModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, string(loan.ReservationActive)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrReservationNotFound
		}
		return nil, apperrors.Wrap(err, "查询预约失败")
	}
	return toReservationEntity(&model), nil
}

// FindActiveReservationByBook 查找某图书的active预约
func (r *loanRepository) FindActiveReservationByBook(ctx context.Context, bookID uint) (*loan.Reservation, error) {
	var model ReservationModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND status = ?", bookID, string(loan.ReservationActive)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrReservationNotFound
		}
		return nil, apperrors.Wrap(err, "查询预约失败")
	}
	return toReservationEntity(&model), nil
}

// ListActiveReservationsByUser 用户的active预约列表
func (r *loanRepository) ListActiveReservationsByUser(ctx context.Context, userID uint) ([]*loan.Reservation, error) {
	var models []ReservationModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND status = ?", userID, string(loan.ReservationActive)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询预约列表失败")
	}

	reservations := make([]*loan.Reservation, len(models))
	for i := range models {
		reservations[i] = toReservationEntity(&models[i])
	}
	return reservations, nil
}

// ListOverdueReservations 已到期但仍为active的预约
func (r *loanRepository) ListOverdueReservations(ctx context.Context, now time.Time) ([]*loan.Reservation, error) {
	var models []ReservationModel
	err := getDB(ctx, r.db).
		Where("status = ? AND expires_at < ?", string(loan.ReservationActive), now).
		Order("expires_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询到期预约失败")
	}

	reservations := make([]*loan.Reservation, len(models))
	for i := range models {
		reservations[i] = toReservationEntity(&models[i])
	}
	return reservations, nil
}

// UpdateReservationStatus 更新预约状态
func (r *loanRepository) UpdateReservationStatus(ctx context.Context, id uint, status loan.ReservationStatus) error {
	result := getDB(ctx, r.db).Model(&ReservationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新预约状态失败")
	}
	if result.RowsAffected == 0 {
		return loan.ErrReservationNotFound
	}
	return nil
}

// CreateWaitlistEntry 创建等待队列条目
func (r *loanRepository) CreateWaitlistEntry(ctx context.Context, e *loan.WaitlistEntry) error {
	model := &WaitlistModel{
		UserID:      e.UserID,
		BookID:      e.BookID,
		Position:    e.Position,
		Status:      string(e.Status),
		RequestedAt: e.RequestedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "加入等待队列失败")
	}
	e.ID = model.ID
	return nil
}

// HasActiveWaitlistEntry 用户是否已在某图书的等待队列中
func (r *loanRepository) HasActiveWaitlistEntry(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&WaitlistModel{}).
		Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, string(loan.WaitlistActive)).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询等待队列失败")
	}
	return count > 0, nil
}

// CountActiveWaitlist 某图书的active等待人数
func (r *loanRepository) CountActiveWaitlist(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&WaitlistModel{}).
		Where("book_id = ? AND status = ?", bookID, string(loan.WaitlistActive)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计等待人数失败")
	}
	return count, nil
}

// HeadOfWaitlist 等待队列头部(position最小的active条目)
func (r *loanRepository) HeadOfWaitlist(ctx context.Context, bookID uint) (*loan.WaitlistEntry, error) {
	var model WaitlistModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND status = ?", bookID, string(loan.WaitlistActive)).
		Order("position ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询队列头部失败")
	}
	return toWaitlistEntity(&model), nil
}

// UpdateWaitlistStatus 更新条目状态
func (r *loanRepository) UpdateWaitlistStatus(ctx context.Context, id uint, status loan.WaitlistStatus) error {
	result := getDB(ctx, r.db).Model(&WaitlistModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新队列条目失败")
	}
	return nil
}

// RenumberWaitlist 重排某图书active条目的position
// 按原position顺序重新赋1..N，必须与离队操作同事务
func (r *loanRepository) RenumberWaitlist(ctx context.Context, bookID uint) error {
	db := getDB(ctx, r.db)

	var models []WaitlistModel
	err := db.
		Where("book_id = ? AND status = ?", bookID, string(loan.WaitlistActive)).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return apperrors.Wrap(err, "查询等待队列失败")
	}

	for i := range models {
		want := i + 1
		if models[i].Position == want {
			continue
		}
		err := db.Model(&WaitlistModel{}).
			Where("id = ?", models[i].ID).
			Update("position", want).Error
		if err != nil {
			return apperrors.Wrap(err, "重排等待队列失败")
		}
	}
	return nil
}

// ListActiveWaitlistByUser 用户的active排队列表
func (r *loanRepository) ListActiveWaitlistByUser(ctx context.Context, userID uint) ([]*loan.WaitlistEntry, error) {
	var models []WaitlistModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND status = ?", userID, string(loan.WaitlistActive)).
		Order("requested_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询排队列表失败")
	}

	entries := make([]*loan.WaitlistEntry, len(models))
	for i := range models {
		entries[i] = toWaitlistEntity(&models[i])
	}
	return entries, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toReservationEntity(model *ReservationModel) *loan.Reservation {
	return &loan.Reservation{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Status:    loan.ReservationStatus(model.Status),
		CreatedAt: model.CreatedAt,
		ExpiresAt: model.ExpiresAt,
	}
}

func toWaitlistEntity(model *WaitlistModel) *loan.WaitlistEntry {
	return &loan.WaitlistEntry{
		ID:          model.ID,
		UserID:      model.UserID,
		BookID:      model.BookID,
		Position:    model.Position,
		Status:      loan.WaitlistStatus(model.Status),
		RequestedAt: model.RequestedAt,
	}
}
