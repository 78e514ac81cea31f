package loan

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/loan"
	"github.com/xiebiao/biblioteca/pkg/metrics"
)

// ReserveBookUseCase 预约图书用例
type ReserveBookUseCase struct {
	loanService loan.Service
}

// NewReserveBookUseCase 创建预约用例
func NewReserveBookUseCase(loanService loan.Service) *ReserveBookUseCase {
	return &ReserveBookUseCase{loanService: loanService}
}

// ReservationResponse 预约响应DTO
type ReservationResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

// Execute 执行预约
func (uc *ReserveBookUseCase) Execute(ctx context.Context, userID, bookID uint) (*ReservationResponse, error) {
	reservation, err := uc.loanService.Reserve(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	metrics.ReservationsTotal.Inc()
	return toReservationResponse(reservation), nil
}

// JoinWaitlistUseCase 加入等待队列用例
type JoinWaitlistUseCase struct {
	loanService loan.Service
}

// NewJoinWaitlistUseCase 创建排队用例
func NewJoinWaitlistUseCase(loanService loan.Service) *JoinWaitlistUseCase {
	return &JoinWaitlistUseCase{loanService: loanService}
}

// WaitlistResponse 排队响应DTO
type WaitlistResponse struct {
	ID          uint   `json:"id"`
	BookID      uint   `json:"book_id"`
	Position    int    `json:"position"`
	Status      string `json:"status"`
	RequestedAt string `json:"requested_at"`
}

// Execute 执行排队
func (uc *JoinWaitlistUseCase) Execute(ctx context.Context, userID, bookID uint) (*WaitlistResponse, error) {
	entry, err := uc.loanService.JoinWaitlist(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	return toWaitlistResponse(entry), nil
}

// MyLoansUseCase 我的借阅视图用例(预约+排队)
type MyLoansUseCase struct {
	loanService loan.Service
}

// NewMyLoansUseCase 创建我的借阅视图用例
func NewMyLoansUseCase(loanService loan.Service) *MyLoansUseCase {
	return &MyLoansUseCase{loanService: loanService}
}

// MyLoansResponse 我的借阅响应DTO
type MyLoansResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Waitlist     []WaitlistResponse    `json:"waitlist"`
}

// Execute 查询当前用户的active预约与排队
func (uc *MyLoansUseCase) Execute(ctx context.Context, userID uint) (*MyLoansResponse, error) {
	reservations, err := uc.loanService.ListMyReservations(ctx, userID)
	if err != nil {
		return nil, err
	}
	waitlist, err := uc.loanService.ListMyWaitlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &MyLoansResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
		Waitlist:     make([]WaitlistResponse, len(waitlist)),
	}
	for i, r := range reservations {
		resp.Reservations[i] = *toReservationResponse(r)
	}
	for i, w := range waitlist {
		resp.Waitlist[i] = *toWaitlistResponse(w)
	}
	return resp, nil
}

// =========================================
// 辅助函数:DTO转换
// =========================================

func toReservationResponse(r *loan.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		ExpiresAt: r.ExpiresAt.Format("2006-01-02 15:04:05"),
	}
}

func toWaitlistResponse(e *loan.WaitlistEntry) *WaitlistResponse {
	return &WaitlistResponse{
		ID:          e.ID,
		BookID:      e.BookID,
		Position:    e.Position,
		Status:      string(e.Status),
		RequestedAt: e.RequestedAt.Format("2006-01-02 15:04:05"),
	}
}
