package loan

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/loan"
	"github.com/xiebiao/biblioteca/pkg/metrics"
	"github.com/xiebiao/biblioteca/pkg/mq"
)

// BorrowBookUseCase 直接借出用例(馆员操作)
type BorrowBookUseCase struct {
	loanService loan.Service
}

// NewBorrowBookUseCase 创建借出用例
func NewBorrowBookUseCase(loanService loan.Service) *BorrowBookUseCase {
	return &BorrowBookUseCase{loanService: loanService}
}

// Execute 执行借出
func (uc *BorrowBookUseCase) Execute(ctx context.Context, bookID uint) error {
	if err := uc.loanService.Borrow(ctx, bookID); err != nil {
		return err
	}
	metrics.LoansTotal.WithLabelValues("borrow").Inc()
	return nil
}

// ReturnBookUseCase 归还用例
// 归还成功后发布事件:事务已提交，发布失败不回滚业务
type ReturnBookUseCase struct {
	loanService loan.Service
	publisher   *mq.Publisher
}

// NewReturnBookUseCase 创建归还用例
func NewReturnBookUseCase(loanService loan.Service, publisher *mq.Publisher) *ReturnBookUseCase {
	return &ReturnBookUseCase{loanService: loanService, publisher: publisher}
}

// ReturnBookResponse 归还响应DTO
type ReturnBookResponse struct {
	BookID   uint `json:"book_id"`
	Promoted bool `json:"promoted"` // 是否有等待者晋升获得此书
}

// Execute 执行归还
func (uc *ReturnBookUseCase) Execute(ctx context.Context, bookID uint) (*ReturnBookResponse, error) {
	result, err := uc.loanService.Return(ctx, bookID)
	if err != nil {
		return nil, err
	}

	metrics.LoansTotal.WithLabelValues("return").Inc()
	uc.publisher.PublishAsync(ctx, mq.EventLoanReturned, map[string]interface{}{
		"book_id": bookID,
	})
	if result.Promoted {
		metrics.WaitlistPromotionsTotal.Inc()
		uc.publisher.PublishAsync(ctx, mq.EventWaitlistPromoted, map[string]interface{}{
			"book_id": bookID,
			"user_id": result.PromotedUserID,
		})
	}

	return &ReturnBookResponse{BookID: bookID, Promoted: result.Promoted}, nil
}
