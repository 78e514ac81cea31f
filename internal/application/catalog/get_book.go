package catalog

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/feedback"
	"github.com/xiebiao/biblioteca/internal/domain/loan"
)

// GetBookUseCase 图书详情用例
// 聚合图书信息、借阅可用性与评分(详情页一次取齐)
type GetBookUseCase struct {
	bookService     catalog.Service
	loanService     loan.Service
	feedbackService feedback.Service
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService catalog.Service, loanService loan.Service, feedbackService feedback.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService:     bookService,
		loanService:     loanService,
		feedbackService: feedbackService,
	}
}

// BookDetailResponse 图书详情响应DTO
type BookDetailResponse struct {
	BookResponse
	Available   bool    `json:"available"`    // 借阅视角:当前是否可借
	AvgRating   float64 `json:"avg_rating"`   // 平均评分
	ReviewCount int64   `json:"review_count"` // 评论数
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookDetailResponse, error) {
	book, err := uc.bookService.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	available, err := uc.loanService.IsAvailable(ctx, bookID)
	if err != nil {
		return nil, err
	}

	avg, count, err := uc.feedbackService.BookRating(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &BookDetailResponse{
		BookResponse: *toBookResponse(book),
		Available:    available,
		AvgRating:    avg,
		ReviewCount:  count,
	}, nil
}
