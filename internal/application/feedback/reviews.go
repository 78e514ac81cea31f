package feedback

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/feedback"
)

// ReviewUseCase 书评用例
// 发表、查询、投票、屏蔽，全部委托领域服务
type ReviewUseCase struct {
	feedbackService feedback.Service
}

// NewReviewUseCase 创建书评用例
func NewReviewUseCase(feedbackService feedback.Service) *ReviewUseCase {
	return &ReviewUseCase{feedbackService: feedbackService}
}

// PostReviewRequest 发表书评请求DTO
type PostReviewRequest struct {
	UserID  uint
	BookID  uint
	OrderID uint // 购买凭证:包含该图书的本人订单
	Rating  int
	Comment string
}

// ReviewResponse 书评响应DTO
type ReviewResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	BookID    uint   `json:"book_id"`
	OrderID   uint   `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Helpful   int    `json:"helpful"`
	Unhelpful int    `json:"unhelpful"`
	CreatedAt string `json:"created_at"`
}

// Post 发表书评(凭包含该图书的本人订单)
func (uc *ReviewUseCase) Post(ctx context.Context, req PostReviewRequest) (*ReviewResponse, error) {
	review, err := uc.feedbackService.PostReview(ctx, req.UserID, req.BookID, req.OrderID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	return toReviewResponse(review), nil
}

// ListByBook 某图书的可见书评
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint) ([]ReviewResponse, error) {
	reviews, err := uc.feedbackService.ListBookReviews(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// ListMine 我的书评
func (uc *ReviewUseCase) ListMine(ctx context.Context, userID uint) ([]ReviewResponse, error) {
	reviews, err := uc.feedbackService.ListMyReviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// Vote 对书评投票(helpful/unhelpful，每人每评一票)
func (uc *ReviewUseCase) Vote(ctx context.Context, userID, reviewID uint, kind string) error {
	return uc.feedbackService.Vote(ctx, userID, reviewID, feedback.VoteKind(kind))
}

// Moderate 图书管理员隐藏/恢复书评
func (uc *ReviewUseCase) Moderate(ctx context.Context, reviewID uint, hidden bool) error {
	return uc.feedbackService.Moderate(ctx, reviewID, hidden)
}

func toReviewResponse(r *feedback.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		BookID:    r.BookID,
		OrderID:   r.OrderID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Helpful:   r.Helpful,
		Unhelpful: r.Unhelpful,
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toReviewResponses(reviews []*feedback.Review) []ReviewResponse {
	list := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		list[i] = *toReviewResponse(r)
	}
	return list
}
