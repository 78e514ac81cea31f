package feedback

import (
	"context"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/order"
	"github.com/xiebiao/biblioteca/internal/domain/transaction"
)

// Service 书评领域服务接口
type Service interface {
	// PostReview 发表书评
	// 业务规则:
	// - 评分1-5星
	// - 购买资格挂在具体订单上:orderID须是本人的未取消订单，且包含该图书的明细行
	PostReview(ctx context.Context, userID, bookID, orderID uint, rating int, comment string) (*Review, error)

	// ListBookReviews 某图书的可见书评
	ListBookReviews(ctx context.Context, bookID uint) ([]*Review, error)

	// ListMyReviews 当前用户的全部书评
	ListMyReviews(ctx context.Context, userID uint) ([]*Review, error)

	// BookRating 某图书的平均评分与评论数
	BookRating(ctx context.Context, bookID uint) (float64, int64, error)

	// Vote 对书评投票(每人每评一票)
	// 投票记录与冗余计数在同一事务内写入
	Vote(ctx context.Context, userID, reviewID uint, kind VoteKind) error

	// Moderate 管理员隐藏/恢复书评
	Moderate(ctx context.Context, reviewID uint, hidden bool) error
}

type service struct {
	repo      Repository
	orderRepo order.Repository
	bookRepo  catalog.Repository
	txManager transaction.Manager
}

// NewService 创建书评领域服务
func NewService(repo Repository, orderRepo order.Repository, bookRepo catalog.Repository, txManager transaction.Manager) Service {
	return &service{
		repo:      repo,
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// PostReview 发表书评
func (s *service) PostReview(ctx context.Context, userID, bookID, orderID uint, rating int, comment string) (*Review, error) {
	// 1. 图书必须存在
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	// 2. 购买资格校验:订单须属于本人、未取消、且包含该图书的明细行
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) || o.Status == order.OrderStatusCancelled {
		return nil, ErrNotPurchased
	}
	found := false
	for _, line := range o.Lines {
		if line.BookID == bookID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotPurchased
	}

	// 3. 创建实体并持久化(评分在工厂方法内校验)
	review, err := NewReview(userID, bookID, orderID, rating, comment)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListBookReviews 某图书的可见书评
func (s *service) ListBookReviews(ctx context.Context, bookID uint) ([]*Review, error) {
	return s.repo.ListByBook(ctx, bookID)
}

// ListMyReviews 当前用户的全部书评
func (s *service) ListMyReviews(ctx context.Context, userID uint) ([]*Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

// BookRating 某图书的平均评分与评论数
func (s *service) BookRating(ctx context.Context, bookID uint) (float64, int64, error) {
	return s.repo.AverageRating(ctx, bookID)
}

// Vote 对书评投票
func (s *service) Vote(ctx context.Context, userID, reviewID uint, kind VoteKind) error {
	if !kind.Valid() {
		return ErrInvalidVoteKind
	}
	if _, err := s.repo.FindByID(ctx, reviewID); err != nil {
		return err
	}

	// 投票记录与冗余计数必须同事务:唯一索引冲突时计数不会被污染
	return s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		vote := &ReviewVote{
			ReviewID:  reviewID,
			UserID:    userID,
			Kind:      kind,
			CreatedAt: time.Now(),
		}
		if err := s.repo.CreateVote(txCtx, vote); err != nil {
			return err
		}
		return s.repo.IncrementVoteCount(txCtx, reviewID, kind)
	})
}

// Moderate 管理员隐藏/恢复书评
func (s *service) Moderate(ctx context.Context, reviewID uint, hidden bool) error {
	if _, err := s.repo.FindByID(ctx, reviewID); err != nil {
		return err
	}
	return s.repo.SetHidden(ctx, reviewID, hidden)
}
