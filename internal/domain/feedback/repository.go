package feedback

import (
	"context"
)

// Repository 书评仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建书评
	Create(ctx context.Context, review *Review) error

	// FindByID 根据ID查找书评
	// 不存在时返回ErrReviewNotFound
	FindByID(ctx context.Context, id uint) (*Review, error)

	// ListByBook 某图书的可见书评(未隐藏，按创建时间倒序)
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)

	// ListByUser 某用户发表的全部书评
	ListByUser(ctx context.Context, userID uint) ([]*Review, error)

	// AverageRating 某图书的平均评分与评论数(排除隐藏书评)
	AverageRating(ctx context.Context, bookID uint) (float64, int64, error)

	// SetHidden 设置隐藏标志(管理员审核)
	SetHidden(ctx context.Context, id uint, hidden bool) error

	// CreateVote 写入投票记录
	// (用户,书评)唯一索引冲突时返回ErrDuplicateVote
	CreateVote(ctx context.Context, vote *ReviewVote) error

	// IncrementVoteCount 累加书评上的冗余计数
	IncrementVoteCount(ctx context.Context, reviewID uint, kind VoteKind) error
}
