package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/feedback"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// feedbackRepository 书评仓储实现(MySQL)
// 设计说明:
// 1. (review_id,user_id)唯一索引保证一人一票，冲突翻译为ErrDuplicateVote
// 2. Helpful/Unhelpful冗余计数用原子UPDATE维护
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建书评仓储
func NewFeedbackRepository(db *gorm.DB) feedback.Repository {
	return &feedbackRepository{db: db}
}

// Create 创建书评
func (r *feedbackRepository) Create(ctx context.Context, review *feedback.Review) error {
	model := &ReviewModel{
		UserID:    review.UserID,
		BookID:    review.BookID,
		OrderID:   review.OrderID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Helpful:   review.Helpful,
		Unhelpful: review.Unhelpful,
		Hidden:    review.Hidden,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建书评失败")
	}
	review.ID = model.ID
	review.CreatedAt = model.CreatedAt
	review.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找书评
func (r *feedbackRepository) FindByID(ctx context.Context, id uint) (*feedback.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, feedback.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}
	return toReviewEntity(&model), nil
}

// ListByBook 某图书的可见书评(未隐藏，按创建时间倒序)
func (r *feedbackRepository) ListByBook(ctx context.Context, bookID uint) ([]*feedback.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND hidden = ?", bookID, false).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书评列表失败")
	}
	return toReviewEntities(models), nil
}

// ListByUser 某用户发表的全部书评
func (r *feedbackRepository) ListByUser(ctx context.Context, userID uint) ([]*feedback.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书评列表失败")
	}
	return toReviewEntities(models), nil
}

// AverageRating 某图书的平均评分与评论数(排除隐藏书评)
func (r *feedbackRepository) AverageRating(ctx context.Context, bookID uint) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("book_id = ? AND hidden = ?", bookID, false).
		Scan(&result).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计评分失败")
	}
	return result.Avg, result.Count, nil
}

// SetHidden 设置隐藏标志(管理员审核)
func (r *feedbackRepository) SetHidden(ctx context.Context, id uint, hidden bool) error {
	result := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", id).
		Update("hidden", hidden)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新书评失败")
	}
	if result.RowsAffected == 0 {
		return feedback.ErrReviewNotFound
	}
	return nil
}

// CreateVote 写入投票记录
func (r *feedbackRepository) CreateVote(ctx context.Context, vote *feedback.ReviewVote) error {
	model := &ReviewVoteModel{
		ReviewID:  vote.ReviewID,
		UserID:    vote.UserID,
		Kind:      string(vote.Kind),
		CreatedAt: vote.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return feedback.ErrDuplicateVote
		}
		return apperrors.Wrap(err, "写入投票失败")
	}
	vote.ID = model.ID
	return nil
}

// IncrementVoteCount 累加书评上的冗余计数
func (r *feedbackRepository) IncrementVoteCount(ctx context.Context, reviewID uint, kind feedback.VoteKind) error {
	col := "helpful"
	if kind == feedback.VoteUnhelpful {
		col = "unhelpful"
	}
	result := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", reviewID).
		Update(col, gorm.Expr(col+" + 1"))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新票数失败")
	}
	if result.RowsAffected == 0 {
		return feedback.ErrReviewNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toReviewEntity(model *ReviewModel) *feedback.Review {
	return &feedback.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		OrderID:   model.OrderID,
		Rating:    model.Rating,
		Comment:   model.Comment,
		Helpful:   model.Helpful,
		Unhelpful: model.Unhelpful,
		Hidden:    model.Hidden,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toReviewEntities(models []ReviewModel) []*feedback.Review {
	reviews := make([]*feedback.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews
}
