package feedback

import (
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// 书评领域错误定义
var (
	// ErrReviewNotFound 书评不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeFeedbackNotFound, "书评不存在")

	// ErrInvalidRating 评分必须在1-5之间
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5星之间")

	// ErrNotPurchased 未购买该图书，不能发表书评
	ErrNotPurchased = apperrors.New(apperrors.ErrCodeNotPurchased, "只有购买过该图书的用户才能发表书评")

	// ErrDuplicateVote 已对该书评投过票
	ErrDuplicateVote = apperrors.New(apperrors.ErrCodeDuplicateVote, "你已对该书评投过票")

	// ErrInvalidVoteKind 投票类型不合法
	ErrInvalidVoteKind = apperrors.New(apperrors.ErrCodeInvalidParams, "投票类型必须是helpful或unhelpful")
)
