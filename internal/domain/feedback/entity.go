package feedback

import (
	"time"
)

// Review 书评实体
// 不变量:
// 1. 评分1-5星
// 2. 书评挂在具体的购买订单上:OrderID指向包含该图书明细行的本人订单
// 3. Helpful/Unhelpful是冗余计数，真实投票在ReviewVote表，每人每评一票
type Review struct {
	ID        uint
	UserID    uint
	BookID    uint
	OrderID   uint   // 购买凭证:包含该图书的订单
	Rating    int    // 1-5星
	Comment   string // 评论正文(可为空)
	Helpful   int    // "有用"票数(冗余计数)
	Unhelpful int    // "无用"票数(冗余计数)
	Hidden    bool   // 管理员隐藏标志
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview 创建书评(工厂方法)
func NewReview(userID, bookID, orderID uint, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	now := time.Now()
	return &Review{
		UserID:    userID,
		BookID:    bookID,
		OrderID:   orderID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// VoteKind 投票类型
type VoteKind string

const (
	VoteHelpful   VoteKind = "helpful"   // 有用
	VoteUnhelpful VoteKind = "unhelpful" // 无用
)

// Valid 校验投票类型取值
func (k VoteKind) Valid() bool {
	return k == VoteHelpful || k == VoteUnhelpful
}

// ReviewVote 书评投票记录
// (用户,书评)组合有唯一索引，数据库层保证一人一票
type ReviewVote struct {
	ID        uint
	ReviewID  uint
	UserID    uint
	Kind      VoteKind
	CreatedAt time.Time
}
