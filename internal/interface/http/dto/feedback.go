package dto

// PostReviewRequest 发表书评请求
type PostReviewRequest struct {
	BookID  uint   `json:"book_id" binding:"required"`
	OrderID uint   `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// VoteReviewRequest 书评投票请求
type VoteReviewRequest struct {
	Kind string `json:"kind" binding:"required,oneof=helpful unhelpful"`
}

// ModerateReviewRequest 书评屏蔽/恢复请求
type ModerateReviewRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}
