package handler

import (
	"github.com/gin-gonic/gin"

	appfeedback "github.com/xiebiao/biblioteca/internal/application/feedback"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// FeedbackHandler 书评HTTP处理器
type FeedbackHandler struct {
	reviewUseCase *appfeedback.ReviewUseCase
}

// NewFeedbackHandler 创建书评处理器
func NewFeedbackHandler(reviewUseCase *appfeedback.ReviewUseCase) *FeedbackHandler {
	return &FeedbackHandler{reviewUseCase: reviewUseCase}
}

// PostReview 发表书评
// @Summary      发表书评
// @Description  1-5星评分，凭包含该图书的本人订单发表
// @Tags         书评
// @Param        request body dto.PostReviewRequest true "书评内容"
// @Success      200 {object} response.Response "发表成功"
// @Router       /api/v1/reviews [post]
func (h *FeedbackHandler) PostReview(c *gin.Context) {
	var req dto.PostReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.reviewUseCase.Post(c.Request.Context(), appfeedback.PostReviewRequest{
		UserID:  middleware.GetUserID(c),
		BookID:  req.BookID,
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListBookReviews 某图书的书评
// @Summary      图书书评列表
// @Tags         书评
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/{id}/reviews [get]
func (h *FeedbackHandler) ListBookReviews(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	result, err := h.reviewUseCase.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MyReviews 我的书评
// @Summary      我的书评
// @Tags         书评
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/reviews/mine [get]
func (h *FeedbackHandler) MyReviews(c *gin.Context) {
	result, err := h.reviewUseCase.ListMine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// VoteReview 书评投票
// @Summary      书评投票
// @Description  helpful/unhelpful，每人每评一票
// @Tags         书评
// @Param        id path int true "书评ID"
// @Param        request body dto.VoteReviewRequest true "投票类型"
// @Success      200 {object} response.Response "投票成功"
// @Router       /api/v1/reviews/{id}/vote [post]
func (h *FeedbackHandler) VoteReview(c *gin.Context) {
	reviewID := parseUintParam(c, "id")
	if reviewID == 0 {
		response.ErrorWithCode(c, 40000, "无效的书评ID")
		return
	}

	var req dto.VoteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	if err := h.reviewUseCase.Vote(c.Request.Context(), middleware.GetUserID(c), reviewID, req.Kind); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"review_id": reviewID})
}

// ModerateReview 屏蔽/恢复书评(馆员)
// @Summary      书评屏蔽管理
// @Tags         书评
// @Param        id path int true "书评ID"
// @Param        request body dto.ModerateReviewRequest true "是否屏蔽"
// @Success      200 {object} response.Response "操作成功"
// @Router       /api/v1/reviews/{id}/moderate [put]
func (h *FeedbackHandler) ModerateReview(c *gin.Context) {
	reviewID := parseUintParam(c, "id")
	if reviewID == 0 {
		response.ErrorWithCode(c, 40000, "无效的书评ID")
		return
	}

	var req dto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	if err := h.reviewUseCase.Moderate(c.Request.Context(), reviewID, *req.Hidden); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"review_id": reviewID, "hidden": *req.Hidden})
}
