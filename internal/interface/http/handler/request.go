package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/biblioteca/internal/application/user"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// RequestHandler 馆员工单HTTP处理器
type RequestHandler struct {
	requestUseCase *appuser.RequestUseCase
}

// NewRequestHandler 创建工单处理器
func NewRequestHandler(requestUseCase *appuser.RequestUseCase) *RequestHandler {
	return &RequestHandler{requestUseCase: requestUseCase}
}

// Submit 提交工单
// @Summary      提交工单
// @Description  读者向馆员发起请求，全体馆员收到站内通知
// @Tags         工单
// @Param        request body dto.SubmitRequestRequest true "工单内容"
// @Success      200 {object} response.Response "提交成功"
// @Router       /api/v1/requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.requestUseCase.Submit(c.Request.Context(), appuser.SubmitRequestRequest{
		UserID:   middleware.GetUserID(c),
		Kind:     req.Kind,
		Priority: req.Priority,
		Subject:  req.Subject,
		Body:     req.Body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMine 我的工单
// @Summary      我的工单
// @Tags         工单
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/requests/mine [get]
func (h *RequestHandler) ListMine(c *gin.Context) {
	result, err := h.requestUseCase.ListMine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOpen 待处理工单(馆员)
// @Summary      待处理工单
// @Description  高优先级在前，同优先级按提交时间
// @Tags         工单
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/requests/open [get]
func (h *RequestHandler) ListOpen(c *gin.Context) {
	result, err := h.requestUseCase.ListOpen(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Move 推进工单状态(馆员)
// @Summary      推进工单状态
// @Description  只允许沿open→in_progress→resolved→closed向前，发起人收到通知
// @Tags         工单
// @Param        id path int true "工单ID"
// @Param        request body dto.MoveRequestRequest true "目标状态"
// @Success      200 {object} response.Response "推进成功"
// @Router       /api/v1/requests/{id}/status [put]
func (h *RequestHandler) Move(c *gin.Context) {
	requestID := parseUintParam(c, "id")
	if requestID == 0 {
		response.ErrorWithCode(c, 40000, "无效的工单ID")
		return
	}

	var req dto.MoveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.requestUseCase.Move(c.Request.Context(), requestID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
