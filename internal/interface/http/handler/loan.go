package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/biblioteca/internal/application/loan"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// LoanHandler 借阅流转HTTP处理器
// 预约/排队是读者操作，借出/归还/清扫是馆员操作(路由层用角色中间件区分)
type LoanHandler struct {
	borrowUseCase   *apploan.BorrowBookUseCase
	returnUseCase   *apploan.ReturnBookUseCase
	reserveUseCase  *apploan.ReserveBookUseCase
	waitlistUseCase *apploan.JoinWaitlistUseCase
	myLoansUseCase  *apploan.MyLoansUseCase
	sweepUseCase    *apploan.SweepReservationsUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	borrowUseCase *apploan.BorrowBookUseCase,
	returnUseCase *apploan.ReturnBookUseCase,
	reserveUseCase *apploan.ReserveBookUseCase,
	waitlistUseCase *apploan.JoinWaitlistUseCase,
	myLoansUseCase *apploan.MyLoansUseCase,
	sweepUseCase *apploan.SweepReservationsUseCase,
) *LoanHandler {
	return &LoanHandler{
		borrowUseCase:   borrowUseCase,
		returnUseCase:   returnUseCase,
		reserveUseCase:  reserveUseCase,
		waitlistUseCase: waitlistUseCase,
		myLoansUseCase:  myLoansUseCase,
		sweepUseCase:    sweepUseCase,
	}
}

// Reserve 预约图书
// @Summary      预约图书
// @Description  图书可借时创建预约并锁定该书，保留7天
// @Tags         借阅
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "预约成功"
// @Router       /api/v1/books/{id}/reserve [post]
func (h *LoanHandler) Reserve(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	userID := middleware.GetUserID(c)
	result, err := h.reserveUseCase.Execute(c.Request.Context(), userID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// JoinWaitlist 加入等待队列
// @Summary      排队等书
// @Description  图书已借出时加入等待队列，归还后按队列顺序晋升
// @Tags         借阅
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "排队成功"
// @Router       /api/v1/books/{id}/waitlist [post]
func (h *LoanHandler) JoinWaitlist(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	userID := middleware.GetUserID(c)
	result, err := h.waitlistUseCase.Execute(c.Request.Context(), userID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MyLoans 我的预约与排队
// @Summary      我的借阅视图
// @Tags         借阅
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/loans/mine [get]
func (h *LoanHandler) MyLoans(c *gin.Context) {
	userID := middleware.GetUserID(c)
	result, err := h.myLoansUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Borrow 直接借出(馆员)
// @Summary      借出图书
// @Description  馆员柜台操作，图书从可借清单转入借出清单
// @Tags         借阅
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "借出成功"
// @Router       /api/v1/loans/books/{id}/borrow [post]
func (h *LoanHandler) Borrow(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	if err := h.borrowUseCase.Execute(c.Request.Context(), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book_id": bookID})
}

// Return 归还图书(馆员)
// @Summary      归还图书
// @Description  有人排队时晋升队首(书保持借出并通知晋升者)，否则图书回到可借清单
// @Tags         借阅
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "归还成功"
// @Router       /api/v1/loans/books/{id}/return [post]
func (h *LoanHandler) Return(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SweepReservations 过期预约清扫(馆员)
// @Summary      清扫过期预约
// @Description  把超过保留期的预约标记为过期并释放图书(有排队则晋升)
// @Tags         借阅
// @Success      200 {object} response.Response "清扫完成"
// @Router       /api/v1/loans/reservations/sweep [post]
func (h *LoanHandler) SweepReservations(c *gin.Context) {
	result, err := h.sweepUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
