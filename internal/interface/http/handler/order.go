package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/biblioteca/internal/application/order"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase  *apporder.CreateOrderUseCase
	advanceOrderUseCase *apporder.AdvanceOrderUseCase
	cancelOrderUseCase  *apporder.CancelOrderUseCase
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase
	getOrderUseCase     *apporder.GetOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	advanceOrderUseCase *apporder.AdvanceOrderUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase:  createOrderUseCase,
		advanceOrderUseCase: advanceOrderUseCase,
		cancelOrderUseCase:  cancelOrderUseCase,
		listMyOrdersUseCase: listMyOrdersUseCase,
		getOrderUseCase:     getOrderUseCase,
	}
}

// CreateOrder 创建订单
// @Summary      创建订单
// @Description  多行下单，库存行级锁防超卖，价格取下单时的数据库价格
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      200 {object} response.Response "下单成功"
// @Failure      400 {object} response.Response "参数错误/库存不足"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	lines := make([]apporder.CreateOrderLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = apporder.CreateOrderLine{
			BookID:    line.BookID,
			StoreID:   line.StoreID,
			Condition: line.Condition,
			Quantity:  line.Quantity,
			Discount:  line.Discount,
		}
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID:          middleware.GetUserID(c),
		DeliveryType:    req.DeliveryType,
		AddressID:       req.AddressID,
		PaymentMethodID: req.PaymentMethodID,
		Tax:             req.Tax,
		Discount:        req.Discount,
		Notes:           req.Notes,
		Lines:           lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMyOrders 我的订单
// @Summary      我的订单列表
// @Tags         订单
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.listMyOrdersUseCase.Execute(c.Request.Context(),
		middleware.GetUserID(c), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := parseUintParam(c, "id")
	if orderID == 0 {
		response.ErrorWithCode(c, 40000, "无效的订单ID")
		return
	}

	result, err := h.getOrderUseCase.Execute(c.Request.Context(), middleware.GetUserID(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  仅发货前可取消，库存在同一事务内回补
// @Tags         订单
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "取消成功"
// @Router       /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID := parseUintParam(c, "id")
	if orderID == 0 {
		response.ErrorWithCode(c, 40000, "无效的订单ID")
		return
	}

	result, err := h.cancelOrderUseCase.Execute(c.Request.Context(), middleware.GetUserID(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AdvanceOrder 推进订单状态(书店人员)
// @Summary      推进订单状态
// @Description  沿待处理→已确认→备货中→已发货→已送达推进一步
// @Tags         订单
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "推进成功"
// @Router       /api/v1/orders/{id}/advance [post]
func (h *OrderHandler) AdvanceOrder(c *gin.Context) {
	orderID := parseUintParam(c, "id")
	if orderID == 0 {
		response.ErrorWithCode(c, 40000, "无效的订单ID")
		return
	}

	result, err := h.advanceOrderUseCase.Execute(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
