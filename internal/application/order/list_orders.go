package order

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/order"
)

// ListMyOrdersUseCase 我的订单列表用例
type ListMyOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListMyOrdersUseCase 创建订单列表用例
func NewListMyOrdersUseCase(orderRepo order.Repository) *ListMyOrdersUseCase {
	return &ListMyOrdersUseCase{orderRepo: orderRepo}
}

// OrderResponse 订单响应DTO
type OrderResponse struct {
	OrderID          uint                `json:"order_id"`
	OrderNo          string              `json:"order_no"`
	Total            int64               `json:"total"`
	TotalEuro        string              `json:"total_euro"`
	Tax              int64               `json:"tax"`
	Discount         int64               `json:"discount"`
	Status           string              `json:"status"`
	DeliveryType     string              `json:"delivery_type"`
	PaymentMethodID  uint                `json:"payment_method_id,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	ExpectedDelivery string              `json:"expected_delivery"`
	ActualDelivery   string              `json:"actual_delivery,omitempty"`
	Lines            []OrderLineResponse `json:"lines"`
	Delivery         *DeliveryResponse   `json:"delivery,omitempty"`
	CreatedAt        string              `json:"created_at"`
}

// OrderLineResponse 订单明细响应DTO
type OrderLineResponse struct {
	BookID    uint   `json:"book_id"`
	StoreID   uint   `json:"store_id"`
	Condition string `json:"condition"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Discount  int64  `json:"discount,omitempty"`
	LineTotal int64  `json:"line_total"`
}

// DeliveryResponse 配送响应DTO
type DeliveryResponse struct {
	Carrier     string `json:"carrier"`
	TrackingNo  string `json:"tracking_no"`
	Status      string `json:"status"`
	ShippedAt   string `json:"shipped_at,omitempty"`
	DeliveredAt string `json:"delivered_at,omitempty"`
}

// OrderListResponse 订单分页响应DTO
type OrderListResponse struct {
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Orders   []OrderResponse `json:"orders"`
}

// Execute 执行分页查询
func (uc *ListMyOrdersUseCase) Execute(ctx context.Context, userID uint, page, pageSize int) (*OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]OrderResponse, len(orders))
	for i, o := range orders {
		list[i] = *toOrderResponse(o)
	}
	return &OrderListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Orders:   list,
	}, nil
}

// GetOrderUseCase 订单详情用例
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute 执行查询
// 只能查看本人的订单
func (uc *GetOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*OrderResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrNotOrderOwner
	}
	return toOrderResponse(o), nil
}

func toOrderResponse(o *order.Order) *OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = OrderLineResponse{
			BookID:    line.BookID,
			StoreID:   line.StoreID,
			Condition: string(line.Condition),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			LineTotal: line.LineTotal,
		}
	}

	resp := &OrderResponse{
		OrderID:          o.ID,
		OrderNo:          o.OrderNo,
		Total:            o.Total,
		TotalEuro:        formatPrice(o.Total),
		Tax:              o.Tax,
		Discount:         o.Discount,
		Status:           o.Status.String(),
		DeliveryType:     string(o.DeliveryType),
		PaymentMethodID:  o.PaymentMethodID,
		Notes:            o.Notes,
		ExpectedDelivery: o.ExpectedDelivery.Format("2006-01-02"),
		Lines:            lines,
		CreatedAt:        o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.ActualDelivery != nil {
		resp.ActualDelivery = o.ActualDelivery.Format("2006-01-02 15:04:05")
	}
	if o.Delivery != nil {
		resp.Delivery = &DeliveryResponse{
			Carrier:    o.Delivery.Carrier,
			TrackingNo: o.Delivery.TrackingNo,
			Status:     string(o.Delivery.Status),
		}
		if o.Delivery.ShippedAt != nil {
			resp.Delivery.ShippedAt = o.Delivery.ShippedAt.Format("2006-01-02 15:04:05")
		}
		if o.Delivery.DeliveredAt != nil {
			resp.Delivery.DeliveredAt = o.Delivery.DeliveredAt.Format("2006-01-02 15:04:05")
		}
	}
	return resp
}
