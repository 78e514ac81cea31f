package order

import (
	"context"
	"fmt"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/inventory"
	"github.com/xiebiao/biblioteca/internal/domain/notification"
	"github.com/xiebiao/biblioteca/internal/domain/order"
	"github.com/xiebiao/biblioteca/internal/domain/transaction"
	"github.com/xiebiao/biblioteca/internal/domain/user"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
	"github.com/xiebiao/biblioteca/pkg/metrics"
	"github.com/xiebiao/biblioteca/pkg/mq"
)

// CreateOrderUseCase 创建订单用例
// 整个项目最核心的用例:事务处理、并发控制、业务规则校验集中在这里
//
// 核心问题:库存超卖
// 场景:某书店某书库存10本，100人同时下单
// 错误实现:先查库存再扣减，所有请求都能通过检查，最后超卖
// 正确实现:SELECT FOR UPDATE锁定库存行，检查、扣减、建单在同一事务内完成
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	bookRepo    catalog.Repository
	invRepo     inventory.Repository
	addrRepo    user.AddressRepository
	paymentRepo user.PaymentRepository
	notifyRepo  notification.Repository
	txManager   transaction.Manager
	publisher   *mq.Publisher
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo catalog.Repository,
	invRepo inventory.Repository,
	addrRepo user.AddressRepository,
	paymentRepo user.PaymentRepository,
	notifyRepo notification.Repository,
	txManager transaction.Manager,
	publisher *mq.Publisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		bookRepo:    bookRepo,
		invRepo:     invRepo,
		addrRepo:    addrRepo,
		paymentRepo: paymentRepo,
		notifyRepo:  notifyRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// CreateOrderRequest 下单请求DTO
// 税费/折扣/备注可缺省，缺省为零值
type CreateOrderRequest struct {
	UserID          uint              // 买家用户ID(从JWT中提取)
	DeliveryType    string            // pickup/home
	AddressID       uint              // 收货地址ID(仅送货上门)
	PaymentMethodID uint              // 支付方式ID
	Tax             int64             // 税费(分)
	Discount        int64             // 订单级折扣(分)
	Notes           string            // 买家备注
	Lines           []CreateOrderLine // 订单明细
}

// CreateOrderLine 订单明细项
type CreateOrderLine struct {
	BookID    uint   // 图书ID
	StoreID   uint   // 出货书店ID
	Condition string // 品相(new/used)
	Quantity  int    // 购买数量
	Discount  int64  // 行级折扣(分)
}

// CreateOrderResponse 下单响应DTO
type CreateOrderResponse struct {
	OrderID          uint   `json:"order_id"`
	OrderNo          string `json:"order_no"`
	Total            int64  `json:"total"`
	TotalEuro        string `json:"total_euro"`
	Tax              int64  `json:"tax"`
	Discount         int64  `json:"discount"`
	Status           string `json:"status"`
	DeliveryType     string `json:"delivery_type"`
	Notes            string `json:"notes,omitempty"`
	ExpectedDelivery string `json:"expected_delivery"`
	TrackingNo       string `json:"tracking_no,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// Execute 执行下单
// 事务内:锁库存→校验→扣减→建单(+配送记录)→写通知，任一步失败全部回滚
// 事务外:递增指标、发布order.created事件(旁路，失败不影响订单)
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	// 1. 参数校验
	if len(req.Lines) == 0 {
		return nil, order.ErrInvalidOrderLines
	}
	deliveryType := order.DeliveryType(req.DeliveryType)
	if !deliveryType.Valid() {
		return nil, order.ErrInvalidDeliveryType
	}
	if req.Tax < 0 || req.Discount < 0 {
		return nil, order.ErrInvalidCharge
	}

	// 2. 送货上门必须有属于本人的收货地址
	if deliveryType == order.DeliveryHome {
		if req.AddressID == 0 {
			return nil, order.ErrAddressRequired
		}
		addr, err := uc.addrRepo.FindByID(ctx, req.AddressID)
		if err != nil {
			return nil, err
		}
		if addr.UserID != req.UserID {
			return nil, apperrors.ErrForbidden
		}
	}

	// 3. 支付方式必须属于本人
	if req.PaymentMethodID != 0 {
		pm, err := uc.paymentRepo.FindByID(ctx, req.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if pm.UserID != req.UserID {
			return nil, apperrors.ErrForbidden
		}
	}

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 4. 逐行:锁库存行、取当前价格、组装明细
		// 价格取"锁定时的数据库价格"而非前端传递值，防止改价攻击
		lines := make([]order.OrderLine, len(req.Lines))
		titles := make(map[uint]string)
		for i, line := range req.Lines {
			if line.Quantity <= 0 {
				return order.ErrInvalidQuantity
			}
			cond := catalog.Condition(line.Condition)
			if !cond.Valid() {
				return catalog.ErrInvalidCondition
			}

			// SELECT FOR UPDATE锁定(书店,图书)库存行
			inv, err := uc.invRepo.GetForUpdate(txCtx, line.StoreID, line.BookID)
			if err != nil {
				return err
			}
			if inv.CopiesFor(cond) < line.Quantity {
				return inventory.ErrInsufficientStock
			}

			book, err := uc.bookRepo.FindByID(txCtx, line.BookID)
			if err != nil {
				return err
			}
			titles[book.ID] = book.Title

			unitPrice := book.PriceFor(cond)
			if line.Discount < 0 || line.Discount > unitPrice*int64(line.Quantity) {
				return order.ErrInvalidCharge
			}

			lines[i] = order.OrderLine{
				BookID:    line.BookID,
				StoreID:   line.StoreID,
				Condition: cond,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
				Discount:  line.Discount,
			}
		}

		// 5. 创建订单(工厂方法计算总额与预计送达时间)
		newOrder := order.NewOrder(order.OrderParams{
			OrderNo:         order.GenerateOrderNo(),
			UserID:          req.UserID,
			DeliveryType:    deliveryType,
			AddressID:       req.AddressID,
			PaymentMethodID: req.PaymentMethodID,
			Tax:             req.Tax,
			Discount:        req.Discount,
			Notes:           req.Notes,
			Lines:           lines,
		})
		// 订单级折扣不能把应付金额打成负数
		if newOrder.Total < 0 {
			return order.ErrInvalidCharge
		}
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 6. 扣减库存(条件UPDATE，数据库保证不为负)
		for _, line := range req.Lines {
			err := uc.invRepo.DecrementOnSale(txCtx, line.StoreID, line.BookID,
				catalog.Condition(line.Condition), line.Quantity)
			if err != nil {
				return err // 回滚:订单与已扣行一并撤销
			}
		}

		// 7. 下单成功通知(同事务，订单失败则通知也不会发出)
		message := fmt.Sprintf("订单%s已创建，共%d种图书，合计€%s",
			newOrder.OrderNo, len(lines), formatPrice(newOrder.Total))
		if err := uc.notifyRepo.Create(txCtx, notification.NewWithCategory(req.UserID, message, notification.CategoryOrder)); err != nil {
			return err
		}

		result = newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 8. 事务已提交:指标与事件
	metrics.OrdersCreatedTotal.Inc()
	uc.publisher.PublishAsync(ctx, mq.EventOrderCreated, map[string]interface{}{
		"order_no": result.OrderNo,
		"user_id":  result.UserID,
		"total":    result.Total,
	})

	return toCreateOrderResponse(result), nil
}

func toCreateOrderResponse(o *order.Order) *CreateOrderResponse {
	resp := &CreateOrderResponse{
		OrderID:          o.ID,
		OrderNo:          o.OrderNo,
		Total:            o.Total,
		TotalEuro:        formatPrice(o.Total),
		Tax:              o.Tax,
		Discount:         o.Discount,
		Status:           o.Status.String(),
		DeliveryType:     string(o.DeliveryType),
		Notes:            o.Notes,
		ExpectedDelivery: o.ExpectedDelivery.Format("2006-01-02"),
		CreatedAt:        o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.Delivery != nil {
		resp.TrackingNo = o.Delivery.TrackingNo
	}
	return resp
}

// formatPrice 格式化价格(分→欧元)
func formatPrice(cents int64) string {
	euro := float64(cents) / 100.0
	return fmt.Sprintf("%.2f", euro)
}
