package order

import (
	"context"
	"fmt"

	"github.com/xiebiao/biblioteca/internal/domain/inventory"
	"github.com/xiebiao/biblioteca/internal/domain/notification"
	"github.com/xiebiao/biblioteca/internal/domain/order"
	"github.com/xiebiao/biblioteca/internal/domain/transaction"
	"github.com/xiebiao/biblioteca/pkg/mq"
)

// AdvanceOrderUseCase 订单状态推进用例(书店人员操作)
// 沿pending→confirmed→preparing→shipped→delivered推进一步
type AdvanceOrderUseCase struct {
	orderRepo  order.Repository
	notifyRepo notification.Repository
	txManager  transaction.Manager
	publisher  *mq.Publisher
}

// NewAdvanceOrderUseCase 创建推进用例
func NewAdvanceOrderUseCase(
	orderRepo order.Repository,
	notifyRepo notification.Repository,
	txManager transaction.Manager,
	publisher *mq.Publisher,
) *AdvanceOrderUseCase {
	return &AdvanceOrderUseCase{
		orderRepo:  orderRepo,
		notifyRepo: notifyRepo,
		txManager:  txManager,
		publisher:  publisher,
	}
}

// Execute 执行状态推进
func (uc *AdvanceOrderUseCase) Execute(ctx context.Context, orderID uint) (*OrderResponse, error) {
	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := o.Advance(); err != nil {
			return err
		}
		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		message := fmt.Sprintf("订单%s状态更新:%s", o.OrderNo, o.Status)
		if err := uc.notifyRepo.Create(txCtx, notification.NewWithCategory(o.UserID, message, notification.CategoryOrder)); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishAsync(ctx, mq.EventOrderStatusMoved, map[string]interface{}{
		"order_no": result.OrderNo,
		"status":   int(result.Status),
	})
	return toOrderResponse(result), nil
}

// CancelOrderUseCase 取消订单用例
// 仅发货前允许；取消与库存回补在同一事务内完成
type CancelOrderUseCase struct {
	orderRepo  order.Repository
	invRepo    inventory.Repository
	notifyRepo notification.Repository
	txManager  transaction.Manager
	publisher  *mq.Publisher
}

// NewCancelOrderUseCase 创建取消用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	invRepo inventory.Repository,
	notifyRepo notification.Repository,
	txManager transaction.Manager,
	publisher *mq.Publisher,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo:  orderRepo,
		invRepo:    invRepo,
		notifyRepo: notifyRepo,
		txManager:  txManager,
		publisher:  publisher,
	}
}

// Execute 执行取消
// userID是发起人:只能取消本人的订单
func (uc *CancelOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*OrderResponse, error) {
	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if !o.IsOwnedBy(userID) {
			return order.ErrNotOrderOwner
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		// 逐行回补库存(在售数加回，售出数扣减)
		for _, line := range o.Lines {
			err := uc.invRepo.RestoreOnCancel(txCtx, line.StoreID, line.BookID, line.Condition, line.Quantity)
			if err != nil {
				return err
			}
		}

		message := fmt.Sprintf("订单%s已取消", o.OrderNo)
		if err := uc.notifyRepo.Create(txCtx, notification.NewWithCategory(o.UserID, message, notification.CategoryOrder)); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishAsync(ctx, mq.EventOrderStatusMoved, map[string]interface{}{
		"order_no": result.OrderNo,
		"status":   int(result.Status),
	})
	return toOrderResponse(result), nil
}
