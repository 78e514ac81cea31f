package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口，infrastructure层实现
// 2. 订单、明细行与配送记录必须在同一事务中创建
// 3. 通过context传递事务(TxManager)
type Repository interface {
	// Create 创建订单(级联写入明细行与配送记录)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含明细与配送记录)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// Update 更新订单状态(级联更新配送记录状态)
	Update(ctx context.Context, order *Order) error

	// ListByUserID 分页查询用户的订单列表(按创建时间倒序)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)
}
