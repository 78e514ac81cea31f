package inventory

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
)

// Repository 库存仓储接口(依赖倒置原则)
// 设计说明:
// 1. (书店,图书)组合有唯一索引，Upsert依赖该索引做"存在则覆盖"
// 2. 扣减走条件UPDATE(copies >= ?)，由数据库保证不超卖，RowsAffected=0即库存不足
// 3. 写方法在TxManager事务内调用时自动加入事务
type Repository interface {
	// Upsert 写入或覆盖(书店,图书)的库存数(绝对值语义)
	Upsert(ctx context.Context, inv *StoreInventory) error

	// Get 查询(书店,图书)的库存记录
	// 不存在时返回ErrInventoryNotFound
	Get(ctx context.Context, storeID, bookID uint) (*StoreInventory, error)

	// GetForUpdate 带排他锁查询库存记录(下单扣减前调用)
	GetForUpdate(ctx context.Context, storeID, bookID uint) (*StoreInventory, error)

	// DecrementOnSale 条件扣减库存并累加售出数
	// 执行 UPDATE ... SET copies = copies - ?, copies_sold = copies_sold + ?
	// WHERE store_id=? AND book_id=? AND copies >= ?
	// 影响行数为0时返回ErrInsufficientStock
	DecrementOnSale(ctx context.Context, storeID, bookID uint, cond catalog.Condition, quantity int) error

	// RestoreOnCancel 订单取消时回补库存
	RestoreOnCancel(ctx context.Context, storeID, bookID uint, cond catalog.Condition, quantity int) error

	// ListByStore 某书店的全部库存记录
	ListByStore(ctx context.Context, storeID uint) ([]*StoreInventory, error)

	// ListByBook 持有某图书的全部书店库存
	ListByBook(ctx context.Context, bookID uint) ([]*StoreInventory, error)
}
